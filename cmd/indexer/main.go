// Command indexer runs one indexing loop per enabled network.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/config"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/indexer"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/objectstore"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/rpc"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/sanctions"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/store/postgres"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/warehouse/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/writer"
	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type options struct {
	PostgresDSN   string   `long:"postgres-dsn" env:"INDEXER_POSTGRES_DSN" description:"PostgreSQL DSN" required:"true"`
	ClickhouseDSN string   `long:"clickhouse-dsn" env:"INDEXER_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	NetworksFile  string   `long:"networks-file" env:"INDEXER_NETWORKS_FILE" description:"YAML file with networks to seed before starting"`
	Networks      []string `long:"network" env:"INDEXER_NETWORKS" env-delim:"," description:"index only these network ids (repeatable)"`
	InstanceID    string   `long:"instance-id" env:"INDEXER_INSTANCE_ID" description:"leader election identity, random when empty"`
	MetricsAddr   string   `long:"metrics-addr" env:"INDEXER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	LogJSON       bool     `long:"log-json" env:"INDEXER_LOG_JSON" description:"log in JSON"`

	Indexer struct {
		BatchSize       int           `long:"batch-size" env:"BATCH_SIZE" description:"blocks per batch" default:"50"`
		FetchWorkers    int           `long:"fetch-workers" env:"FETCH_WORKERS" description:"concurrent block fetches per network" default:"8"`
		LeaseDuration   time.Duration `long:"lease-duration" env:"LEASE_DURATION" description:"leadership lease duration" default:"20s"`
		RenewInterval   time.Duration `long:"renew-interval" env:"RENEW_INTERVAL" description:"leadership renewal interval" default:"2s"`
		AcquireInterval time.Duration `long:"acquire-interval" env:"ACQUIRE_INTERVAL" description:"standby retry interval" default:"5s"`
		MaxReorgDepth   int           `long:"max-reorg-depth" env:"MAX_REORG_DEPTH" description:"deepest fork followed automatically" default:"100"`
		MaxBackoff      time.Duration `long:"max-backoff" env:"MAX_BACKOFF" description:"upper bound of the failure backoff" default:"10m"`
		RPCTimeout      time.Duration `long:"rpc-timeout" env:"RPC_TIMEOUT" description:"timeout of one rpc attempt" default:"30s"`
	} `group:"Indexer" namespace:"indexer" env-namespace:"INDEXER"`

	ObjectStore struct {
		Dir             string `long:"dir" env:"DIR" description:"store objects below this directory instead of S3"`
		Bucket          string `long:"bucket" env:"BUCKET" description:"S3 bucket"`
		Prefix          string `long:"prefix" env:"PREFIX" description:"S3 key prefix"`
		Region          string `long:"region" env:"REGION" description:"S3 region"`
		Endpoint        string `long:"endpoint" env:"ENDPOINT" description:"S3-compatible endpoint URL"`
		UsePathStyle    bool   `long:"path-style" env:"PATH_STYLE" description:"use path-style S3 addressing"`
		AccessKeyID     string `long:"access-key-id" env:"ACCESS_KEY_ID" description:"S3 access key id"`
		SecretAccessKey string `long:"secret-access-key" env:"SECRET_ACCESS_KEY" description:"S3 secret access key"`
	} `group:"Object store" namespace:"object-store" env-namespace:"INDEXER_OBJECT_STORE"`

	Sanctions struct {
		Interval     time.Duration `long:"interval" env:"INTERVAL" description:"import the OFAC SDN list at this cadence, disabled when zero"`
		URL          string        `long:"url" env:"URL" description:"SDN list document URL" default:"https://www.treasury.gov/ofac/downloads/sdn.xml"`
		Symbols      []string      `long:"symbol" env:"SYMBOLS" env-delim:"," description:"SYMBOL=network mapping for listed addresses (repeatable), replaces the built-in mapping"`
		FetchTimeout time.Duration `long:"fetch-timeout" env:"FETCH_TIMEOUT" description:"timeout of one list download" default:"2m"`
	} `group:"Sanctions" namespace:"sanctions" env-namespace:"INDEXER_SANCTIONS"`
}

func main() {
	cfg := options{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("indexer failed", zap.Error(err))
	}
	logger.Info("indexer stopped")
}

func run(ctx context.Context, cfg options, logger *zap.Logger) error {
	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.NewString()
	}
	logger = logger.With(zap.String("instance", cfg.InstanceID))

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	pool, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	store, err := postgres.New(pool, metrics.NewPostgresStore())
	if err != nil {
		return fmt.Errorf("init postgres store: %w", err)
	}

	if cfg.NetworksFile != "" {
		networks, err := config.LoadNetworks(cfg.NetworksFile)
		if err != nil {
			return err
		}
		if err := config.Seed(ctx, store, networks); err != nil {
			return err
		}
		logger.Info("seeded networks", zap.String("file", cfg.NetworksFile), zap.Int("count", len(networks)))
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init clickhouse repository: %w", err)
	}
	if err := repo.Ping(ctx); err != nil {
		return err
	}

	objects, err := newObjectStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init object store: %w", err)
	}
	w, err := writer.New(writer.Config{}, objects, repo, metrics.NewWriter(), logger)
	if err != nil {
		return fmt.Errorf("init writer: %w", err)
	}

	recorder, err := indexer.NewStatusRecorder(store, logger)
	if err != nil {
		return err
	}

	runnerCfg := indexer.Config{
		InstanceID:      cfg.InstanceID,
		BatchSize:       cfg.Indexer.BatchSize,
		FetchWorkers:    cfg.Indexer.FetchWorkers,
		LeaseDuration:   cfg.Indexer.LeaseDuration,
		RenewInterval:   cfg.Indexer.RenewInterval,
		AcquireInterval: cfg.Indexer.AcquireInterval,
		MaxReorgDepth:   cfg.Indexer.MaxReorgDepth,
		MaxBackoff:      cfg.Indexer.MaxBackoff,
	}
	build := func(network model.Network) (indexer.Runnable, error) {
		client, err := rpc.NewClient(rpc.Config{
			Endpoints: network.RPCEndpoints,
			RPS:       network.RPS,
			Timeout:   cfg.Indexer.RPCTimeout,
		}, metrics.NewRPCClient(network.ID), logger.With(zap.String("network", network.ID)))
		if err != nil {
			return nil, fmt.Errorf("network %s: %w", network.ID, err)
		}
		source, err := chain.New(network, client, repo, logger)
		if err != nil {
			return nil, err
		}
		runner, err := indexer.NewRunner(runnerCfg, network, source, store, repo, w, recorder, metrics.NewIndexer(network.ID), logger)
		if err != nil {
			return nil, err
		}
		return runner, nil
	}

	scheduler, err := indexer.NewScheduler(store, build, recorder, cfg.Networks, logger)
	if err != nil {
		return err
	}
	if cfg.Sanctions.Interval <= 0 {
		return scheduler.Run(ctx)
	}

	importer, err := newSanctionsImporter(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("init sanctions importer: %w", err)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return scheduler.Run(gctx) })
	g.Go(func() error { return importer.Run(gctx) })
	return g.Wait()
}

func newSanctionsImporter(cfg options, store sanctions.Store, logger *zap.Logger) (*sanctions.Importer, error) {
	var symbols map[string][]string
	if len(cfg.Sanctions.Symbols) > 0 {
		parsed, err := sanctions.ParseSymbols(cfg.Sanctions.Symbols)
		if err != nil {
			return nil, err
		}
		symbols = parsed
	}
	source, err := sanctions.NewHTTPSource(cfg.Sanctions.URL, cfg.Sanctions.FetchTimeout)
	if err != nil {
		return nil, err
	}
	return sanctions.New(sanctions.Config{
		Interval: cfg.Sanctions.Interval,
		Symbols:  symbols,
	}, source, store, metrics.NewSanctions(), logger)
}

func newObjectStore(ctx context.Context, cfg options) (objectstore.Store, error) {
	if cfg.ObjectStore.Dir != "" {
		return objectstore.NewFilesystem(cfg.ObjectStore.Dir, metrics.NewObjectStore("filesystem"))
	}
	s3cfg := objectstore.S3Config{
		Bucket:          cfg.ObjectStore.Bucket,
		Prefix:          cfg.ObjectStore.Prefix,
		Region:          cfg.ObjectStore.Region,
		Endpoint:        cfg.ObjectStore.Endpoint,
		UsePathStyle:    cfg.ObjectStore.UsePathStyle,
		AccessKeyID:     cfg.ObjectStore.AccessKeyID,
		SecretAccessKey: cfg.ObjectStore.SecretAccessKey,
	}
	client, err := objectstore.NewS3Client(ctx, s3cfg)
	if err != nil {
		return nil, err
	}
	return objectstore.NewS3(ctx, client, s3cfg, metrics.NewObjectStore("s3"))
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
