// Command api serves the query and configuration HTTP API.
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

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/service"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/store/postgres"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/tracer"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/transport"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/warehouse/clickhouse"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var config struct {
	Addr          string `long:"addr" env:"API_ADDR" description:"listen address" default:":8000"`
	PostgresDSN   string `long:"postgres-dsn" env:"API_POSTGRES_DSN" description:"PostgreSQL DSN" required:"true"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"API_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	MaxHops       int    `long:"trace-max-hops" env:"API_TRACE_MAX_HOPS" description:"largest hop limit a trace request may ask for" default:"10"`
	MaxFrontier   int    `long:"trace-max-frontier" env:"API_TRACE_MAX_FRONTIER" description:"addresses kept per hop when tracing" default:"50000"`
	ChunkSize     int    `long:"trace-chunk-size" env:"API_TRACE_CHUNK_SIZE" description:"addresses per warehouse query when tracing" default:"1000"`
	LogJSON       bool   `long:"log-json" env:"API_LOG_JSON" description:"log in JSON"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := newLogger(config.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	handler, closeStores, err := newHandler(ctx, logger)
	if err != nil {
		logger.Fatal("Failed to initialize api", zap.Error(err))
	}
	defer closeStores()

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	handler.Register(router)

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(router),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}

func newHandler(ctx context.Context, logger *zap.Logger) (*transport.Handler, func(), error) {
	pool, err := postgres.Open(ctx, config.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	store, err := postgres.New(pool, metrics.NewPostgresStore())
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	repo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("init clickhouse repository: %w", err)
	}

	tr, err := tracer.New(tracer.Config{
		MaxHopLimit: config.MaxHops,
		MaxFrontier: config.MaxFrontier,
		ChunkSize:   config.ChunkSize,
	}, repo, store, store, metrics.NewTracer(), logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	explorer, err := service.NewExplorer(store, repo, tr)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	handler, err := transport.NewHandler(explorer, logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return handler, pool.Close, nil
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
