package sanctions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"go.uber.org/zap"
)

const (
	defaultList          = "ofac"
	defaultTagName       = "OFAC"
	defaultInterval      = 24 * time.Hour
	defaultRetryInterval = 5 * time.Minute
)

// DefaultSymbols maps list currency symbols to the network ids their addresses are imported into.
func DefaultSymbols() map[string][]string {
	return map[string][]string{
		"XBT":  {"btc"},
		"ETH":  {"eth"},
		"USDT": {"eth"},
		"USDC": {"eth"},
		"LTC":  {"ltc"},
	}
}

// ParseSymbols reads SYMBOL=network pairs. A symbol may repeat to target several networks.
func ParseSymbols(pairs []string) (map[string][]string, error) {
	symbols := make(map[string][]string, len(pairs))
	for _, pair := range pairs {
		symbol, network, ok := strings.Cut(pair, "=")
		symbol, network = strings.ToUpper(strings.TrimSpace(symbol)), strings.TrimSpace(network)
		if !ok || symbol == "" || network == "" {
			return nil, fmt.Errorf("symbol mapping %q: want SYMBOL=network", pair)
		}
		symbols[symbol] = append(symbols[symbol], network)
	}
	return symbols, nil
}

// Config tunes an Importer.
type Config struct {
	// List names the list in the bookkeeping tables.
	List string
	// TagName is the severe-risk tag attached to every listed entity.
	TagName string
	// Interval between successful imports.
	Interval time.Duration
	// RetryInterval is the first wait after a failed import. It doubles up to Interval.
	RetryInterval time.Duration
	Symbols       map[string][]string
	Parse         func([]byte) ([]Listing, error)
}

// Importer keeps the label store in line with a published sanctions list.
type Importer struct {
	cfg     Config
	source  Source
	store   Store
	metrics Metrics
	logger  *zap.Logger
}

// New validates the collaborators and fills config defaults for the OFAC SDN list.
func New(cfg Config, source Source, store Store, metrics Metrics, logger *zap.Logger) (*Importer, error) {
	if source == nil {
		return nil, errors.New("sanctions source is required")
	}
	if store == nil {
		return nil, errors.New("sanctions store is required")
	}
	if metrics == nil {
		return nil, errors.New("sanctions metrics is required")
	}
	if logger == nil {
		return nil, errors.New("sanctions logger is required")
	}
	if cfg.List == "" {
		cfg.List = defaultList
	}
	if cfg.TagName == "" {
		cfg.TagName = defaultTagName
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	if cfg.Symbols == nil {
		cfg.Symbols = DefaultSymbols()
	}
	if cfg.Parse == nil {
		cfg.Parse = ParseOFAC
	}
	return &Importer{
		cfg:     cfg,
		source:  source,
		store:   store,
		metrics: metrics,
		logger:  logger.Named("sanctions").With(zap.String("list", cfg.List)),
	}, nil
}

// Run imports the list every Interval until ctx is canceled. Failed imports are retried sooner.
func (i *Importer) Run(ctx context.Context) error {
	failures := 0
	for {
		wait := i.cfg.Interval
		if err := i.Sync(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			wait = clock.Backoff(i.cfg.RetryInterval, failures, i.cfg.Interval)
			failures++
			i.logger.Warn("sanctions sync failed, backing off", zap.Duration("sleep", wait), zap.Error(err))
		} else {
			failures = 0
		}
		if err := clock.SleepWithContext(ctx, wait); err != nil {
			return nil
		}
	}
}

// Sync imports the current list revision once. An unchanged document is skipped.
func (i *Importer) Sync(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		i.metrics.ObserveSync(i.cfg.List, err, start)
	}()

	data, err := i.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", i.cfg.List, err)
	}
	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])

	stored, err := i.store.SanctionsChecksum(ctx, i.cfg.List)
	if err != nil {
		return err
	}
	if stored == checksum {
		i.logger.Debug("sanctions list unchanged", zap.String("checksum", checksum))
		return nil
	}

	listings, err := i.cfg.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", i.cfg.List, err)
	}

	tag, err := i.ensureTag(ctx)
	if err != nil {
		return err
	}
	networks, err := i.networks(ctx)
	if err != nil {
		return err
	}
	linked, err := i.store.SanctionedEntities(ctx, i.cfg.List)
	if err != nil {
		return err
	}

	var stats syncStats
	listed := make(map[string]struct{}, len(listings))
	for _, listing := range listings {
		listed[listing.UID] = struct{}{}
		entityID, ok := linked[listing.UID]
		if !ok {
			if entityID, err = i.createEntity(ctx, listing); err != nil {
				return err
			}
			stats.created++
		}
		if err = i.store.AttachTag(ctx, entityID, tag.ID); err != nil {
			return err
		}
		if err = i.importAddresses(ctx, networks, entityID, listing, &stats); err != nil {
			return err
		}
	}

	delisted := make([]string, 0)
	for uid := range linked {
		if _, ok := listed[uid]; !ok {
			delisted = append(delisted, uid)
		}
	}
	sort.Strings(delisted)
	for _, uid := range delisted {
		err = i.store.DetachTag(ctx, linked[uid], tag.ID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
	}

	if err = i.store.SaveSanctionsChecksum(ctx, i.cfg.List, checksum); err != nil {
		return err
	}
	i.logger.Info("sanctions list imported",
		zap.String("checksum", checksum),
		zap.Int("listings", len(listings)),
		zap.Int("created", stats.created),
		zap.Int("addresses", stats.addresses),
		zap.Int("skipped_addresses", stats.skipped),
		zap.Int("delisted", len(delisted)),
	)
	return nil
}

type syncStats struct {
	created   int
	addresses int
	skipped   int
}

func (i *Importer) ensureTag(ctx context.Context) (model.Tag, error) {
	tags, err := i.store.ListTags(ctx)
	if err != nil {
		return model.Tag{}, err
	}
	for _, tag := range tags {
		if tag.Name == i.cfg.TagName {
			return tag, nil
		}
	}
	return i.store.CreateTag(ctx, model.Tag{Name: i.cfg.TagName, RiskLevel: model.RiskSevere})
}

func (i *Importer) networks(ctx context.Context) (map[string]model.Network, error) {
	networks, err := i.store.ListNetworks(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Network, len(networks))
	for _, n := range networks {
		byID[n.ID] = n
	}
	return byID, nil
}

func (i *Importer) createEntity(ctx context.Context, listing Listing) (int64, error) {
	name := listing.Name
	if name == "" {
		name = "unnamed"
	}
	name = fmt.Sprintf("%s (%s %s)", name, i.cfg.TagName, listing.UID)
	entity, err := i.store.CreateEntity(ctx, model.Entity{Name: name, Description: listing.Type})
	if err != nil {
		// An earlier sync may have created the entity and failed before linking it.
		existing, ok, lookupErr := i.entityNamed(ctx, name)
		if lookupErr != nil || !ok {
			return 0, err
		}
		entity = existing
	}
	if err := i.store.LinkSanctionedEntity(ctx, i.cfg.List, listing.UID, entity.ID); err != nil {
		return 0, err
	}
	return entity.ID, nil
}

func (i *Importer) entityNamed(ctx context.Context, name string) (model.Entity, bool, error) {
	entities, err := i.store.ListEntities(ctx)
	if err != nil {
		return model.Entity{}, false, err
	}
	for _, e := range entities {
		if e.Name == name {
			return e, true, nil
		}
	}
	return model.Entity{}, false, nil
}

func (i *Importer) importAddresses(ctx context.Context, networks map[string]model.Network, entityID int64, listing Listing, stats *syncStats) error {
	for _, listed := range listing.Addresses {
		targets := i.cfg.Symbols[listed.Symbol]
		if len(targets) == 0 {
			stats.skipped++
			continue
		}
		for _, id := range targets {
			network, ok := networks[id]
			if !ok {
				stats.skipped++
				continue
			}
			address, ok := addressFor(network.Architecture, listed.Address)
			if !ok {
				stats.skipped++
				continue
			}
			err := i.store.UpsertAddress(ctx, model.Address{
				Network:     network.ID,
				Address:     address,
				EntityID:    entityID,
				Description: fmt.Sprintf("%s listed %s address", i.cfg.TagName, listed.Symbol),
			})
			if err != nil {
				return err
			}
			stats.addresses++
		}
	}
	return nil
}

// addressFor returns the stored form of address on a network of arch, or false
// when the address cannot belong to such a network.
func addressFor(arch model.Architecture, address string) (string, bool) {
	address = strings.TrimSpace(address)
	switch arch {
	case model.ArchitectureAccount:
		if !common.IsHexAddress(address) {
			return "", false
		}
	case model.ArchitectureUTXO:
		if strings.HasPrefix(strings.ToLower(address), "0x") {
			return "", false
		}
	default:
		return "", false
	}
	return chain.NormalizeAddress(arch, address), true
}
