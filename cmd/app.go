package cmd

import (
	"fmt"
	"time"

	"equipment-validator/core/catalog"
	"equipment-validator/core/config"
	"equipment-validator/core/database"
	"equipment-validator/core/logger"
	"equipment-validator/core/ofsc"
	"equipment-validator/core/reconcile"
	"equipment-validator/core/storage"
	"equipment-validator/core/validation"
	"equipment-validator/feature/integrity"
	"equipment-validator/feature/rules"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the wired dependencies shared by the commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	store   storage.Client
	ofsc    *ofsc.Client
	catalog *catalog.Catalog
	policy  validation.DuplicatePolicy
	rules   *rules.Service

	ruleDeps rules.Deps
}

// bootstrapOptions selects the optional backends a command needs.
type bootstrapOptions struct {
	// database connects even when rules are not read from it.
	database bool
	// skipRules leaves the rule service unset.
	skipRules bool
}

func bootstrap(opts bootstrapOptions) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	policy, err := validation.ParseDuplicatePolicy(cfg.Rules.DuplicatePolicy)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logg, policy: policy}

	if client, err := ofsc.NewClient(cfg.OFSC); err != nil {
		logg.Warn("Field service client unavailable", zap.Error(err))
	} else {
		a.ofsc = client
		a.catalog = catalog.New(client, cfg.OFSC.EquipmentTypeProperty, cfg.OFSC.PageSize, cfg.Catalog, logg)
	}

	if store, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Storage client unavailable", zap.Error(err))
	} else {
		a.store = store
	}

	// The database is optional unless rules live there.
	if opts.database || cfg.Rules.Source == rules.SourceDatabase {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			a.db = conn
			logg.Info("Connected to rule database", zap.String("driver", cfg.Database.Driver))
		}
	}

	deps := rules.Deps{
		Storage: a.store,
		Bucket:  cfg.Storage.Bucket,
		Object:  cfg.Rules.Object,
		DB:      a.db,
	}
	if a.ofsc != nil {
		deps.OFSC = a.ofsc
	}
	a.ruleDeps = deps

	if opts.skipRules {
		return a, nil
	}

	provider, err := rules.NewProvider(cfg.Rules.Source, deps)
	if err != nil {
		return nil, err
	}

	cache := rules.NewCache(provider, policy, time.Duration(cfg.Rules.CacheTTLSeconds)*time.Second, logg)
	a.rules = rules.NewService(cache, a.db, a.store, cfg.Storage.Bucket, cfg.Rules.Object, logg)
	return a, nil
}

// ruleSources lists every reachable rule backend, the configured one first.
func (a *app) ruleSources() []reconcile.Source {
	providers := rules.AvailableProviders(a.cfg.Rules.Source, a.ruleDeps)
	out := make([]reconcile.Source, 0, len(providers))
	for _, p := range providers {
		out = append(out, p)
	}
	return out
}

func (a *app) integrityService() *integrity.Service {
	var tables integrity.RuleTables
	if a.rules != nil {
		tables = a.rules
	}
	return integrity.NewService(a.store, a.cfg.Storage.Bucket, a.cfg.Rules.Object, a.db, tables, a.logger).
		WithSources(a.policy, a.ruleSources()...)
}
