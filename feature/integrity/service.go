package integrity

import (
	"context"
	"errors"
	"fmt"

	"equipment-validator/core/reconcile"
	"equipment-validator/core/storage"
	"equipment-validator/core/validation"
	"equipment-validator/feature/integrity/checks"
	"equipment-validator/feature/rules"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrStorageUnavailable is returned when no storage client is configured.
	ErrStorageUnavailable = errors.New("storage not configured")
	// ErrDatabaseUnavailable is returned when the rule database is not connected.
	ErrDatabaseUnavailable = errors.New("database not connected")
	// ErrNoReplicas is returned when fewer than two rule sources are reachable.
	ErrNoReplicas = errors.New("at least two rule sources are needed to reconcile")
)

// RuleTables returns the rule table currently in effect.
type RuleTables interface {
	Table(ctx context.Context) (*validation.RuleTable, error)
}

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	object string
	db     *gorm.DB
	tables RuleTables
	logger *zap.Logger

	sources []reconcile.Source
	policy  validation.DuplicatePolicy
}

// NewService creates a new integrity service. client, db and tables are optional.
func NewService(client storage.Client, bucket, object string, db *gorm.DB, tables RuleTables, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		bucket: bucket,
		object: object,
		db:     db,
		tables: tables,
		logger: logger,
	}
}

// WithSources sets the rule sources compared by ReconcileSources. The first
// one is the reference.
func (s *Service) WithSources(policy validation.DuplicatePolicy, sources ...reconcile.Source) *Service {
	s.policy = policy
	s.sources = sources
	return s
}

// CheckStorage reports on the rule snapshot object.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrStorageUnavailable
	}
	return checks.CheckSnapshot(ctx, s.client, s.bucket, s.object)
}

// FixStorage publishes the current rule table as the snapshot.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return ErrStorageUnavailable
	}
	if s.tables == nil {
		return fmt.Errorf("no rule source to publish from")
	}
	table, err := s.tables.Table(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	if err := rules.PublishSnapshot(ctx, s.client, s.bucket, s.object, table.Rules()); err != nil {
		return err
	}
	s.logger.Info("Published rule snapshot", zap.String("object", s.object), zap.Int("rules", table.Len()))
	return nil
}

// CheckSchema compares the overrides table with its model.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrDatabaseUnavailable
	}
	return checks.CheckSchema(s.db, rules.EquipmentRule{})
}

// FixSchema migrates the overrides table.
func (s *Service) FixSchema() error {
	if s.db == nil {
		return ErrDatabaseUnavailable
	}
	if err := s.db.AutoMigrate(&rules.EquipmentRule{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", rules.TableName, err)
	}
	s.logger.Info("Migrated rule table", zap.String("table", rules.TableName))
	return nil
}

// AuditRules checks the rule table currently in effect.
func (s *Service) AuditRules(ctx context.Context) (*checks.RulesReport, error) {
	if s.tables == nil {
		return nil, fmt.Errorf("no rule source configured")
	}
	table, err := s.tables.Table(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	report := checks.AuditRules(table)
	return &report, nil
}

// ReconcileSources compares every rule source against the reference and, when
// opts allow it, overwrites the replicas that drifted.
func (s *Service) ReconcileSources(ctx context.Context, opts reconcile.Options) (*reconcile.Plan, int, error) {
	if len(s.sources) < 2 {
		return nil, 0, ErrNoReplicas
	}

	snaps, err := reconcile.LoadSnapshots(ctx, s.sources, s.policy)
	if err != nil {
		return nil, 0, err
	}

	plan := reconcile.BuildPlan(snaps, opts)
	executed, err := reconcile.ApplyPlan(ctx, plan, s, opts)
	if err != nil {
		return plan, executed, err
	}
	if executed > 0 {
		s.logger.Info("Rule sources reconciled",
			zap.String("reference", plan.Reference),
			zap.Int("executed", executed),
		)
	}
	return plan, executed, nil
}

// Replace writes rules to a replica. Only storage and the database are writable.
func (s *Service) Replace(ctx context.Context, target string, list []validation.Rule) error {
	switch target {
	case rules.SourceStorage:
		if s.client == nil {
			return ErrStorageUnavailable
		}
		return rules.PublishSnapshot(ctx, s.client, s.bucket, s.object, list)
	case rules.SourceDatabase:
		if s.db == nil {
			return ErrDatabaseUnavailable
		}
		return rules.ReplaceRules(ctx, s.db, list)
	default:
		return fmt.Errorf("rules in %s cannot be written", target)
	}
}

// RunAll runs every check. Failures are reported per check.
func (s *Service) RunAll(ctx context.Context) map[string]any {
	report := make(map[string]any, 4)

	if r, err := s.CheckStorage(ctx); err != nil {
		report["storage"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = r
	}

	if r, err := s.CheckSchema(); err != nil {
		report["schema"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = r
	}

	if r, err := s.AuditRules(ctx); err != nil {
		report["rules"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["rules"] = r
	}

	if len(s.sources) > 1 {
		if plan, _, err := s.ReconcileSources(ctx, reconcile.Options{}); err != nil {
			report["sources"] = map[string]any{"status": "error", "error": err.Error()}
		} else {
			report["sources"] = plan
		}
	}

	return report
}
