package validation

import (
	"context"
	"errors"
	"fmt"

	engine "equipment-validator/core/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyActivity is returned when no activity id is given.
var ErrEmptyActivity = errors.New("activity id is required")

// Inventories fetches the inventories of an activity.
type Inventories interface {
	InstalledInventories(ctx context.Context, activityID string) ([]engine.RawItem, error)
	CustomerInventories(ctx context.Context, activityID string) ([]engine.RawItem, error)
}

// Rules returns the rule table currently in effect.
type Rules interface {
	Table(ctx context.Context) (*engine.RuleTable, error)
}

// Catalog resolves descriptions and may need a preload first.
type Catalog interface {
	Describer
	Preload(ctx context.Context) error
}

// Request is a validation over caller supplied inventories.
type Request struct {
	Installed []engine.RawItem `json:"installed"`
	Customer  []engine.RawItem `json:"customer"`
	// Rules replaces the configured rules when set.
	Rules []engine.Rule `json:"rules,omitempty"`
}

// Service runs validations.
type Service struct {
	inventories Inventories
	rules       Rules
	catalog     Catalog
	policy      engine.DuplicatePolicy
	ruleSource  string
	logger      *zap.Logger
}

// NewService creates a validation service. inventories and catalog may be nil.
func NewService(inventories Inventories, rules Rules, catalog Catalog, policy engine.DuplicatePolicy, ruleSource string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inventories: inventories,
		rules:       rules,
		catalog:     catalog,
		policy:      policy,
		ruleSource:  ruleSource,
		logger:      logger,
	}
}

// ValidateActivity validates the installed inventory of an activity against
// the configured rules. Customer inventory failures degrade to an empty list.
func (s *Service) ValidateActivity(ctx context.Context, activityID string) (*Report, error) {
	if activityID == "" {
		return nil, ErrEmptyActivity
	}
	if s.inventories == nil {
		return nil, fmt.Errorf("activity %s: inventory source not configured", activityID)
	}

	table, err := s.rules.Table(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	var installed, customer []engine.RawItem
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.inventories.InstalledInventories(gctx, activityID)
		if err != nil {
			return fmt.Errorf("failed to fetch installed inventory of activity %s: %w", activityID, err)
		}
		installed = items
		return nil
	})
	g.Go(func() error {
		items, err := s.inventories.CustomerInventories(gctx, activityID)
		if err != nil {
			s.logger.Warn("Customer inventory unavailable, continuing without it",
				zap.String("activity_id", activityID),
				zap.Error(err),
			)
			return nil
		}
		customer = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := s.run(ctx, table, s.ruleSource, installed, customer)
	report.ActivityID = activityID
	return report, nil
}

// Validate runs on caller supplied inventories, optionally with inline rules.
func (s *Service) Validate(ctx context.Context, req Request) (*Report, error) {
	source := s.ruleSource
	var table *engine.RuleTable
	if len(req.Rules) > 0 {
		table = engine.NewRuleTable(engine.NormalizeRules(req.Rules), s.policy)
		source = "inline"
	} else {
		if s.rules == nil {
			return nil, fmt.Errorf("no rules supplied and no rule source configured")
		}
		t, err := s.rules.Table(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load rules: %w", err)
		}
		table = t
	}
	return s.run(ctx, table, source, req.Installed, req.Customer), nil
}

func (s *Service) run(ctx context.Context, table *engine.RuleTable, source string, installed, customer []engine.RawItem) *Report {
	res := engine.NewEngine(table, s.logger).Validate(installed, customer)

	var describe Describer
	if s.catalog != nil {
		// Descriptions are cosmetic, a failed preload only costs "Unknown" labels.
		if err := s.catalog.Preload(ctx); err != nil {
			s.logger.Warn("Equipment descriptions unavailable", zap.Error(err))
		}
		describe = s.catalog
	}

	report := BuildReport(res, describe)
	report.RuleSource = source

	s.logger.Info("Validation finished",
		zap.Int("validated", res.Summary.Validated),
		zap.Int("findings", len(res.Findings)),
		zap.Bool("valid", report.Valid),
	)
	return report
}
