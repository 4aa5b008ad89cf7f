package rules

import (
	"context"
	"errors"
	"io"

	"equipment-validator/core/storage"
	"equipment-validator/core/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoImportTarget is returned when neither the database nor storage is available.
var ErrNoImportTarget = errors.New("no rule import target available")

// Service exposes the current rule table and rule imports.
type Service struct {
	cache  *Cache
	db     *gorm.DB
	store  storage.Client
	bucket string
	object string
	logger *zap.Logger
}

// NewService creates a rules service. db and store are optional import targets.
func NewService(cache *Cache, db *gorm.DB, store storage.Client, bucket, object string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:  cache,
		db:     db,
		store:  store,
		bucket: bucket,
		object: object,
		logger: logger,
	}
}

// Listing is the rule table as served by the API.
type Listing struct {
	Source     string            `json:"source"`
	Count      int               `json:"count"`
	Duplicates []string          `json:"duplicates"`
	Rules      []validation.Rule `json:"rules"`
}

// Table returns the compiled rule table.
func (s *Service) Table(ctx context.Context) (*validation.RuleTable, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Table, nil
}

// List returns the governing rules in load order.
func (s *Service) List(ctx context.Context) (*Listing, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	return listing(snap), nil
}

// Refresh forces a reload from the configured source.
func (s *Service) Refresh(ctx context.Context) (*Listing, error) {
	snap, err := s.cache.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return listing(snap), nil
}

func listing(snap *Snapshot) *Listing {
	dups := snap.Table.Duplicates()
	if dups == nil {
		dups = []string{}
	}
	list := snap.Table.Rules()
	if list == nil {
		list = []validation.Rule{}
	}
	return &Listing{
		Source:     snap.Source,
		Count:      len(list),
		Duplicates: dups,
		Rules:      list,
	}
}

// Import reads a workbook and writes it to every available target, then
// invalidates the cached table.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	if s.db == nil && s.store == nil {
		return nil, ErrNoImportTarget
	}

	list, skipped, err := ReadWorkbook(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Imported: len(list), Skipped: skipped, Targets: []string{}}

	if s.db != nil {
		if err := ReplaceRules(ctx, s.db, list); err != nil {
			return nil, err
		}
		result.Targets = append(result.Targets, SourceDatabase)
	}
	if s.store != nil {
		if err := PublishSnapshot(ctx, s.store, s.bucket, s.object, list); err != nil {
			return nil, err
		}
		result.Targets = append(result.Targets, SourceStorage)
	}

	s.cache.Invalidate()
	s.logger.Info("Rules imported",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Strings("targets", result.Targets),
	)
	return result, nil
}
