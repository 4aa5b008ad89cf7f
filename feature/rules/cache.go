package rules

import (
	"context"
	"sync"
	"time"

	"equipment-validator/core/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Snapshot is a compiled rule table and when it was loaded.
type Snapshot struct {
	Table  *validation.RuleTable
	Source string
	Loaded time.Time

	started time.Time
}

// Cache keeps the compiled rule table for a TTL and collapses concurrent reloads.
type Cache struct {
	provider Provider
	policy   validation.DuplicatePolicy
	ttl      time.Duration
	logger   *zap.Logger

	mu       sync.RWMutex
	snapshot *Snapshot
	sf       singleflight.Group
}

// NewCache wraps a provider. A zero TTL disables caching.
func NewCache(provider Provider, policy validation.DuplicatePolicy, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{provider: provider, policy: policy, ttl: ttl, logger: logger}
}

func (c *Cache) fresh(s *Snapshot) bool {
	return s != nil && c.ttl > 0 && time.Since(s.Loaded) <= c.ttl
}

// Get returns the cached table, loading it when missing or expired.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	s := c.snapshot
	c.mu.RUnlock()

	if c.fresh(s) {
		return s, nil
	}

	// The load is shared by every waiting caller, so it must not die with the first one's context.
	result, err, _ := c.sf.Do("get", func() (interface{}, error) {
		c.mu.RLock()
		s := c.snapshot
		c.mu.RUnlock()
		if c.fresh(s) {
			return s, nil
		}
		return c.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return result.(*Snapshot), nil
}

// Refresh reloads regardless of age. It never joins a load started by Get.
func (c *Cache) Refresh(ctx context.Context) (*Snapshot, error) {
	result, err, _ := c.sf.Do("refresh", func() (interface{}, error) {
		return c.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return result.(*Snapshot), nil
}

// Invalidate drops the cached table.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}

func (c *Cache) load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	raw, err := c.provider.Load(ctx)
	if err != nil {
		return nil, err
	}

	table := validation.NewRuleTable(raw, c.policy)
	if dups := table.Duplicates(); len(dups) > 0 {
		c.logger.Warn("Duplicate equipment rules",
			zap.Strings("equipment_types", dups),
			zap.String("policy", string(c.policy)),
		)
	}

	s := &Snapshot{Table: table, Source: c.provider.Name(), Loaded: time.Now(), started: start}
	c.mu.Lock()
	// A slower load that began earlier must not replace a newer table.
	if c.snapshot == nil || !c.snapshot.started.After(start) {
		c.snapshot = s
	}
	c.mu.Unlock()

	c.logger.Debug("Rules loaded",
		zap.String("source", s.Source),
		zap.Int("rules", table.Len()),
		zap.Duration("duration", time.Since(start)),
	)
	return s, nil
}
