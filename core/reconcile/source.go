package reconcile

import (
	"context"
	"fmt"

	"equipment-validator/core/validation"

	"golang.org/x/sync/errgroup"
)

// Source is one backend holding a rule set.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]validation.Rule, error)
}

// Mutator replaces the rule set of a named source.
type Mutator interface {
	Replace(ctx context.Context, target string, rules []validation.Rule) error
}

// Snapshot is the governing rule set of one source.
type Snapshot struct {
	Name  string
	Rules []validation.Rule

	index map[string]validation.Rule
}

// NewSnapshot resolves duplicates with policy and indexes the result.
func NewSnapshot(name string, rules []validation.Rule, policy validation.DuplicatePolicy) *Snapshot {
	table := validation.NewRuleTable(rules, policy)
	s := &Snapshot{
		Name:  name,
		Rules: table.Rules(),
		index: make(map[string]validation.Rule, table.Len()),
	}
	for _, r := range s.Rules {
		s.index[r.EquipmentType] = r
	}
	return s
}

// Lookup returns the rule the source holds for an equipment type.
func (s *Snapshot) Lookup(equipmentType string) (validation.Rule, bool) {
	r, ok := s.index[equipmentType]
	return r, ok
}

// LoadSnapshots loads every source concurrently. The result keeps the order
// of sources, and any load failure fails the whole call.
func LoadSnapshots(ctx context.Context, sources []Source, policy validation.DuplicatePolicy) ([]*Snapshot, error) {
	snaps := make([]*Snapshot, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			list, err := src.Load(gctx)
			if err != nil {
				return fmt.Errorf("failed to load rules from %s: %w", src.Name(), err)
			}
			snaps[i] = NewSnapshot(src.Name(), list, policy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snaps, nil
}
