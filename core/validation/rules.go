package validation

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

const (
	// SentinelZero marks "no accessory of this kind required".
	SentinelZero = "0"
	// SentinelNA marks "no accessory of this kind required".
	SentinelNA = "NA"
	// Wildcard matches any classified accessory of the kind.
	Wildcard = "*"
)

// DuplicatePolicy decides which rule governs an equipment type declared more than once.
type DuplicatePolicy string

const (
	// DuplicateLastWins keeps the last loaded rule.
	DuplicateLastWins DuplicatePolicy = "last"
	// DuplicateFirstWins keeps the first loaded rule.
	DuplicateFirstWins DuplicatePolicy = "first"
)

// ParseDuplicatePolicy maps a configuration value to a policy. Empty means last-wins.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", DuplicateLastWins:
		return DuplicateLastWins, nil
	case DuplicateFirstWins:
		return DuplicateFirstWins, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// StringList is a list of type identifiers that unmarshals from either a JSON
// array or a comma separated string. An empty list normalizes to ["NA"].
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = NormalizeList(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("type list must be a string or an array of strings: %w", err)
	}
	*l = SplitList(s)
	return nil
}

// SplitList splits a comma separated cell into a normalized list.
func SplitList(s string) StringList {
	return NormalizeList(strings.Split(s, ","))
}

// NormalizeList trims entries, drops empties and returns ["NA"] when nothing is left.
func NormalizeList(in []string) StringList {
	out := make(StringList, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return StringList{SentinelNA}
	}
	return out
}

// String joins the list the way it is shown in rule tables.
func (l StringList) String() string {
	return strings.Join(l, ", ")
}

// Rule is the raw rule record of the rule configuration.
type Rule struct {
	EquipmentType string     `json:"skuequipo"`
	Description   string     `json:"descripcion"`
	Sources       StringList `json:"fuentes"`
	Controls      StringList `json:"controles"`
}

// ParseRules decodes a JSON array of rules.
func ParseRules(data []byte) ([]Rule, error) {
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRules, err)
	}
	return NormalizeRules(rules), nil
}

// Normalize trims the equipment type and turns missing or empty type lists into ["NA"].
func (r Rule) Normalize() Rule {
	r.EquipmentType = strings.TrimSpace(r.EquipmentType)
	r.Sources = NormalizeList(r.Sources)
	r.Controls = NormalizeList(r.Controls)
	return r
}

// NormalizeRules normalizes every rule in place and returns the slice.
func NormalizeRules(rules []Rule) []Rule {
	for i := range rules {
		rules[i] = rules[i].Normalize()
	}
	return rules
}

// TypeSet is a set of type identifiers.
type TypeSet map[string]struct{}

// Has reports whether id is in the set.
func (s TypeSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// compiledRule is a Rule with its matching sets resolved once.
type compiledRule struct {
	Rule
	sources           TypeSet
	controls          TypeSet
	anySource         bool
	anyControl        bool
	noSourceRequired  bool
	noControlRequired bool
}

func isSentinel(v string) bool {
	return v == SentinelZero || v == SentinelNA
}

func compile(r Rule) *compiledRule {
	c := &compiledRule{Rule: r, sources: TypeSet{}, controls: TypeSet{}}
	for _, v := range r.Sources {
		switch {
		case isSentinel(v):
			c.noSourceRequired = true
		case v == Wildcard:
			c.anySource = true
		default:
			c.sources[v] = struct{}{}
		}
	}
	for _, v := range r.Controls {
		switch {
		case isSentinel(v):
			c.noControlRequired = true
		case v == Wildcard:
			c.anyControl = true
		default:
			c.controls[v] = struct{}{}
		}
	}
	return c
}

// allowsSource reports whether the rule accepts the source type and whether
// the acceptance came from the wildcard.
func (c *compiledRule) allowsSource(typeID string) (ok, wildcard bool) {
	if c.sources.Has(typeID) {
		return true, false
	}
	return c.anySource, c.anySource
}

func (c *compiledRule) allowsControl(typeID string) (ok, wildcard bool) {
	if c.controls.Has(typeID) {
		return true, false
	}
	return c.anyControl, c.anyControl
}

// RuleTable is an immutable lookup from equipment type to its rule.
type RuleTable struct {
	byType     map[string]*compiledRule
	ordered    []Rule
	duplicates []string
	equipment  TypeSet
	sources    TypeSet
	controls   TypeSet
}

// NewRuleTable builds the lookup once from normalized copies of the rules.
// Rules without an equipment type are ignored.
func NewRuleTable(rules []Rule, policy DuplicatePolicy) *RuleTable {
	t := &RuleTable{
		byType:    make(map[string]*compiledRule, len(rules)),
		equipment: TypeSet{},
		sources:   TypeSet{},
		controls:  TypeSet{},
	}

	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		normalized[i] = r.Normalize()
	}
	rules = normalized

	for _, r := range rules {
		if r.EquipmentType == "" {
			continue
		}
		if _, exists := t.byType[r.EquipmentType]; exists {
			t.duplicates = append(t.duplicates, r.EquipmentType)
			if policy == DuplicateFirstWins {
				continue
			}
		}
		t.byType[r.EquipmentType] = compile(r)
	}

	// Ordered view and unions follow the governing rules only, in load order.
	seen := make(map[string]bool, len(t.byType))
	for _, r := range rules {
		c, ok := t.byType[r.EquipmentType]
		if !ok || seen[r.EquipmentType] {
			continue
		}
		seen[r.EquipmentType] = true
		t.ordered = append(t.ordered, c.Rule)
		t.equipment[r.EquipmentType] = struct{}{}
		for id := range c.sources {
			t.sources[id] = struct{}{}
		}
		for id := range c.controls {
			t.controls[id] = struct{}{}
		}
	}

	return t
}

// Lookup returns the rule governing the equipment type.
func (t *RuleTable) Lookup(equipmentType string) (Rule, bool) {
	c, ok := t.byType[equipmentType]
	if !ok {
		return Rule{}, false
	}
	return c.Rule, true
}

func (t *RuleTable) compiled(equipmentType string) *compiledRule {
	return t.byType[equipmentType]
}

// AllowedEquipmentTypes is the union of governed equipment types.
func (t *RuleTable) AllowedEquipmentTypes() TypeSet { return t.equipment }

// AllowedSourceTypes is the union of source types named by any rule.
func (t *RuleTable) AllowedSourceTypes() TypeSet { return t.sources }

// AllowedControlTypes is the union of control types named by any rule.
func (t *RuleTable) AllowedControlTypes() TypeSet { return t.controls }

// Rules returns the governing rules in load order.
func (t *RuleTable) Rules() []Rule { return t.ordered }

// Duplicates lists equipment types that were declared more than once.
func (t *RuleTable) Duplicates() []string { return t.duplicates }

// Len returns the number of governed equipment types.
func (t *RuleTable) Len() int { return len(t.byType) }
