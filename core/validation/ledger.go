package validation

// Ledger tracks which candidates have been consumed during one run, keyed
// by unique id.
type Ledger struct {
	used             map[string]struct{}
	wildcardSources  map[string]struct{}
	wildcardControls map[string]struct{}
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	l := &Ledger{}
	l.Reset()
	return l
}

// Reset clears all consumption records.
func (l *Ledger) Reset() {
	l.used = make(map[string]struct{})
	l.wildcardSources = make(map[string]struct{})
	l.wildcardControls = make(map[string]struct{})
}

// MarkUsed records the candidate as consumed. When viaWildcard is set the
// consumption is also tracked per role so leftover detection can exclude it.
func (l *Ledger) MarkUsed(c Candidate, viaWildcard bool, role Kind) {
	key := c.UniqueID
	l.used[key] = struct{}{}
	if !viaWildcard {
		return
	}
	switch role {
	case KindSource:
		l.wildcardSources[key] = struct{}{}
	case KindControl:
		l.wildcardControls[key] = struct{}{}
	}
}

// IsUsed reports whether the candidate was consumed.
func (l *Ledger) IsUsed(c Candidate) bool {
	_, ok := l.used[c.UniqueID]
	return ok
}

// WildcardUsed reports whether the candidate was consumed through a wildcard rule in the given role.
func (l *Ledger) WildcardUsed(c Candidate, role Kind) bool {
	var ok bool
	switch role {
	case KindSource:
		_, ok = l.wildcardSources[c.UniqueID]
	case KindControl:
		_, ok = l.wildcardControls[c.UniqueID]
	}
	return ok
}

// Unused returns the candidates not yet consumed, preserving order.
func (l *Ledger) Unused(items []Candidate) []Candidate {
	var out []Candidate
	for _, c := range items {
		if !l.IsUsed(c) {
			out = append(out, c)
		}
	}
	return out
}

// Leftover returns the unused candidates that were not wildcard-consumed in the given role.
func (l *Ledger) Leftover(items []Candidate, role Kind) []Candidate {
	var out []Candidate
	for _, c := range items {
		if !l.IsUsed(c) && !l.WildcardUsed(c, role) {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of consumed candidates.
func (l *Ledger) Len() int {
	return len(l.used)
}
