package validation

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formval/pkg/rules"
)

// Matcher decides whether a table entry handles the supplied rule.
type Matcher func(rule rules.Rule) bool

// Factory builds the specific validator for a matched rule.
type Factory func(rule rules.Rule) Validator

type tableEntry struct {
	name     string
	priority int
	match    Matcher
	build    Factory
	order    int
}

// Table maps known rule kinds to specific validator constructors. Entries are
// evaluated in priority order (higher wins, ties fall back to registration
// order) and the first match produces the validator. An empty table never
// resolves.
type Table struct {
	mu      sync.RWMutex
	entries []tableEntry
}

// NewTable constructs a table with the built-in rule kinds registered.
func NewTable() *Table {
	t := &Table{}
	t.registerBuiltins()
	return t
}

// NewEmptyTable constructs a table without built-ins, for callers that want
// full control over resolution.
func NewEmptyTable() *Table {
	return &Table{}
}

// Register adds an entry. Higher priority values take precedence.
func (t *Table) Register(name string, priority int, match Matcher, build Factory) {
	if t == nil || match == nil || build == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, tableEntry{
		name:     trimmed,
		priority: priority,
		match:    match,
		build:    build,
		order:    len(t.entries),
	})
}

// Resolve returns the specific validator for a rule. The first matching entry
// wins.
func (t *Table) Resolve(rule rules.Rule) (Validator, bool) {
	if t == nil || rule == nil {
		return nil, false
	}
	t.mu.RLock()
	entries := append([]tableEntry(nil), t.entries...)
	t.mu.RUnlock()

	sortEntries(entries)
	for _, entry := range entries {
		if entry.match(rule) {
			validator := entry.build(rule)
			if validator != nil {
				return validator, true
			}
		}
	}
	return nil, false
}

func (t *Table) registerBuiltins() {
	t.Register(rules.KindRequired, 0, kindMatcher(rules.KindRequired), func(rule rules.Rule) Validator {
		if r, ok := rule.(*rules.Required); ok {
			return &RequiredValidator{Rule: r}
		}
		return nil
	})
	t.Register(rules.KindRange, 0, kindMatcher(rules.KindRange), func(rule rules.Rule) Validator {
		if r, ok := rule.(*rules.Range); ok {
			return &RangeValidator{Rule: r}
		}
		return nil
	})
	t.Register(rules.KindLength, 0, kindMatcher(rules.KindLength), func(rule rules.Rule) Validator {
		if r, ok := rule.(*rules.Length); ok {
			return &LengthValidator{Rule: r}
		}
		return nil
	})
	t.Register(rules.KindPattern, 0, kindMatcher(rules.KindPattern), func(rule rules.Rule) Validator {
		if r, ok := rule.(*rules.Pattern); ok {
			return &PatternValidator{Rule: r}
		}
		return nil
	})
	t.Register(rules.KindCompare, 0, kindMatcher(rules.KindCompare), func(rule rules.Rule) Validator {
		if r, ok := rule.(*rules.Compare); ok {
			return &CompareValidator{Rule: r}
		}
		return nil
	})
}

func kindMatcher(kind string) Matcher {
	return func(rule rules.Rule) bool {
		return rule != nil && rule.Kind() == kind
	}
}

func sortEntries(entries []tableEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].priority == entries[j].priority {
			return entries[i].order < entries[j].order
		}
		return entries[i].priority > entries[j].priority
	})
}
