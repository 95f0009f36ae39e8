package clientside

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formval/pkg/rules"
)

// Matcher decides whether a table entry handles the supplied rule.
type Matcher func(rule rules.Rule) bool

// Factory builds the specific adapter for a matched rule.
type Factory func(rule rules.Rule) Adapter

type tableEntry struct {
	name     string
	priority int
	match    Matcher
	build    Factory
	order    int
}

// AdapterTable maps known rule kinds to specific adapter constructors.
// Entries are evaluated in priority order (higher wins, ties fall back to
// registration order); the first match produces the adapter.
type AdapterTable struct {
	mu      sync.RWMutex
	entries []tableEntry
}

// NewAdapterTable constructs a table with the built-in rule kinds registered.
func NewAdapterTable() *AdapterTable {
	t := &AdapterTable{}
	t.registerBuiltins()
	return t
}

// NewEmptyAdapterTable constructs a table without built-ins.
func NewEmptyAdapterTable() *AdapterTable {
	return &AdapterTable{}
}

// Register adds an entry. Higher priority values take precedence.
func (t *AdapterTable) Register(name string, priority int, match Matcher, build Factory) {
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

// Resolve returns the specific adapter for a rule; the first matching entry
// wins.
func (t *AdapterTable) Resolve(rule rules.Rule) (Adapter, bool) {
	if t == nil || rule == nil {
		return nil, false
	}
	t.mu.RLock()
	entries := append([]tableEntry(nil), t.entries...)
	t.mu.RUnlock()

	sortEntries(entries)
	for _, entry := range entries {
		if entry.match(rule) {
			adapter := entry.build(rule)
			if adapter != nil {
				return adapter, true
			}
		}
	}
	return nil, false
}

func (t *AdapterTable) registerBuiltins() {
	t.Register(rules.KindRequired, 0, kindMatcher(rules.KindRequired), func(rule rules.Rule) Adapter {
		if r, ok := rule.(*rules.Required); ok {
			return &RequiredAdapter{Rule: r}
		}
		return nil
	})
	t.Register(rules.KindRange, 0, kindMatcher(rules.KindRange), func(rule rules.Rule) Adapter {
		if r, ok := rule.(*rules.Range); ok {
			return &RangeAdapter{Rule: r}
		}
		return nil
	})
	t.Register(rules.KindLength, 0, kindMatcher(rules.KindLength), func(rule rules.Rule) Adapter {
		if r, ok := rule.(*rules.Length); ok {
			return &LengthAdapter{Rule: r}
		}
		return nil
	})
	t.Register(rules.KindPattern, 0, kindMatcher(rules.KindPattern), func(rule rules.Rule) Adapter {
		if r, ok := rule.(*rules.Pattern); ok {
			return &PatternAdapter{Rule: r}
		}
		return nil
	})
	t.Register(rules.KindCompare, 0, kindMatcher(rules.KindCompare), func(rule rules.Rule) Adapter {
		if r, ok := rule.(*rules.Compare); ok {
			return &CompareAdapter{Rule: r}
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
