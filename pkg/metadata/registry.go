package metadata

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-formval/pkg/rules"
)

// Provider resolves metadata for model types and properties. The Registry is
// the default implementation; callers can substitute their own source.
type Provider interface {
	Metadata(modelType string) (*Metadata, bool)
	Property(modelType, property string) (*Metadata, bool)
}

// Registry stores type metadata and caches resolved views. Resolution merges
// metadata-type redirections and the class-level rules of referenced model
// types; resolved metadata is cached process-wide, matching the immutability
// contract of Metadata.
type Registry struct {
	mu       sync.RWMutex
	types    map[string]*Metadata
	resolved map[string]*Metadata
}

// Ensure the registry satisfies the provider contract.
var _ Provider = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:    make(map[string]*Metadata),
		resolved: make(map[string]*Metadata),
	}
}

// Register adds type metadata. Duplicate type names return an error.
func (r *Registry) Register(md *Metadata) error {
	if md == nil {
		return fmt.Errorf("metadata: metadata is required")
	}
	if md.modelType == "" {
		return fmt.Errorf("metadata: model type name is required")
	}
	if md.IsProperty() {
		return fmt.Errorf("metadata: register expects type metadata, got property %q", md.property)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[md.modelType]; exists {
		return fmt.Errorf("metadata: type %q already registered", md.modelType)
	}
	r.types[md.modelType] = md
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(md *Metadata) {
	if err := r.Register(md); err != nil {
		panic(err)
	}
}

// Has reports whether a type is registered.
func (r *Registry) Has(modelType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[modelType]
	return ok
}

// Metadata resolves type metadata, merging redirected rules. The resolved
// view is cached.
func (r *Registry) Metadata(modelType string) (*Metadata, bool) {
	key := "type\x00" + modelType

	r.mu.RLock()
	if md, ok := r.resolved[key]; ok {
		r.mu.RUnlock()
		return md, true
	}
	base, ok := r.types[modelType]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}

	md := r.resolveType(base)

	r.mu.Lock()
	r.resolved[key] = md
	r.mu.Unlock()
	return md, true
}

// Property resolves property metadata. The resolved view merges, in order:
// type-level rules of the property's referenced model type (class-level
// before property-level), the destination property's own rules, and any rules
// borrowed through the owning type's redirect target, without duplicating
// rule instances already present.
func (r *Registry) Property(modelType, property string) (*Metadata, bool) {
	key := "prop\x00" + modelType + "\x00" + property

	r.mu.RLock()
	if md, ok := r.resolved[key]; ok {
		r.mu.RUnlock()
		return md, true
	}
	owner, ok := r.types[modelType]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}

	base, ok := owner.PropertyMetadata(property)
	if !ok {
		return nil, false
	}

	md := r.resolveProperty(owner, base)

	r.mu.Lock()
	r.resolved[key] = md
	r.mu.Unlock()
	return md, true
}

func (r *Registry) resolveType(base *Metadata) *Metadata {
	merged := base.Rules()
	validatable := base.validatable

	if target := r.lookup(base.redirect); target != nil {
		merged = mergeRules(merged, target.rules)
		validatable = validatable || target.validatable
	}

	out := *base
	out.rules = merged
	out.validatable = validatable
	return &out
}

func (r *Registry) resolveProperty(owner, base *Metadata) *Metadata {
	var merged []rules.Rule
	validatable := false

	// Class-level rules of the property's declared model type come first.
	if ref := r.lookup(base.modelRef); ref != nil {
		merged = mergeRules(merged, ref.rules)
		validatable = ref.validatable
	}

	merged = mergeRules(merged, base.rules)

	// Redirect target contributions never duplicate what the destination
	// property already declares.
	if target := r.lookup(owner.redirect); target != nil {
		if borrowed, ok := target.PropertyMetadata(base.property); ok {
			merged = mergeRules(merged, borrowed.rules)
		}
	}

	out := *base
	out.rules = merged
	out.validatable = validatable
	return &out
}

func (r *Registry) lookup(modelType string) *Metadata {
	if modelType == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[modelType]
}

// mergeRules appends additions preserving order, skipping rule instances
// already present. Identity is the rule instance itself: the same attribute
// borrowed twice collapses to one entry.
func mergeRules(existing []rules.Rule, additions []rules.Rule) []rules.Rule {
	for _, rule := range additions {
		if rule == nil || containsRule(existing, rule) {
			continue
		}
		existing = append(existing, rule)
	}
	return existing
}

func containsRule(list []rules.Rule, rule rules.Rule) bool {
	for _, existing := range list {
		if existing == rule {
			return true
		}
	}
	return false
}
