// Package validation implements the provider chain that turns declared model
// metadata into executable validators. Providers run in a fixed order over a
// transient per-call context; the first provider to resolve an item wins and
// later providers skip it.
package validation

import (
	"github.com/goliatone/go-formval/pkg/messages"
	"github.com/goliatone/go-formval/pkg/metadata"
	"github.com/goliatone/go-formval/pkg/rules"
)

// Issue is one validation failure.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Target carries the value under validation plus enough surrounding state for
// cross-property rules and message formatting.
type Target struct {
	Metadata *metadata.Metadata
	// Model holds the full property value set, keyed by property name.
	Model map[string]any
	// Value is the property value, or the model object for type metadata.
	Value any
	// Messages optionally overrides the built-in message templates.
	Messages *messages.Catalog
}

// FormatMessage resolves the rule's message template (author-supplied, then
// catalog, then built-in default) and expands positional placeholders.
func (t *Target) FormatMessage(rule rules.Rule, args ...string) string {
	tpl := ""
	if rule != nil {
		tpl = rule.ErrorMessage()
	}
	if tpl == "" {
		kind := ""
		if rule != nil {
			kind = rule.Kind()
		}
		tpl = t.Messages.Lookup(kind)
	}
	return messages.Format(tpl, args...)
}

// Validator checks one constraint against a target value.
type Validator interface {
	Validate(target *Target) []Issue
}

// Validatable is the validatable-object capability: model objects implementing
// it always participate in validation through a pass-through adapter, even
// without any declared rules.
type Validatable interface {
	Validate() []Issue
}

// ValidatorItem pairs one rule with its (possibly still unresolved)
// validator. Resolved marks that a provider already assigned the validator;
// later providers in the chain must skip the item. Items with a nil Validator
// after the chain completes are omitted from execution, not errors.
type ValidatorItem struct {
	Rule      rules.Rule
	Validator Validator
	Resolved  bool
}

// ProviderContext is the transient, per-call container passed through the
// provider chain. Providers append or mutate Items in place; declaration
// order is preserved for deterministic duplicate merging.
type ProviderContext struct {
	Metadata *metadata.Metadata
	Items    []*ValidatorItem
}

// NewProviderContext seeds a context with one item per declared rule, in
// declaration order.
func NewProviderContext(md *metadata.Metadata) *ProviderContext {
	ctx := &ProviderContext{Metadata: md}
	if md == nil {
		return ctx
	}
	for _, rule := range md.Rules() {
		ctx.Items = append(ctx.Items, &ValidatorItem{Rule: rule})
	}
	return ctx
}

// Provider contributes validators to a resolution context. Implementations
// must honour the Resolved flag.
type Provider interface {
	GetValidators(ctx *ProviderContext)
}

// CompositeProvider runs a fixed, ordered list of providers over the same
// context.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider builds a chain in the given priority order.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	chain := &CompositeProvider{}
	for _, p := range providers {
		if p == nil {
			continue
		}
		chain.providers = append(chain.providers, p)
	}
	return chain
}

// GetValidators invokes each provider in order.
func (c *CompositeProvider) GetValidators(ctx *ProviderContext) {
	if c == nil || ctx == nil {
		return
	}
	for _, p := range c.providers {
		p.GetValidators(ctx)
	}
}
