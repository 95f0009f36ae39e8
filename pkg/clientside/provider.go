package clientside

import (
	"github.com/goliatone/go-formval/pkg/metadata"
	"github.com/goliatone/go-formval/pkg/rules"
)

// Item pairs one rule with its (possibly still unresolved) client adapter.
// Resolved marks that a provider already assigned the adapter; later
// providers in the chain must skip the item. Items left without an adapter
// are omitted from the output, not errors.
type Item struct {
	Rule     rules.Rule
	Adapter  Adapter
	Resolved bool
}

// ProviderContext is the transient container passed through the client
// provider chain. Providers append or mutate Items in place; declaration
// order is preserved.
type ProviderContext struct {
	Metadata *metadata.Metadata
	Items    []*Item
}

// NewProviderContext seeds a context with one item per declared rule, in
// declaration order.
func NewProviderContext(md *metadata.Metadata) *ProviderContext {
	ctx := &ProviderContext{Metadata: md}
	if md == nil {
		return ctx
	}
	for _, rule := range md.Rules() {
		ctx.Items = append(ctx.Items, &Item{Rule: rule})
	}
	return ctx
}

// Provider contributes client adapters to a resolution context.
// Implementations must honour the Resolved flag.
type Provider interface {
	GetClientValidators(ctx *ProviderContext)
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

// GetClientValidators invokes each provider in order.
func (c *CompositeProvider) GetClientValidators(ctx *ProviderContext) {
	if c == nil || ctx == nil {
		return
	}
	for _, p := range c.providers {
		p.GetClientValidators(ctx)
	}
}

// DefaultProvider resolves adapters through the specific-adapter table.
type DefaultProvider struct {
	table *AdapterTable
}

var _ Provider = (*DefaultProvider)(nil)

// NewDefaultProvider constructs the provider. A nil table gets the built-in
// kinds.
func NewDefaultProvider(table *AdapterTable) *DefaultProvider {
	if table == nil {
		table = NewAdapterTable()
	}
	return &DefaultProvider{table: table}
}

// Table exposes the adapter table for callers registering custom kinds.
func (p *DefaultProvider) Table() *AdapterTable { return p.table }

// GetClientValidators resolves unclaimed items against the table.
func (p *DefaultProvider) GetClientValidators(ctx *ProviderContext) {
	if p == nil || ctx == nil {
		return
	}
	for _, item := range ctx.Items {
		if item == nil || item.Resolved {
			continue
		}
		if adapter, ok := p.table.Resolve(item.Rule); ok {
			item.Adapter = adapter
			item.Resolved = true
		}
	}
}

// NumericRequiredProvider ensures numeric properties carry a required-ness
// adapter: a numeric range constraint alone must still reject absent values
// on the client, so it always emits two adapters (range plus required). A
// required-kind rule already present keeps the pairing duplicate-free.
type NumericRequiredProvider struct{}

var _ Provider = (*NumericRequiredProvider)(nil)

// GetClientValidators appends the synthetic required item when missing.
func (p *NumericRequiredProvider) GetClientValidators(ctx *ProviderContext) {
	if ctx == nil || ctx.Metadata == nil || !ctx.Metadata.IsProperty() {
		return
	}
	if !ctx.Metadata.FieldType().Numeric() {
		return
	}
	if len(ctx.Items) == 0 {
		return
	}
	for _, item := range ctx.Items {
		if item == nil || item.Rule == nil {
			continue
		}
		if item.Rule.Kind() == rules.KindRequired {
			return
		}
	}

	rule := rules.NewRequired()
	ctx.Items = append(ctx.Items, &Item{
		Rule:     rule,
		Adapter:  &RequiredAdapter{Rule: rule},
		Resolved: true,
	})
}

// GenericProvider claims unresolved rules that implement the client
// capability directly, emitting them unchanged.
type GenericProvider struct{}

var _ Provider = (*GenericProvider)(nil)

// GetClientValidators wraps unclaimed ClientRule items with the pass-through
// adapter.
func (p *GenericProvider) GetClientValidators(ctx *ProviderContext) {
	if ctx == nil {
		return
	}
	for _, item := range ctx.Items {
		if item == nil || item.Resolved {
			continue
		}
		if client, ok := item.Rule.(rules.ClientRule); ok {
			item.Adapter = &PassThroughAdapter{Rule: client}
			item.Resolved = true
		}
	}
}

// DefaultChain assembles the standard provider order: specific adapters,
// numeric required pairing, then the generic pass-through.
func DefaultChain() *CompositeProvider {
	return NewCompositeProvider(
		NewDefaultProvider(nil),
		&NumericRequiredProvider{},
		&GenericProvider{},
	)
}

// Attributes resolves the chain for one property and renders the resulting
// adapters as data-val attributes. Unresolved rules are silently omitted.
func Attributes(md *metadata.Metadata, chain Provider, options ...ContextOption) map[string]string {
	if chain == nil {
		chain = DefaultChain()
	}
	ctx := NewProviderContext(md)
	chain.GetClientValidators(ctx)

	out := NewAdapterContext(md, options...)
	for _, item := range ctx.Items {
		if item == nil || item.Adapter == nil {
			continue
		}
		item.Adapter.AddValidation(out)
	}
	out.finish()
	return out.Attributes
}
