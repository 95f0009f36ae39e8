package validation

import (
	"github.com/goliatone/go-formval/pkg/rules"
)

// DefaultProvider resolves validators for declared rules:
//
//  1. Rules implementing the server-validator capability directly are wrapped
//     with a pass-through adapter.
//  2. Otherwise the specific-validator table is consulted; the first matching
//     kind wins.
//  3. Type metadata marked validatable contributes exactly one
//     validatable-object validator, rules or not.
//
// Items another provider already resolved are skipped. Rules nothing claims
// stay unresolved and are silently omitted at execution time.
type DefaultProvider struct {
	table *Table
}

// Ensure the provider satisfies the chain contract.
var _ Provider = (*DefaultProvider)(nil)

// NewDefaultProvider constructs the provider. A nil table gets the built-in
// kinds.
func NewDefaultProvider(table *Table) *DefaultProvider {
	if table == nil {
		table = NewTable()
	}
	return &DefaultProvider{table: table}
}

// Table exposes the specific-validator table for callers registering custom
// kinds.
func (p *DefaultProvider) Table() *Table { return p.table }

// GetValidators resolves unclaimed items in place.
func (p *DefaultProvider) GetValidators(ctx *ProviderContext) {
	if p == nil || ctx == nil {
		return
	}

	for _, item := range ctx.Items {
		if item == nil || item.Resolved {
			continue
		}
		if fn, ok := item.Rule.(rules.Validator); ok {
			item.Validator = NewPassThroughValidator(item.Rule, fn)
			item.Resolved = true
			continue
		}
		if validator, ok := p.table.Resolve(item.Rule); ok {
			item.Validator = validator
			item.Resolved = true
		}
	}

	if ctx.Metadata != nil && ctx.Metadata.Validatable() && !ctx.Metadata.IsProperty() && !hasValidatableItem(ctx) {
		ctx.Items = append(ctx.Items, &ValidatorItem{
			Validator: &ValidatableObjectValidator{},
			Resolved:  true,
		})
	}
}

func hasValidatableItem(ctx *ProviderContext) bool {
	for _, item := range ctx.Items {
		if item == nil {
			continue
		}
		if _, ok := item.Validator.(*ValidatableObjectValidator); ok {
			return true
		}
	}
	return false
}
