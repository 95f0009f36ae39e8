package validation

import (
	"fmt"

	"github.com/goliatone/go-formval/pkg/messages"
	"github.com/goliatone/go-formval/pkg/metadata"
)

// Runner resolves and executes validators for whole models: type-level rules
// (plus the validatable-object path), then each property in declaration
// order. Each call builds its own transient contexts, so concurrent
// validation of different models is safe.
type Runner struct {
	provider metadata.Provider
	chain    Provider
	catalog  *messages.Catalog
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMessageCatalog overrides the built-in message templates.
func WithMessageCatalog(catalog *messages.Catalog) RunnerOption {
	return func(r *Runner) {
		r.catalog = catalog
	}
}

// WithChain replaces the default provider chain.
func WithChain(chain Provider) RunnerOption {
	return func(r *Runner) {
		if chain != nil {
			r.chain = chain
		}
	}
}

// NewRunner constructs a Runner over a metadata source.
func NewRunner(provider metadata.Provider, options ...RunnerOption) *Runner {
	r := &Runner{
		provider: provider,
		chain:    NewCompositeProvider(NewDefaultProvider(nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Resolve runs the provider chain for a single metadata entry and returns the
// populated context. Callers inspecting resolution (rather than validating
// values) use this directly.
func (r *Runner) Resolve(md *metadata.Metadata) *ProviderContext {
	ctx := NewProviderContext(md)
	if r != nil && r.chain != nil {
		r.chain.GetValidators(ctx)
	}
	return ctx
}

// ValidateModel validates a property value set against a registered model
// type. The optional model argument supplies the typed object for the
// validatable-object path; pass nil when only property values matter.
func (r *Runner) ValidateModel(modelType string, values map[string]any, model any) ([]Issue, error) {
	if r == nil || r.provider == nil {
		return nil, fmt.Errorf("validation: metadata provider is required")
	}
	typeMD, ok := r.provider.Metadata(modelType)
	if !ok {
		return nil, fmt.Errorf("validation: model type %q is not registered", modelType)
	}

	var issues []Issue

	target := &Target{Metadata: typeMD, Model: values, Value: model, Messages: r.catalog}
	issues = append(issues, r.run(typeMD, target)...)

	for _, prop := range typeMD.Properties() {
		resolved, ok := r.provider.Property(modelType, prop.Property())
		if !ok {
			continue
		}
		target := &Target{
			Metadata: resolved,
			Model:    values,
			Value:    values[prop.Property()],
			Messages: r.catalog,
		}
		issues = append(issues, r.run(resolved, target)...)
	}

	return issues, nil
}

// ValidateProperty validates a single property value.
func (r *Runner) ValidateProperty(modelType, property string, value any) ([]Issue, error) {
	if r == nil || r.provider == nil {
		return nil, fmt.Errorf("validation: metadata provider is required")
	}
	md, ok := r.provider.Property(modelType, property)
	if !ok {
		return nil, fmt.Errorf("validation: property %s.%s is not registered", modelType, property)
	}
	target := &Target{Metadata: md, Value: value, Messages: r.catalog}
	return r.run(md, target), nil
}

func (r *Runner) run(md *metadata.Metadata, target *Target) []Issue {
	ctx := r.Resolve(md)
	var issues []Issue
	for _, item := range ctx.Items {
		if item == nil || item.Validator == nil {
			continue
		}
		issues = append(issues, item.Validator.Validate(target)...)
	}
	return issues
}
