// Package formval turns declared model metadata into server-side validators
// and client-side validation attributes, and serves the embedded script
// templates that wire the client half.
package formval

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formval/pkg/clientside"
	"github.com/goliatone/go-formval/pkg/messages"
	"github.com/goliatone/go-formval/pkg/metadata"
	"github.com/goliatone/go-formval/pkg/validation"
)

// Issue re-exports the validation failure type for convenience.
type Issue = validation.Issue

// Metadata re-exports the model metadata type.
type Metadata = metadata.Metadata

// Validatable re-exports the validatable-object capability.
type Validatable = validation.Validatable

// NewBuilder starts metadata for a model type.
func NewBuilder(modelType string) *metadata.Builder {
	return metadata.NewBuilder(modelType)
}

// NewRegistry creates an empty metadata registry.
func NewRegistry() *metadata.Registry {
	return metadata.NewRegistry()
}

// NewRunner constructs a validation runner over a metadata source with the
// default provider chain.
func NewRunner(provider metadata.Provider, options ...validation.RunnerOption) *validation.Runner {
	return validation.NewRunner(provider, options...)
}

// Validate resolves and executes validators for a model's property values.
func Validate(provider metadata.Provider, modelType string, values map[string]any, model any) ([]Issue, error) {
	return validation.NewRunner(provider).ValidateModel(modelType, values, model)
}

// ClientAttributes resolves the client adapter chain for one property and
// renders the data-val attributes.
func ClientAttributes(provider metadata.Provider, modelType, property string, options ...clientside.ContextOption) (map[string]string, error) {
	md, ok := provider.Property(modelType, property)
	if !ok {
		return nil, fmt.Errorf("formval: property %s.%s is not registered", modelType, property)
	}
	return clientside.Attributes(md, nil, options...), nil
}

// WithTheme configures themed error classes on client attribute rendering.
func WithTheme(cfg *theme.RendererConfig) clientside.ContextOption {
	return clientside.WithTheme(cfg)
}

// WithMessages overrides the built-in client message templates.
func WithMessages(catalog *messages.Catalog) clientside.ContextOption {
	return clientside.WithMessageCatalog(catalog)
}
