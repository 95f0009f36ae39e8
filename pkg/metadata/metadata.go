// Package metadata describes model types and properties together with their
// attached validation rules. Metadata values are immutable once built; a
// process-wide Registry owns resolution and caching.
package metadata

import (
	"strings"

	"github.com/goliatone/go-formval/pkg/rules"
)

// FieldType is the simplified enum for value kinds carried by properties.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

// Numeric reports whether the field type carries numeric values.
func (t FieldType) Numeric() bool {
	return t == FieldTypeInteger || t == FieldTypeNumber
}

// Metadata describes either a model type or a single property on one. All
// fields are unexported; values are safe to share across goroutines.
type Metadata struct {
	modelType   string
	property    string
	displayName string
	fieldType   FieldType
	rules       []rules.Rule
	validatable bool
	modelRef    string
	redirect    string
	properties  []*Metadata
}

// ModelType returns the owning model type name.
func (m *Metadata) ModelType() string { return m.modelType }

// Property returns the property name, or empty for type metadata.
func (m *Metadata) Property() string { return m.property }

// IsProperty reports whether this metadata describes a property.
func (m *Metadata) IsProperty() bool { return m.property != "" }

// DisplayName returns the human-facing name used in messages. Falls back to
// the property name, then the model type name.
func (m *Metadata) DisplayName() string {
	if m.displayName != "" {
		return m.displayName
	}
	if m.property != "" {
		return m.property
	}
	return m.modelType
}

// FieldType returns the value kind of a property.
func (m *Metadata) FieldType() FieldType { return m.fieldType }

// Rules returns the ordered validator metadata. The slice is a copy; the
// underlying rule instances are shared.
func (m *Metadata) Rules() []rules.Rule {
	if len(m.rules) == 0 {
		return nil
	}
	return append([]rules.Rule(nil), m.rules...)
}

// Validatable reports whether the described model implements the
// validatable-object capability.
func (m *Metadata) Validatable() bool { return m.validatable }

// ModelRef returns the model type name a property's value is declared as,
// when that type itself carries validation metadata.
func (m *Metadata) ModelRef() string { return m.modelRef }

// Redirect returns the metadata-type redirection target, when the model
// borrows validation rules from another registered type.
func (m *Metadata) Redirect() string { return m.redirect }

// Properties returns the property metadata of a type, in declaration order.
func (m *Metadata) Properties() []*Metadata {
	if len(m.properties) == 0 {
		return nil
	}
	return append([]*Metadata(nil), m.properties...)
}

// PropertyMetadata finds a property by name on type metadata.
func (m *Metadata) PropertyMetadata(name string) (*Metadata, bool) {
	for _, prop := range m.properties {
		if prop.property == name {
			return prop, true
		}
	}
	return nil, false
}

// Builder assembles type metadata. Not safe for concurrent use; Build
// produces the immutable result.
type Builder struct {
	md Metadata
}

// NewBuilder starts metadata for the named model type.
func NewBuilder(modelType string) *Builder {
	return &Builder{md: Metadata{modelType: strings.TrimSpace(modelType)}}
}

// Rules appends type-level rules in declaration order.
func (b *Builder) Rules(list ...rules.Rule) *Builder {
	for _, rule := range list {
		if rule == nil {
			continue
		}
		b.md.rules = append(b.md.rules, rule)
	}
	return b
}

// Validatable marks the model as implementing the validatable-object
// capability.
func (b *Builder) Validatable() *Builder {
	b.md.validatable = true
	return b
}

// DisplayName sets the human-facing name for messages.
func (b *Builder) DisplayName(name string) *Builder {
	b.md.displayName = strings.TrimSpace(name)
	return b
}

// RedirectTo declares that this type borrows validation rules from another
// registered type. Rules already present on a destination property are never
// duplicated during resolution.
func (b *Builder) RedirectTo(modelType string) *Builder {
	b.md.redirect = strings.TrimSpace(modelType)
	return b
}

// Property adds a property and returns its builder.
func (b *Builder) Property(name string) *PropertyBuilder {
	prop := &Metadata{
		modelType: b.md.modelType,
		property:  strings.TrimSpace(name),
		fieldType: FieldTypeString,
	}
	b.md.properties = append(b.md.properties, prop)
	return &PropertyBuilder{md: prop}
}

// Build finalizes the type metadata.
func (b *Builder) Build() *Metadata {
	out := b.md
	return &out
}

// PropertyBuilder configures one property on a type under construction.
type PropertyBuilder struct {
	md *Metadata
}

// Rules appends property-level rules in declaration order.
func (p *PropertyBuilder) Rules(list ...rules.Rule) *PropertyBuilder {
	for _, rule := range list {
		if rule == nil {
			continue
		}
		p.md.rules = append(p.md.rules, rule)
	}
	return p
}

// FieldType sets the value kind carried by the property.
func (p *PropertyBuilder) FieldType(t FieldType) *PropertyBuilder {
	p.md.fieldType = t
	return p
}

// DisplayName sets the human-facing name for messages.
func (p *PropertyBuilder) DisplayName(name string) *PropertyBuilder {
	p.md.displayName = strings.TrimSpace(name)
	return p
}

// ModelType declares that the property's value is itself a registered model
// type; its type-level rules are merged ahead of the property's own during
// resolution.
func (p *PropertyBuilder) ModelType(name string) *PropertyBuilder {
	p.md.modelRef = strings.TrimSpace(name)
	return p
}
