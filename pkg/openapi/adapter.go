// Package openapi derives validation metadata from OpenAPI 3 documents:
// request-body schema constraints become rule instances on property metadata,
// so a registered operation validates the same way a hand-declared model
// does.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formval/pkg/metadata"
	"github.com/goliatone/go-formval/pkg/rules"
)

// Options configures document handling.
type Options struct {
	// ResolveReferences validates the document and follows refs.
	ResolveReferences bool
	// AllowPartialDocuments tolerates documents without any operations.
	AllowPartialDocuments bool
}

// OperationRef is minimal metadata about an available operation.
type OperationRef struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Adapter converts OpenAPI operations into validation metadata.
type Adapter struct {
	options Options
}

// New constructs an Adapter with the given options.
func New(options Options) *Adapter {
	return &Adapter{options: options}
}

// Operations lists the operations declared in a document, sorted by ID.
func (a *Adapter) Operations(ctx context.Context, raw []byte) ([]OperationRef, error) {
	spec, err := a.load(ctx, raw)
	if err != nil {
		return nil, err
	}

	var refs []OperationRef
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, operation := range operationsByMethod(item) {
				if operation == nil {
					continue
				}
				refs = append(refs, OperationRef{
					ID:      operationID(method, path, operation),
					Method:  method,
					Path:    path,
					Summary: operation.Summary,
				})
			}
		}
	}

	if len(refs) == 0 && !a.options.AllowPartialDocuments {
		return nil, errors.New("openapi: no operations extracted")
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

// Metadata builds type metadata for an operation's request body. The
// operation ID becomes the model type name; each body property carries the
// rules derived from its schema constraints.
func (a *Adapter) Metadata(ctx context.Context, raw []byte, opID string) (*metadata.Metadata, error) {
	spec, err := a.load(ctx, raw)
	if err != nil {
		return nil, err
	}

	operation, ok := findOperation(spec, opID)
	if !ok {
		return nil, fmt.Errorf("openapi: operation %q not found", opID)
	}

	schema := requestSchema(operation)
	if schema == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body schema", opID)
	}

	builder := metadata.NewBuilder(opID)
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := builder.Property(name).FieldType(fieldType(ref.Value))
		if title := strings.TrimSpace(ref.Value.Title); title != "" {
			prop.DisplayName(title)
		}
		prop.Rules(propertyRules(ref.Value, required[name])...)
	}

	return builder.Build(), nil
}

func (a *Adapter) load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: a.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	if a.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return spec, nil
}

// propertyRules maps schema constraints onto rule instances, preserving a
// stable declaration order: required, range, length, pattern.
func propertyRules(schema *openapi3.Schema, mandatory bool) []rules.Rule {
	var out []rules.Rule

	if mandatory {
		out = append(out, rules.NewRequired())
	}
	if schema.Min != nil || schema.Max != nil {
		rule := &rules.Range{}
		if schema.Min != nil {
			value := *schema.Min
			rule.Min = &value
		}
		if schema.Max != nil {
			value := *schema.Max
			rule.Max = &value
		}
		out = append(out, rule)
	}
	if schema.MinLength != 0 || schema.MaxLength != nil {
		rule := &rules.Length{Min: int(schema.MinLength)}
		if schema.MaxLength != nil {
			rule.Max = int(*schema.MaxLength)
		}
		out = append(out, rule)
	}
	if schema.Pattern != "" {
		out = append(out, rules.NewPattern(schema.Pattern))
	}
	return out
}

func fieldType(schema *openapi3.Schema) metadata.FieldType {
	switch firstSchemaType(schema.Type) {
	case "integer":
		return metadata.FieldTypeInteger
	case "number":
		return metadata.FieldTypeNumber
	case "boolean":
		return metadata.FieldTypeBoolean
	case "array":
		return metadata.FieldTypeArray
	case "object":
		return metadata.FieldTypeObject
	default:
		return metadata.FieldTypeString
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func findOperation(spec *openapi3.T, opID string) (*openapi3.Operation, bool) {
	if spec.Paths == nil {
		return nil, false
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range operationsByMethod(item) {
			if operation == nil {
				continue
			}
			if operationID(method, path, operation) == opID {
				return operation, true
			}
		}
	}
	return nil, false
}

func operationsByMethod(item *openapi3.PathItem) map[string]*openapi3.Operation {
	return map[string]*openapi3.Operation{
		"GET":     item.Get,
		"PUT":     item.Put,
		"POST":    item.Post,
		"DELETE":  item.Delete,
		"PATCH":   item.Patch,
		"HEAD":    item.Head,
		"OPTIONS": item.Options,
		"TRACE":   item.Trace,
	}
}

func operationID(method, path string, operation *openapi3.Operation) string {
	if operation.OperationID != "" {
		return operation.OperationID
	}
	return strings.ToLower(method) + ":" + path
}
