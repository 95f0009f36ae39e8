// Package clientside resolves client validation adapters for declared rules
// and renders them as `data-val-*` HTML attributes, in the unobtrusive
// validation convention.
package clientside

import (
	"html"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formval/pkg/messages"
	"github.com/goliatone/go-formval/pkg/metadata"
	"github.com/goliatone/go-formval/pkg/rules"
)

// Theme token consulted for the CSS class applied to invalid inputs.
const errorClassToken = "validation.errorClass"

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// messageSanitizer strips markup from author-supplied messages before they
// are embedded in HTML attributes.
func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return messagePolicy
}

// AdapterContext collects the attributes adapters emit for one property.
type AdapterContext struct {
	Metadata   *metadata.Metadata
	Attributes map[string]string

	catalog *messages.Catalog
	theme   *theme.RendererConfig
}

// ContextOption configures an AdapterContext.
type ContextOption func(*AdapterContext)

// WithMessageCatalog overrides the built-in message templates.
func WithMessageCatalog(catalog *messages.Catalog) ContextOption {
	return func(ctx *AdapterContext) {
		ctx.catalog = catalog
	}
}

// WithTheme resolves the invalid-input CSS class from the theme's tokens and
// emits it as data-val-class.
func WithTheme(cfg *theme.RendererConfig) ContextOption {
	return func(ctx *AdapterContext) {
		ctx.theme = cfg
	}
}

// NewAdapterContext builds an empty attribute context for the property.
func NewAdapterContext(md *metadata.Metadata, options ...ContextOption) *AdapterContext {
	ctx := &AdapterContext{
		Metadata:   md,
		Attributes: make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(ctx)
	}
	return ctx
}

// MergeAttribute sets an attribute only when it is not already present,
// reporting whether the write happened. Adapters rely on this to stay
// duplicate-free when several rules target the same attribute.
func (ctx *AdapterContext) MergeAttribute(key, value string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	if _, exists := ctx.Attributes[key]; exists {
		return false
	}
	ctx.Attributes[key] = value
	return true
}

// ErrorMessage resolves, formats, and sanitizes the message for a rule.
func (ctx *AdapterContext) ErrorMessage(rule rules.Rule, args ...string) string {
	tpl := ""
	kind := ""
	if rule != nil {
		tpl = rule.ErrorMessage()
		kind = rule.Kind()
	}
	if tpl == "" {
		tpl = ctx.catalog.Lookup(kind)
	}
	formatted := messages.Format(tpl, args...)
	// Sanitize strips markup but entity-escapes the surviving text; the
	// attributes here are plain values that get escaped again at render
	// time, so fold the entities back.
	cleaned := html.UnescapeString(messageSanitizer().Sanitize(formatted))
	return strings.TrimSpace(cleaned)
}

// DisplayName returns the property's human-facing name for messages.
func (ctx *AdapterContext) DisplayName() string {
	if ctx.Metadata == nil {
		return ""
	}
	return ctx.Metadata.DisplayName()
}

// finish stamps the enabling marker and themed error class once any adapter
// contributed attributes.
func (ctx *AdapterContext) finish() {
	if len(ctx.Attributes) == 0 {
		return
	}
	ctx.MergeAttribute("data-val", "true")
	if ctx.theme != nil {
		if class := strings.TrimSpace(ctx.theme.Tokens[errorClassToken]); class != "" {
			ctx.MergeAttribute("data-val-class", class)
		}
	}
}

// SortedKeys returns attribute names in stable order, for deterministic
// rendering and tests.
func (ctx *AdapterContext) SortedKeys() []string {
	keys := make([]string, 0, len(ctx.Attributes))
	for key := range ctx.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
