// Package rules defines the validation constraints that can be attached to
// model types and properties, plus the capability interfaces the provider
// chain dispatches on.
package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Canonical rule kinds. The specific-adapter tables in pkg/validation and
// pkg/clientside key off these values.
const (
	KindRequired = "required"
	KindRange    = "range"
	KindLength   = "length"
	KindPattern  = "regex"
	KindCompare  = "equalto"
	KindCustom   = "custom"
)

// Rule is a single validation constraint. Concrete rules are pointer types so
// the same instance can be recognised when metadata merging deduplicates.
type Rule interface {
	// Kind identifies the constraint family; use the Kind* constants for
	// the built-in rules.
	Kind() string
	// ErrorMessage returns the author-supplied message template. Empty
	// means "use the catalog default for this kind".
	ErrorMessage() string
}

// Validator is the server-side validation capability. Rules implementing it
// are wrapped by a pass-through adapter instead of consulting the
// specific-adapter table.
type Validator interface {
	ValidateValue(value any) error
}

// ClientRule is the client-side validation capability. Rules implementing it
// that have no specific adapter mapping are emitted unchanged through the
// generic pass-through adapter.
type ClientRule interface {
	Rule
	// ClientParams returns the data attributes (suffix -> value) the rule
	// contributes, without the `data-val-` prefix.
	ClientParams() map[string]string
}

// Required marks a value as mandatory.
type Required struct {
	// AllowEmpty accepts empty strings as present values.
	AllowEmpty bool
	Message    string
}

// NewRequired constructs a Required rule.
func NewRequired() *Required { return &Required{} }

func (r *Required) Kind() string         { return KindRequired }
func (r *Required) ErrorMessage() string { return r.Message }

// Range constrains numeric values to an inclusive interval. Nil bounds are
// open on that side.
type Range struct {
	Min     *float64
	Max     *float64
	Message string
}

// NewRange constructs a Range rule with both bounds set.
func NewRange(min, max float64) *Range {
	return &Range{Min: &min, Max: &max}
}

func (r *Range) Kind() string         { return KindRange }
func (r *Range) ErrorMessage() string { return r.Message }

// MinParam renders the lower bound for messages and client attributes.
func (r *Range) MinParam() string { return formatBound(r.Min) }

// MaxParam renders the upper bound for messages and client attributes.
func (r *Range) MaxParam() string { return formatBound(r.Max) }

// Length constrains string length. Max of zero means unbounded above.
type Length struct {
	Min     int
	Max     int
	Message string
}

// NewLength constructs a Length rule.
func NewLength(min, max int) *Length {
	return &Length{Min: min, Max: max}
}

func (r *Length) Kind() string         { return KindLength }
func (r *Length) ErrorMessage() string { return r.Message }

// Pattern constrains string values to a regular expression. The expression is
// compiled lazily and the result memoised; an invalid expression surfaces as a
// validation error rather than a construction failure, matching the
// best-effort contract of the provider chain.
type Pattern struct {
	Expression string
	Message    string

	once     sync.Once
	compiled *regexp.Regexp
	compErr  error
}

// NewPattern constructs a Pattern rule.
func NewPattern(expression string) *Pattern {
	return &Pattern{Expression: expression}
}

func (r *Pattern) Kind() string         { return KindPattern }
func (r *Pattern) ErrorMessage() string { return r.Message }

// Regexp compiles the expression once and returns it.
func (r *Pattern) Regexp() (*regexp.Regexp, error) {
	r.once.Do(func() {
		r.compiled, r.compErr = regexp.Compile(r.Expression)
	})
	if r.compErr != nil {
		return nil, fmt.Errorf("rules: compile pattern %q: %w", r.Expression, r.compErr)
	}
	return r.compiled, nil
}

// Compare requires the value to equal another property's value.
type Compare struct {
	Other   string
	Message string
}

// NewCompare constructs a Compare rule against the named sibling property.
func NewCompare(other string) *Compare {
	return &Compare{Other: other}
}

func (r *Compare) Kind() string         { return KindCompare }
func (r *Compare) ErrorMessage() string { return r.Message }

// Custom wraps an arbitrary validation function. It implements the Validator
// capability directly, so the provider chain resolves it through the
// pass-through path without any table lookup.
type Custom struct {
	Name    string
	Message string
	Func    func(value any) error
}

// NewCustom constructs a Custom rule.
func NewCustom(name string, fn func(value any) error) *Custom {
	return &Custom{Name: name, Func: fn}
}

func (r *Custom) Kind() string         { return KindCustom }
func (r *Custom) ErrorMessage() string { return r.Message }

// ValidateValue satisfies the Validator capability.
func (r *Custom) ValidateValue(value any) error {
	if r.Func == nil {
		return nil
	}
	return r.Func(value)
}

func formatBound(bound *float64) string {
	if bound == nil {
		return ""
	}
	return strconv.FormatFloat(*bound, 'f', -1, 64)
}

// IsEmpty reports whether a value counts as absent for Required semantics:
// nil, an empty (or all-whitespace) string, or a nil typed pointer handled by
// the caller.
func IsEmpty(value any, allowEmptyString bool) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok && !allowEmptyString {
		return strings.TrimSpace(s) == ""
	}
	return false
}
