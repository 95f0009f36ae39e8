package validation

import (
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/goliatone/go-formval/pkg/rules"
)

// PassThroughValidator wraps a rule that implements the server-validator
// capability directly.
type PassThroughValidator struct {
	Rule rules.Rule
	fn   rules.Validator
}

// NewPassThroughValidator wraps the rule; the rule must implement
// rules.Validator.
func NewPassThroughValidator(rule rules.Rule, fn rules.Validator) *PassThroughValidator {
	return &PassThroughValidator{Rule: rule, fn: fn}
}

// Validate delegates to the wrapped rule.
func (v *PassThroughValidator) Validate(target *Target) []Issue {
	if v == nil || v.fn == nil || target == nil {
		return nil
	}
	if err := v.fn.ValidateValue(target.Value); err != nil {
		message := v.Rule.ErrorMessage()
		if message == "" {
			message = err.Error()
		}
		return []Issue{{Field: fieldName(target), Message: message}}
	}
	return nil
}

// ValidatableObjectValidator invokes the model's own validatable-object
// capability. Models that do not implement it are skipped silently.
type ValidatableObjectValidator struct{}

// Validate runs the model's Validate method when present.
func (v *ValidatableObjectValidator) Validate(target *Target) []Issue {
	if target == nil {
		return nil
	}
	if validatable, ok := target.Value.(Validatable); ok {
		return validatable.Validate()
	}
	return nil
}

// RequiredValidator rejects absent values.
type RequiredValidator struct {
	Rule *rules.Required
}

func (v *RequiredValidator) Validate(target *Target) []Issue {
	if v == nil || v.Rule == nil || target == nil {
		return nil
	}
	if rules.IsEmpty(target.Value, v.Rule.AllowEmpty) {
		return []Issue{{
			Field:   fieldName(target),
			Message: target.FormatMessage(v.Rule, displayName(target)),
		}}
	}
	return nil
}

// RangeValidator rejects numeric values outside the inclusive bounds.
// Non-numeric and absent values are skipped; required-ness is a separate
// concern.
type RangeValidator struct {
	Rule *rules.Range
}

func (v *RangeValidator) Validate(target *Target) []Issue {
	if v == nil || v.Rule == nil || target == nil {
		return nil
	}
	number, ok := toFloat(target.Value)
	if !ok {
		return nil
	}
	if (v.Rule.Min != nil && number < *v.Rule.Min) || (v.Rule.Max != nil && number > *v.Rule.Max) {
		return []Issue{{
			Field:   fieldName(target),
			Message: target.FormatMessage(v.Rule, displayName(target), v.Rule.MinParam(), v.Rule.MaxParam()),
		}}
	}
	return nil
}

// LengthValidator rejects strings outside the configured length bounds. A
// zero Max is unbounded above. Absent values are skipped.
type LengthValidator struct {
	Rule *rules.Length
}

func (v *LengthValidator) Validate(target *Target) []Issue {
	if v == nil || v.Rule == nil || target == nil || target.Value == nil {
		return nil
	}
	text, ok := target.Value.(string)
	if !ok {
		return nil
	}
	length := utf8.RuneCountInString(text)
	if (v.Rule.Min > 0 && length < v.Rule.Min) || (v.Rule.Max > 0 && length > v.Rule.Max) {
		return []Issue{{
			Field:   fieldName(target),
			Message: target.FormatMessage(v.Rule, displayName(target), strconv.Itoa(v.Rule.Min), strconv.Itoa(v.Rule.Max)),
		}}
	}
	return nil
}

// PatternValidator rejects strings that do not match the rule's regular
// expression. Absent and empty values are skipped. A non-compiling expression
// surfaces as an issue; it is an authoring defect, not input failure.
type PatternValidator struct {
	Rule *rules.Pattern
}

func (v *PatternValidator) Validate(target *Target) []Issue {
	if v == nil || v.Rule == nil || target == nil {
		return nil
	}
	text, ok := target.Value.(string)
	if !ok || text == "" {
		return nil
	}
	re, err := v.Rule.Regexp()
	if err != nil {
		return []Issue{{Field: fieldName(target), Message: err.Error()}}
	}
	if !re.MatchString(text) {
		return []Issue{{
			Field:   fieldName(target),
			Message: target.FormatMessage(v.Rule, displayName(target), v.Rule.Expression),
		}}
	}
	return nil
}

// CompareValidator rejects values that differ from the named sibling
// property. Without a model value set the check is skipped.
type CompareValidator struct {
	Rule *rules.Compare
}

func (v *CompareValidator) Validate(target *Target) []Issue {
	if v == nil || v.Rule == nil || target == nil || target.Model == nil {
		return nil
	}
	other, ok := target.Model[v.Rule.Other]
	if !ok {
		return nil
	}
	if !reflect.DeepEqual(target.Value, other) {
		return []Issue{{
			Field:   fieldName(target),
			Message: target.FormatMessage(v.Rule, displayName(target), v.Rule.Other),
		}}
	}
	return nil
}

func fieldName(target *Target) string {
	if target.Metadata == nil {
		return ""
	}
	return target.Metadata.Property()
}

func displayName(target *Target) string {
	if target.Metadata == nil {
		return ""
	}
	return target.Metadata.DisplayName()
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
