package clientside

import (
	"strconv"

	"github.com/goliatone/go-formval/pkg/rules"
)

// Adapter writes one rule's client validation attributes into the context.
type Adapter interface {
	AddValidation(ctx *AdapterContext)
}

// RequiredAdapter emits data-val-required.
type RequiredAdapter struct {
	Rule *rules.Required
}

func (a *RequiredAdapter) AddValidation(ctx *AdapterContext) {
	if a == nil || ctx == nil {
		return
	}
	ctx.MergeAttribute("data-val-required", ctx.ErrorMessage(a.Rule, ctx.DisplayName()))
}

// RangeAdapter emits data-val-range with min/max parameters.
type RangeAdapter struct {
	Rule *rules.Range
}

func (a *RangeAdapter) AddValidation(ctx *AdapterContext) {
	if a == nil || a.Rule == nil || ctx == nil {
		return
	}
	ctx.MergeAttribute("data-val-range", ctx.ErrorMessage(a.Rule, ctx.DisplayName(), a.Rule.MinParam(), a.Rule.MaxParam()))
	if a.Rule.Min != nil {
		ctx.MergeAttribute("data-val-range-min", a.Rule.MinParam())
	}
	if a.Rule.Max != nil {
		ctx.MergeAttribute("data-val-range-max", a.Rule.MaxParam())
	}
}

// LengthAdapter emits data-val-length with min/max parameters. A zero Max is
// unbounded and produces no max attribute.
type LengthAdapter struct {
	Rule *rules.Length
}

func (a *LengthAdapter) AddValidation(ctx *AdapterContext) {
	if a == nil || a.Rule == nil || ctx == nil {
		return
	}
	ctx.MergeAttribute("data-val-length", ctx.ErrorMessage(a.Rule, ctx.DisplayName(), strconv.Itoa(a.Rule.Min), strconv.Itoa(a.Rule.Max)))
	if a.Rule.Min > 0 {
		ctx.MergeAttribute("data-val-length-min", strconv.Itoa(a.Rule.Min))
	}
	if a.Rule.Max > 0 {
		ctx.MergeAttribute("data-val-length-max", strconv.Itoa(a.Rule.Max))
	}
}

// PatternAdapter emits data-val-regex with the expression parameter.
type PatternAdapter struct {
	Rule *rules.Pattern
}

func (a *PatternAdapter) AddValidation(ctx *AdapterContext) {
	if a == nil || a.Rule == nil || ctx == nil {
		return
	}
	ctx.MergeAttribute("data-val-regex", ctx.ErrorMessage(a.Rule, ctx.DisplayName(), a.Rule.Expression))
	ctx.MergeAttribute("data-val-regex-pattern", a.Rule.Expression)
}

// CompareAdapter emits data-val-equalto against the sibling property.
type CompareAdapter struct {
	Rule *rules.Compare
}

func (a *CompareAdapter) AddValidation(ctx *AdapterContext) {
	if a == nil || a.Rule == nil || ctx == nil {
		return
	}
	ctx.MergeAttribute("data-val-equalto", ctx.ErrorMessage(a.Rule, ctx.DisplayName(), a.Rule.Other))
	ctx.MergeAttribute("data-val-equalto-other", "*."+a.Rule.Other)
}

// PassThroughAdapter emits a rule's own client parameters unchanged. Used for
// rules implementing the client capability that have no specific adapter
// mapping.
type PassThroughAdapter struct {
	Rule rules.ClientRule
}

func (a *PassThroughAdapter) AddValidation(ctx *AdapterContext) {
	if a == nil || a.Rule == nil || ctx == nil {
		return
	}
	params := a.Rule.ClientParams()
	for suffix, value := range params {
		if suffix == "" {
			continue
		}
		ctx.MergeAttribute("data-val-"+suffix, value)
	}
}
