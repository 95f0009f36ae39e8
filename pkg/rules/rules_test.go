package rules

import (
	"errors"
	"testing"
)

func TestRuleKinds(t *testing.T) {
	cases := []struct {
		rule Rule
		want string
	}{
		{NewRequired(), KindRequired},
		{NewRange(1, 5), KindRange},
		{NewLength(2, 10), KindLength},
		{NewPattern(`^[a-z]+$`), KindPattern},
		{NewCompare("password"), KindCompare},
		{NewCustom("slug-check", nil), KindCustom},
	}
	for _, tc := range cases {
		if got := tc.rule.Kind(); got != tc.want {
			t.Fatalf("expected kind %q, got %q", tc.want, got)
		}
	}
}

func TestCustom_ImplementsValidatorCapability(t *testing.T) {
	sentinel := errors.New("bad value")
	rule := NewCustom("always-fails", func(any) error { return sentinel })

	var capability Validator = rule
	if err := capability.ValidateValue("x"); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	empty := NewCustom("noop", nil)
	if err := empty.ValidateValue("x"); err != nil {
		t.Fatalf("nil func should pass, got %v", err)
	}
}

func TestPattern_RegexpMemoizesCompile(t *testing.T) {
	rule := NewPattern(`^\d+$`)
	first, err := rule.Regexp()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := rule.Regexp()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same compiled instance")
	}
	if !first.MatchString("123") || first.MatchString("12a") {
		t.Fatalf("compiled expression misbehaves")
	}
}

func TestPattern_InvalidExpressionSurfacesOnUse(t *testing.T) {
	rule := NewPattern(`[unclosed`)
	if _, err := rule.Regexp(); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestRange_BoundParams(t *testing.T) {
	rule := NewRange(0.5, 10)
	if got := rule.MinParam(); got != "0.5" {
		t.Fatalf("min param: %q", got)
	}
	if got := rule.MaxParam(); got != "10" {
		t.Fatalf("max param: %q", got)
	}

	open := &Range{}
	if got := open.MinParam(); got != "" {
		t.Fatalf("open bound should render empty, got %q", got)
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty(nil, false) {
		t.Fatalf("nil should be empty")
	}
	if !IsEmpty("   ", false) {
		t.Fatalf("whitespace string should be empty")
	}
	if IsEmpty("   ", true) {
		t.Fatalf("whitespace string allowed when AllowEmpty")
	}
	if IsEmpty(0, false) {
		t.Fatalf("zero is a present value")
	}
}
