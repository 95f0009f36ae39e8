package validation

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formval/pkg/metadata"
	"github.com/goliatone/go-formval/pkg/rules"
)

func TestDefaultProvider_ValidatableTypeYieldsSingleValidator(t *testing.T) {
	md := metadata.NewBuilder("Profile").Validatable().Build()

	ctx := NewProviderContext(md)
	NewDefaultProvider(nil).GetValidators(ctx)

	if len(ctx.Items) != 1 {
		t.Fatalf("expected exactly one item, got %d", len(ctx.Items))
	}
	if _, ok := ctx.Items[0].Validator.(*ValidatableObjectValidator); !ok {
		t.Fatalf("expected validatable-object validator, got %T", ctx.Items[0].Validator)
	}
	if !ctx.Items[0].Resolved {
		t.Fatalf("validatable item must be marked resolved")
	}
}

func TestDefaultProvider_ValidatableNotDuplicatedOnSecondRun(t *testing.T) {
	md := metadata.NewBuilder("Profile").Validatable().Build()

	provider := NewDefaultProvider(nil)
	ctx := NewProviderContext(md)
	provider.GetValidators(ctx)
	provider.GetValidators(ctx)

	if len(ctx.Items) != 1 {
		t.Fatalf("expected one item after repeated runs, got %d", len(ctx.Items))
	}
}

func TestDefaultProvider_ValidatorCapabilityWinsOverTable(t *testing.T) {
	// Custom implements the server-validator capability, so it must take
	// the pass-through path even with a table entry claiming its kind.
	rule := rules.NewCustom("slug-check", func(any) error { return nil })
	table := NewEmptyTable()
	table.Register(rules.KindCustom, 0, func(r rules.Rule) bool { return r.Kind() == rules.KindCustom }, func(rules.Rule) Validator {
		return &RequiredValidator{Rule: rules.NewRequired()}
	})

	builder := metadata.NewBuilder("Article")
	builder.Property("slug").Rules(rule)
	md, _ := builder.Build().PropertyMetadata("slug")

	ctx := NewProviderContext(md)
	NewDefaultProvider(table).GetValidators(ctx)

	if len(ctx.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(ctx.Items))
	}
	if _, ok := ctx.Items[0].Validator.(*PassThroughValidator); !ok {
		t.Fatalf("expected pass-through validator, got %T", ctx.Items[0].Validator)
	}
}

func TestDefaultProvider_TableResolvesKnownKinds(t *testing.T) {
	builder := metadata.NewBuilder("Article")
	builder.Property("rating").
		FieldType(metadata.FieldTypeNumber).
		Rules(rules.NewRequired(), rules.NewRange(1, 5))
	md, _ := builder.Build().PropertyMetadata("rating")

	ctx := NewProviderContext(md)
	NewDefaultProvider(nil).GetValidators(ctx)

	if len(ctx.Items) != 2 {
		t.Fatalf("expected two items, got %d", len(ctx.Items))
	}
	if _, ok := ctx.Items[0].Validator.(*RequiredValidator); !ok {
		t.Fatalf("expected required validator first, got %T", ctx.Items[0].Validator)
	}
	if _, ok := ctx.Items[1].Validator.(*RangeValidator); !ok {
		t.Fatalf("expected range validator second, got %T", ctx.Items[1].Validator)
	}
}

type unknownRule struct{}

func (unknownRule) Kind() string         { return "unknown" }
func (unknownRule) ErrorMessage() string { return "" }

func TestDefaultProvider_UnresolvedRulesAreLeftUnclaimed(t *testing.T) {
	builder := metadata.NewBuilder("Article")
	builder.Property("title").Rules(unknownRule{})
	md, _ := builder.Build().PropertyMetadata("title")

	ctx := NewProviderContext(md)
	NewDefaultProvider(nil).GetValidators(ctx)

	if len(ctx.Items) != 1 {
		t.Fatalf("expected the item to remain, got %d", len(ctx.Items))
	}
	if ctx.Items[0].Resolved || ctx.Items[0].Validator != nil {
		t.Fatalf("unknown rule must stay unresolved")
	}
}

type stampProvider struct {
	validator Validator
}

func (p *stampProvider) GetValidators(ctx *ProviderContext) {
	for _, item := range ctx.Items {
		if item.Resolved {
			continue
		}
		item.Validator = p.validator
		item.Resolved = true
	}
}

func TestCompositeProvider_FirstAssignmentWins(t *testing.T) {
	first := &RequiredValidator{Rule: rules.NewRequired()}
	second := &RangeValidator{Rule: rules.NewRange(0, 1)}

	builder := metadata.NewBuilder("Article")
	builder.Property("title").Rules(unknownRule{})
	md, _ := builder.Build().PropertyMetadata("title")

	chain := NewCompositeProvider(&stampProvider{validator: first}, &stampProvider{validator: second})
	ctx := NewProviderContext(md)
	chain.GetValidators(ctx)

	if ctx.Items[0].Validator != Validator(first) {
		t.Fatalf("first provider in chain order must win")
	}
}

type profileModel struct {
	issues []Issue
}

func (m *profileModel) Validate() []Issue { return m.issues }

func TestRunner_ValidateModelRunsValidatableObject(t *testing.T) {
	reg := metadata.NewRegistry()
	reg.MustRegister(metadata.NewBuilder("Profile").Validatable().Build())

	runner := NewRunner(reg)
	model := &profileModel{issues: []Issue{{Field: "bio", Message: "bio is too long"}}}

	issues, err := runner.ValidateModel("Profile", nil, model)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(issues) != 1 || issues[0].Field != "bio" {
		t.Fatalf("expected the model's own issue, got %+v", issues)
	}
}

func TestRunner_ValidateModelExecutesPropertyRules(t *testing.T) {
	reg := metadata.NewRegistry()
	builder := metadata.NewBuilder("Article")
	builder.Property("title").Rules(rules.NewRequired(), rules.NewLength(3, 10))
	builder.Property("rating").FieldType(metadata.FieldTypeNumber).Rules(rules.NewRange(1, 5))
	reg.MustRegister(builder.Build())

	runner := NewRunner(reg)

	issues, err := runner.ValidateModel("Article", map[string]any{
		"title":  "go",
		"rating": 9,
	}, nil)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected length and range issues, got %+v", issues)
	}
	if issues[0].Field != "title" || issues[1].Field != "rating" {
		t.Fatalf("issues out of order: %+v", issues)
	}
}

func TestRunner_ValidatePropertySkipsUnresolvedRules(t *testing.T) {
	reg := metadata.NewRegistry()
	builder := metadata.NewBuilder("Article")
	builder.Property("title").Rules(unknownRule{})
	reg.MustRegister(builder.Build())

	issues, err := NewRunner(reg).ValidateProperty("Article", "title", "")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("unresolved rules must be omitted, got %+v", issues)
	}
}

func TestRunner_UnknownModelTypeErrors(t *testing.T) {
	if _, err := NewRunner(metadata.NewRegistry()).ValidateModel("Ghost", nil, nil); err == nil {
		t.Fatalf("expected error for unregistered type")
	}
}

func TestPassThroughValidator_UsesRuleMessageWhenSet(t *testing.T) {
	rule := rules.NewCustom("slug-check", func(any) error { return errors.New("internal detail") })
	rule.Message = "Slug is not acceptable."

	builder := metadata.NewBuilder("Article")
	builder.Property("slug").Rules(rule)
	reg := metadata.NewRegistry()
	reg.MustRegister(builder.Build())

	issues, err := NewRunner(reg).ValidateProperty("Article", "slug", "???")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(issues) != 1 || issues[0].Message != "Slug is not acceptable." {
		t.Fatalf("expected the authored message, got %+v", issues)
	}
}

func TestValidators_CompareChecksSiblingValue(t *testing.T) {
	reg := metadata.NewRegistry()
	builder := metadata.NewBuilder("Signup")
	builder.Property("password").Rules(rules.NewRequired())
	builder.Property("confirm").Rules(rules.NewCompare("password"))
	reg.MustRegister(builder.Build())

	runner := NewRunner(reg)

	issues, err := runner.ValidateModel("Signup", map[string]any{
		"password": "hunter2",
		"confirm":  "hunter3",
	}, nil)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(issues) != 1 || issues[0].Field != "confirm" {
		t.Fatalf("expected compare issue, got %+v", issues)
	}

	issues, err = runner.ValidateModel("Signup", map[string]any{
		"password": "hunter2",
		"confirm":  "hunter2",
	}, nil)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("matching values must pass, got %+v", issues)
	}
}
