package openapi

import (
	"context"
	"testing"

	"github.com/goliatone/go-formval/pkg/metadata"
	"github.com/goliatone/go-formval/pkg/rules"
)

const articleDocument = `{
  "openapi": "3.0.3",
  "info": {"title": "Articles", "version": "1.0.0"},
  "paths": {
    "/articles": {
      "post": {
        "operationId": "createArticle",
        "summary": "Create an article",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["title"],
                "properties": {
                  "title": {
                    "type": "string",
                    "title": "Title",
                    "minLength": 3,
                    "maxLength": 80
                  },
                  "rating": {
                    "type": "number",
                    "minimum": 1,
                    "maximum": 5
                  },
                  "slug": {
                    "type": "string",
                    "pattern": "^[a-z-]+$"
                  }
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func TestAdapter_OperationsListsDeclaredOperations(t *testing.T) {
	adapter := New(Options{})

	refs, err := adapter.Operations(context.Background(), []byte(articleDocument))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected one operation, got %d", len(refs))
	}
	ref := refs[0]
	if ref.ID != "createArticle" || ref.Method != "POST" || ref.Path != "/articles" {
		t.Fatalf("unexpected ref: %+v", ref)
	}
}

func TestAdapter_MetadataDerivesRulesFromConstraints(t *testing.T) {
	adapter := New(Options{})

	md, err := adapter.Metadata(context.Background(), []byte(articleDocument), "createArticle")
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if md.ModelType() != "createArticle" {
		t.Fatalf("model type: %q", md.ModelType())
	}
	if got := len(md.Properties()); got != 3 {
		t.Fatalf("expected 3 properties, got %d", got)
	}

	title, ok := md.PropertyMetadata("title")
	if !ok {
		t.Fatalf("title metadata missing")
	}
	if title.DisplayName() != "Title" {
		t.Fatalf("display name: %q", title.DisplayName())
	}
	titleKinds := ruleKinds(title)
	if len(titleKinds) != 2 || titleKinds[0] != rules.KindRequired || titleKinds[1] != rules.KindLength {
		t.Fatalf("title rules: %v", titleKinds)
	}

	rating, ok := md.PropertyMetadata("rating")
	if !ok {
		t.Fatalf("rating metadata missing")
	}
	if rating.FieldType() != metadata.FieldTypeNumber {
		t.Fatalf("rating field type: %q", rating.FieldType())
	}
	ratingRules := rating.Rules()
	if len(ratingRules) != 1 {
		t.Fatalf("rating rules: %d", len(ratingRules))
	}
	rangeRule, ok := ratingRules[0].(*rules.Range)
	if !ok {
		t.Fatalf("expected range rule, got %T", ratingRules[0])
	}
	if rangeRule.MinParam() != "1" || rangeRule.MaxParam() != "5" {
		t.Fatalf("range bounds: %s..%s", rangeRule.MinParam(), rangeRule.MaxParam())
	}

	slug, ok := md.PropertyMetadata("slug")
	if !ok {
		t.Fatalf("slug metadata missing")
	}
	slugRules := slug.Rules()
	if len(slugRules) != 1 {
		t.Fatalf("slug rules: %d", len(slugRules))
	}
	if pattern, ok := slugRules[0].(*rules.Pattern); !ok || pattern.Expression != "^[a-z-]+$" {
		t.Fatalf("unexpected slug rule: %#v", slugRules[0])
	}
}

func TestAdapter_UnknownOperationErrors(t *testing.T) {
	adapter := New(Options{})
	if _, err := adapter.Metadata(context.Background(), []byte(articleDocument), "ghost"); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}

func TestAdapter_EmptyDocumentErrors(t *testing.T) {
	adapter := New(Options{})
	if _, err := adapter.Operations(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func ruleKinds(md *metadata.Metadata) []string {
	var kinds []string
	for _, rule := range md.Rules() {
		kinds = append(kinds, rule.Kind())
	}
	return kinds
}
