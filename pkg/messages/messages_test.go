package messages

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat_PositionalPlaceholders(t *testing.T) {
	cases := []struct {
		name     string
		template string
		args     []string
		want     string
	}{
		{
			name:     "single placeholder",
			template: "The {0} field is required.",
			args:     []string{"title"},
			want:     "The title field is required.",
		},
		{
			name:     "repeated and reordered",
			template: "{1} then {0} then {1}",
			args:     []string{"a", "b"},
			want:     "b then a then b",
		},
		{
			name:     "escaped braces collapse",
			template: "var cfg = {{mode: \"{0}\"}};",
			args:     []string{"strict"},
			want:     "var cfg = {mode: \"strict\"};",
		},
		{
			name:     "missing argument left intact",
			template: "needs {0} and {3}",
			args:     []string{"one"},
			want:     "needs one and {3}",
		},
		{
			name:     "non numeric placeholder untouched",
			template: "json {key} stays",
			args:     []string{"x"},
			want:     "json {key} stays",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Format(tc.template, tc.args...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("format mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCatalog_LookupFallsBackToDefaults(t *testing.T) {
	catalog := NewCatalog()
	if err := catalog.Set("required", "Provide {0}."); err != nil {
		t.Fatalf("set: %v", err)
	}

	if got := catalog.Lookup("required"); got != "Provide {0}." {
		t.Fatalf("expected override, got %q", got)
	}
	if got := catalog.Lookup("range"); got != Default("range") {
		t.Fatalf("expected default range template, got %q", got)
	}
	if got := catalog.Lookup("nope"); got != Default("nope") {
		t.Fatalf("expected generic fallback, got %q", got)
	}
}

func TestParseCatalog(t *testing.T) {
	data := []byte("messages:\n  required: \"Please provide {0}.\"\n  range: \"{0} must sit between {1} and {2}.\"\n")

	catalog, err := ParseCatalog(data)
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	if got := catalog.Lookup("required"); got != "Please provide {0}." {
		t.Fatalf("unexpected required template: %q", got)
	}
	if got := Format(catalog.Lookup("range"), "rating", "1", "5"); got != "rating must sit between 1 and 5." {
		t.Fatalf("unexpected formatted range: %q", got)
	}
}

func TestParseCatalog_RejectsEmptyKind(t *testing.T) {
	if _, err := ParseCatalog([]byte("messages:\n  \"\": nope\n")); err == nil {
		t.Fatalf("expected error for empty rule kind")
	}
}
