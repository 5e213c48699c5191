package llm

import (
	"encoding/json"
	"strings"
	"testing"
)

func testSchema() *Schema {
	return Object(
		Required("summary", String()),
		Required("topics", Array(Object(
			Required("title", String()),
			Required("startTime", Number()),
		))),
		Optional("attendees", Array(Object(
			Required("name", String()),
		))),
		Required("priority", Enum("high", "medium", "low")),
	)
}

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("invalid test JSON: %v", err)
	}
	return v
}

func TestSchemaValidate_Conforming(t *testing.T) {
	v := decode(t, `{
		"summary": "weekly sync",
		"topics": [{"title": "roadmap", "startTime": 0}],
		"priority": "high"
	}`)
	if diags := testSchema().Validate(v); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestSchemaValidate_MissingRequiredField(t *testing.T) {
	v := decode(t, `{"topics": [], "priority": "low"}`)
	diags := testSchema().Validate(v)
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	if !strings.Contains(diags[0], `missing required field "summary"`) {
		t.Fatalf("unexpected diagnostic %q", diags[0])
	}
}

func TestSchemaValidate_OptionalFieldAbsentOrNull(t *testing.T) {
	for _, raw := range []string{
		`{"summary": "s", "topics": [], "priority": "low"}`,
		`{"summary": "s", "topics": [], "priority": "low", "attendees": null}`,
	} {
		if diags := testSchema().Validate(decode(t, raw)); len(diags) != 0 {
			t.Fatalf("expected no diagnostics for %s, got %v", raw, diags)
		}
	}
}

func TestSchemaValidate_WrongTypesWithPaths(t *testing.T) {
	v := decode(t, `{
		"summary": 42,
		"topics": [{"title": "ok", "startTime": "zero"}],
		"priority": "urgent"
	}`)
	diags := testSchema().Validate(v)
	if len(diags) != 3 {
		t.Fatalf("expected three diagnostics, got %v", diags)
	}
	wantFragments := []string{
		"$.summary: expected string, got number",
		"$.topics[0].startTime: expected number, got string",
		`$.priority: value "urgent" is not one of`,
	}
	for i, want := range wantFragments {
		if !strings.Contains(diags[i], want) {
			t.Fatalf("diagnostic %d = %q, want fragment %q", i, diags[i], want)
		}
	}
}

func TestSchemaValidate_RootTypeMismatch(t *testing.T) {
	diags := testSchema().Validate(decode(t, `[1, 2]`))
	if len(diags) != 1 || !strings.Contains(diags[0], "$: expected object, got array") {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
}

func TestSchemaRender(t *testing.T) {
	out := testSchema().Render()
	for _, want := range []string{
		`"summary": string`,
		`"startTime": number`,
		`"attendees": [`,
		`(optional)`,
		`"high" | "medium" | "low"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered schema missing %q:\n%s", want, out)
		}
	}
}
