package tools

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	reg := NewRegistry(logger)

	tool := &Tool{
		Spec: ToolSpec{
			Name:        "probe",
			Description: "test tool",
			Params: []ParameterSpec{
				{Name: "query", Type: ParamString, Required: true},
				{Name: "count", Type: ParamInteger, Default: 3, Min: IntPtr(1), Max: IntPtr(7)},
				{Name: "verbose", Type: ParamBoolean, Default: false},
			},
		},
		Run: func(_ context.Context, _ map[string]any) (string, error) { return "ok", nil },
	}
	if err := reg.Register(tool); err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestValidateUnknownTool(t *testing.T) {
	reg := testRegistry(t)

	_, err := reg.Validate("nonexistent", map[string]any{})
	var unknownErr *UnknownToolError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownToolError, got %v", err)
	}
	if unknownErr.Name != "nonexistent" {
		t.Errorf("unexpected tool name: %s", unknownErr.Name)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	reg := testRegistry(t)

	_, err := reg.Validate("probe", map[string]any{"count": 2})
	var missingErr *MissingParameterError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
	if missingErr.Param != "query" {
		t.Errorf("expected missing param 'query', got %q", missingErr.Param)
	}
	if !strings.Contains(err.Error(), "query") {
		t.Errorf("error message should name the field: %s", err.Error())
	}
}

func TestValidateDefaults(t *testing.T) {
	reg := testRegistry(t)

	out, err := reg.Validate("probe", map[string]any{"query": "oslo"})
	if err != nil {
		t.Fatal(err)
	}
	if got := ArgInt(out, "count"); got != 3 {
		t.Errorf("expected default count 3, got %d", got)
	}
	if ArgBool(out, "verbose") {
		t.Error("expected default verbose false")
	}
	if got := ArgString(out, "query"); got != "oslo" {
		t.Errorf("unexpected query: %q", got)
	}
}

func TestValidateTypeChecks(t *testing.T) {
	reg := testRegistry(t)

	cases := []struct {
		name string
		args map[string]any
	}{
		{"string for integer", map[string]any{"query": "x", "count": "5"}},
		{"fractional float for integer", map[string]any{"query": "x", "count": 2.5}},
		{"integer for string", map[string]any{"query": 42}},
		{"string for boolean", map[string]any{"query": "x", "verbose": "true"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.Validate("probe", tc.args)
			var typeErr *TypeMismatchError
			if !errors.As(err, &typeErr) {
				t.Fatalf("expected TypeMismatchError, got %v", err)
			}
		})
	}
}

func TestValidateIntegralFloatAccepted(t *testing.T) {
	reg := testRegistry(t)

	// JSON numbers decode as float64; 5.0 carries no information loss.
	out, err := reg.Validate("probe", map[string]any{"query": "x", "count": 5.0})
	if err != nil {
		t.Fatal(err)
	}
	if got := ArgInt(out, "count"); got != 5 {
		t.Errorf("expected count 5, got %d", got)
	}
}

func TestValidateOutOfRange(t *testing.T) {
	reg := testRegistry(t)

	for _, v := range []int{0, 8} {
		_, err := reg.Validate("probe", map[string]any{"query": "x", "count": v})
		var rangeErr *OutOfRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("count=%d: expected OutOfRangeError, got %v", v, err)
		}
		if !strings.Contains(err.Error(), "between 1 and 7") {
			t.Errorf("error should state the bounds: %s", err.Error())
		}
	}
}

func TestValidateIsPure(t *testing.T) {
	reg := testRegistry(t)

	args := map[string]any{"query": "oslo"}
	if _, err := reg.Validate("probe", args); err != nil {
		t.Fatal(err)
	}
	// The input map must not be mutated by default substitution.
	if _, ok := args["count"]; ok {
		t.Error("validate mutated the caller's argument map")
	}
}

func TestRegistryOrderAndSchema(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	reg := NewRegistry(logger)

	for _, name := range []string{"alpha", "beta", "gamma"} {
		err := reg.Register(&Tool{
			Spec: ToolSpec{Name: name, Params: []ParameterSpec{{Name: "q", Type: ParamString, Required: true}}},
			Run:  func(_ context.Context, _ map[string]any) (string, error) { return "", nil },
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	specs := reg.Specs()
	if len(specs) != 3 {
		t.Fatalf("expected 3 specs, got %d", len(specs))
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if specs[i].Name != want {
			t.Errorf("spec %d: expected %s, got %s", i, want, specs[i].Name)
		}
	}

	schema := specs[0].InputSchema()
	if schema["type"] != "object" {
		t.Errorf("expected object schema, got %v", schema["type"])
	}
	required, ok := schema["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "q" {
		t.Errorf("unexpected required list: %v", schema["required"])
	}
}

func TestRegistryDuplicate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	reg := NewRegistry(logger)

	tool := &Tool{
		Spec: ToolSpec{Name: "dup"},
		Run:  func(_ context.Context, _ map[string]any) (string, error) { return "", nil },
	}
	if err := reg.Register(tool); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(tool); err == nil {
		t.Error("expected error for duplicate registration")
	}
}
