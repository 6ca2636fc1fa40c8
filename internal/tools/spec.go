// Package tools defines the tool catalog: per-tool specs with typed input
// schemas, the argument validator, and the built-in local tools.
package tools

import (
	"context"

	"github.com/clawinfra/skydeck/internal/types"
)

// ParamType is the declared type of a tool parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamInteger ParamType = "integer"
	ParamBoolean ParamType = "boolean"
)

// ParameterSpec describes a single tool parameter. It drives both the
// advertised input schema and runtime validation.
type ParameterSpec struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Default     any  // substituted when the parameter is absent
	Min, Max    *int // integer bounds, inclusive
}

// ToolSpec describes a tool: name, description, and ordered parameter set.
// Specs are immutable and registered once at process start.
type ToolSpec struct {
	Name        string
	Description string
	Params      []ParameterSpec
}

// Handler executes a tool and returns exactly one text block, or an error
// that the dispatcher renders as a single error block.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// BlockHandler executes a tool that assembles multiple ordered text blocks
// (the composite location-data tool). Takes precedence over Run when set.
type BlockHandler func(ctx context.Context, args map[string]any) types.ToolResult

// Tool binds a spec to its handler.
type Tool struct {
	Spec      ToolSpec
	Run       Handler
	RunBlocks BlockHandler
}

// IntPtr is a convenience for inline bound declarations in specs.
func IntPtr(v int) *int { return &v }

// InputSchema renders the spec's parameters as a JSON-Schema-shaped object
// for the wire protocol (tools/list).
func (s ToolSpec) InputSchema() map[string]any {
	props := make(map[string]any, len(s.Params))
	required := []string{}
	for _, p := range s.Params {
		prop := map[string]any{
			"type":        string(p.Type),
			"description": p.Description,
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		if p.Min != nil {
			prop["minimum"] = *p.Min
		}
		if p.Max != nil {
			prop["maximum"] = *p.Max
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
