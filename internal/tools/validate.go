package tools

import (
	"encoding/json"
	"math"
)

// Validate checks an untrusted argument map against a tool's spec and returns
// a normalized copy: defaults substituted, integers as int, strings as string,
// booleans as bool. It is a pure function of the spec and the input.
//
// Coercion never loses information: a float is accepted for an integer
// parameter only when it has no fractional part (JSON numbers decode as
// float64), and strings are never parsed into numbers or booleans.
func (r *Registry) Validate(name string, args map[string]any) (map[string]any, error) {
	tool, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return ValidateArgs(tool.Spec, args)
}

// ValidateArgs validates an argument map against a single spec.
func ValidateArgs(spec ToolSpec, args map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(spec.Params))
	for _, p := range spec.Params {
		raw, present := args[p.Name]
		if !present || raw == nil {
			if p.Required {
				return nil, &MissingParameterError{Tool: spec.Name, Param: p.Name}
			}
			if p.Default != nil {
				out[p.Name] = p.Default
			}
			continue
		}

		switch p.Type {
		case ParamString:
			s, ok := raw.(string)
			if !ok {
				return nil, &TypeMismatchError{Tool: spec.Name, Param: p.Name, Want: p.Type, Got: raw}
			}
			out[p.Name] = s

		case ParamInteger:
			n, ok := asInt(raw)
			if !ok {
				return nil, &TypeMismatchError{Tool: spec.Name, Param: p.Name, Want: p.Type, Got: raw}
			}
			if (p.Min != nil && n < *p.Min) || (p.Max != nil && n > *p.Max) {
				return nil, &OutOfRangeError{Tool: spec.Name, Param: p.Name, Value: n, Min: p.Min, Max: p.Max}
			}
			out[p.Name] = n

		case ParamBoolean:
			b, ok := raw.(bool)
			if !ok {
				return nil, &TypeMismatchError{Tool: spec.Name, Param: p.Name, Want: p.Type, Got: raw}
			}
			out[p.Name] = b
		}
	}
	return out, nil
}

// asInt accepts the integer shapes a JSON decode or a Go caller can produce.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

// ArgString fetches a validated string argument.
func ArgString(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// ArgInt fetches a validated integer argument.
func ArgInt(args map[string]any, name string) int {
	n, _ := args[name].(int)
	return n
}

// ArgBool fetches a validated boolean argument.
func ArgBool(args map[string]any, name string) bool {
	b, _ := args[name].(bool)
	return b
}
