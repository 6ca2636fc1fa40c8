package tools

import "fmt"

// UnknownToolError is returned when a call names a tool that is not in the
// catalog.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// MissingParameterError is returned when a required parameter is absent.
type MissingParameterError struct {
	Tool  string
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("tool %q: missing required parameter %q", e.Tool, e.Param)
}

// TypeMismatchError is returned when a parameter value cannot be accepted
// without lossy coercion.
type TypeMismatchError struct {
	Tool  string
	Param string
	Want  ParamType
	Got   any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("tool %q: parameter %q must be %s, got %T", e.Tool, e.Param, e.Want, e.Got)
}

// OutOfRangeError is returned when an integer parameter violates its bounds.
type OutOfRangeError struct {
	Tool     string
	Param    string
	Value    int
	Min, Max *int
}

func (e *OutOfRangeError) Error() string {
	switch {
	case e.Min != nil && e.Max != nil:
		return fmt.Sprintf("tool %q: parameter %q must be between %d and %d, got %d", e.Tool, e.Param, *e.Min, *e.Max, e.Value)
	case e.Min != nil:
		return fmt.Sprintf("tool %q: parameter %q must be at least %d, got %d", e.Tool, e.Param, *e.Min, e.Value)
	default:
		return fmt.Sprintf("tool %q: parameter %q must be at most %d, got %d", e.Tool, e.Param, *e.Max, e.Value)
	}
}

// PathNotFoundError is returned by the list_files tool for a nonexistent path.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("Path '%s' does not exist", e.Path)
}

// NotADirectoryError is returned by the list_files tool when the path exists
// but is not a directory.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("Path '%s' is not a directory", e.Path)
}

// InvalidExpressionError is returned by the calculator before evaluation when
// the expression contains characters outside the whitelist.
type InvalidExpressionError struct {
	Expression string
}

func (e *InvalidExpressionError) Error() string {
	return "Expression contains invalid characters"
}
