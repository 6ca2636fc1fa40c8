// Package types provides shared types used across skydeck packages
// to avoid import cycles between channels and dispatch.
package types

import "strings"

// ContentKind identifies the type of a ContentBlock.
type ContentKind string

const (
	ContentKindText ContentKind = "text"
)

// ContentBlock is a single unit of tool output. Tool errors are carried as
// text blocks too, prefixed "Error:", so callers always receive a well-formed
// text response rather than a transport-level fault.
type ContentBlock struct {
	Type ContentKind `json:"type"`
	Text string      `json:"text,omitempty"`
}

// TextBlock creates a text ContentBlock.
func TextBlock(text string) ContentBlock {
	return ContentBlock{
		Type: ContentKindText,
		Text: text,
	}
}

// ErrorBlock creates a text ContentBlock carrying a rendered error message.
func ErrorBlock(message string) ContentBlock {
	if !strings.HasPrefix(message, "Error:") {
		message = "Error: " + message
	}
	return ContentBlock{
		Type: ContentKindText,
		Text: message,
	}
}

// ToolResult is the structured return value from a tool call. It is the only
// output type handed back to transport adapters.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// Text returns all text content blocks concatenated with newlines.
func (r ToolResult) Text() string {
	var parts []string
	for _, block := range r.Content {
		if block.Type == ContentKindText && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ErrorResult builds a single-block error result.
func ErrorResult(message string) ToolResult {
	return ToolResult{
		Content: []ContentBlock{ErrorBlock(message)},
		IsError: true,
	}
}

// TextResult builds a single-block success result.
func TextResult(text string) ToolResult {
	return ToolResult{
		Content: []ContentBlock{TextBlock(text)},
	}
}
