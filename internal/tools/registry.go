package tools

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry maintains the process-wide tool catalog. Registration happens once
// at startup; lookups are concurrent.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]*Tool
	order  []string // registration order, preserved for tools/list
	logger *slog.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		tools:  make(map[string]*Tool),
		logger: logger.With("component", "tool_registry"),
	}
}

// Register adds a tool to the catalog.
func (r *Registry) Register(tool *Tool) error {
	if tool == nil || tool.Spec.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if tool.Run == nil && tool.RunBlocks == nil {
		return fmt.Errorf("tool %q has no handler", tool.Spec.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Spec.Name
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	r.logger.Debug("registered tool", "tool", name, "params", len(tool.Spec.Params))
	return nil
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (*Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return tool, nil
}

// Specs returns all tool specs in registration order.
func (r *Registry) Specs() []ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.tools[name].Spec)
	}
	return specs
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
