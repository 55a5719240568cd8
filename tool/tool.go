// Package tool implements the function calling subsystem: schema validated
// order tools (lookup, cancellation) with consistent error handling and the
// tagged result type the turn orchestration folds back into replies.
package tool

import "fmt"

// Tool is a callable capability exposed to the turn orchestration and, when an
// external reasoning engine is configured, declared to it for automatic
// function calling.
//
// Implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define a JSON schema for parameters
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case).
	Name() string

	// Description returns a human-readable description provided to the engine
	// to help it decide when to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input.
	Parameters() map[string]any

	// Call validates the arguments and executes the tool. Validation failures
	// return a *ToolError with code CodeInvalidInput.
	Call(args map[string]any) (*Result, error)
}

// Error codes carried by ToolError.
const (
	// CodeInvalidInput marks arguments that failed schema validation.
	CodeInvalidInput = "INVALID_INPUT"
	// CodeExecution marks failures inside the tool body.
	CodeExecution = "EXECUTION_ERROR"
)

// ToolError represents errors that occur during tool invocation.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}

// Registry is an immutable name -> Tool lookup built once at startup.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry indexes the given tools by name. Later duplicates overwrite
// earlier ones.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if _, exists := r.tools[t.Name()]; !exists {
			r.order = append(r.order, t.Name())
		}
		r.tools[t.Name()] = t
	}
	return r
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// All returns the registered tools in registration order.
func (r *Registry) All() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}
