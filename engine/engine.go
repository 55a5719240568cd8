// Package engine defines the reasoning engine abstraction: a provider-neutral
// chat request carrying conversation context and tool declarations, and a
// reply that is either plain text or a single tool call request. Provider
// adapters live in the subpackages.
//
// Tool messages are representable to providers only when paired with the
// originating call via ToolCallID. Adapters therefore render the in-turn
// assistant-call/tool-result pair built by the orchestrator, and omit
// historical tool messages replayed from stored conversations, which carry no
// call id. The final assistant reply of those earlier turns already restates
// the tool outcome, so the conversational context survives the omission.
package engine

import "context"

// Conversation roles as understood by provider adapters.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one entry of the context sent to an engine. ToolCall is set on
// assistant messages that requested a function; ToolCallID/ToolName are set on
// tool messages carrying the serialized result of that call.
type Message struct {
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	ToolCall   *ToolCall `json:"tool_call,omitempty"`
	ToolCallID string    `json:"tool_call_id,omitempty"`
	ToolName   string    `json:"tool_name,omitempty"`
}

// ToolCall represents a function call request surfaced by an engine. Unified
// across vendors so downstream logic does not need per-provider branching.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string of arguments
}

// ToolDefinition declaratively exposes a callable function to the engine.
// Parameters is a JSON Schema object (minimal subset expected).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized engine input produced by the orchestrator.
type Request struct {
	Instructions string           `json:"instructions"`
	Messages     []Message        `json:"messages"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
}

// Reply is the engine's answer to one request. ToolCall is non-nil when the
// engine requested a function instead of replying directly; Text carries the
// direct reply otherwise.
type Reply struct {
	Text     string    `json:"text"`
	ToolCall *ToolCall `json:"tool_call,omitempty"`
}

// Info contains metadata about an engine implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Engine is the minimal interface the turn orchestration needs to drive
// generation. Chat is a single blocking step: no partial or streaming result
// contract. Timeout handling belongs to the provider client configuration.
type Engine interface {
	Chat(ctx context.Context, req Request) (*Reply, error)

	// Info returns information about the engine implementation.
	Info() Info
}
