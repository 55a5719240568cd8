// Package conversation holds the chat data model: messages, append-only
// conversations and a process-local store keyed by conversation id.
package conversation

import "sync"

// Role identifies the origin of a message.
type Role string

const (
	// RoleUser marks messages typed by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks replies produced by a turn strategy.
	RoleAssistant Role = "assistant"
	// RoleTool marks internal messages carrying a serialized tool result.
	RoleTool Role = "tool"
)

// Message is one entry in a conversation. ToolName is set iff Role is RoleTool.
type Message struct {
	Role     Role   `json:"role"`
	Content  string `json:"content"`
	ToolName string `json:"tool_name,omitempty"`
}

// Conversation is an ordered, append-only message sequence. Messages are never
// removed or edited once appended. It is safe for concurrent access; turns on
// the same conversation are serialized via BeginTurn/EndTurn, which callers
// must hold across the full append-user / take-turn / append-reply sequence.
type Conversation struct {
	ID string

	mu   sync.RWMutex
	msgs []Message

	turn sync.Mutex
}

// Append adds a message to the end of the history.
func (c *Conversation) Append(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

// Messages returns a defensive copy of the full history, tool messages included.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	msgs := make([]Message, len(c.msgs))
	copy(msgs, c.msgs)
	return msgs
}

// Visible returns a copy of the history restricted to user and assistant
// messages, the view exposed to API clients.
func (c *Conversation) Visible() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	msgs := make([]Message, 0, len(c.msgs))
	for _, m := range c.msgs {
		if m.Role == RoleUser || m.Role == RoleAssistant {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// Len returns the number of messages including tool messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.msgs)
}

// BeginTurn blocks until this conversation has no other in-flight turn.
func (c *Conversation) BeginTurn() { c.turn.Lock() }

// EndTurn releases the turn acquired by BeginTurn.
func (c *Conversation) EndTurn() { c.turn.Unlock() }
