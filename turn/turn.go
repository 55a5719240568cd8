// Package turn implements the turn orchestration core: given a conversation
// history, produce exactly one assistant reply plus an optional structured
// tool result. Two strategies exist. EngineStrategy drives an external
// reasoning engine through the two-phase tool-call protocol; RuleStrategy is
// the deterministic fallback used when no engine is configured.
//
// Strategies never append to the conversation themselves. The caller owns the
// history and the appending of the produced messages.
package turn

import (
	"context"

	"github.com/hupe1980/orderbot/conversation"
	"github.com/hupe1980/orderbot/engine"
	"github.com/hupe1980/orderbot/logging"
	"github.com/hupe1980/orderbot/tool"
)

// systemDirective is the fixed instruction sent to reasoning engines.
const systemDirective = "You are an order assistant. Use the available tools to look up or cancel " +
	"orders. Never invent order data. If the user requests to cancel an order " +
	"that is already shipped or canceled, explain that the order cannot be canceled."

// Strategy produces one assistant turn from the conversation history. The
// returned tool result is nil when no tool ran. Implementations are pure with
// respect to history: they read it, never mutate or reorder it.
type Strategy interface {
	TakeTurn(ctx context.Context, history []conversation.Message) (conversation.Message, *tool.Result, error)
}

// Options configure strategy construction.
type Options struct {
	Logger logging.Logger
}

func defaultOptions() Options {
	return Options{Logger: logging.NoOpLogger{}}
}

// New selects the strategy once at startup: engine-backed when an engine is
// configured, the rule-based fallback otherwise. A nil engine is not an error
// condition.
func New(eng engine.Engine, registry *tool.Registry, optFns ...func(o *Options)) Strategy {
	if eng == nil {
		return NewRuleStrategy(registry, optFns...)
	}
	return NewEngineStrategy(eng, registry, optFns...)
}

// definitions exposes the registry's tools as engine tool declarations.
func definitions(registry *tool.Registry) []engine.ToolDefinition {
	tools := registry.All()
	defs := make([]engine.ToolDefinition, len(tools))
	for i, t := range tools {
		defs[i] = engine.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		}
	}
	return defs
}

// toEngineMessages converts stored conversation history into engine context.
// Stored tool messages carry no call id, so provider adapters omit them; see
// the engine package doc.
func toEngineMessages(history []conversation.Message) []engine.Message {
	msgs := make([]engine.Message, len(history))
	for i, m := range history {
		msgs[i] = engine.Message{
			Role:     string(m.Role),
			Content:  m.Content,
			ToolName: m.ToolName,
		}
	}
	return msgs
}

func assistantMessage(content string) conversation.Message {
	return conversation.Message{Role: conversation.RoleAssistant, Content: content}
}
