package turn

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/orderbot/conversation"
	"github.com/hupe1980/orderbot/engine"
	"github.com/hupe1980/orderbot/logging"
	"github.com/hupe1980/orderbot/tool"
)

// Replies for engine protocol failures. These end the turn without a tool
// result; they are never retried.
const (
	replyArgumentParseFailure = "Sorry, I couldn't parse the tool arguments."
	replyToolFailure          = "Sorry, I couldn't process that tool request."
)

// EngineStrategy delegates turns to an external reasoning engine using the
// two-phase protocol: a primary request offering the tool declarations, then,
// if the engine asked for a tool, one tool invocation and one follow-up
// request carrying the serialized result to obtain the final reply.
type EngineStrategy struct {
	engine   engine.Engine
	registry *tool.Registry
	logger   logging.Logger
}

// NewEngineStrategy constructs the engine-backed strategy.
func NewEngineStrategy(eng engine.Engine, registry *tool.Registry, optFns ...func(o *Options)) *EngineStrategy {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &EngineStrategy{engine: eng, registry: registry, logger: opts.Logger}
}

// TakeTurn implements Strategy.
func (s *EngineStrategy) TakeTurn(ctx context.Context, history []conversation.Message) (conversation.Message, *tool.Result, error) {
	msgs := toEngineMessages(history)

	reply, err := s.engine.Chat(ctx, engine.Request{
		Instructions: systemDirective,
		Messages:     msgs,
		Tools:        definitions(s.registry),
	})
	if err != nil {
		return conversation.Message{}, nil, fmt.Errorf("engine chat: %w", err)
	}

	if reply.ToolCall == nil {
		return assistantMessage(reply.Text), nil, nil
	}
	return s.runToolCall(ctx, msgs, reply.ToolCall)
}

// runToolCall executes the requested tool and issues the follow-up request.
// Protocol faults (unparseable arguments, unknown tool, tool refusal of the
// input) are terminal for the turn and surfaced as plain assistant text, per
// the error contract: they must not corrupt conversation or order state.
func (s *EngineStrategy) runToolCall(ctx context.Context, msgs []engine.Message, tc *engine.ToolCall) (conversation.Message, *tool.Result, error) {
	var args map[string]any
	if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
		s.logger.Warn("turn.toolcall.bad_arguments", "tool", tc.Name, "error", err.Error())
		return assistantMessage(replyArgumentParseFailure), nil, nil
	}

	t, ok := s.registry.Get(tc.Name)
	if !ok {
		s.logger.Warn("turn.toolcall.unknown_tool", "tool", tc.Name)
		return assistantMessage(fmt.Sprintf("Unknown tool %s.", tc.Name)), nil, nil
	}

	result, err := t.Call(args)
	if err != nil {
		s.logger.Warn("turn.toolcall.failed", "tool", tc.Name, "error", err.Error())
		return assistantMessage(replyToolFailure), nil, nil
	}

	payload, err := result.JSON()
	if err != nil {
		return conversation.Message{}, nil, fmt.Errorf("serialize tool result: %w", err)
	}

	followup := append(msgs,
		engine.Message{Role: engine.RoleAssistant, ToolCall: tc},
		engine.Message{Role: engine.RoleTool, Content: payload, ToolCallID: tc.ID, ToolName: tc.Name},
	)
	final, err := s.engine.Chat(ctx, engine.Request{
		Instructions: systemDirective,
		Messages:     followup,
	})
	if err != nil {
		return conversation.Message{}, nil, fmt.Errorf("engine follow-up chat: %w", err)
	}

	return assistantMessage(final.Text), result, nil
}
