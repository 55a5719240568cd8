package turn

import (
	"context"
	"testing"

	"github.com/hupe1980/orderbot/conversation"
	"github.com/hupe1980/orderbot/engine"
	"github.com/hupe1980/orderbot/order"
	"github.com/hupe1980/orderbot/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine replays scripted replies and records the requests it received.
type fakeEngine struct {
	replies  []*engine.Reply
	err      error
	requests []engine.Request
}

func (f *fakeEngine) Chat(_ context.Context, req engine.Request) (*engine.Reply, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeEngine) Info() engine.Info {
	return engine.Info{Name: "fake", Provider: "test", SupportsTools: true}
}

func TestEngineStrategy_DirectReply(t *testing.T) {
	_, registry := newFixture()
	eng := &fakeEngine{replies: []*engine.Reply{{Text: "Happy to help with your orders."}}}
	s := NewEngineStrategy(eng, registry)

	msg, result, err := s.TakeTurn(context.Background(), userTurn("hi there"))
	require.NoError(t, err)
	assert.Equal(t, "Happy to help with your orders.", msg.Content)
	assert.Nil(t, result)

	// single phase, tools offered, directive attached
	require.Len(t, eng.requests, 1)
	assert.Equal(t, systemDirective, eng.requests[0].Instructions)
	require.Len(t, eng.requests[0].Tools, 2)
	assert.Equal(t, tool.FindOrderName, eng.requests[0].Tools[0].Name)
	assert.Equal(t, tool.CancelOrderName, eng.requests[0].Tools[1].Name)
}

func TestEngineStrategy_TwoPhaseToolCall(t *testing.T) {
	_, registry := newFixture()
	eng := &fakeEngine{replies: []*engine.Reply{
		{ToolCall: &engine.ToolCall{ID: "call_1", Name: tool.FindOrderName, Arguments: `{"order_id":"12345"}`}},
		{Text: "Your order 12345 has shipped."},
	}}
	s := NewEngineStrategy(eng, registry)

	msg, result, err := s.TakeTurn(context.Background(), userTurn("check my order 12345"))
	require.NoError(t, err)
	assert.Equal(t, "Your order 12345 has shipped.", msg.Content)
	require.NotNil(t, result)
	assert.Equal(t, tool.KindFindOrder, result.Kind)
	assert.True(t, result.FindOrder.Found)

	// follow-up context: history + assistant tool call + tool message, no tools offered
	require.Len(t, eng.requests, 2)
	followup := eng.requests[1]
	assert.Empty(t, followup.Tools)
	require.Len(t, followup.Messages, 3)
	assistant := followup.Messages[1]
	require.NotNil(t, assistant.ToolCall)
	assert.Equal(t, "call_1", assistant.ToolCall.ID)
	toolMsg := followup.Messages[2]
	assert.Equal(t, engine.RoleTool, toolMsg.Role)
	assert.Equal(t, "call_1", toolMsg.ToolCallID)
	assert.Equal(t, tool.FindOrderName, toolMsg.ToolName)
	assert.JSONEq(t, `{"found":true,"order":{"order_id":"12345","status":"shipped","item":"Wireless Mouse"}}`, toolMsg.Content)
}

func TestEngineStrategy_CancelToolCall(t *testing.T) {
	store, registry := newFixture()
	eng := &fakeEngine{replies: []*engine.Reply{
		{ToolCall: &engine.ToolCall{ID: "call_2", Name: tool.CancelOrderName, Arguments: `{"order_id":"23456"}`}},
		{Text: "Done, order 23456 is canceled."},
	}}
	s := NewEngineStrategy(eng, registry)

	msg, result, err := s.TakeTurn(context.Background(), userTurn("cancel order 23456"))
	require.NoError(t, err)
	assert.Equal(t, "Done, order 23456 is canceled.", msg.Content)
	require.NotNil(t, result)
	assert.True(t, result.CancelOrder.Ok)
	assert.Equal(t, order.StatusCanceled, store.Get("23456").Status)
}

func TestEngineStrategy_MalformedArguments(t *testing.T) {
	store, registry := newFixture()
	eng := &fakeEngine{replies: []*engine.Reply{
		{ToolCall: &engine.ToolCall{ID: "call_3", Name: tool.CancelOrderName, Arguments: `{"order_id": `}},
	}}
	s := NewEngineStrategy(eng, registry)

	msg, result, err := s.TakeTurn(context.Background(), userTurn("cancel order 23456"))
	require.NoError(t, err)
	assert.Equal(t, replyArgumentParseFailure, msg.Content)
	assert.Nil(t, result)

	// terminal: no follow-up request, no state change
	assert.Len(t, eng.requests, 1)
	assert.Equal(t, order.StatusProcessing, store.Get("23456").Status)
}

func TestEngineStrategy_UnknownTool(t *testing.T) {
	_, registry := newFixture()
	eng := &fakeEngine{replies: []*engine.Reply{
		{ToolCall: &engine.ToolCall{ID: "call_4", Name: "transfer_funds", Arguments: `{}`}},
	}}
	s := NewEngineStrategy(eng, registry)

	msg, result, err := s.TakeTurn(context.Background(), userTurn("move my money"))
	require.NoError(t, err)
	assert.Equal(t, "Unknown tool transfer_funds.", msg.Content)
	assert.Nil(t, result)
	assert.Len(t, eng.requests, 1)
}

func TestEngineStrategy_InvalidToolInput(t *testing.T) {
	_, registry := newFixture()
	eng := &fakeEngine{replies: []*engine.Reply{
		{ToolCall: &engine.ToolCall{ID: "call_5", Name: tool.FindOrderName, Arguments: `{"order_id":""}`}},
	}}
	s := NewEngineStrategy(eng, registry)

	msg, result, err := s.TakeTurn(context.Background(), userTurn("look up my order"))
	require.NoError(t, err)
	assert.Equal(t, replyToolFailure, msg.Content)
	assert.Nil(t, result)
}

func TestEngineStrategy_EngineError(t *testing.T) {
	_, registry := newFixture()
	eng := &fakeEngine{err: assert.AnError}
	s := NewEngineStrategy(eng, registry)

	_, _, err := s.TakeTurn(context.Background(), userTurn("hello"))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestEngineStrategy_HistoryConversion(t *testing.T) {
	_, registry := newFixture()
	eng := &fakeEngine{replies: []*engine.Reply{{Text: "ok"}}}
	s := NewEngineStrategy(eng, registry)

	history := []conversation.Message{
		{Role: conversation.RoleUser, Content: "cancel order 23456"},
		{Role: conversation.RoleTool, Content: `{"ok":true}`, ToolName: tool.CancelOrderName},
		{Role: conversation.RoleAssistant, Content: "Done."},
		{Role: conversation.RoleUser, Content: "thanks"},
	}
	_, _, err := s.TakeTurn(context.Background(), history)
	require.NoError(t, err)

	msgs := eng.requests[0].Messages
	require.Len(t, msgs, 4)
	assert.Equal(t, engine.RoleTool, msgs[1].Role)
	assert.Equal(t, tool.CancelOrderName, msgs[1].ToolName)
	assert.Equal(t, engine.RoleUser, msgs[3].Role)
}
