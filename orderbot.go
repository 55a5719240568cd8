// Package orderbot provides a high-level façade over the order store,
// conversation store and turn orchestration, enabling construction of an
// order-status chat service in a few lines. Most applications interact with
// this package by:
//  1. Creating a Bot via New() with a loaded order store (and optionally a
//     reasoning engine)
//  2. Starting conversations and driving them through Converse()
//
// Without an engine the bot answers through the deterministic rule-based
// turn handler; that is a fully supported mode, not an error.
package orderbot

import (
	"context"
	"errors"

	"github.com/hupe1980/orderbot/conversation"
	"github.com/hupe1980/orderbot/engine"
	"github.com/hupe1980/orderbot/logging"
	"github.com/hupe1980/orderbot/order"
	"github.com/hupe1980/orderbot/tool"
	"github.com/hupe1980/orderbot/turn"
)

// ErrConversationNotFound is returned by Converse and Messages for unknown
// conversation ids.
var ErrConversationNotFound = errors.New("conversation not found")

// Options configures the Bot.
type Options struct {
	// Engine is the optional external reasoning engine. Nil selects the
	// rule-based turn strategy.
	Engine engine.Engine

	// Orders is the order store backing both tools. Defaults to an empty store.
	Orders *order.Store

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Bot aggregates the stores and the selected turn strategy.
type Bot struct {
	orders        *order.Store
	conversations *conversation.Store
	strategy      turn.Strategy
	logger        logging.Logger
}

// New creates a Bot with optional overrides. Any unset collaborator is
// initialized with an in-memory default.
func New(optFns ...func(o *Options)) *Bot {
	opts := Options{
		Orders: order.NewStore(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	withLogger := func(o *tool.Options) { o.Logger = opts.Logger }
	registry := tool.NewRegistry(
		tool.NewFindOrderTool(opts.Orders, withLogger),
		tool.NewCancelOrderTool(opts.Orders, withLogger),
	)
	strategy := turn.New(opts.Engine, registry, func(o *turn.Options) { o.Logger = opts.Logger })

	return &Bot{
		orders:        opts.Orders,
		conversations: conversation.NewStore(),
		strategy:      strategy,
		logger:        opts.Logger,
	}
}

// Orders exposes the order store for direct queries and mutations.
func (b *Bot) Orders() *order.Store { return b.orders }

// StartConversation creates a new empty conversation and returns it.
func (b *Bot) StartConversation() *conversation.Conversation {
	conv := b.conversations.Create()
	b.logger.Info("conversation.created", "conversation_id", conv.ID)
	return conv
}

// Messages returns the client-visible history (user and assistant messages)
// of a conversation.
func (b *Bot) Messages(conversationID string) ([]conversation.Message, error) {
	conv, ok := b.conversations.Get(conversationID)
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv.Visible(), nil
}

// Converse runs one full turn: append the user message, take the turn against
// the current history, then record the optional tool message and the
// assistant reply. Turns on the same conversation are serialized; prior
// messages are never mutated or reordered.
func (b *Bot) Converse(ctx context.Context, conversationID, content string) (conversation.Message, *tool.Result, error) {
	conv, ok := b.conversations.Get(conversationID)
	if !ok {
		return conversation.Message{}, nil, ErrConversationNotFound
	}

	conv.BeginTurn()
	defer conv.EndTurn()

	conv.Append(conversation.Message{Role: conversation.RoleUser, Content: content})

	reply, result, err := b.strategy.TakeTurn(ctx, conv.Messages())
	if err != nil {
		b.logger.Error("conversation.turn_failed", "conversation_id", conversationID, "error", err.Error())
		return conversation.Message{}, nil, err
	}

	if result != nil {
		payload, err := result.JSON()
		if err != nil {
			return conversation.Message{}, nil, err
		}
		conv.Append(conversation.Message{
			Role:     conversation.RoleTool,
			Content:  payload,
			ToolName: string(result.Kind),
		})
	}
	conv.Append(reply)

	b.logger.Info("conversation.turn_completed",
		"conversation_id", conversationID,
		"tool_used", result != nil,
	)
	return reply, result, nil
}
