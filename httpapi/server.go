// Package httpapi exposes the bot over REST using echo. The endpoints mirror
// the conversation lifecycle: create a conversation, read its visible
// history, post a user message and receive the assistant reply plus the tool
// result when one was invoked.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hupe1980/orderbot"
	"github.com/hupe1980/orderbot/conversation"
	"github.com/hupe1980/orderbot/logging"
)

// CreateConversationResponse carries the id of a newly created conversation.
type CreateConversationResponse struct {
	ConversationID string `json:"conversation_id"`
}

// UserMessageRequest is the body of a posted user message.
type UserMessageRequest struct {
	Content string `json:"content"`
}

// AssistantMessageResponse carries the assistant reply and, when a tool was
// invoked during the turn, its structured result (null otherwise).
type AssistantMessageResponse struct {
	Assistant  string `json:"assistant"`
	ToolResult any    `json:"tool_result"`
}

// ConversationMessagesResponse lists the user/assistant messages of a conversation.
type ConversationMessagesResponse struct {
	Messages []conversation.Message `json:"messages"`
}

// Server adapts a Bot to HTTP handlers.
type Server struct {
	bot    *orderbot.Bot
	logger logging.Logger
}

// Options configure the server.
type Options struct {
	Logger logging.Logger
}

// NewServer constructs a Server around the bot.
func NewServer(bot *orderbot.Bot, optFns ...func(o *Options)) *Server {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Server{bot: bot, logger: opts.Logger}
}

// Register mounts the routes on the echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.health)
	e.POST("/conversations", s.createConversation)
	e.GET("/conversations/:conversation_id/messages", s.getMessages)
	e.POST("/conversations/:conversation_id/messages", s.postMessage)
}

func (s *Server) health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

func (s *Server) createConversation(c echo.Context) error {
	conv := s.bot.StartConversation()
	return c.JSON(http.StatusOK, CreateConversationResponse{ConversationID: conv.ID})
}

func (s *Server) getMessages(c echo.Context) error {
	msgs, err := s.bot.Messages(c.Param("conversation_id"))
	if err != nil {
		if errors.Is(err, orderbot.ErrConversationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, ConversationMessagesResponse{Messages: msgs})
}

func (s *Server) postMessage(c echo.Context) error {
	var req UserMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reply, result, err := s.bot.Converse(c.Request().Context(), c.Param("conversation_id"), req.Content)
	if err != nil {
		if errors.Is(err, orderbot.ErrConversationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
		}
		s.logger.Error("httpapi.turn_failed", "error", err.Error())
		return err
	}

	resp := AssistantMessageResponse{Assistant: reply.Content}
	if result != nil {
		resp.ToolResult = result.Payload()
	}
	return c.JSON(http.StatusOK, resp)
}
