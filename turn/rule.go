package turn

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hupe1980/orderbot/conversation"
	"github.com/hupe1980/orderbot/logging"
	"github.com/hupe1980/orderbot/order"
	"github.com/hupe1980/orderbot/tool"
)

// Fixed replies of the rule-based fallback.
const (
	replyGreeting    = "Hello! What can I help you with?"
	replyAwaiting    = "Awaiting your instructions."
	replyPromptForID = "Please provide an order ID."
)

// orderIDPattern matches the first word-bounded run of digits. The extracted
// id is not checked for existence before intent classification; a number that
// is not an order id simply produces a not-found outcome.
var orderIDPattern = regexp.MustCompile(`\b(\d+)\b`)

// RuleStrategy is the deterministic turn handler used when no reasoning
// engine is configured. It is stateless given the conversation tail: intent
// is classified by substring match ("cancel" selects the cancel path) and the
// order id is the first digit run of the lower-cased last user message.
type RuleStrategy struct {
	registry *tool.Registry
	logger   logging.Logger
}

// NewRuleStrategy constructs the fallback strategy.
func NewRuleStrategy(registry *tool.Registry, optFns ...func(o *Options)) *RuleStrategy {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &RuleStrategy{registry: registry, logger: opts.Logger}
}

// TakeTurn implements Strategy.
func (s *RuleStrategy) TakeTurn(_ context.Context, history []conversation.Message) (conversation.Message, *tool.Result, error) {
	if len(history) == 0 {
		return assistantMessage(replyGreeting), nil, nil
	}
	last := history[len(history)-1]
	if last.Role != conversation.RoleUser {
		return assistantMessage(replyAwaiting), nil, nil
	}

	content := strings.ToLower(last.Content)
	match := orderIDPattern.FindStringSubmatch(content)
	if match == nil {
		return assistantMessage(replyPromptForID), nil, nil
	}
	orderID := match[1]

	if strings.Contains(content, "cancel") {
		return s.cancelTurn(orderID)
	}
	return s.lookupTurn(orderID)
}

// cancelTurn invokes cancel_order and composes the outcome reply. The tool
// result is always attached, refusals included.
func (s *RuleStrategy) cancelTurn(orderID string) (conversation.Message, *tool.Result, error) {
	result, err := s.invoke(tool.CancelOrderName, orderID)
	if err != nil {
		return conversation.Message{}, nil, err
	}

	res := result.CancelOrder
	var reply string
	switch {
	case res.Ok:
		reply = fmt.Sprintf("Order %s has been canceled successfully.", orderID)
	case res.Reason == order.ReasonNotFound:
		reply = fmt.Sprintf("I couldn't find an order with ID %s.", orderID)
	default:
		reply = fmt.Sprintf("Order %s cannot be canceled because it is %s.", orderID, res.Order.Status)
	}
	return assistantMessage(reply), result, nil
}

// lookupTurn invokes find_order and composes the outcome reply. The result is
// attached even when nothing was found, for caller-side consistency.
func (s *RuleStrategy) lookupTurn(orderID string) (conversation.Message, *tool.Result, error) {
	result, err := s.invoke(tool.FindOrderName, orderID)
	if err != nil {
		return conversation.Message{}, nil, err
	}

	res := result.FindOrder
	var reply string
	if res.Found {
		reply = fmt.Sprintf("Order %s is currently %s.", orderID, res.Order.Status)
	} else {
		reply = fmt.Sprintf("I couldn't find an order with ID %s.", orderID)
	}
	return assistantMessage(reply), result, nil
}

// invoke runs a registry tool with the extracted id. The Tool Layer already
// guarantees validation; a failure here is an internal error, not a
// user-facing order state.
func (s *RuleStrategy) invoke(name, orderID string) (*tool.Result, error) {
	t, ok := s.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("tool %s not registered", name)
	}
	result, err := t.Call(map[string]any{"order_id": orderID})
	if err != nil {
		s.logger.Error("turn.rule.tool_failed", "tool", name, "error", err.Error())
		return nil, fmt.Errorf("invoke %s: %w", name, err)
	}
	return result, nil
}
