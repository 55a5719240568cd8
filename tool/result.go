package tool

import (
	"encoding/json"

	"github.com/hupe1980/orderbot/order"
)

// Kind discriminates the two result shapes a tool invocation can produce.
type Kind string

const (
	// KindFindOrder tags results of the find_order tool.
	KindFindOrder Kind = "find_order"
	// KindCancelOrder tags results of the cancel_order tool.
	KindCancelOrder Kind = "cancel_order"
)

// FindOrderResult is the structured outcome of an order lookup. Order is nil
// when Found is false.
type FindOrderResult struct {
	Found bool         `json:"found"`
	Order *order.Order `json:"order"`
}

// Result is the tagged union carried alongside an assistant reply whenever a
// tool ran during the turn. Exactly one of FindOrder / CancelOrder is non-nil,
// matching Kind, so callers can handle both shapes exhaustively.
type Result struct {
	Kind        Kind
	FindOrder   *FindOrderResult
	CancelOrder *order.CancelResult
}

// NewFindOrderResult wraps a lookup outcome.
func NewFindOrderResult(res FindOrderResult) *Result {
	return &Result{Kind: KindFindOrder, FindOrder: &res}
}

// NewCancelOrderResult wraps a cancellation outcome.
func NewCancelOrderResult(res order.CancelResult) *Result {
	return &Result{Kind: KindCancelOrder, CancelOrder: &res}
}

// Payload returns the active arm of the union.
func (r *Result) Payload() any {
	switch r.Kind {
	case KindFindOrder:
		return r.FindOrder
	case KindCancelOrder:
		return r.CancelOrder
	default:
		return nil
	}
}

// JSON serializes the active arm, the form stored in tool messages and
// returned to API clients.
func (r *Result) JSON() (string, error) {
	b, err := json.Marshal(r.Payload())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
