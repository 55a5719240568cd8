package tool

import (
	"fmt"

	"github.com/hupe1980/orderbot/internal/util"
	"github.com/hupe1980/orderbot/logging"
	"github.com/hupe1980/orderbot/order"
)

// Tool names as declared to reasoning engines.
const (
	FindOrderName   = "find_order"
	CancelOrderName = "cancel_order"
)

// orderArgs is the shared argument shape of both order tools.
type orderArgs struct {
	OrderID string `json:"order_id" description:"The ID of the order."`
}

// orderArgsSchema is derived once; both tools accept a single required order_id string.
var orderArgsSchema = util.CreateSchema(orderArgs{})

// parseOrderID validates args against the schema and extracts a non-empty order id.
func parseOrderID(toolName string, args map[string]any) (string, error) {
	if err := util.ValidateParameters(args, orderArgsSchema); err != nil {
		return "", NewToolError(toolName, fmt.Sprintf("parameter validation failed: %v", err), CodeInvalidInput)
	}
	orderID, _ := args["order_id"].(string)
	if orderID == "" {
		return "", NewToolError(toolName, "order_id must be a non-empty string", CodeInvalidInput)
	}
	return orderID, nil
}

// FindOrderTool looks an order up by id. Read-only.
type FindOrderTool struct {
	store  *order.Store
	logger logging.Logger
}

// NewFindOrderTool constructs the lookup tool over the given store.
func NewFindOrderTool(store *order.Store, optFns ...func(o *Options)) *FindOrderTool {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &FindOrderTool{store: store, logger: opts.Logger}
}

// Name returns the tool identifier.
func (t *FindOrderTool) Name() string { return FindOrderName }

// Description returns the description exposed to engines.
func (t *FindOrderTool) Description() string {
	return "Look up an order by order_id in the system."
}

// Parameters returns the argument schema.
func (t *FindOrderTool) Parameters() map[string]any { return orderArgsSchema }

// Call resolves the effective order. A miss is a normal outcome (found=false),
// not an error.
func (t *FindOrderTool) Call(args map[string]any) (*Result, error) {
	orderID, err := parseOrderID(t.Name(), args)
	if err != nil {
		t.logger.Warn("tool.call.validation_failed", "tool", t.Name(), "error", err.Error())
		return nil, err
	}

	o := t.store.Get(orderID)
	t.logger.Info("tool.call.success", "tool", t.Name(), "order_id", orderID, "found", o != nil)
	return NewFindOrderResult(FindOrderResult{Found: o != nil, Order: o}), nil
}

// CancelOrderTool attempts the one-way cancellation transition. It is the only
// tool that mutates the override layer.
type CancelOrderTool struct {
	store  *order.Store
	logger logging.Logger
}

// NewCancelOrderTool constructs the cancellation tool over the given store.
func NewCancelOrderTool(store *order.Store, optFns ...func(o *Options)) *CancelOrderTool {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &CancelOrderTool{store: store, logger: opts.Logger}
}

// Name returns the tool identifier.
func (t *CancelOrderTool) Name() string { return CancelOrderName }

// Description returns the description exposed to engines.
func (t *CancelOrderTool) Description() string {
	return "Cancel an existing order if it is still processing."
}

// Parameters returns the argument schema.
func (t *CancelOrderTool) Parameters() map[string]any { return orderArgsSchema }

// Call delegates to the store. Refusals (not_found, immutable_status) are
// normal outcomes carried in the result, never errors.
func (t *CancelOrderTool) Call(args map[string]any) (*Result, error) {
	orderID, err := parseOrderID(t.Name(), args)
	if err != nil {
		t.logger.Warn("tool.call.validation_failed", "tool", t.Name(), "error", err.Error())
		return nil, err
	}

	res := t.store.Cancel(orderID)
	t.logger.Info("tool.call.success", "tool", t.Name(), "order_id", orderID, "ok", res.Ok, "reason", string(res.Reason))
	return NewCancelOrderResult(res), nil
}

// Options configure tool construction.
type Options struct {
	Logger logging.Logger
}

func defaultOptions() Options {
	return Options{Logger: logging.NoOpLogger{}}
}
