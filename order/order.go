// Package order implements the order state machine: immutable base records, a
// monotonic cancellation override layer and the effective-state resolution the
// conversational tools depend on.
//
// An order id is an opaque string. It preserves whatever formatting the source
// data used (leading zeros included) and is never parsed as a number.
package order

// Status is the lifecycle state of an order.
type Status string

const (
	// StatusProcessing marks an order that is still being prepared and may be canceled.
	StatusProcessing Status = "processing"
	// StatusShipped marks an order that left the warehouse. Terminal.
	StatusShipped Status = "shipped"
	// StatusCanceled marks an order that was canceled, either before load or
	// through Store.Cancel. Terminal.
	StatusCanceled Status = "canceled"
)

// Terminal reports whether no further transition is allowed out of s.
// Only processing orders may still move (to canceled).
func (s Status) Terminal() bool {
	return s == StatusShipped || s == StatusCanceled
}

// Order is a single order record. Values are treated as immutable: a status
// change is represented by the store's override layer, never by mutating a
// previously returned Order.
type Order struct {
	OrderID string `json:"order_id"`
	Status  Status `json:"status"`
	Item    string `json:"item"`
}

// CancelReason explains why a cancellation was refused.
type CancelReason string

const (
	// ReasonNotFound means no base record exists for the requested id.
	ReasonNotFound CancelReason = "not_found"
	// ReasonImmutableStatus means the order already reached a terminal status.
	ReasonImmutableStatus CancelReason = "immutable_status"
)

// CancelResult is the outcome of a cancellation attempt. When Ok is false,
// Reason is set and Order carries the unchanged effective record (nil for
// not_found). When Ok is true, Order carries the new canceled record.
type CancelResult struct {
	Ok     bool         `json:"ok"`
	Reason CancelReason `json:"reason,omitempty"`
	Order  *Order       `json:"order,omitempty"`
}
