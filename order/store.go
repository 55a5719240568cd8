package order

import "sync"

// Store holds the base order records plus the cancellation override layer.
//
// Base records are written once (at construction / load time) and never
// mutated afterwards. Overrides are monotonic: an entry is written only by a
// successful Cancel, always with StatusCanceled, and is never removed for the
// lifetime of the process.
//
// Concurrency: all methods are safe for concurrent use. Cancel performs its
// read-then-decide sequence under the write lock so that for N concurrent
// cancellations of the same processing order exactly one observes processing
// and transitions it; the rest see immutable_status.
type Store struct {
	mu        sync.RWMutex
	orders    map[string]Order
	overrides map[string]Status
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		orders:    make(map[string]Order),
		overrides: make(map[string]Status),
	}
}

// Add registers a base record. The first record for an id wins; later records
// with the same id are ignored, matching bulk-load semantics.
func (s *Store) Add(o Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[o.OrderID]; exists {
		return
	}
	s.orders[o.OrderID] = o
}

// Len returns the number of base records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// Get resolves the effective order for an id: the base record with the
// override status substituted if one exists. Returns nil when no base record
// exists. The returned value is a copy; callers cannot affect store state
// through it.
func (s *Store) Get(orderID string) *Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(orderID)
}

// getLocked resolves the effective order; caller must hold at least the read lock.
func (s *Store) getLocked(orderID string) *Order {
	base, ok := s.orders[orderID]
	if !ok {
		return nil
	}
	if override, ok := s.overrides[orderID]; ok {
		return &Order{OrderID: base.OrderID, Status: override, Item: base.Item}
	}
	o := base
	return &o
}

// Cancel attempts the one-way processing -> canceled transition.
//
// Outcomes:
//   - unknown id:                 {ok:false, reason:not_found, order:nil}
//   - shipped or canceled order:  {ok:false, reason:immutable_status, order:<unchanged>}
//   - processing order:           {ok:true, order:<status=canceled>} and the
//     override is recorded
//
// The status check and the override write form a single critical section, so
// a cancellation can never be applied twice.
func (s *Store) Cancel(orderID string) CancelResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	effective := s.getLocked(orderID)
	if effective == nil {
		return CancelResult{Ok: false, Reason: ReasonNotFound}
	}
	if effective.Status.Terminal() {
		return CancelResult{Ok: false, Reason: ReasonImmutableStatus, Order: effective}
	}

	s.overrides[orderID] = StatusCanceled
	updated := &Order{OrderID: effective.OrderID, Status: StatusCanceled, Item: effective.Item}
	return CancelResult{Ok: true, Order: updated}
}
