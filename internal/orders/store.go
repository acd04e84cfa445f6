package orders

import (
	"sync"

	"github.com/angelmondragon/partcustody/pkg/enums"
)

// ItemUpdate sets one item's status.
type ItemUpdate struct {
	ItemID string
	Status enums.ItemStatus
}

type itemRef struct {
	order int
	item  int
}

type snapshot struct {
	orders  []Order
	byOrder map[string]int
	byItem  map[string]itemRef
}

func newSnapshot(list []Order) *snapshot {
	snap := &snapshot{
		orders:  list,
		byOrder: make(map[string]int, len(list)),
		byItem:  make(map[string]itemRef),
	}
	for oi, order := range list {
		if _, dup := snap.byOrder[order.ID]; !dup {
			snap.byOrder[order.ID] = oi
		}
		for ii, item := range order.Items {
			if _, dup := snap.byItem[item.ID]; !dup {
				snap.byItem[item.ID] = itemRef{order: oi, item: ii}
			}
		}
	}
	return snap
}

// Store owns the order list. Every mutation builds a new snapshot and swaps it
// in under the write lock, so a reader never observes a half-applied update and
// an order's status always equals the derivation of its items.
type Store struct {
	mu   sync.RWMutex
	snap *snapshot
}

// NewStore returns a store holding the given orders.
func NewStore(initial []Order) *Store {
	s := &Store{}
	s.SetOrders(initial)
	return s
}

// SetOrders replaces the whole list. Incoming statuses are ignored and re-derived.
func (s *Store) SetOrders(list []Order) {
	next := cloneOrders(list)
	for i := range next {
		next[i].Status = DeriveOrderStatus(next[i].Items)
	}
	snap := newSnapshot(next)

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// UpdateItemStatus sets one item's status and re-derives its order.
// It reports false, changing nothing, when the item is unknown.
func (s *Store) UpdateItemStatus(itemID string, status enums.ItemStatus) bool {
	return s.UpdateItemStatuses([]ItemUpdate{{ItemID: itemID, Status: status}}) > 0
}

// UpdateItemStatuses applies a batch as one swap, deriving each touched order
// once after all its items are updated. Unknown item ids are skipped.
// It returns the number of updates applied.
func (s *Store) UpdateItemStatuses(updates []ItemUpdate) int {
	if len(updates) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.current()
	next := make([]Order, len(current.orders))
	copy(next, current.orders)

	touched := make(map[int]bool)
	applied := 0
	for _, update := range updates {
		ref, ok := current.byItem[update.ItemID]
		if !ok {
			continue
		}
		if !touched[ref.order] {
			next[ref.order] = next[ref.order].Clone()
			touched[ref.order] = true
		}
		next[ref.order].Items[ref.item].Status = update.Status
		applied++
	}
	if applied == 0 {
		return 0
	}
	for oi := range touched {
		next[oi].Status = DeriveOrderStatus(next[oi].Items)
	}

	// Indexes are positional and positions do not move on status updates.
	s.snap = &snapshot{orders: next, byOrder: current.byOrder, byItem: current.byItem}
	return applied
}

// Orders returns a deep copy of every order in list order.
func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.current().orders)
}

// Order returns a deep copy of the order with the given id.
func (s *Store) Order(orderID string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.current()
	idx, ok := snap.byOrder[orderID]
	if !ok {
		return Order{}, false
	}
	return snap.orders[idx].Clone(), true
}

// FindItem returns a copy of the item with the given id.
func (s *Store) FindItem(itemID string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.current()
	ref, ok := snap.byItem[itemID]
	if !ok {
		return Item{}, false
	}
	return snap.orders[ref.order].Items[ref.item], true
}

// Filter returns copies of the orders matching filter.
func (s *Store) Filter(filter enums.OrderFilter) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(Filter(s.current().orders, filter))
}

// CountByStatus tallies orders per derived status.
func (s *Store) CountByStatus() map[enums.OrderStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[enums.OrderStatus]int)
	for _, order := range s.current().orders {
		counts[order.Status]++
	}
	return counts
}

func (s *Store) current() *snapshot {
	if s.snap == nil {
		return newSnapshot(nil)
	}
	return s.snap
}
