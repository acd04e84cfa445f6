package orders

import (
	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/types"
)

// Item is one part line on an order.
type Item struct {
	ID         string           `json:"id"`
	PartNumber string           `json:"partNumber"`
	Name       string           `json:"name"`
	Units      int              `json:"units"`
	Status     enums.ItemStatus `json:"status"`
	OrderID    string           `json:"orderId"`
	JobID      string           `json:"jobId"`
	JobNumber  string           `json:"jobNumber"`
}

// Order groups the parts a driver collects from one supplier store.
// Status is always DeriveOrderStatus(Items) for orders read from a Store.
type Order struct {
	ID            string            `json:"id"`
	OrderNumber   string            `json:"orderNumber"`
	StoreName     string            `json:"storeName"`
	StoreLocation string            `json:"storeLocation"`
	CreatedAt     types.UnixMillis  `json:"createdAt"`
	Status        enums.OrderStatus `json:"status"`
	Items         []Item            `json:"items"`
}

// Clone returns a deep copy.
func (o Order) Clone() Order {
	items := make([]Item, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

// Item looks up one of the order's items by id.
func (o Order) Item(itemID string) (Item, bool) {
	for _, item := range o.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return Item{}, false
}

// HasItem reports whether itemID belongs to the order.
func (o Order) HasItem(itemID string) bool {
	_, ok := o.Item(itemID)
	return ok
}

func cloneOrders(in []Order) []Order {
	out := make([]Order, len(in))
	for i, order := range in {
		out[i] = order.Clone()
	}
	return out
}
