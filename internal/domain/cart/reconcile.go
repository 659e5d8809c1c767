package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	MinItemQuantity = 1
	MaxItemQuantity = 1000
)

var (
	ErrItemNotFound     = errors.New("cart item not found")
	ErrQuantityExceeded = errors.New("quantity cannot exceed 1000")
)

// Line is one requested product addition.
type Line struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// Action is what adding a line did to the cart.
type Action string

const (
	ActionCreate  Action = "create"
	ActionMerge   Action = "merge"
	ActionRestore Action = "restore"
)

// Decide picks the add policy for the item currently stored under the line's
// product id (nil when there is none).
func Decide(existing *CartItem) Action {
	switch {
	case existing == nil:
		return ActionCreate
	case existing.IsDeleted():
		return ActionRestore
	default:
		return ActionMerge
	}
}

// AddLine applies line to the cart:
//   - no item: a new active item is appended
//   - active item: quantity grows by line.Quantity, price and name are kept
//   - deleted item: it is restored with line's name, price and quantity
//
// The total is recomputed afterwards. A merge that would exceed
// MaxItemQuantity fails with ErrQuantityExceeded and changes nothing.
func (c *Cart) AddLine(line Line) (*CartItem, Action, error) {
	existing := c.Item(line.ProductID)
	action := Decide(existing)

	var item *CartItem
	switch action {
	case ActionCreate:
		item = &CartItem{
			CartID:    c.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			State:     ItemActive,
		}
		item.SetPrice(line.Price)
		item.SetQuantity(line.Quantity)
		c.Items = append(c.Items, item)
	case ActionMerge:
		merged := existing.Qty() + line.Quantity
		if merged > MaxItemQuantity {
			return existing, action, ErrQuantityExceeded
		}
		existing.SetQuantity(merged)
		item = existing
	case ActionRestore:
		existing.Restore(line)
		item = existing
	}
	c.RecomputeTotal()
	return item, action, nil
}

// SetItemQuantity replaces the quantity of an active item.
func (c *Cart) SetItemQuantity(productID string, qty int) (*CartItem, error) {
	item := c.ActiveItem(productID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	item.SetQuantity(qty)
	c.RecomputeTotal()
	return item, nil
}

// RemoveItem soft-deletes an active item.
func (c *Cart) RemoveItem(productID string) (*CartItem, error) {
	item := c.ActiveItem(productID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	item.MarkDeleted()
	c.RecomputeTotal()
	return item, nil
}

// Clear soft-deletes every item and returns the ones that changed state.
func (c *Cart) Clear() []*CartItem {
	var changed []*CartItem
	for _, it := range c.Items {
		if it != nil && it.MarkDeleted() {
			changed = append(changed, it)
		}
	}
	c.RecomputeTotal()
	return changed
}
