package cart

import (
	"time"

	"github.com/google/uuid"
)

// View is the snapshot returned to callers. Items holds active items only.
type View struct {
	CartID      uuid.UUID  `json:"cartId"`
	TenantID    string     `json:"tenantId"`
	UserID      string     `json:"userId"`
	Items       []ItemView `json:"items"`
	ItemCount   int        `json:"itemCount"`
	TotalAmount Amount     `json:"totalAmount"`
	Currency    string     `json:"currency"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ItemView struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     Amount `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  Amount `json:"subtotal"`
}

func (c *Cart) View() View {
	active := c.ActiveItems()
	items := make([]ItemView, 0, len(active))
	for _, it := range active {
		items = append(items, ItemView{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     NewAmount(it.Price.Decimal),
			Quantity:  it.Qty(),
			Subtotal:  NewAmount(it.SubtotalOrZero()),
		})
	}
	return View{
		CartID:      c.ID,
		TenantID:    c.TenantID,
		UserID:      c.UserID,
		Items:       items,
		ItemCount:   Count(active),
		TotalAmount: NewAmount(c.TotalAmount),
		Currency:    c.Currency,
		UpdatedAt:   c.UpdatedAt,
	}
}
