package cart

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultCurrency = "USD"

// Cart is owned by exactly one (tenant, user) pair. TenantID, UserID and ID
// never change after creation; TotalAmount is a cache of CalculateTotal.
type Cart struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID string    `gorm:"column:tenant_id;size:128;not null" json:"tenant_id"`
	UserID   string    `gorm:"column:user_id;size:128;not null" json:"user_id"`

	Currency    string          `gorm:"column:currency;size:8;not null;default:'USD'" json:"currency"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null;default:0" json:"total_amount"`
	IsDeleted   bool            `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	Items []*CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`
}

func (Cart) TableName() string { return "cart" }

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// New returns an empty cart for the owner. A blank currency falls back to DefaultCurrency.
func New(tenantID, userID, currency string) *Cart {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	now := time.Now().UTC()
	return &Cart{
		ID:          uuid.New(),
		TenantID:    tenantID,
		UserID:      userID,
		Currency:    currency,
		TotalAmount: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ItemCount sums quantities of active items.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	return Count(c.Items)
}

// CalculateTotal sums subtotals of active items at money scale.
func (c *Cart) CalculateTotal() decimal.Decimal {
	if c == nil {
		return RoundMoney(decimal.Zero)
	}
	return Total(c.Items)
}

// RecomputeTotal refreshes the cached TotalAmount from the items.
func (c *Cart) RecomputeTotal() {
	c.TotalAmount = c.CalculateTotal()
}

// ActiveItems returns the non-deleted items in stored order.
func (c *Cart) ActiveItems() []*CartItem {
	out := make([]*CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.IsActive() {
			out = append(out, it)
		}
	}
	return out
}

// Item finds the item for productID in any state.
func (c *Cart) Item(productID string) *CartItem {
	for _, it := range c.Items {
		if it != nil && it.ProductID == productID {
			return it
		}
	}
	return nil
}

// ActiveItem finds the non-deleted item for productID.
func (c *Cart) ActiveItem(productID string) *CartItem {
	if it := c.Item(productID); it.IsActive() {
		return it
	}
	return nil
}

// Touch advances UpdatedAt, never moving it before CreatedAt.
func (c *Cart) Touch(now time.Time) {
	now = now.UTC()
	if now.Before(c.CreatedAt) {
		now = c.CreatedAt
	}
	c.UpdatedAt = now
}

// Count sums quantities of active items.
func Count(items []*CartItem) int {
	n := 0
	for _, it := range items {
		if it.IsActive() {
			n += it.Qty()
		}
	}
	return n
}

// Total sums subtotals of active items; exact zero when there are none.
func Total(items []*CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		if it.IsActive() {
			sum = sum.Add(it.SubtotalOrZero())
		}
	}
	return RoundMoney(sum)
}
