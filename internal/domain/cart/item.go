package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;column:cart_id;not null;index" json:"cart_id"`
	ProductID string    `gorm:"column:product_id;size:128;not null" json:"product_id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`

	Price    decimal.NullDecimal `gorm:"column:price;type:decimal(10,2)" json:"price"`
	Quantity *int                `gorm:"column:quantity" json:"quantity"`
	// Subtotal is derived from Price and Quantity; see RecomputeSubtotal.
	Subtotal decimal.NullDecimal `gorm:"column:subtotal;type:decimal(12,2)" json:"subtotal"`

	State ItemState `gorm:"column:state;type:varchar(16);not null;default:'active';index" json:"state"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (CartItem) TableName() string { return "cart_item" }

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.State == "" {
		i.State = ItemActive
	}
	return nil
}

// BeforeSave keeps the stored subtotal in step with price and quantity.
func (i *CartItem) BeforeSave(tx *gorm.DB) error {
	i.RecomputeSubtotal()
	return nil
}

// RecomputeSubtotal sets Subtotal = Price * Quantity. When either operand is
// missing the subtotal is left as it is.
func (i *CartItem) RecomputeSubtotal() {
	if i == nil || !i.Price.Valid || i.Quantity == nil {
		return
	}
	i.Subtotal = decimal.NewNullDecimal(Subtotal(i.Price.Decimal, *i.Quantity))
}

func (i *CartItem) SetPrice(price decimal.Decimal) {
	i.Price = decimal.NewNullDecimal(RoundMoney(price))
	i.RecomputeSubtotal()
}

func (i *CartItem) SetQuantity(qty int) {
	i.Quantity = &qty
	i.RecomputeSubtotal()
}

// Qty is the quantity, or 0 when unset.
func (i *CartItem) Qty() int {
	if i == nil || i.Quantity == nil {
		return 0
	}
	return *i.Quantity
}

// SubtotalOrZero is the subtotal, or zero when unset.
func (i *CartItem) SubtotalOrZero() decimal.Decimal {
	if i == nil || !i.Subtotal.Valid {
		return decimal.Zero
	}
	return i.Subtotal.Decimal
}

func (i *CartItem) IsActive() bool  { return i != nil && i.State == ItemActive }
func (i *CartItem) IsDeleted() bool { return i != nil && i.State == ItemDeleted }

// MarkDeleted soft-deletes the item. Price and quantity are kept.
func (i *CartItem) MarkDeleted() bool {
	if i.State == ItemDeleted {
		return false
	}
	i.State = ItemDeleted
	return true
}

// Restore reactivates a deleted item and overwrites it with line.
func (i *CartItem) Restore(line Line) {
	i.State = ItemActive
	i.Name = line.Name
	i.Price = decimal.NewNullDecimal(RoundMoney(line.Price))
	i.SetQuantity(line.Quantity)
}
