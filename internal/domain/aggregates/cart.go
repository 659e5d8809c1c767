package aggregates

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yungbote/cart-backend/internal/domain/cart"
)

const (
	OpCartGet                = "Commerce.Cart.Get"
	OpCartAddItem            = "Commerce.Cart.AddItem"
	OpCartUpdateItemQuantity = "Commerce.Cart.UpdateItemQuantity"
	OpCartRemoveItem         = "Commerce.Cart.RemoveItem"
	OpCartClear              = "Commerce.Cart.Clear"
)

var CartAggregateContract = Contract{
	Name:             "Commerce.CartAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicySnapshot,
	LockScope:        "cart row per (tenant_id, user_id)",
	Operations: []string{
		OpCartGet,
		OpCartAddItem,
		OpCartUpdateItemQuantity,
		OpCartRemoveItem,
		OpCartClear,
	},
	Notes: "Owns cart/item reconciliation; the cart row is locked for the whole write so item merges serialize per owner.",
}

// CartAggregate owns cart and cart item consistency for one (tenant, user).
//
// Failures are *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeRetryable, CodeInternal.
type CartAggregate interface {
	Aggregate

	// Get returns the snapshot of the owner's cart, or not_found.
	Get(ctx context.Context, owner Owner) (cart.View, error)

	// AddItem creates the cart when absent, then creates, merges into or
	// restores the item for the product.
	AddItem(ctx context.Context, in AddItemInput) (AddItemResult, error)

	// UpdateItemQuantity sets the quantity of an active item.
	UpdateItemQuantity(ctx context.Context, in UpdateItemQuantityInput) (cart.View, error)

	// RemoveItem soft-deletes an active item.
	RemoveItem(ctx context.Context, in RemoveItemInput) (cart.View, error)

	// Clear soft-deletes every item of the cart.
	Clear(ctx context.Context, owner Owner) (ClearResult, error)
}

type Owner struct {
	TenantID string
	UserID   string
}

type AddItemInput struct {
	Owner     Owner
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

type AddItemResult struct {
	View        cart.View
	Action      cart.Action
	CartCreated bool
}

type UpdateItemQuantityInput struct {
	Owner     Owner
	ProductID string
	Quantity  int
}

type RemoveItemInput struct {
	Owner     Owner
	ProductID string
}

type ClearResult struct {
	CartID       string
	ItemsCleared int
}
