package testutil

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/yungbote/cart-backend/internal/domain"
	"github.com/yungbote/cart-backend/internal/domain/cart"
)

func SeedCart(tb testing.TB, ctx context.Context, tx *gorm.DB, tenantID, userID string) *types.Cart {
	tb.Helper()
	c := cart.New(tenantID, userID, "")
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed cart: %v", err)
	}
	return c
}

// SeedItem inserts an item row as-is. A blank price or a negative quantity
// leaves the column NULL, as rows written by older clients may be.
func SeedItem(tb testing.TB, ctx context.Context, tx *gorm.DB, c *types.Cart, productID, name, price string, qty int, state types.ItemState) *types.CartItem {
	tb.Helper()
	it := &types.CartItem{
		CartID:    c.ID,
		ProductID: productID,
		Name:      name,
		State:     state,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if price != "" {
		it.SetPrice(decimal.RequireFromString(price))
	}
	if qty >= 0 {
		it.SetQuantity(qty)
	}
	if err := tx.WithContext(ctx).Create(it).Error; err != nil {
		tb.Fatalf("seed cart item: %v", err)
	}
	return it
}
