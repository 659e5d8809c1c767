package db

import (
	"fmt"

	types "github.com/yungbote/cart-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.Cart{},
		&types.CartItem{},
	); err != nil {
		return err
	}
	return EnsureCartIndexes(db)
}

// EnsureCartIndexes creates the uniqueness rules the cart store relies on.
// The statements are valid on both Postgres and SQLite.
func EnsureCartIndexes(db *gorm.DB) error {
	// One live cart per owner; GetOrCreate's ON CONFLICT targets this index.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_cart_tenant_user
		ON cart (tenant_id, user_id)
		WHERE is_deleted = false;
	`).Error; err != nil {
		return fmt.Errorf("create uq_cart_tenant_user: %w", err)
	}
	// Deleted items are restored in place, so one row per product for the cart's lifetime.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_cart_item_product
		ON cart_item (cart_id, product_id);
	`).Error; err != nil {
		return fmt.Errorf("create uq_cart_item_product: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_cart_item_cart_state
		ON cart_item (cart_id, state);
	`).Error; err != nil {
		return fmt.Errorf("create idx_cart_item_cart_state: %w", err)
	}
	return nil
}
