package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/cart-backend/internal/domain"
	"github.com/yungbote/cart-backend/internal/platform/dbctx"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

type CartItemRepo interface {
	// ListByCart returns every item of the cart, deleted ones included, oldest first.
	ListByCart(dbc dbctx.Context, cartID uuid.UUID) ([]*types.CartItem, error)
	Create(dbc dbctx.Context, item *types.CartItem) error
	Save(dbc dbctx.Context, item *types.CartItem) error
	// MarkAllDeleted soft-deletes the cart's active items and returns how many changed.
	MarkAllDeleted(dbc dbctx.Context, cartID uuid.UUID, at time.Time) (int64, error)
}

type cartItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
	return &cartItemRepo{db: db, log: baseLog.With("repo", "CartItemRepo")}
}

func (r *cartItemRepo) ListByCart(dbc dbctx.Context, cartID uuid.UUID) ([]*types.CartItem, error) {
	if cartID == uuid.Nil {
		return nil, fmt.Errorf("missing cart_id")
	}
	var out []*types.CartItem
	if err := dbc.DB(r.db).
		Model(&types.CartItem{}).
		Where("cart_id = ?", cartID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cartItemRepo) Create(dbc dbctx.Context, item *types.CartItem) error {
	if item == nil || item.CartID == uuid.Nil {
		return fmt.Errorf("missing cart_id")
	}
	return dbc.DB(r.db).Create(item).Error
}

func (r *cartItemRepo) Save(dbc dbctx.Context, item *types.CartItem) error {
	if item == nil || item.ID == uuid.Nil {
		return fmt.Errorf("missing item id")
	}
	return dbc.DB(r.db).Save(item).Error
}

func (r *cartItemRepo) MarkAllDeleted(dbc dbctx.Context, cartID uuid.UUID, at time.Time) (int64, error) {
	if cartID == uuid.Nil {
		return 0, fmt.Errorf("missing cart_id")
	}
	res := dbc.DB(r.db).
		Model(&types.CartItem{}).
		Where("cart_id = ? AND state = ?", cartID, types.ItemActive).
		Updates(map[string]interface{}{
			"state":      types.ItemDeleted,
			"updated_at": at.UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
