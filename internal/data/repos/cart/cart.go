package cart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/cart-backend/internal/domain"
	domaincart "github.com/yungbote/cart-backend/internal/domain/cart"
	"github.com/yungbote/cart-backend/internal/platform/dbctx"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

type CartRepo interface {
	// GetOrCreate returns the owner's live cart, inserting an empty one first
	// when none exists, and leaves it row-locked. created reports the insert.
	GetOrCreate(dbc dbctx.Context, tenantID, userID, currency string) (c *types.Cart, created bool, err error)
	// LockByOwner returns the owner's live cart row-locked, or nil.
	LockByOwner(dbc dbctx.Context, tenantID, userID string) (*types.Cart, error)
	// GetByOwner returns the owner's live cart without locking, or nil.
	GetByOwner(dbc dbctx.Context, tenantID, userID string) (*types.Cart, error)
	UpdateTotals(dbc dbctx.Context, c *types.Cart) error
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	return &cartRepo{db: db, log: baseLog.With("repo", "CartRepo")}
}

func (r *cartRepo) GetOrCreate(dbc dbctx.Context, tenantID, userID, currency string) (*types.Cart, bool, error) {
	if err := requireOwner(tenantID, userID); err != nil {
		return nil, false, err
	}
	if dbc.Tx == nil {
		return nil, false, fmt.Errorf("GetOrCreate requires dbc.Tx")
	}
	fresh := domaincart.New(tenantID, userID, currency)
	res := dbc.Tx.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "tenant_id"}, {Name: "user_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "is_deleted = false"}}},
			DoNothing:   true,
		}).
		Create(fresh)
	if res.Error != nil {
		return nil, false, res.Error
	}
	created := res.RowsAffected > 0

	out, err := r.LockByOwner(dbc, tenantID, userID)
	if err != nil {
		return nil, false, err
	}
	if out == nil {
		return nil, false, fmt.Errorf("cart for tenant %q vanished after insert", tenantID)
	}
	if created {
		r.log.Debug("Cart created", "cart_id", out.ID, "tenant_id", tenantID, "user_id", userID)
	}
	return out, created, nil
}

func (r *cartRepo) LockByOwner(dbc dbctx.Context, tenantID, userID string) (*types.Cart, error) {
	if err := requireOwner(tenantID, userID); err != nil {
		return nil, err
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByOwner requires dbc.Tx")
	}
	return r.takeByOwner(dbc.Tx.WithContext(dbc.Ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, userID)
}

func (r *cartRepo) GetByOwner(dbc dbctx.Context, tenantID, userID string) (*types.Cart, error) {
	if err := requireOwner(tenantID, userID); err != nil {
		return nil, err
	}
	return r.takeByOwner(dbc.DB(r.db), tenantID, userID)
}

func (r *cartRepo) takeByOwner(q *gorm.DB, tenantID, userID string) (*types.Cart, error) {
	var out types.Cart
	err := q.Model(&types.Cart{}).
		Where("tenant_id = ? AND user_id = ? AND is_deleted = ?", tenantID, userID, false).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *cartRepo) UpdateTotals(dbc dbctx.Context, c *types.Cart) error {
	if c == nil || c.ID == uuid.Nil {
		return fmt.Errorf("missing cart")
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	res := dbc.DB(r.db).
		Model(&types.Cart{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"total_amount": c.TotalAmount,
			"updated_at":   c.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func requireOwner(tenantID, userID string) error {
	if strings.TrimSpace(tenantID) == "" {
		return fmt.Errorf("missing tenant_id")
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("missing user_id")
	}
	return nil
}
