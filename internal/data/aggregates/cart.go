package aggregates

import (
	"context"
	"errors"
	"strings"

	cartrepo "github.com/yungbote/cart-backend/internal/data/repos/cart"
	types "github.com/yungbote/cart-backend/internal/domain"
	domainagg "github.com/yungbote/cart-backend/internal/domain/aggregates"
	"github.com/yungbote/cart-backend/internal/domain/cart"
	"github.com/yungbote/cart-backend/internal/platform/dbctx"
)

type CartAggregateDeps struct {
	Base BaseDeps

	Carts cartrepo.CartRepo
	Items cartrepo.CartItemRepo

	// DefaultCurrency is stamped on carts created by AddItem.
	DefaultCurrency string
}

type cartAggregate struct {
	deps CartAggregateDeps
}

func NewCartAggregate(deps CartAggregateDeps) domainagg.CartAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.DefaultCurrency = strings.ToUpper(strings.TrimSpace(deps.DefaultCurrency))
	if deps.DefaultCurrency == "" {
		deps.DefaultCurrency = cart.DefaultCurrency
	}
	return &cartAggregate{deps: deps}
}

func (a *cartAggregate) Contract() domainagg.Contract {
	return domainagg.CartAggregateContract
}

func (a *cartAggregate) Get(ctx context.Context, owner domainagg.Owner) (cart.View, error) {
	const op = domainagg.OpCartGet
	var out cart.View
	if fields := ownerFields(owner); len(fields) > 0 {
		return out, a.reject(op, fields)
	}
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		c, err := a.deps.Carts.GetByOwner(dbc, owner.TenantID, owner.UserID)
		if err != nil {
			return err
		}
		if c == nil {
			return domainagg.CartNotFound(op, owner.TenantID, owner.UserID)
		}
		if err := a.loadItems(dbc, c); err != nil {
			return err
		}
		out = c.View()
		return nil
	})
	return out, err
}

func (a *cartAggregate) AddItem(ctx context.Context, in domainagg.AddItemInput) (domainagg.AddItemResult, error) {
	const op = domainagg.OpCartAddItem
	var out domainagg.AddItemResult

	fields := ownerFields(in.Owner)
	if strings.TrimSpace(in.ProductID) == "" {
		fields["productId"] = "productId is required"
	}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if !in.Price.IsPositive() {
		fields["price"] = "price must be greater than 0"
	}
	if msg := quantityProblem(in.Quantity); msg != "" {
		fields["quantity"] = msg
	}
	if len(fields) > 0 {
		return out, a.reject(op, fields)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		c, created, err := a.deps.Carts.GetOrCreate(dbc, in.Owner.TenantID, in.Owner.UserID, a.deps.DefaultCurrency)
		if err != nil {
			return err
		}
		if err := a.loadItems(dbc, c); err != nil {
			return err
		}
		item, action, err := c.AddLine(cart.Line{
			ProductID: in.ProductID,
			Name:      in.Name,
			Price:     in.Price,
			Quantity:  in.Quantity,
		})
		if err != nil {
			return err
		}
		if action == cart.ActionCreate {
			err = a.deps.Items.Create(dbc, item)
		} else {
			err = a.deps.Items.Save(dbc, item)
		}
		if err != nil {
			return err
		}
		if err := a.saveTotals(dbc, c); err != nil {
			return err
		}
		out = domainagg.AddItemResult{View: c.View(), Action: action, CartCreated: created}
		return nil
	})
	if err == nil {
		a.deps.Base.Hooks.ObserveItemAction(op, string(out.Action))
		a.deps.Base.Log.Debug("cart item added",
			"tenant_id", in.Owner.TenantID,
			"user_id", in.Owner.UserID,
			"product_id", in.ProductID,
			"action", string(out.Action),
			"cart_created", out.CartCreated,
		)
	}
	return out, err
}

func (a *cartAggregate) UpdateItemQuantity(ctx context.Context, in domainagg.UpdateItemQuantityInput) (cart.View, error) {
	const op = domainagg.OpCartUpdateItemQuantity
	var out cart.View

	fields := ownerFields(in.Owner)
	if strings.TrimSpace(in.ProductID) == "" {
		fields["productId"] = "productId is required"
	}
	if msg := quantityProblem(in.Quantity); msg != "" {
		fields["quantity"] = msg
	}
	if len(fields) > 0 {
		return out, a.reject(op, fields)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		c, err := a.lockCart(dbc, op, in.Owner)
		if err != nil {
			return err
		}
		item, err := c.SetItemQuantity(in.ProductID, in.Quantity)
		if errors.Is(err, cart.ErrItemNotFound) {
			return domainagg.ItemNotFound(op, in.ProductID)
		}
		if err != nil {
			return err
		}
		if err := a.deps.Items.Save(dbc, item); err != nil {
			return err
		}
		if err := a.saveTotals(dbc, c); err != nil {
			return err
		}
		out = c.View()
		return nil
	})
	if err == nil {
		a.deps.Base.Hooks.ObserveItemAction(op, "set_quantity")
	}
	return out, err
}

func (a *cartAggregate) RemoveItem(ctx context.Context, in domainagg.RemoveItemInput) (cart.View, error) {
	const op = domainagg.OpCartRemoveItem
	var out cart.View

	fields := ownerFields(in.Owner)
	if strings.TrimSpace(in.ProductID) == "" {
		fields["productId"] = "productId is required"
	}
	if len(fields) > 0 {
		return out, a.reject(op, fields)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		c, err := a.lockCart(dbc, op, in.Owner)
		if err != nil {
			return err
		}
		item, err := c.RemoveItem(in.ProductID)
		if errors.Is(err, cart.ErrItemNotFound) {
			return domainagg.ItemNotFound(op, in.ProductID)
		}
		if err != nil {
			return err
		}
		if err := a.deps.Items.Save(dbc, item); err != nil {
			return err
		}
		if err := a.saveTotals(dbc, c); err != nil {
			return err
		}
		out = c.View()
		return nil
	})
	if err == nil {
		a.deps.Base.Hooks.ObserveItemAction(op, "remove")
	}
	return out, err
}

func (a *cartAggregate) Clear(ctx context.Context, owner domainagg.Owner) (domainagg.ClearResult, error) {
	const op = domainagg.OpCartClear
	var out domainagg.ClearResult
	if fields := ownerFields(owner); len(fields) > 0 {
		return out, a.reject(op, fields)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		c, err := a.lockCart(dbc, op, owner)
		if err != nil {
			return err
		}
		changed := c.Clear()
		if len(changed) > 0 {
			if _, err := a.deps.Items.MarkAllDeleted(dbc, c.ID, a.deps.Base.Now()); err != nil {
				return err
			}
		}
		if err := a.saveTotals(dbc, c); err != nil {
			return err
		}
		out = domainagg.ClearResult{CartID: c.ID.String(), ItemsCleared: len(changed)}
		return nil
	})
	if err == nil {
		a.deps.Base.Hooks.ObserveItemAction(op, "clear")
		a.deps.Base.Log.Debug("cart cleared",
			"tenant_id", owner.TenantID,
			"user_id", owner.UserID,
			"items_cleared", out.ItemsCleared,
		)
	}
	return out, err
}

// lockCart returns the owner's cart row-locked with every item loaded.
func (a *cartAggregate) lockCart(dbc dbctx.Context, op string, owner domainagg.Owner) (*types.Cart, error) {
	c, err := a.deps.Carts.LockByOwner(dbc, owner.TenantID, owner.UserID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domainagg.CartNotFound(op, owner.TenantID, owner.UserID)
	}
	if err := a.loadItems(dbc, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (a *cartAggregate) loadItems(dbc dbctx.Context, c *types.Cart) error {
	items, err := a.deps.Items.ListByCart(dbc, c.ID)
	if err != nil {
		return err
	}
	c.Items = items
	c.RecomputeTotal()
	return nil
}

func (a *cartAggregate) saveTotals(dbc dbctx.Context, c *types.Cart) error {
	c.RecomputeTotal()
	c.Touch(a.deps.Base.Now())
	return a.deps.Carts.UpdateTotals(dbc, c)
}

// reject reports a validation failure through the same hooks as a failed write.
func (a *cartAggregate) reject(op string, fields map[string]string) error {
	err := domainagg.FieldError(op, fields)
	a.deps.Base.Hooks.ObserveOperation(op, string(domainagg.CodeValidation), 0)
	return err
}

func ownerFields(owner domainagg.Owner) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(owner.TenantID) == "" {
		fields["tenantId"] = "tenantId is required"
	}
	if strings.TrimSpace(owner.UserID) == "" {
		fields["userId"] = "userId is required"
	}
	return fields
}

func quantityProblem(qty int) string {
	switch {
	case qty < cart.MinItemQuantity:
		return "quantity must be at least 1"
	case qty > cart.MaxItemQuantity:
		return "quantity cannot exceed 1000"
	default:
		return ""
	}
}
