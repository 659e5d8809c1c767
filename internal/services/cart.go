package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	domainagg "github.com/yungbote/cart-backend/internal/domain/aggregates"
	"github.com/yungbote/cart-backend/internal/domain/cart"
	"github.com/yungbote/cart-backend/internal/platform/ctxutil"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

// AddItemRequest is a validated add-to-cart request.
type AddItemRequest struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	// IdempotencyKey is optional; replays of a finished key return the stored view.
	IdempotencyKey string
}

// AddItemOutcome is the view after an add. Replayed is set when the view came
// from the idempotency store instead of a new write.
type AddItemOutcome struct {
	View     cart.View
	Action   cart.Action
	Replayed bool
}

type CartService interface {
	GetCart(ctx context.Context) (cart.View, error)
	AddItem(ctx context.Context, req AddItemRequest) (AddItemOutcome, error)
	UpdateItemQuantity(ctx context.Context, productID string, quantity int) (cart.View, error)
	RemoveItem(ctx context.Context, productID string) (cart.View, error)
	ClearCart(ctx context.Context) error
}

type cartService struct {
	log  *logger.Logger
	agg  domainagg.CartAggregate
	idem Idempotency
}

// NewCartService builds the cart service. idem may be nil, which disables
// Idempotency-Key handling.
func NewCartService(baseLog *logger.Logger, agg domainagg.CartAggregate, idem Idempotency) CartService {
	return &cartService{
		log:  baseLog.With("service", "CartService"),
		agg:  agg,
		idem: idem,
	}
}

func (s *cartService) GetCart(ctx context.Context) (cart.View, error) {
	return s.agg.Get(ctxutil.Default(ctx), ownerFrom(ctx))
}

func (s *cartService) AddItem(ctx context.Context, req AddItemRequest) (AddItemOutcome, error) {
	ctx = ctxutil.Default(ctx)
	owner := ownerFrom(ctx)
	in := domainagg.AddItemInput{
		Owner:     owner,
		ProductID: strings.TrimSpace(req.ProductID),
		Name:      strings.TrimSpace(req.Name),
		Price:     cart.RoundMoney(req.Price),
		Quantity:  req.Quantity,
	}

	key := strings.TrimSpace(req.IdempotencyKey)
	if key == "" || s.idem == nil {
		return s.addItem(ctx, in)
	}
	return s.idem.Do(ctx, owner, key, func() (AddItemOutcome, error) {
		return s.addItem(ctx, in)
	})
}

func (s *cartService) addItem(ctx context.Context, in domainagg.AddItemInput) (AddItemOutcome, error) {
	res, err := s.agg.AddItem(ctx, in)
	if err != nil {
		return AddItemOutcome{}, err
	}
	if res.CartCreated {
		s.log.Info("cart created",
			"tenant_id", in.Owner.TenantID,
			"user_id", in.Owner.UserID,
			"cart_id", res.View.CartID.String(),
			"request_id", ctxutil.RequestID(ctx),
		)
	}
	return AddItemOutcome{View: res.View, Action: res.Action}, nil
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, productID string, quantity int) (cart.View, error) {
	return s.agg.UpdateItemQuantity(ctxutil.Default(ctx), domainagg.UpdateItemQuantityInput{
		Owner:     ownerFrom(ctx),
		ProductID: strings.TrimSpace(productID),
		Quantity:  quantity,
	})
}

func (s *cartService) RemoveItem(ctx context.Context, productID string) (cart.View, error) {
	return s.agg.RemoveItem(ctxutil.Default(ctx), domainagg.RemoveItemInput{
		Owner:     ownerFrom(ctx),
		ProductID: strings.TrimSpace(productID),
	})
}

func (s *cartService) ClearCart(ctx context.Context) error {
	owner := ownerFrom(ctx)
	res, err := s.agg.Clear(ctxutil.Default(ctx), owner)
	if err != nil {
		return err
	}
	if res.ItemsCleared > 0 {
		s.log.Info("cart cleared",
			"tenant_id", owner.TenantID,
			"user_id", owner.UserID,
			"cart_id", res.CartID,
			"items_cleared", res.ItemsCleared,
			"request_id", ctxutil.RequestID(ctx),
		)
	}
	return nil
}

func ownerFrom(ctx context.Context) domainagg.Owner {
	if ctx == nil {
		return domainagg.Owner{}
	}
	o := ctxutil.GetOwner(ctx)
	if o == nil {
		return domainagg.Owner{}
	}
	return domainagg.Owner{
		TenantID: strings.TrimSpace(o.TenantID),
		UserID:   strings.TrimSpace(o.UserID),
	}
}
