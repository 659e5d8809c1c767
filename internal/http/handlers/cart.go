package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/yungbote/cart-backend/internal/http/response"
	"github.com/yungbote/cart-backend/internal/platform/apierr"
	"github.com/yungbote/cart-backend/internal/platform/logger"
	"github.com/yungbote/cart-backend/internal/services"
)

const headerIdempotencyKey = "Idempotency-Key"

type CartHandler struct {
	log  *logger.Logger
	cart services.CartService
}

func NewCartHandler(baseLog *logger.Logger, cartService services.CartService) *CartHandler {
	return &CartHandler{
		log:  baseLog.With("handler", "CartHandler"),
		cart: cartService,
	}
}

type addItemRequest struct {
	ProductID string           `json:"productId" binding:"required"`
	Name      string           `json:"name" binding:"required"`
	Price     *decimal.Decimal `json:"price" binding:"required"`
	Quantity  *int             `json:"quantity" binding:"required,min=1,max=1000"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=1,max=1000"`
}

// GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.cart.GetCart(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, view)
}

// POST /api/cart/items
// body: { "productId": "...", "name": "...", "price": 10.00, "quantity": 2 }
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	fields, err := bindJSON(c, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	if req.Price != nil && !req.Price.IsPositive() {
		fields["price"] = "price must be greater than 0"
	}
	if len(fields) > 0 {
		h.fail(c, apierr.Validation(fields))
		return
	}

	out, err := h.cart.AddItem(c.Request.Context(), services.AddItemRequest{
		ProductID:      req.ProductID,
		Name:           req.Name,
		Price:          *req.Price,
		Quantity:       *req.Quantity,
		IdempotencyKey: c.GetHeader(headerIdempotencyKey),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	if out.Replayed {
		c.Header(response.HeaderIdempotencyReplayed, "true")
	}
	response.RespondCreated(c, out.View)
}

// PUT /api/cart/items/:productId
// body: { "quantity": 3 }
func (h *CartHandler) UpdateItemQuantity(c *gin.Context) {
	var req updateQuantityRequest
	fields, err := bindJSON(c, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(fields) > 0 {
		h.fail(c, apierr.Validation(fields))
		return
	}
	view, err := h.cart.UpdateItemQuantity(c.Request.Context(), c.Param("productId"), *req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, view)
}

// DELETE /api/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.cart.RemoveItem(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, view)
}

// DELETE /api/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cart.ClearCart(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *CartHandler) fail(c *gin.Context, err error) {
	response.RespondError(c, h.log, apierr.FromAggregate(err))
}

var jsonFieldNames = map[string]string{
	"ProductID": "productId",
	"Name":      "name",
	"Price":     "price",
	"Quantity":  "quantity",
}

// bindJSON decodes the body into dst. Binding rule failures come back as a
// field map; a body that cannot be decoded at all is an error.
func bindJSON(c *gin.Context, dst any) (map[string]string, error) {
	fields := map[string]string{}
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return fields, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, &apierr.Error{
			Status:  http.StatusBadRequest,
			Code:    "malformed_body",
			Message: "Malformed request body",
			Err:     err,
		}
	}
	for _, fe := range verrs {
		name, ok := jsonFieldNames[fe.StructField()]
		if !ok {
			name = strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		}
		fields[name] = fieldMessage(name, fe)
	}
	return fields, nil
}

func fieldMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		return name + " must be at least " + fe.Param()
	case "max":
		return name + " cannot exceed " + fe.Param()
	default:
		return name + " is invalid"
	}
}
