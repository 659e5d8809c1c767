package domain

import "github.com/yungbote/cart-backend/internal/domain/cart"

type Cart = cart.Cart
type CartItem = cart.CartItem
type CartView = cart.View
type CartItemView = cart.ItemView
type ItemState = cart.ItemState

const (
	ItemActive  = cart.ItemActive
	ItemDeleted = cart.ItemDeleted
)
