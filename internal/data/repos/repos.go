package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/cart-backend/internal/data/repos/cart"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

type CartRepo = cart.CartRepo
type CartItemRepo = cart.CartItemRepo

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo { return cart.NewCartRepo(db, baseLog) }
func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
	return cart.NewCartItemRepo(db, baseLog)
}
