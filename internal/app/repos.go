package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/cart-backend/internal/data/repos"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

type Repos struct {
	Cart     repos.CartRepo
	CartItem repos.CartItemRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Cart:     repos.NewCartRepo(db, log),
		CartItem: repos.NewCartItemRepo(db, log),
	}
}
