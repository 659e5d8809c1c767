package app

import (
	httpH "github.com/yungbote/cart-backend/internal/http/handlers"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Cart   *httpH.CartHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Cart:   httpH.NewCartHandler(log, services.Cart),
	}
}
