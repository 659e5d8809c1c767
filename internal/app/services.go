package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/cart-backend/internal/clients/redis"
	"github.com/yungbote/cart-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/cart-backend/internal/domain/aggregates"
	"github.com/yungbote/cart-backend/internal/observability"
	"github.com/yungbote/cart-backend/internal/platform/logger"
	"github.com/yungbote/cart-backend/internal/services"
)

type Services struct {
	CartAggregate domainagg.CartAggregate
	Idempotency   services.Idempotency
	Cart          services.CartService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	cartAgg := aggregates.NewCartAggregate(aggregates.CartAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:     db,
			Log:    log,
			Runner: aggregates.NewGormTxRunner(db),
			Hooks:  aggregates.NewObservabilityHooks(metrics),
		},
		Carts:           reposet.Cart,
		Items:           reposet.CartItem,
		DefaultCurrency: cfg.DefaultCurrency,
	})

	var idem services.Idempotency
	if clients.Redis != nil {
		store := redis.NewIdempotencyStore(log, clients.Redis)
		idem = services.NewIdempotency(log, store, cfg.IdempotencyTTL)
	}

	return Services{
		CartAggregate: cartAgg,
		Idempotency:   idem,
		Cart:          services.NewCartService(log, cartAgg, idem),
	}
}
