package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/cart-backend/internal/http/handlers"
	httpMW "github.com/yungbote/cart-backend/internal/http/middleware"
	"github.com/yungbote/cart-backend/internal/observability"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	// ServiceName labels spans from otelgin; empty disables tracing middleware.
	ServiceName    string
	AllowedOrigins []string

	CartHandler   *httpH.CartHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/api/cart/health", cfg.HealthHandler.CartHealth)
	}

	carts := r.Group("/api/cart")
	carts.Use(httpMW.ResolveOwner(cfg.Log))
	{
		// Cart
		if cfg.CartHandler != nil {
			carts.GET("", cfg.CartHandler.GetCart)
			carts.DELETE("", cfg.CartHandler.ClearCart)
			carts.POST("/items", cfg.CartHandler.AddItem)
			carts.PUT("/items/:productId", cfg.CartHandler.UpdateItemQuantity)
			carts.DELETE("/items/:productId", cfg.CartHandler.RemoveItem)
		}
	}

	return r
}
