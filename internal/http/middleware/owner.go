package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cart-backend/internal/http/response"
	"github.com/yungbote/cart-backend/internal/platform/apierr"
	"github.com/yungbote/cart-backend/internal/platform/ctxutil"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderUserID   = "X-User-ID"

	queryTenantID = "tenantId"
	queryUserID   = "userId"
)

// ResolveOwner attaches the cart owner to the request context. Headers win
// over query parameters; a request missing either id is rejected with 400.
func ResolveOwner(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := firstNonEmpty(c.GetHeader(HeaderTenantID), c.Query(queryTenantID))
		userID := firstNonEmpty(c.GetHeader(HeaderUserID), c.Query(queryUserID))

		fields := map[string]string{}
		if tenantID == "" {
			fields["tenantId"] = "tenantId is required"
		}
		if userID == "" {
			fields["userId"] = "userId is required"
		}
		if len(fields) > 0 {
			response.RespondError(c, log, apierr.Validation(fields))
			return
		}

		ctx := ctxutil.WithOwner(c.Request.Context(), &ctxutil.Owner{TenantID: tenantID, UserID: userID})
		c.Request = c.Request.WithContext(ctx)
		c.Set("tenant_id", tenantID)
		c.Set("user_id", userID)
		c.Next()
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
