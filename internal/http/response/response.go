package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cart-backend/internal/platform/apierr"
	"github.com/yungbote/cart-backend/internal/platform/ctxutil"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

// HeaderIdempotencyReplayed marks a response served from the idempotency store.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

// ErrorResponse is the body of every non-2xx cart response.
type ErrorResponse struct {
	Timestamp        time.Time         `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// RespondError renders err as an ErrorResponse. Anything that is not an
// *apierr.Error is treated as internal; internal causes are logged and never
// sent to the client.
func RespondError(c *gin.Context, log *logger.Logger, err error) {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		apiErr = apierr.Internal(err)
	}
	status := apiErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	message := apiErr.Message
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		message = apierr.Internal(nil).Message
		if log != nil {
			log.Error("request failed",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"request_id", ctxutil.RequestID(c.Request.Context()),
				"code", apiErr.Code,
				"error", apiErr.Err,
			)
		}
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Timestamp:        time.Now().UTC(),
		Status:           status,
		Error:            http.StatusText(status),
		Message:          message,
		Path:             c.Request.URL.Path,
		ValidationErrors: apiErr.Fields,
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
