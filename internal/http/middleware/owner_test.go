package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cart-backend/internal/platform/ctxutil"
	"github.com/yungbote/cart-backend/internal/platform/logger"
)

func ownerRouter(seen **ctxutil.Owner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ResolveOwner(logger.Nop()))
	r.GET("/api/cart", func(c *gin.Context) {
		*seen = ctxutil.GetOwner(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestResolveOwnerPrefersHeaders(t *testing.T) {
	var seen *ctxutil.Owner
	r := ownerRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/api/cart?tenantId=QT&userId=QU", nil)
	req.Header.Set(HeaderTenantID, "T1")
	req.Header.Set(HeaderUserID, "U1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	if seen == nil || seen.TenantID != "T1" || seen.UserID != "U1" {
		t.Fatalf("owner: %+v", seen)
	}
}

func TestResolveOwnerFallsBackToQuery(t *testing.T) {
	var seen *ctxutil.Owner
	r := ownerRouter(&seen)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart?tenantId=T2&userId=U2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	if seen == nil || seen.TenantID != "T2" || seen.UserID != "U2" {
		t.Fatalf("owner: %+v", seen)
	}
}

func TestResolveOwnerRejectsMissingIDs(t *testing.T) {
	var seen *ctxutil.Owner
	r := ownerRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(HeaderUserID, "U1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: want=400 got=%d", rec.Code)
	}
	if seen != nil {
		t.Fatalf("handler must not run without an owner")
	}
	var body struct {
		Message          string            `json:"message"`
		ValidationErrors map[string]string `json:"validationErrors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ValidationErrors["tenantId"] != "tenantId is required" {
		t.Fatalf("validationErrors: %+v", body.ValidationErrors)
	}
	if _, ok := body.ValidationErrors["userId"]; ok {
		t.Fatalf("userId was supplied: %+v", body.ValidationErrors)
	}
}
