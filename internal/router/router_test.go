package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tienda-tcg/internal/config"
	"github.com/tienda-tcg/internal/logger"
	"github.com/tienda-tcg/internal/provider"

	"github.com/gin-gonic/gin"
)

func TestSetupRouterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Init("debug", logger.Options{})

	r := SetupRouter(&config.Config{}, &provider.Container{})

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	want := []string{
		"POST /api/cart/create",
		"POST /api/cart/get",
		"POST /api/cart/lines/add",
		"POST /api/cart/lines/update",
		"POST /api/cart/lines/remove",
		"GET /api/v1/products",
		"GET /api/v1/products/:handle",
		"GET /api/v1/collections/:handle",
		"GET /api/v1/collections/:handle/:tag",
		"GET /api/v1/cart",
		"GET /api/v1/cart/checkout",
		"POST /api/v1/cart/lines",
		"PATCH /api/v1/cart/lines/:line_id",
		"DELETE /api/v1/cart/lines/:line_id",
		"GET /health",
	}
	for _, route := range want {
		if !registered[route] {
			t.Fatalf("route %s not registered", route)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"shopify":false`) {
		t.Fatalf("unexpected health response %d %s", w.Code, w.Body.String())
	}
}
