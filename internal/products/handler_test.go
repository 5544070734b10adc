package products

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-api/internal/auth"
	"github.com/yourusername/auth-api/internal/config"
)

func TestIndexHandlerBehindGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "test-secret"}
	manager := auth.NewManager(cfg, nil)

	router := gin.New()
	protected := router.Group("/products")
	protected.Use(manager.RequireAuth())
	protected.GET("/", IndexHandler)

	// トークンなしはハンドラーに到達しない
	req := httptest.NewRequest(http.MethodGet, "/products/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("without token: status = %d, want 401", rec.Code)
	}

	token, err := auth.GenerateToken("a@b.com", "user-1", []byte(cfg.JWTSecret), auth.TokenValidity)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/products/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("with token: status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["msg"] != "welcome to the main page" {
		t.Errorf("msg = %q, want %q", body["msg"], "welcome to the main page")
	}
}
