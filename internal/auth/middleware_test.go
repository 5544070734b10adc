package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newProtectedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	manager := NewManager(testConfig(), newMemoryStore())
	router := gin.New()
	protected := router.Group("/products")
	protected.Use(manager.RequireAuth())
	protected.GET("/", func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			t.Error("handler invoked without claims in context")
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	return router
}

func getProducts(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/products/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthValidToken(t *testing.T) {
	router := newProtectedRouter(t)

	token, err := GenerateToken("a@b.com", "user-1", []byte("test-secret"), TokenValidity)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	rec := getProducts(router, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router := newProtectedRouter(t)

	rec := getProducts(router, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	router := newProtectedRouter(t)

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "garbage"} {
		rec := getProducts(router, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	router := newProtectedRouter(t)

	token, err := GenerateToken("a@b.com", "user-1", []byte("test-secret"), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	rec := getProducts(router, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthWrongSecret(t *testing.T) {
	router := newProtectedRouter(t)

	token, err := GenerateToken("a@b.com", "user-1", []byte("another-secret"), TokenValidity)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	rec := getProducts(router, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
