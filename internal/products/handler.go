// Package products は認証済みユーザー向けのルートを提供します。
package products

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-api/internal/auth"
)

// IndexHandler は GET /products/ のハンドラーです。
// トークン検証はミドルウェアが済ませているため、ここでは追加の判定をしません。
func IndexHandler(c *gin.Context) {
	if claims, ok := auth.ClaimsFromContext(c); ok {
		log.Printf("detail of user: email=%s userId=%s", claims.Email, claims.UserID)
	}

	c.JSON(http.StatusOK, gin.H{
		"msg": "welcome to the main page",
	})
}
