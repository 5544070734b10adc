package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextClaimsKey は、ハンドラー間で検証済みクレームを共有するためのキーです。
const ContextClaimsKey = "auth.claims"

// RequireAuth はBearerトークンを検証するミドルウェアを返します。
// 検証に成功するとクレームをコンテキストに載せ、失敗した場合は
// ハンドラーを呼ばずに401で打ち切ります。
func (m *Manager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication required",
				"success": false,
			})
			return
		}

		claims, err := ParseToken(token, []byte(m.cfg.JWTSecret))
		if err != nil {
			// 形式不正・署名不一致・期限切れを区別せず同じ応答にする
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication required",
				"success": false,
			})
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext はミドルウェアが格納したクレームを取り出します。
func ClaimsFromContext(c *gin.Context) (*Claims, bool) {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*Claims)
	return claims, ok
}
