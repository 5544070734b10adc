package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity は発行するトークンの有効期間です。
const TokenValidity = 24 * time.Hour

// ErrInvalidToken は署名不正・期限切れなど、検証に失敗したトークンを表します。
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims はJWTに埋め込むクレームです。
// 標準クレームに加えてユーザーのメールアドレスとIDを持ちます。
type Claims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

// GenerateToken はユーザー情報を含むHS256署名付きJWTを発行します。
func GenerateToken(email, userID string, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		Email:  email,
		UserID: userID,
	})

	return token.SignedString(secret)
}

// ParseToken はトークンを検証し、クレームを返します。
// 署名不一致・期限切れ・形式不正はすべて ErrInvalidToken になります。
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
