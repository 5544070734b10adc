// Package auth は認証機能（サインアップ・ログイン・トークン検証）を提供します。
package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/auth-api/internal/config"
	"github.com/yourusername/auth-api/internal/storage"
)

// UserStore はユーザーの検索と作成ができるストアが実装します。
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*storage.User, error)
	Create(ctx context.Context, name, email, hashedPassword string) (*storage.User, error)
}

// Manager は認証処理と依存をまとめた構造体です。
type Manager struct {
	cfg   *config.Config
	store UserStore
}

// NewManager は認証マネージャーを作成します。
func NewManager(cfg *config.Config, store UserStore) *Manager {
	return &Manager{
		cfg:   cfg,
		store: store,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup は POST /auth/signup のハンドラーです。
// バリデーションと重複チェックを通過した場合のみユーザーを保存します。
func (m *Manager) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "All fields are required",
			"success": false,
		})
		return
	}

	if !ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid email format",
			"success": false,
		})
		return
	}

	if !ValidatePassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Password must be at least 8 characters long and contain at least one number and one special character",
			"success": false,
		})
		return
	}

	ctx := c.Request.Context()

	_, err := m.store.FindByEmail(ctx, req.Email)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"message": "User already exists, please login",
			"success": false,
		})
		return
	}
	if !errors.Is(err, storage.ErrNotFound) {
		m.internalError(c, "signup", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), m.cfg.BcryptCost)
	if err != nil {
		m.internalError(c, "signup", err)
		return
	}

	if _, err := m.store.Create(ctx, req.Name, req.Email, string(hashed)); err != nil {
		// 存在チェック後に他のリクエストが同じメールで登録した場合も重複として扱う
		if errors.Is(err, storage.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{
				"message": "User already exists, please login",
				"success": false,
			})
			return
		}
		m.internalError(c, "signup", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful",
		"success": true,
	})
}

// Login は POST /auth/login のハンドラーです。
// 認証に成功すると24時間有効なJWTを返します。
func (m *Manager) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "All fields are required",
			"success": false,
		})
		return
	}

	if !ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid email format",
			"success": false,
		})
		return
	}

	// ユーザー不在とパスワード不一致は同じ応答にして、アカウントの存在を推測できないようにする
	const authFailedMessage = "Authentication failed: email or password is incorrect"

	user, err := m.store.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusForbidden, gin.H{
				"message": authFailedMessage,
				"success": false,
			})
			return
		}
		m.internalError(c, "login", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"message": authFailedMessage,
			"success": false,
		})
		return
	}

	token, err := GenerateToken(user.Email, user.ID, []byte(m.cfg.JWTSecret), TokenValidity)
	if err != nil {
		m.internalError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"success":  true,
		"jwtToken": token,
		"email":    user.Email,
		"name":     user.Name,
	})
}

// internalError は予期しない失敗をログに残し、詳細を隠した500応答を返します。
func (m *Manager) internalError(c *gin.Context, op string, err error) {
	log.Printf("%s error: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "Internal server error",
		"success": false,
	})
}
