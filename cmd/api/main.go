// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-api/internal/auth"
	"github.com/yourusername/auth-api/internal/config"
	"github.com/yourusername/auth-api/internal/products"
	"github.com/yourusername/auth-api/internal/storage"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// ユーザーストアの初期化（スキーマ適用込み）
	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open user store: %v", err)
	}
	defer store.Close()

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
	}
	router.Use(cors.New(corsConfig))

	// ルーティングの設定
	setupRoutes(router, cfg, store)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "auth-api",
		"version": "0.1.0",
	})
}

// setupRoutes は認証ルートと保護ルートの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, store auth.UserStore) {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", handleHealth)

	authManager := auth.NewManager(cfg, store)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signup", authManager.Signup)
		authRoutes.POST("/login", authManager.Login)
	}

	// 保護ルートはすべてトークン検証の後ろにぶら下げる
	protected := router.Group("/products")
	protected.Use(authManager.RequireAuth())
	{
		protected.GET("/", products.IndexHandler)
	}
}
