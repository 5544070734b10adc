// Package storage はユーザーの永続化レイヤーを提供します。
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound は指定された条件に一致するユーザーが存在しない場合に返されます。
	ErrNotFound = errors.New("storage: user not found")
	// ErrDuplicateEmail は同一メールアドレスのユーザーが既に存在する場合に返されます。
	ErrDuplicateEmail = errors.New("storage: email already exists")
)

// User は永続化されるユーザーレコードです。
// Password には bcrypt ハッシュのみを保存し、平文は一切保持しません。
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
`

// UserStore はSQLiteを使ったユーザーストアです。
type UserStore struct {
	db *sql.DB
}

// Open はSQLiteデータベースを開き、スキーマを適用してユーザーストアを返します。
func Open(path string) (*UserStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	// WALと busy_timeout は同時リクエストでの書き込み競合を緩和するための設定
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &UserStore{db: db}, nil
}

// Close はデータベース接続を閉じます。
func (s *UserStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// FindByEmail はメールアドレスに完全一致するユーザーを返します。
// 存在しない場合は ErrNotFound を返します。
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, created_at FROM users WHERE email = ?`, email)

	var u User
	var createdAt int64
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &u, nil
}

// Create は新しいユーザーを保存し、採番されたIDを含むレコードを返します。
// メールアドレスが既に使われている場合は ErrDuplicateEmail を返します。
func (s *UserStore) Create(ctx context.Context, name, email, hashedPassword string) (*User, error) {
	u := &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Password, u.CreatedAt.UnixMilli())
	if err != nil {
		// 存在チェックと挿入の間のレースはUNIQUE制約で検出する
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

// isUniqueViolation はSQLiteのUNIQUE制約違反かどうかを判定します。
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
