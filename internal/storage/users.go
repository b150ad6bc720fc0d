package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glensd/personalExpenseTracker/internal/core"
)

func (r *Repository) CreateUser(ctx context.Context, name, email, passwordHash string) (core.User, error) {
	u := core.User{Name: name, Email: email, PasswordHash: passwordHash}
	err := r.queryRow(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?) RETURNING id`,
		name, email, passwordHash).Scan(&u.ID)
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", conflict(err))
	}

	slog.InfoContext(ctx, "User registered", "id", u.ID)
	return u, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	var u core.User
	err := r.queryRow(ctx, `SELECT id, name, email, password_hash FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		return core.User{}, fmt.Errorf("get user by email: %w", notFound(err))
	}
	return u, nil
}

func (r *Repository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int
	if err := r.queryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}
