package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glensd/personalExpenseTracker/internal/core"
)

func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.query(ctx, `SELECT id, name FROM categories WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]core.Category, 0)
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// GetCategory returns a non-deleted category.
func (r *Repository) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := r.queryRow(ctx, `SELECT id, name FROM categories WHERE id = ? AND deleted_at IS NULL`, id).
		Scan(&c.ID, &c.Name)
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %d: %w", id, notFound(err))
	}
	return c, nil
}

// CategoryExists reports whether a category row exists, soft-deleted or not.
func (r *Repository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := r.queryRow(ctx, `SELECT COUNT(*) FROM categories WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("check category %d: %w", id, err)
	}
	return n > 0, nil
}

// CategoryNameTaken reports whether another non-deleted category uses name.
// Pass excludeID 0 when creating.
func (r *Repository) CategoryNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var n int
	err := r.queryRow(ctx,
		`SELECT COUNT(*) FROM categories WHERE name = ? AND id <> ? AND deleted_at IS NULL`,
		name, excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return n > 0, nil
}

func (r *Repository) CreateCategory(ctx context.Context, name string) (core.Category, error) {
	c := core.Category{Name: name}
	if err := r.queryRow(ctx, `INSERT INTO categories (name) VALUES (?) RETURNING id`, name).Scan(&c.ID); err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", conflict(err))
	}

	slog.InfoContext(ctx, "Category created", "id", c.ID, "name", c.Name)
	return c, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, id int64, name string) (core.Category, error) {
	err := r.exec(ctx,
		`UPDATE categories SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		name, id)
	if err != nil {
		return core.Category{}, fmt.Errorf("update category %d: %w", id, conflict(err))
	}
	return core.Category{ID: id, Name: name}, nil
}

func (r *Repository) SoftDeleteCategory(ctx context.Context, id int64) error {
	err := r.exec(ctx,
		`UPDATE categories SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Category soft-deleted", "id", id)
	return nil
}
