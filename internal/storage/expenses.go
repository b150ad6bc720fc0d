package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/glensd/personalExpenseTracker/internal/core"
)

// selectExpenses loads expenses with their category; the category is NULL once soft-deleted.
func (r *Repository) selectExpenses() string {
	return `SELECT e.id, e.user_id, e.category_id, e.amount_cents, e.description, ` +
		r.dialect.dateText("e.expense_date") + `, c.id, c.name
FROM expenses e
LEFT JOIN categories c ON c.id = e.category_id AND c.deleted_at IS NULL
WHERE e.deleted_at IS NULL`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(s rowScanner) (core.Expense, error) {
	var (
		e            core.Expense
		description  sql.NullString
		date         string
		categoryID   sql.NullInt64
		categoryName sql.NullString
	)
	if err := s.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Amount.Cents, &description, &date, &categoryID, &categoryName); err != nil {
		return core.Expense{}, err
	}

	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse expense_date %q: %w", date, err)
	}
	e.Date = d
	if description.Valid {
		e.Description = &description.String
	}
	if categoryID.Valid {
		e.Category = &core.Category{ID: categoryID.Int64, Name: categoryName.String}
	}
	return e, nil
}

// ListExpenses returns the user's expenses matching every set filter, oldest id first.
func (r *Repository) ListExpenses(ctx context.Context, userID int64, f core.ExpenseFilter) ([]core.Expense, error) {
	var b strings.Builder
	b.WriteString(r.selectExpenses())
	b.WriteString(" AND e.user_id = ?")
	args := []any{userID}

	if f.CategoryID != nil {
		b.WriteString(" AND e.category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.Start != nil {
		b.WriteString(" AND e.expense_date >= ?")
		args = append(args, f.Start.String())
	}
	if f.End != nil {
		b.WriteString(" AND e.expense_date <= ?")
		args = append(args, f.End.String())
	}
	b.WriteString(" ORDER BY e.id")

	rows, err := r.query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]core.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// GetExpense returns a non-deleted expense of any user; ownership is checked by the caller.
func (r *Repository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	e, err := scanExpense(r.queryRow(ctx, r.selectExpenses()+" AND e.id = ?", id))
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, notFound(err))
	}
	return e, nil
}

func (r *Repository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	var id int64
	err := r.queryRow(ctx,
		`INSERT INTO expenses (user_id, category_id, amount_cents, description, expense_date)
VALUES (?, ?, ?, ?, ?) RETURNING id`,
		e.UserID, e.CategoryID, e.Amount.Cents, e.Description, e.Date.String()).Scan(&id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"user_id", e.UserID,
		"category_id", e.CategoryID,
		"amount_cents", e.Amount.Cents,
		"expense_date", e.Date.String())

	return r.GetExpense(ctx, id)
}

// UpdateExpense overwrites category, amount, description and date.
func (r *Repository) UpdateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	err := r.exec(ctx,
		`UPDATE expenses
SET category_id = ?, amount_cents = ?, description = ?, expense_date = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND deleted_at IS NULL`,
		e.CategoryID, e.Amount.Cents, e.Description, e.Date.String(), e.ID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	return r.GetExpense(ctx, e.ID)
}

func (r *Repository) SoftDeleteExpense(ctx context.Context, id int64) error {
	err := r.exec(ctx,
		`UPDATE expenses SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Expense soft-deleted", "id", id)
	return nil
}
