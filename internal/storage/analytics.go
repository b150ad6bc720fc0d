package storage

import (
	"context"
	"fmt"

	"github.com/glensd/personalExpenseTracker/internal/core"
)

// SummarizeByCategory totals the user's expenses in [start, end] per category name.
// Categories without matching expenses do not appear.
func (r *Repository) SummarizeByCategory(ctx context.Context, userID int64, start, end core.Date) ([]core.CategorySum, error) {
	rows, err := r.query(ctx, `SELECT c.name, CAST(SUM(e.amount_cents) AS BIGINT)
FROM expenses e
JOIN categories c ON c.id = e.category_id
WHERE e.user_id = ? AND e.deleted_at IS NULL AND e.expense_date BETWEEN ? AND ?
GROUP BY c.name
ORDER BY c.name`, userID, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}
	defer rows.Close()

	sums := make([]core.CategorySum, 0)
	for rows.Next() {
		var s core.CategorySum
		if err := rows.Scan(&s.CategoryName, &s.TotalAmount.Cents); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category sums: %w", err)
	}
	return sums, nil
}

// CategoryTotals totals the user's expenses per category id. A soft-deleted
// category keeps its row with an empty name.
func (r *Repository) CategoryTotals(ctx context.Context, userID int64) ([]core.CategoryTotal, error) {
	rows, err := r.query(ctx, `SELECT e.category_id, COALESCE(MAX(c.name), ''), CAST(SUM(e.amount_cents) AS BIGINT)
FROM expenses e
LEFT JOIN categories c ON c.id = e.category_id AND c.deleted_at IS NULL
WHERE e.user_id = ? AND e.deleted_at IS NULL
GROUP BY e.category_id
ORDER BY e.category_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	totals := make([]core.CategoryTotal, 0)
	for rows.Next() {
		var t core.CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.Category, &t.Total.Cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return totals, nil
}

// MonthlyTotals totals the user's expenses per calendar month, ordered by
// year descending and month ascending within a year.
func (r *Repository) MonthlyTotals(ctx context.Context, userID int64) ([]core.MonthlyTotal, error) {
	q := `SELECT ` + r.dialect.yearOf("e.expense_date") + ` AS yr, ` +
		r.dialect.monthOf("e.expense_date") + ` AS mon, CAST(SUM(e.amount_cents) AS BIGINT)
FROM expenses e
WHERE e.user_id = ? AND e.deleted_at IS NULL
GROUP BY yr, mon
ORDER BY yr DESC, mon ASC`

	rows, err := r.query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()

	totals := make([]core.MonthlyTotal, 0)
	for rows.Next() {
		var t core.MonthlyTotal
		if err := rows.Scan(&t.Year, &t.Month, &t.Total.Cents); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly totals: %w", err)
	}
	return totals, nil
}

// ExpenseStats returns the user's grand total, expense count and the number
// of distinct non-deleted categories used.
func (r *Repository) ExpenseStats(ctx context.Context, userID int64) (core.ExpenseStats, error) {
	var s core.ExpenseStats
	err := r.queryRow(ctx, `SELECT CAST(COALESCE(SUM(e.amount_cents), 0) AS BIGINT), COUNT(e.id), COUNT(DISTINCT c.id)
FROM expenses e
LEFT JOIN categories c ON c.id = e.category_id AND c.deleted_at IS NULL
WHERE e.user_id = ? AND e.deleted_at IS NULL`, userID).
		Scan(&s.TotalAmount.Cents, &s.TotalExpenses, &s.TotalCategories)
	if err != nil {
		return core.ExpenseStats{}, fmt.Errorf("expense stats: %w", err)
	}
	return s, nil
}
