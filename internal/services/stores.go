package services

import (
	"context"

	"github.com/glensd/personalExpenseTracker/internal/amqp"
	"github.com/glensd/personalExpenseTracker/internal/core"
)

// CategoryStore is the persistence the category and expense services need.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]core.Category, error)
	GetCategory(ctx context.Context, id int64) (core.Category, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
	CategoryNameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	CreateCategory(ctx context.Context, name string) (core.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (core.Category, error)
	SoftDeleteCategory(ctx context.Context, id int64) error
}

type ExpenseStore interface {
	ListExpenses(ctx context.Context, userID int64, f core.ExpenseFilter) ([]core.Expense, error)
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	SoftDeleteExpense(ctx context.Context, id int64) error
}

type AnalyticsStore interface {
	SummarizeByCategory(ctx context.Context, userID int64, start, end core.Date) ([]core.CategorySum, error)
	CategoryTotals(ctx context.Context, userID int64) ([]core.CategoryTotal, error)
	MonthlyTotals(ctx context.Context, userID int64) ([]core.MonthlyTotal, error)
	ExpenseStats(ctx context.Context, userID int64) (core.ExpenseStats, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (core.User, error)
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// EventPublisher receives expense events after writes. *amqp.Client implements it.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, event *amqp.ExpenseEvent) error
}
