package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/glensd/personalExpenseTracker/internal/amqp"
	"github.com/glensd/personalExpenseTracker/internal/core"

	"golang.org/x/sync/errgroup"
)

// ExpenseService applies ownership and category rules to expense operations
// and publishes an event after every committed write.
type ExpenseService struct {
	expenses   ExpenseStore
	categories CategoryStore
	analytics  AnalyticsStore
	publisher  EventPublisher
}

// NewExpenseService wires the stores. publisher may be nil when AMQP is disabled.
func NewExpenseService(expenses ExpenseStore, categories CategoryStore, analytics AnalyticsStore, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		expenses:   expenses,
		categories: categories,
		analytics:  analytics,
		publisher:  publisher,
	}
}

// List returns the user's expenses matching the query.
func (s *ExpenseService) List(ctx context.Context, userID int64, q core.ExpenseQuery) ([]core.Expense, error) {
	f, err := q.Filter()
	if err != nil {
		return nil, err
	}
	if f.CategoryID != nil {
		exists, err := s.categories.CategoryExists(ctx, *f.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("list expenses: %w", err)
		}
		if !exists {
			return nil, core.NewValidationError("category_id", "The selected category id is invalid.")
		}
	}
	return s.expenses.ListExpenses(ctx, userID, f)
}

// Get returns one of the user's expenses.
func (s *ExpenseService) Get(ctx context.Context, userID, id int64) (core.Expense, error) {
	return s.owned(ctx, userID, id)
}

func (s *ExpenseService) Create(ctx context.Context, userID int64, in core.ExpenseInput) (core.Expense, error) {
	fields, err := in.Parse()
	if err != nil {
		return core.Expense{}, err
	}
	if err := s.requireCategory(ctx, fields.CategoryID); err != nil {
		return core.Expense{}, err
	}

	created, err := s.expenses.CreateExpense(ctx, core.Expense{
		UserID:      userID,
		CategoryID:  fields.CategoryID,
		Amount:      fields.Amount,
		Description: fields.Description,
		Date:        fields.Date,
	})
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, amqp.EventExpenseCreated, created)
	return created, nil
}

// Update overwrites every field of one of the user's expenses.
func (s *ExpenseService) Update(ctx context.Context, userID, id int64, in core.ExpenseInput) (core.Expense, error) {
	fields, err := in.Parse()
	if err != nil {
		return core.Expense{}, err
	}
	current, err := s.owned(ctx, userID, id)
	if err != nil {
		return core.Expense{}, err
	}
	if err := s.requireCategory(ctx, fields.CategoryID); err != nil {
		return core.Expense{}, err
	}

	current.CategoryID = fields.CategoryID
	current.Amount = fields.Amount
	current.Description = fields.Description
	current.Date = fields.Date

	updated, err := s.expenses.UpdateExpense(ctx, current)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	s.publish(ctx, amqp.EventExpenseUpdated, updated)
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id int64) error {
	current, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.expenses.SoftDeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("soft delete expense: %w", err)
	}

	s.publish(ctx, amqp.EventExpenseDeleted, current)
	return nil
}

// Summary totals the user's expenses per category name over an inclusive date range.
func (s *ExpenseService) Summary(ctx context.Context, userID int64, in core.SummaryInput) ([]core.CategorySum, error) {
	start, end, err := in.Range()
	if err != nil {
		return nil, err
	}
	return s.analytics.SummarizeByCategory(ctx, userID, start, end)
}

// Analytics builds the category, monthly and summary views concurrently.
func (s *ExpenseService) Analytics(ctx context.Context, userID int64) (core.Analytics, error) {
	if userID <= 0 {
		return core.Analytics{}, core.ErrUnauthorized
	}

	var (
		result core.Analytics
		stats  core.ExpenseStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.analytics.CategoryTotals(gctx, userID)
		result.CategoryData = totals
		return err
	})
	g.Go(func() error {
		totals, err := s.analytics.MonthlyTotals(gctx, userID)
		result.MonthlyData = totals
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.analytics.ExpenseStats(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Analytics{}, fmt.Errorf("build analytics: %w", err)
	}

	result.Summary = core.NewAnalyticsSummary(stats)
	return result, nil
}

// owned loads an expense and checks that userID owns it.
func (s *ExpenseService) owned(ctx context.Context, userID, id int64) (core.Expense, error) {
	e, err := s.expenses.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}
	if e.UserID != userID {
		slog.WarnContext(ctx, "Expense access denied", "expense_id", id, "user_id", userID)
		return core.Expense{}, fmt.Errorf("expense %d: %w", id, core.ErrForbidden)
	}
	return e, nil
}

// requireCategory fails with ErrNotFound for a missing or soft-deleted category.
func (s *ExpenseService) requireCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.GetCategory(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("category %d: %w", id, core.ErrCategoryNotFound)
		}
		return fmt.Errorf("load category: %w", err)
	}
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, eventType string, e core.Expense) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not available, skipping expense event", "type", eventType)
		return
	}

	event := amqp.NewExpenseEvent(eventType, e.ID, e.UserID)
	event.CategoryID = e.CategoryID
	event.AmountCents = e.Amount.Cents
	if err := s.publisher.PublishExpenseEvent(ctx, event); err != nil {
		// The write is committed; a lost event must not fail the request.
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"type", eventType, "expense_id", e.ID, "error", err)
	}
}
