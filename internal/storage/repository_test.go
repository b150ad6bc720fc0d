package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glensd/personalExpenseTracker/internal/core"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewSQLiteRepository(context.Background(), filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustUser(t *testing.T, repo *Repository, email string) core.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), "Test", email, "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func mustCategory(t *testing.T, repo *Repository, name string) core.Category {
	t.Helper()
	c, err := repo.CreateCategory(context.Background(), name)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

func mustExpense(t *testing.T, repo *Repository, userID, categoryID, cents int64, date core.Date) core.Expense {
	t.Helper()
	e, err := repo.CreateExpense(context.Background(), core.Expense{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     core.Money{Cents: cents},
		Date:       date,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	return e
}

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	food := mustCategory(t, repo, "Food")
	travel := mustCategory(t, repo, "Travel")

	taken, err := repo.CategoryNameTaken(ctx, "Food", 0)
	if err != nil || !taken {
		t.Fatalf("expected Food taken, got %v (err=%v)", taken, err)
	}
	taken, _ = repo.CategoryNameTaken(ctx, "Food", food.ID)
	if taken {
		t.Fatalf("name should not clash with its own row")
	}

	if _, err := repo.UpdateCategory(ctx, travel.ID, "Trips"); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetCategory(ctx, travel.ID)
	if err != nil || got.Name != "Trips" {
		t.Fatalf("unexpected category %+v (err=%v)", got, err)
	}

	if _, err := repo.CreateCategory(ctx, "Trips"); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate name, got %v", err)
	}
	if _, err := repo.UpdateCategory(ctx, food.ID, "Trips"); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected ErrConflict renaming onto a taken name, got %v", err)
	}

	if err := repo.SoftDeleteCategory(ctx, food.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetCategory(ctx, food.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted category, got %v", err)
	}
	if err := repo.SoftDeleteCategory(ctx, food.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
	exists, _ := repo.CategoryExists(ctx, food.ID)
	if !exists {
		t.Fatalf("soft-deleted category row should still exist")
	}

	// The name is free again once the holder is soft-deleted.
	if _, err := repo.CreateCategory(ctx, "Food"); err != nil {
		t.Fatalf("recreate Food: %v", err)
	}

	list, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Trips" || list[1].Name != "Food" {
		t.Fatalf("unexpected categories %+v", list)
	}
}

func TestExpenseRoundTripAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	alice := mustUser(t, repo, "alice@example.com")
	bob := mustUser(t, repo, "bob@example.com")
	food := mustCategory(t, repo, "Food")
	rent := mustCategory(t, repo, "Rent")

	desc := "groceries"
	created, err := repo.CreateExpense(ctx, core.Expense{
		UserID:      alice.ID,
		CategoryID:  food.ID,
		Amount:      core.Money{Cents: 1234},
		Description: &desc,
		Date:        core.NewDate(2024, 1, 10),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.GetExpense(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount.Cents != 1234 || got.Description == nil || *got.Description != desc ||
		got.Date.String() != "2024-01-10" || got.Category == nil || got.Category.Name != "Food" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	mustExpense(t, repo, alice.ID, rent.ID, 50000, core.NewDate(2024, 2, 1))
	mustExpense(t, repo, bob.ID, food.ID, 999, core.NewDate(2024, 1, 15))

	all, err := repo.ListExpenses(ctx, alice.ID, core.ExpenseFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 expenses for alice, got %d (err=%v)", len(all), err)
	}
	for _, e := range all {
		if e.UserID != alice.ID {
			t.Fatalf("leaked expense of user %d", e.UserID)
		}
	}

	foodOnly, _ := repo.ListExpenses(ctx, alice.ID, core.ExpenseFilter{CategoryID: &food.ID})
	if len(foodOnly) != 1 || foodOnly[0].CategoryID != food.ID {
		t.Fatalf("category filter failed: %+v", foodOnly)
	}

	start, end := core.NewDate(2024, 1, 10), core.NewDate(2024, 1, 31)
	jan, _ := repo.ListExpenses(ctx, alice.ID, core.ExpenseFilter{Start: &start, End: &end})
	if len(jan) != 1 || jan[0].ID != created.ID {
		t.Fatalf("inclusive date filter failed: %+v", jan)
	}

	if err := repo.SoftDeleteCategory(ctx, food.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	got, _ = repo.GetExpense(ctx, created.ID)
	if got.Category != nil {
		t.Fatalf("expected nil category after soft delete, got %+v", got.Category)
	}

	if err := repo.SoftDeleteExpense(ctx, created.ID); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	if _, err := repo.GetExpense(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateExpense(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	u := mustUser(t, repo, "u@example.com")
	food := mustCategory(t, repo, "Food")
	rent := mustCategory(t, repo, "Rent")
	e := mustExpense(t, repo, u.ID, food.ID, 100, core.NewDate(2024, 1, 1))

	desc := "moved"
	e.CategoryID = rent.ID
	e.Amount = core.Money{Cents: 700}
	e.Description = &desc
	e.Date = core.NewDate(2024, 3, 3)
	got, err := repo.UpdateExpense(ctx, e)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.CategoryID != rent.ID || got.Amount.Cents != 700 || *got.Description != "moved" || got.Date.String() != "2024-03-03" {
		t.Fatalf("unexpected updated expense %+v", got)
	}

	if _, err := repo.UpdateExpense(ctx, core.Expense{ID: 9999, CategoryID: rent.ID, Amount: core.Money{Cents: 1}, Date: e.Date}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAggregates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	u := mustUser(t, repo, "u@example.com")
	other := mustUser(t, repo, "o@example.com")
	food := mustCategory(t, repo, "Food")
	fun := mustCategory(t, repo, "Fun")

	mustExpense(t, repo, u.ID, food.ID, 1000, core.NewDate(2024, 1, 5))
	mustExpense(t, repo, u.ID, food.ID, 1500, core.NewDate(2024, 1, 20))
	mustExpense(t, repo, u.ID, food.ID, 500, core.NewDate(2024, 2, 3))
	mustExpense(t, repo, u.ID, fun.ID, 4000, core.NewDate(2023, 12, 31))
	mustExpense(t, repo, u.ID, fun.ID, 100, core.NewDate(2023, 3, 1))
	mustExpense(t, repo, other.ID, food.ID, 99999, core.NewDate(2024, 1, 6))

	sums, err := repo.SummarizeByCategory(ctx, u.ID, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(sums) != 1 || sums[0].CategoryName != "Food" || sums[0].TotalAmount.Cents != 2500 {
		t.Fatalf("unexpected summary %+v", sums)
	}

	months, err := repo.MonthlyTotals(ctx, u.ID)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	wantMonths := []string{"January 2024", "February 2024", "March 2023", "December 2023"}
	if len(months) != len(wantMonths) {
		t.Fatalf("expected %d months, got %+v", len(wantMonths), months)
	}
	for i, m := range months {
		if m.Label() != wantMonths[i] {
			t.Fatalf("month %d = %s, want %s", i, m.Label(), wantMonths[i])
		}
	}
	if months[0].Total.Cents != 2500 || months[1].Total.Cents != 500 {
		t.Fatalf("unexpected monthly totals %+v", months)
	}

	if err := repo.SoftDeleteCategory(ctx, fun.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	totals, err := repo.CategoryTotals(ctx, u.ID)
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 category totals, got %+v", totals)
	}
	if totals[0].Category != "Food" || totals[0].Total.Cents != 3000 {
		t.Fatalf("unexpected food total %+v", totals[0])
	}
	if totals[1].Category != "" || totals[1].Total.Cents != 4100 {
		t.Fatalf("deleted category should render empty name, got %+v", totals[1])
	}

	stats, err := repo.ExpenseStats(ctx, u.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalAmount.Cents != 7100 || stats.TotalExpenses != 5 || stats.TotalCategories != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	empty, err := repo.ExpenseStats(ctx, 12345)
	if err != nil || empty.TotalExpenses != 0 || empty.TotalAmount.Cents != 0 {
		t.Fatalf("unexpected empty stats %+v (err=%v)", empty, err)
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	u := mustUser(t, repo, "ann@example.com")

	got, err := repo.GetUserByEmail(ctx, "ann@example.com")
	if err != nil || got.ID != u.ID || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user %+v (err=%v)", got, err)
	}
	if _, err := repo.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	taken, _ := repo.EmailTaken(ctx, "ann@example.com")
	if !taken {
		t.Fatalf("expected email taken")
	}
	if _, err := repo.CreateUser(ctx, "Dup", "ann@example.com", "x"); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
