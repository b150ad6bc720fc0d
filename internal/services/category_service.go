package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/glensd/personalExpenseTracker/internal/core"
)

// CategoryService manages the shared category list.
type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) List(ctx context.Context) ([]core.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (core.Category, error) {
	return s.store.GetCategory(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, in core.CategoryInput) (core.Category, error) {
	if err := s.validate(ctx, &in, 0); err != nil {
		return core.Category{}, err
	}
	c, err := s.store.CreateCategory(ctx, in.Name)
	return c, nameTaken(err)
}

// Update renames a category. A missing id wins over an invalid name.
func (s *CategoryService) Update(ctx context.Context, id int64, in core.CategoryInput) (core.Category, error) {
	if _, err := s.store.GetCategory(ctx, id); err != nil {
		return core.Category{}, err
	}
	if err := s.validate(ctx, &in, id); err != nil {
		return core.Category{}, err
	}
	c, err := s.store.UpdateCategory(ctx, id, in.Name)
	return c, nameTaken(err)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.store.SoftDeleteCategory(ctx, id)
}

func (s *CategoryService) validate(ctx context.Context, in *core.CategoryInput, excludeID int64) error {
	if err := in.Validate(); err != nil {
		return err
	}
	taken, err := s.store.CategoryNameTaken(ctx, in.Name, excludeID)
	if err != nil {
		return fmt.Errorf("validate category: %w", err)
	}
	if taken {
		return errNameTaken()
	}
	return nil
}

// nameTaken turns a write that lost a race on the unique name index into the
// same validation error the pre-check reports.
func nameTaken(err error) error {
	if errors.Is(err, core.ErrConflict) {
		return errNameTaken()
	}
	return err
}

func errNameTaken() error {
	return core.NewValidationError("name", "The name has already been taken.")
}
