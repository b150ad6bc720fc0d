package core

import (
	"strings"
	"time"
)

const (
	// MaxCategoryNameLength mirrors the VARCHAR(255) column.
	MaxCategoryNameLength = 255
	// MaxDescriptionLength mirrors the VARCHAR(255) column.
	MaxDescriptionLength = 255
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Category struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	Expense struct {
		ID          int64     `json:"id"`
		UserID      int64     `json:"user_id"`
		CategoryID  int64     `json:"category_id"`
		Amount      Money     `json:"amount"`
		Description *string   `json:"description"`
		Date        Date      `json:"expense_date"`
		Category    *Category `json:"category"` // nil when the category was soft-deleted
	}

	User struct {
		ID           int64  `json:"id"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		PasswordHash string `json:"-"`
	}

	// ExpenseFilter narrows an expense listing. Nil fields are not applied;
	// Start and End are either both set or both nil.
	ExpenseFilter struct {
		CategoryID *int64
		Start      *Date
		End        *Date
	}
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp, keeping only the calendar date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return NewDate(t.Year(), int(t.Month()), t.Day()), nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}
