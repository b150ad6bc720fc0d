package core

import (
	"strconv"
	"time"
)

// CategorySum is one row of a date-range summary, keyed by category name.
type CategorySum struct {
	CategoryName string `json:"category_name"`
	TotalAmount  Money  `json:"total_amount"`
}

// CategoryTotal is the all-time total of a user's expenses in one category.
// Category is empty when the category has since been soft-deleted.
type CategoryTotal struct {
	CategoryID int64  `json:"-"`
	Category   string `json:"category"`
	Total      Money  `json:"total"`
}

// MonthlyTotal is the total of a user's expenses in one calendar month.
type MonthlyTotal struct {
	Year  int   `json:"-"`
	Month int   `json:"-"` // 1-12
	Total Money `json:"total"`
}

// Label renders the month as "<Month name> <year>", e.g. "January 2024".
func (m MonthlyTotal) Label() string {
	return time.Month(m.Month).String() + " " + strconv.Itoa(m.Year)
}

func (m MonthlyTotal) MarshalJSON() ([]byte, error) {
	return []byte(`{"month":"` + m.Label() + `","total":` + m.Total.String() + `}`), nil
}

// ExpenseStats holds the user-wide counters behind the analytics summary.
type ExpenseStats struct {
	TotalAmount     Money
	TotalCategories int64
	TotalExpenses   int64
}

// AnalyticsSummary is the derived summary block of the analytics view.
type AnalyticsSummary struct {
	TotalAmount     Money   `json:"totalAmount"`
	TotalCategories int64   `json:"totalCategories"`
	TotalExpenses   int64   `json:"totalExpenses"`
	AverageExpense  float64 `json:"averageExpense"`
}

// NewAnalyticsSummary derives the average from the raw counters.
func NewAnalyticsSummary(s ExpenseStats) AnalyticsSummary {
	return AnalyticsSummary{
		TotalAmount:     s.TotalAmount,
		TotalCategories: s.TotalCategories,
		TotalExpenses:   s.TotalExpenses,
		AverageExpense:  Average(s.TotalAmount, s.TotalExpenses),
	}
}

// Analytics is the full analytics payload for one user.
type Analytics struct {
	CategoryData []CategoryTotal  `json:"categoryData"`
	MonthlyData  []MonthlyTotal   `json:"monthlyData"`
	Summary      AnalyticsSummary `json:"summary"`
}
