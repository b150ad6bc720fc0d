package http

import (
	"net/http"
	"strconv"

	"github.com/glensd/personalExpenseTracker/internal/core"
	"github.com/glensd/personalExpenseTracker/internal/log"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}

	sums, err := s.expenses.Summary(r.Context(), currentUser(r), summaryInput(p))
	if err != nil {
		writeServiceError(w, r, err, msgExpenseNotFound)
		return
	}
	if sums == nil {
		sums = []core.CategorySum{}
	}
	DataResponse(http.StatusOK, "Summary retrieved successfully.", sums).Write(w)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.expenses.Analytics(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, r, err, msgExpenseNotFound)
		return
	}
	if analytics.CategoryData == nil {
		analytics.CategoryData = []core.CategoryTotal{}
	}
	if analytics.MonthlyData == nil {
		analytics.MonthlyData = []core.MonthlyTotal{}
	}

	log.FromContext(r.Context()).Debug("Analytics computed",
		"total_cents", analytics.Summary.TotalAmount.Cents,
		"total_expenses", analytics.Summary.TotalExpenses)
	NewJSONResponse().Payload(analytics).Write(w)
}

// handleChart renders one analytics view as a PNG; 204 when there is nothing to draw.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	q := core.ChartQuery{Kind: sanitizeInput(r.URL.Query().Get("kind"))}
	if err := q.Validate(); err != nil {
		writeServiceError(w, r, err, msgExpenseNotFound)
		return
	}

	analytics, err := s.expenses.Analytics(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, r, err, msgExpenseNotFound)
		return
	}

	var png []byte
	switch q.Kind {
	case "monthly":
		png, err = s.charts.MonthlyBars(analytics.MonthlyData)
	default:
		png, err = s.charts.CategoryPie(analytics.CategoryData)
	}
	if err != nil {
		log.FromContext(r.Context()).Error("Failed to render chart", "kind", q.Kind, log.FieldError, err)
		InternalServerError().Write(w)
		return
	}
	if png == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
