package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/glensd/personalExpenseTracker/internal/auth"
	"github.com/glensd/personalExpenseTracker/internal/core"
	"github.com/glensd/personalExpenseTracker/internal/log"
)

// CategoryService is the category behaviour the handlers need.
type CategoryService interface {
	List(ctx context.Context) ([]core.Category, error)
	Get(ctx context.Context, id int64) (core.Category, error)
	Create(ctx context.Context, in core.CategoryInput) (core.Category, error)
	Update(ctx context.Context, id int64, in core.CategoryInput) (core.Category, error)
	Delete(ctx context.Context, id int64) error
}

// ExpenseService is the expense behaviour the handlers need.
type ExpenseService interface {
	List(ctx context.Context, userID int64, q core.ExpenseQuery) ([]core.Expense, error)
	Get(ctx context.Context, userID, id int64) (core.Expense, error)
	Create(ctx context.Context, userID int64, in core.ExpenseInput) (core.Expense, error)
	Update(ctx context.Context, userID, id int64, in core.ExpenseInput) (core.Expense, error)
	Delete(ctx context.Context, userID, id int64) error
	Summary(ctx context.Context, userID int64, in core.SummaryInput) ([]core.CategorySum, error)
	Analytics(ctx context.Context, userID int64) (core.Analytics, error)
}

type AuthService interface {
	Register(ctx context.Context, in core.RegisterInput) (core.User, error)
	Login(ctx context.Context, in core.LoginInput) (string, error)
	Authenticate(ctx context.Context, token string) (int64, error)
	Logout(ctx context.Context, token string) error
}

// ChartRenderer turns analytics views into PNG images. A nil image means no data.
type ChartRenderer interface {
	CategoryPie(totals []core.CategoryTotal) ([]byte, error)
	MonthlyBars(totals []core.MonthlyTotal) ([]byte, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// writeServiceError maps a service error onto its HTTP response.
// notFound is the message used for a missing resource of the route itself.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationFailed(verr).Write(w)
	case errors.Is(err, core.ErrCategoryNotFound):
		NotFoundError(msgCategoryMissing).Write(w)
	case errors.Is(err, core.ErrNotFound):
		NotFoundError(notFound).Write(w)
	case errors.Is(err, core.ErrForbidden):
		ForbiddenError().Write(w)
	case errors.Is(err, core.ErrUnauthorized):
		UnauthorizedError().Write(w)
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads the response
		log.FromContext(r.Context()).Debug("Request cancelled", "method", r.Method, "path", r.URL.Path)
	default:
		log.FromContext(r.Context()).Error("Request failed",
			log.FieldError, err,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
		InternalServerError().Write(w)
	}
}

// requireAuth resolves the bearer token to a user id stored in the context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			UnauthorizedError().Write(w)
			return
		}

		userID, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			writeServiceError(w, r, err, msgUnauthorized)
			return
		}

		ctx := auth.WithUserID(r.Context(), userID)
		ctx = log.NewContext(ctx, log.FromContext(ctx).With(log.FieldUserID, userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the id set by requireAuth, or 0.
func currentUser(r *http.Request) int64 {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		log.FromContext(r.Context()).Warn("Readiness check failed", log.FieldError, err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("database unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
