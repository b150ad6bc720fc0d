package http

import (
	"net/http"

	"github.com/glensd/personalExpenseTracker/internal/core"
	"github.com/glensd/personalExpenseTracker/internal/log"
)

const msgExpenseNotFound = "Expense not found."

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context(), currentUser(r), expenseQuery(r))
	if err != nil {
		writeServiceError(w, r, err, msgExpenseNotFound)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	DataResponse(http.StatusOK, "Expenses retrieved successfully.", expenses).Write(w)
}

func (s *Server) handleShowExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		NotFoundError(msgExpenseNotFound).Write(w)
		return
	}

	expense, err := s.expenses.Get(r.Context(), currentUser(r), id)
	if err != nil {
		writeServiceError(w, r, err, msgExpenseNotFound)
		return
	}
	DataResponse(http.StatusOK, "Expense retrieved successfully.", expense).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}

	expense, err := s.expenses.Create(r.Context(), currentUser(r), expenseInput(p))
	if err != nil {
		writeServiceError(w, r, err, msgExpenseNotFound)
		return
	}

	log.FromContext(r.Context()).Info("Expense created",
		log.FieldExpenseID, expense.ID,
		log.FieldCategoryID, expense.CategoryID,
		"amount_cents", expense.Amount.Cents)
	DataResponse(http.StatusCreated, "Expense added successfully.", expense).Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		NotFoundError(msgExpenseNotFound).Write(w)
		return
	}
	p, ok := parseBody(w, r)
	if !ok {
		return
	}

	expense, err := s.expenses.Update(r.Context(), currentUser(r), id, expenseInput(p))
	if err != nil {
		writeServiceError(w, r, err, msgExpenseNotFound)
		return
	}

	log.FromContext(r.Context()).Info("Expense updated", log.FieldExpenseID, id)
	DataResponse(http.StatusCreated, "Expenses updated successfully.", expense).Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		NotFoundError(msgExpenseNotFound).Write(w)
		return
	}

	if err := s.expenses.Delete(r.Context(), currentUser(r), id); err != nil {
		writeServiceError(w, r, err, msgExpenseNotFound)
		return
	}

	log.FromContext(r.Context()).Info("Expense deleted", log.FieldExpenseID, id)
	MessageResponse(http.StatusOK, "Expense deleted successfully").Write(w)
}
