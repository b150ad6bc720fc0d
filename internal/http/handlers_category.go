package http

import (
	"net/http"

	"github.com/glensd/personalExpenseTracker/internal/core"
	"github.com/glensd/personalExpenseTracker/internal/log"
)

const msgCategoryNotFound = "Category not found."

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, msgCategoryNotFound)
		return
	}
	if categories == nil {
		categories = []core.Category{}
	}
	DataResponse(http.StatusOK, "Categories retrieved successfully.", categories).Write(w)
}

func (s *Server) handleShowCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		NotFoundError(msgCategoryNotFound).Write(w)
		return
	}

	category, err := s.categories.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, msgCategoryNotFound)
		return
	}
	DataResponse(http.StatusOK, "Category retrieved successfully.", category).Write(w)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}

	category, err := s.categories.Create(r.Context(), categoryInput(p))
	if err != nil {
		writeServiceError(w, r, err, msgCategoryNotFound)
		return
	}

	log.FromContext(r.Context()).Info("Category created",
		log.FieldCategoryID, category.ID, "name", category.Name)
	DataResponse(http.StatusCreated, "Category created successfully.", category).Write(w)
}

// handleUpdateCategory answers 201 like the expense update.
func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		NotFoundError(msgCategoryNotFound).Write(w)
		return
	}
	p, ok := parseBody(w, r)
	if !ok {
		return
	}

	category, err := s.categories.Update(r.Context(), id, categoryInput(p))
	if err != nil {
		writeServiceError(w, r, err, msgCategoryNotFound)
		return
	}

	log.FromContext(r.Context()).Info("Category updated", log.FieldCategoryID, id)
	DataResponse(http.StatusCreated, "Category updated successfully.", category).Write(w)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		NotFoundError(msgCategoryNotFound).Write(w)
		return
	}

	if err := s.categories.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, msgCategoryNotFound)
		return
	}

	log.FromContext(r.Context()).Info("Category deleted", log.FieldCategoryID, id)
	MessageResponse(http.StatusOK, "Category deleted successfully").Write(w)
}
