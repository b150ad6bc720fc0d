package http

import (
	"net/http"

	"github.com/glensd/personalExpenseTracker/internal/log"
)

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}

	token, err := s.auth.Login(r.Context(), loginInput(p))
	if err != nil {
		writeServiceError(w, r, err, msgUnauthorized)
		return
	}
	NewJSONResponse().Payload(tokenResponse{Token: token}).Write(w)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}

	user, err := s.auth.Register(r.Context(), registerInput(p))
	if err != nil {
		writeServiceError(w, r, err, msgUnauthorized)
		return
	}

	log.FromContext(r.Context()).Info("User registered", log.FieldUserID, user.ID)
	DataResponse(http.StatusCreated, "User registered successfully.", user).Write(w)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), bearerToken(r)); err != nil {
		writeServiceError(w, r, err, msgUnauthorized)
		return
	}
	MessageResponse(http.StatusOK, "Logged out successfully.").Write(w)
}
