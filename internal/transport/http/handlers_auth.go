package http

import (
	"net/http"
	"strings"

	"github.com/ireporter-ke/ireporter/internal/domain"
	"github.com/ireporter-ke/ireporter/internal/service"
)

type signUpRequest struct {
	Email           string `json:"Email"`
	Password        string `json:"Password"`
	ConfirmPassword string `json:"Confirm Password"`
}

type signUpResult struct {
	ID      int    `json:"Id"`
	Message string `json:"message"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := s.readJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	account, err := s.accounts.SignUp(r.Context(), service.SignUpInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, envelope{
		Status: http.StatusCreated,
		Data:   signUpResult{ID: account.ID, Message: msgSignedUp},
	})
}

type loginRequest struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

type sessionResponse struct {
	Email string `json:"Email"`
	ID    int    `json:"Id"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.readJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	sessions, err := s.accounts.Login(r.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: getClientIP(r),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, sessionResponse{Email: session.Email, ID: session.ID})
	}

	s.writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK, Data: out})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	id, err := s.idParam(r)
	if err != nil {
		// An id that cannot name an account cannot be logged in.
		s.writeError(w, domain.ErrNotLoggedIn)
		return
	}

	if err := s.accounts.Logout(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK, Data: msgLoggedOut})
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// Try X-Forwarded-For first (set by proxies/load balancers)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Get the first IP (client)
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
