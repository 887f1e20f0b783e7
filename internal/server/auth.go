package server

import (
	"encoding/json"
	"net/http"

	"github.com/affan/hiring-agent/internal/config"
)

// AuthHandler handles operator authentication. Credentials come from the
// users table when a store is wired, otherwise from the configured operator
// email and password hash.
type AuthHandler struct {
	users        UserStore
	passwords    *config.PasswordConfig
	jwtService   *JWTService
	operatorAddr string
	operatorHash string
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(users UserStore, passwords *config.PasswordConfig, jwtService *JWTService, operatorEmail, operatorHash string) *AuthHandler {
	return &AuthHandler{
		users:        users,
		passwords:    passwords,
		jwtService:   jwtService,
		operatorAddr: operatorEmail,
		operatorHash: operatorHash,
	}
}

// LoginRequest is the login request payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Login verifies credentials and issues a JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if req.Password == "" {
		writeError(w, &ErrValidation{Field: "password", Message: "password is required"})
		return
	}

	hash, email, err := h.lookupHash(r, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if !h.passwords.VerifyPassword(req.Password, hash) {
		writeError(w, &ErrInvalidCredentials{})
		return
	}

	token, err := h.jwtService.GenerateToken(email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Email: email})
}

// lookupHash resolves the stored password hash for the login attempt.
func (h *AuthHandler) lookupHash(r *http.Request, email string) (hash, resolved string, err error) {
	if h.users != nil && email != "" {
		user, err := h.users.GetUserByEmail(r.Context(), email)
		if err != nil {
			return "", "", err
		}
		if user != nil {
			return user.PasswordHash, user.Email, nil
		}
	}

	if h.operatorHash == "" {
		return "", "", &ErrInvalidCredentials{}
	}
	if email != "" && h.operatorAddr != "" && email != h.operatorAddr {
		return "", "", &ErrInvalidCredentials{}
	}
	resolved = h.operatorAddr
	if resolved == "" {
		resolved = email
	}
	return h.operatorHash, resolved, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, HTTPStatus(err), map[string]string{"error": err.Error()})
}
