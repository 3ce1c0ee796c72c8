package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/teamboard/teamboard/internal/api/middleware"
	"github.com/teamboard/teamboard/internal/api/response"
	"github.com/teamboard/teamboard/internal/api/validation"
	"github.com/teamboard/teamboard/internal/auth"
	"github.com/teamboard/teamboard/internal/config"
	"github.com/teamboard/teamboard/internal/team"
	"github.com/teamboard/teamboard/internal/user"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	TeamID    string `json:"teamId"`
	TeamName  string `json:"teamName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User userResponse `json:"user"`
	JWT  string       `json:"jwt"`
}

// AuthHandler handles registration, login, logout and the current-user
// endpoint.
type AuthHandler struct {
	cfg         *config.Config
	authService *auth.Service
	users       user.Repository
	teams       team.Repository
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, authService *auth.Service, users user.Repository, teams team.Repository) *AuthHandler {
	return &AuthHandler{cfg: cfg, authService: authService, users: users, teams: teams}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if h.cfg.IsProduction() {
		sameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.authService.Tokens().Expiry().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: sameSite,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
	})
}

// Register handles POST /auth/register. With a teamId the caller joins that
// team as a regular member; without one a fresh team is created and the
// caller becomes its admin.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := validation.ValidateRegisterRequest(validation.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if len(fieldErrors) > 0 {
		response.ValidationErr(w, fieldErrors)
		return
	}

	existing, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		slog.Error("failed to check email", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to register")
		return
	}
	if existing != nil {
		response.Err(w, http.StatusBadRequest, "User already exists")
		return
	}

	var (
		teamID uuid.UUID
		role   string
	)
	if req.TeamID != "" {
		id, err := uuid.Parse(req.TeamID)
		if err != nil {
			response.Err(w, http.StatusBadRequest, "The team you are trying to join does not exist!")
			return
		}
		if _, err := h.teams.GetByID(r.Context(), id); err != nil {
			if errors.Is(err, team.ErrTeamNotFound) {
				response.Err(w, http.StatusBadRequest, "The team you are trying to join does not exist!")
				return
			}
			slog.Error("failed to get team", "error", err, "id", id)
			response.Err(w, http.StatusInternalServerError, "Failed to register")
			return
		}
		teamID = id
		role = user.RoleUser
	} else {
		name := req.TeamName
		if name == "" {
			name = fmt.Sprintf("%s Team", req.FirstName)
		}
		t := &team.Team{Name: name}
		if err := h.teams.Create(r.Context(), t); err != nil {
			slog.Error("failed to create team", "error", err)
			response.Err(w, http.StatusInternalServerError, "Failed to register")
			return
		}
		teamID = t.ID
		role = user.RoleAdmin
	}

	hash, err := h.authService.Hash(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	u := &user.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         role,
		TeamID:       teamID,
	}
	if err := h.users.Create(r.Context(), u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			response.Err(w, http.StatusBadRequest, "User already exists")
			return
		}
		slog.Error("failed to create user", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	token, err := h.authService.Tokens().Issue(u.ID, u.Email, u.Role)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	h.setSessionCookie(w, token)
	response.JSON(w, http.StatusCreated, sessionResponse{User: toUserResponse(u), JWT: token})
}

// Login handles POST /auth/login. An unknown email and a wrong password
// produce the same response, so neither can be used to probe for accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := validation.ValidateLoginRequest(validation.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if len(fieldErrors) > 0 {
		response.ValidationErr(w, fieldErrors)
		return
	}

	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("failed to get user", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if !auth.CheckPassword(req.Password, u.PasswordHash) {
		response.Err(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.authService.Tokens().Issue(u.ID, u.Email, u.Role)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.setSessionCookie(w, token)
	response.JSON(w, http.StatusOK, sessionResponse{User: toUserResponse(u), JWT: token})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	response.Message(w, http.StatusOK, "Logged out successfully")
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	u, err := h.users.GetByID(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to get user", "error", err, "id", identity.ID)
		response.Err(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	response.Data(w, http.StatusOK, toUserResponse(u))
}
