package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamboard/teamboard/internal/api/middleware"
	"github.com/teamboard/teamboard/internal/api/params"
	"github.com/teamboard/teamboard/internal/api/response"
	"github.com/teamboard/teamboard/internal/api/validation"
	"github.com/teamboard/teamboard/internal/auth"
	"github.com/teamboard/teamboard/internal/user"
)

// userResponse is the serialized form of a user. There is deliberately no
// password field anywhere in it.
type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	TeamID    string `json:"teamId"`
	Bio       string `json:"bio"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		TeamID:    u.TeamID.String(),
		Bio:       u.Bio,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

type createUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
}

type updateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UserHandler handles team member endpoints.
type UserHandler struct {
	users       user.Repository
	authService *auth.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users user.Repository, authService *auth.Service) *UserHandler {
	return &UserHandler{users: users, authService: authService}
}

// List handles GET /users. Only the caller's team is visible.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	p := params.ParseUserList(r.URL.Query())

	users, total, err := h.users.ListByTeam(r.Context(), identity.TeamID, user.ListFilter{
		Search: p.Search,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		slog.Error("failed to list users", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	items := make([]userResponse, 0, len(users))
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}

	response.DataWithMeta(w, http.StatusOK, items, p.Meta(total))
}

// Get handles GET /users/{id}. A user outside the caller's team is reported
// as not found, never as forbidden.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "id must be a valid UUID")
		return
	}

	target, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to get user", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	if target.TeamID != identity.TeamID {
		response.Err(w, http.StatusNotFound, "User not found")
		return
	}

	response.JSON(w, http.StatusOK, toUserResponse(target))
}

// Create handles POST /users (admin). The new member always joins the
// caller's team.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := validation.ValidateCreateUserRequest(validation.CreateUserRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if len(fieldErrors) > 0 {
		response.ValidationErr(w, fieldErrors)
		return
	}

	hash, err := h.authService.Hash(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	u := &user.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         req.Role,
		TeamID:       identity.TeamID,
		Bio:          req.Bio,
	}

	if err := h.users.Create(r.Context(), u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			response.Err(w, http.StatusBadRequest, "User already exists")
			return
		}
		slog.Error("failed to create user", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	response.JSON(w, http.StatusCreated, toUserResponse(u))
}

// Update handles PUT /users/{id} (admin).
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "id must be a valid UUID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := validation.ValidateProfileRequest(validation.ProfileRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if len(fieldErrors) > 0 {
		response.ValidationErr(w, fieldErrors)
		return
	}

	target, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to get user", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	if target.TeamID != identity.TeamID {
		response.Err(w, http.StatusNotFound, "User not found")
		return
	}

	// Email uniqueness is global; only a collision with a different user is
	// a conflict.
	if req.Email != target.Email {
		existing, err := h.users.GetByEmail(r.Context(), req.Email)
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			slog.Error("failed to check email", "error", err)
			response.Err(w, http.StatusInternalServerError, "Failed to update user")
			return
		}
		if existing != nil && existing.ID != id {
			response.Err(w, http.StatusBadRequest, "Email already in use")
			return
		}
	}

	target.FirstName = req.FirstName
	target.LastName = req.LastName
	target.Email = req.Email
	target.Bio = req.Bio

	if err := h.users.UpdateProfile(r.Context(), target); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			response.Err(w, http.StatusBadRequest, "Email already in use")
			return
		}
		slog.Error("failed to update user", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	response.JSON(w, http.StatusOK, toUserResponse(target))
}

// UpdateRole handles PUT /users/{id}/role (admin). Admins cannot demote
// themselves, which keeps every team with at least one admin.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "id must be a valid UUID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := validation.ValidateUpdateRoleRequest(validation.UpdateRoleRequest{Role: req.Role})
	if len(fieldErrors) > 0 {
		response.ValidationErr(w, fieldErrors)
		return
	}

	target, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to get user", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to update role")
		return
	}

	if target.TeamID != identity.TeamID {
		response.Err(w, http.StatusNotFound, "User not found")
		return
	}

	if id == identity.ID && req.Role == user.RoleUser {
		response.Err(w, http.StatusBadRequest, "Cannot change your own role")
		return
	}

	updated, err := h.users.UpdateRole(r.Context(), id, req.Role)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to update role", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to update role")
		return
	}

	response.JSON(w, http.StatusOK, toUserResponse(updated))
}

// UpdateProfile handles PATCH /users/profile. Callers only ever update their
// own record through this route.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := validation.ValidateProfileRequest(validation.ProfileRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if len(fieldErrors) > 0 {
		response.ValidationErr(w, fieldErrors)
		return
	}

	if req.Email != identity.Email {
		existing, err := h.users.GetByEmail(r.Context(), req.Email)
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			slog.Error("failed to check email", "error", err)
			response.Err(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		if existing != nil && existing.ID != identity.ID {
			response.Err(w, http.StatusBadRequest, "Email already in use")
			return
		}
	}

	u, err := h.users.GetByID(r.Context(), identity.ID)
	if err != nil {
		slog.Error("failed to get user", "error", err, "id", identity.ID)
		response.Err(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Email = req.Email
	u.Bio = req.Bio

	if err := h.users.UpdateProfile(r.Context(), u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			response.Err(w, http.StatusBadRequest, "Email already in use")
			return
		}
		slog.Error("failed to update profile", "error", err, "id", identity.ID)
		response.Err(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	response.JSON(w, http.StatusOK, toUserResponse(u))
}

// Delete handles DELETE /users/{id} (admin).
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "id must be a valid UUID")
		return
	}

	target, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to get user", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	if target.TeamID != identity.TeamID {
		response.Err(w, http.StatusNotFound, "User not found")
		return
	}

	if id == identity.ID {
		response.Err(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to delete user", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	response.Message(w, http.StatusOK, "User deleted successfully")
}
