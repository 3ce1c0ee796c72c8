package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamboard/teamboard/internal/api/middleware"
	"github.com/teamboard/teamboard/internal/api/params"
	"github.com/teamboard/teamboard/internal/api/response"
	"github.com/teamboard/teamboard/internal/api/validation"
	"github.com/teamboard/teamboard/internal/discussion"
	"github.com/teamboard/teamboard/internal/user"
)

type discussionResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	AuthorID  string        `json:"authorId"`
	TeamID    string        `json:"teamId"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
	Author    *userResponse `json:"author,omitempty"`
}

func toDiscussionResponse(d *discussion.Discussion) discussionResponse {
	resp := discussionResponse{
		ID:        d.ID.String(),
		Title:     d.Title,
		Body:      d.Body,
		AuthorID:  d.AuthorID.String(),
		TeamID:    d.TeamID.String(),
		CreatedAt: formatTime(d.CreatedAt),
		UpdatedAt: formatTime(d.UpdatedAt),
	}
	if d.Author != nil {
		author := toUserResponse(d.Author)
		resp.Author = &author
	}
	return resp
}

type discussionRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// DiscussionHandler handles discussion endpoints.
type DiscussionHandler struct {
	discussions discussion.Repository
	users       user.Repository
}

// NewDiscussionHandler creates a new DiscussionHandler.
func NewDiscussionHandler(discussions discussion.Repository, users user.Repository) *DiscussionHandler {
	return &DiscussionHandler{discussions: discussions, users: users}
}

// List handles GET /discussions. Results are always scoped to the caller's
// team.
func (h *DiscussionHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	p := params.ParseDiscussionList(r.URL.Query())

	discussions, total, err := h.discussions.ListByTeam(r.Context(), identity.TeamID, p.Filter())
	if err != nil {
		slog.Error("failed to list discussions", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to list discussions")
		return
	}

	items := make([]discussionResponse, 0, len(discussions))
	for i := range discussions {
		items = append(items, toDiscussionResponse(&discussions[i]))
	}

	response.DataWithMeta(w, http.StatusOK, items, p.Meta(total))
}

// Get handles GET /discussions/{id}. A discussion belonging to another team
// is reported as not found.
func (h *DiscussionHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "id must be a valid UUID")
		return
	}

	d, err := h.discussions.GetForTeam(r.Context(), id, identity.TeamID)
	if err != nil {
		if errors.Is(err, discussion.ErrDiscussionNotFound) {
			response.Err(w, http.StatusNotFound, "Discussion not found")
			return
		}
		slog.Error("failed to get discussion", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to get discussion")
		return
	}

	response.Data(w, http.StatusOK, toDiscussionResponse(d))
}

// Create handles POST /discussions (admin).
func (h *DiscussionHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req discussionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := validation.ValidateDiscussionRequest(validation.DiscussionRequest{
		Title: req.Title,
		Body:  req.Body,
	})
	if len(fieldErrors) > 0 {
		response.ValidationErr(w, fieldErrors)
		return
	}

	d := &discussion.Discussion{
		Title:    req.Title,
		Body:     req.Body,
		AuthorID: identity.ID,
		TeamID:   identity.TeamID,
	}
	if err := h.discussions.Create(r.Context(), d); err != nil {
		slog.Error("failed to create discussion", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to create discussion")
		return
	}

	author, err := h.users.GetByID(r.Context(), identity.ID)
	if err != nil {
		slog.Error("failed to get author", "error", err, "id", identity.ID)
		response.Err(w, http.StatusInternalServerError, "Failed to create discussion")
		return
	}
	d.Author = author

	response.JSON(w, http.StatusCreated, toDiscussionResponse(d))
}

// Update handles PATCH /discussions/{id} (admin).
func (h *DiscussionHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "id must be a valid UUID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req discussionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := validation.ValidateDiscussionRequest(validation.DiscussionRequest{
		Title: req.Title,
		Body:  req.Body,
	})
	if len(fieldErrors) > 0 {
		response.ValidationErr(w, fieldErrors)
		return
	}

	d, err := h.discussions.GetForTeam(r.Context(), id, identity.TeamID)
	if err != nil {
		if errors.Is(err, discussion.ErrDiscussionNotFound) {
			response.Err(w, http.StatusNotFound, "Discussion not found")
			return
		}
		slog.Error("failed to get discussion", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to update discussion")
		return
	}

	d.Title = req.Title
	d.Body = req.Body

	if err := h.discussions.Update(r.Context(), d); err != nil {
		if errors.Is(err, discussion.ErrDiscussionNotFound) {
			response.Err(w, http.StatusNotFound, "Discussion not found")
			return
		}
		slog.Error("failed to update discussion", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to update discussion")
		return
	}

	response.JSON(w, http.StatusOK, toDiscussionResponse(d))
}

// Delete handles DELETE /discussions/{id} (admin). Comments go with the
// discussion via the cascading foreign key.
func (h *DiscussionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "id must be a valid UUID")
		return
	}

	if _, err := h.discussions.GetForTeam(r.Context(), id, identity.TeamID); err != nil {
		if errors.Is(err, discussion.ErrDiscussionNotFound) {
			response.Err(w, http.StatusNotFound, "Discussion not found")
			return
		}
		slog.Error("failed to get discussion", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to delete discussion")
		return
	}

	if err := h.discussions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, discussion.ErrDiscussionNotFound) {
			response.Err(w, http.StatusNotFound, "Discussion not found")
			return
		}
		slog.Error("failed to delete discussion", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to delete discussion")
		return
	}

	response.Message(w, http.StatusOK, "Discussion deleted successfully")
}
