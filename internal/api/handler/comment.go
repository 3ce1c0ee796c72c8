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
	"github.com/teamboard/teamboard/internal/comment"
	"github.com/teamboard/teamboard/internal/discussion"
	"github.com/teamboard/teamboard/internal/user"
)

type commentResponse struct {
	ID           string        `json:"id"`
	Body         string        `json:"body"`
	AuthorID     string        `json:"authorId"`
	DiscussionID string        `json:"discussionId"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
	Author       *userResponse `json:"author,omitempty"`
}

func toCommentResponse(c *comment.Comment) commentResponse {
	resp := commentResponse{
		ID:           c.ID.String(),
		Body:         c.Body,
		AuthorID:     c.AuthorID.String(),
		DiscussionID: c.DiscussionID.String(),
		CreatedAt:    formatTime(c.CreatedAt),
		UpdatedAt:    formatTime(c.UpdatedAt),
	}
	if c.Author != nil {
		author := toUserResponse(c.Author)
		resp.Author = &author
	}
	return resp
}

type commentRequest struct {
	Body         string `json:"body"`
	DiscussionID string `json:"discussionId"`
}

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	comments    comment.Repository
	discussions discussion.Repository
	users       user.Repository
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments comment.Repository, discussions discussion.Repository, users user.Repository) *CommentHandler {
	return &CommentHandler{comments: comments, discussions: discussions, users: users}
}

// resolveDiscussion looks up a discussion by its string ID within the
// caller's team. A malformed ID behaves like a missing discussion, the same
// as any other reference that resolves to nothing.
func (h *CommentHandler) resolveDiscussion(r *http.Request, raw string, teamID uuid.UUID) (*discussion.Discussion, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, discussion.ErrDiscussionNotFound
	}
	return h.discussions.GetForTeam(r.Context(), id, teamID)
}

// List handles GET /comments?discussionId=...&page=...
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	rawID := r.URL.Query().Get("discussionId")
	if rawID == "" {
		response.Err(w, http.StatusBadRequest, "Discussion ID is required")
		return
	}

	d, err := h.resolveDiscussion(r, rawID, identity.TeamID)
	if err != nil {
		if errors.Is(err, discussion.ErrDiscussionNotFound) {
			response.Err(w, http.StatusNotFound, "Discussion not found")
			return
		}
		slog.Error("failed to get discussion", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to list comments")
		return
	}

	p := params.ParsePage(r.URL.Query())

	comments, total, err := h.comments.ListByDiscussion(r.Context(), d.ID, params.PageSize, p.Offset())
	if err != nil {
		slog.Error("failed to list comments", "error", err, "discussionId", d.ID)
		response.Err(w, http.StatusInternalServerError, "Failed to list comments")
		return
	}

	items := make([]commentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, toCommentResponse(&comments[i]))
	}

	response.DataWithMeta(w, http.StatusOK, items, p.Meta(total))
}

// Create handles POST /comments. Any team member may comment on their team's
// discussions.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := validation.ValidateCommentRequest(validation.CommentRequest{
		Body:         req.Body,
		DiscussionID: req.DiscussionID,
	})
	if len(fieldErrors) > 0 {
		response.ValidationErr(w, fieldErrors)
		return
	}

	d, err := h.resolveDiscussion(r, req.DiscussionID, identity.TeamID)
	if err != nil {
		if errors.Is(err, discussion.ErrDiscussionNotFound) {
			response.Err(w, http.StatusNotFound, "Discussion not found")
			return
		}
		slog.Error("failed to get discussion", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	c := &comment.Comment{
		Body:         req.Body,
		AuthorID:     identity.ID,
		DiscussionID: d.ID,
	}
	if err := h.comments.Create(r.Context(), c); err != nil {
		slog.Error("failed to create comment", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	author, err := h.users.GetByID(r.Context(), identity.ID)
	if err != nil {
		slog.Error("failed to get author", "error", err, "id", identity.ID)
		response.Err(w, http.StatusInternalServerError, "Failed to create comment")
		return
	}
	c.Author = author

	response.JSON(w, http.StatusCreated, toCommentResponse(c))
}

// Delete handles DELETE /comments/{id}. A comment in another team looks like
// it does not exist; a comment in the caller's team that they do not own is
// forbidden unless they are an admin.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "id must be a valid UUID")
		return
	}

	c, err := h.comments.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			response.Err(w, http.StatusNotFound, "Comment not found")
			return
		}
		slog.Error("failed to get comment", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}

	if c.DiscussionTeamID != identity.TeamID {
		response.Err(w, http.StatusNotFound, "Comment not found")
		return
	}

	if c.AuthorID != identity.ID && !identity.IsAdmin() {
		response.Err(w, http.StatusForbidden, "Not authorized to delete this comment")
		return
	}

	if err := h.comments.Delete(r.Context(), id); err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			response.Err(w, http.StatusNotFound, "Comment not found")
			return
		}
		slog.Error("failed to delete comment", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}

	response.Message(w, http.StatusOK, "Comment deleted successfully")
}
