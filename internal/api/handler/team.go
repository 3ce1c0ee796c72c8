package handler

import (
	"log/slog"
	"net/http"

	"github.com/teamboard/teamboard/internal/api/response"
	"github.com/teamboard/teamboard/internal/team"
)

type teamResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toTeamResponse(t *team.Team) teamResponse {
	return teamResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	}
}

// TeamHandler handles team endpoints.
type TeamHandler struct {
	teams team.Repository
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teams team.Repository) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// List handles GET /teams. The route is public so the registration form can
// offer existing teams to join.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.List(r.Context())
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		response.Err(w, http.StatusInternalServerError, "Failed to list teams")
		return
	}

	items := make([]teamResponse, 0, len(teams))
	for i := range teams {
		items = append(items, toTeamResponse(&teams[i]))
	}

	response.Data(w, http.StatusOK, items)
}
