package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/usecase"
)

type updatePlayerRequest struct {
	Status          *string `json:"status" validate:"omitempty,oneof=active withdrawn inactive"`
	PaymentReceived *bool   `json:"payment_received"`
	TeamID          *string `json:"team_id" validate:"omitempty,max=64"`
}

type assignRoleRequest struct {
	Role       string `json:"role" validate:"required,max=64"`
	SeasonID   string `json:"season_id" validate:"required"`
	DivisionID string `json:"division_id" validate:"omitempty,max=64"`
	TeamID     string `json:"team_id" validate:"omitempty,max=64"`
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.rosterService.ListSeasons(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisions")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	divisions, err := h.rosterService.ListDivisions(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list divisions failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]divisionDTO, 0, len(divisions))
	for _, d := range divisions {
		items = append(items, divisionToDTO(d))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	teams, err := h.rosterService.ListTeams(ctx, seasonID, r.URL.Query().Get("division_id"))
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	unassigned, err := queryBool(r, "unassigned")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	filter := player.Filter{
		SeasonID:   r.PathValue("seasonID"),
		DivisionID: strings.TrimSpace(query.Get("division_id")),
		TeamID:     strings.TrimSpace(query.Get("team_id")),
		Status:     player.Status(strings.TrimSpace(query.Get("status"))),
		Search:     strings.TrimSpace(query.Get("q")),
		Unassigned: unassigned,
		Sort:       player.SortKey(strings.TrimSpace(query.Get("sort"))),
	}
	players, err := h.rosterService.ListPlayers(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "season_id", filter.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	var req updatePlayerRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := r.PathValue("playerID")
	updated, err := h.rosterService.UpdatePlayer(ctx, playerID, usecase.PlayerUpdate{
		Status:          req.Status,
		PaymentReceived: req.PaymentReceived,
		TeamID:          req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}

func (h *Handler) ListVolunteers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVolunteers")
	defer span.End()

	query := r.URL.Query()
	filter := volunteer.Filter{
		SeasonID:   r.PathValue("seasonID"),
		DivisionID: strings.TrimSpace(query.Get("division_id")),
		TeamID:     strings.TrimSpace(query.Get("team_id")),
		Role:       strings.TrimSpace(query.Get("role")),
	}
	items, err := h.volunteerService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list volunteers failed", "season_id", filter.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, volunteersToDTO(items))
}

func (h *Handler) AssignVolunteerRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignVolunteerRole")
	defer span.End()

	var req assignRoleRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	volunteerID := r.PathValue("volunteerID")
	updated, err := h.volunteerService.AssignRole(ctx, usecase.AssignRoleInput{
		VolunteerID: volunteerID,
		Role:        req.Role,
		SeasonID:    req.SeasonID,
		DivisionID:  req.DivisionID,
		TeamID:      req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assign volunteer role failed", "volunteer_id", volunteerID, "role", req.Role, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, volunteerToDTO(updated))
}

func (h *Handler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFamilies")
	defer span.End()

	seasonID := r.URL.Query().Get("season_id")
	families, err := h.rosterService.ListFamilies(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list families failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]familyDTO, 0, len(families))
	for _, f := range families {
		items = append(items, familyToDTO(f))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetFamily(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFamily")
	defer span.End()

	familyID := r.PathValue("familyID")
	detail, err := h.rosterService.GetFamily(ctx, familyID, r.URL.Query().Get("season_id"))
	if err != nil {
		h.logger.WarnContext(ctx, "get family failed", "family_id", familyID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, familyDetailDTO{
		familyDTO:  familyToDTO(detail.Family),
		Players:    playersToDTO(detail.Players),
		Volunteers: volunteersToDTO(detail.Volunteers),
	})
}
