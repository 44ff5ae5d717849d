package httpapi

import (
	"net/http"

	"github.com/riskibarqy/youth-league/internal/domain/draft"
	"github.com/riskibarqy/youth-league/internal/usecase"
)

type createDraftSessionRequest struct {
	SeasonID   string   `json:"season_id" validate:"required"`
	DivisionID string   `json:"division_id" validate:"required"`
	TeamOrder  []string `json:"team_order" validate:"omitempty,dive,required"`
}

type makePickRequest struct {
	TeamID     string `json:"team_id" validate:"required"`
	PlayerID   string `json:"player_id" validate:"required"`
	PickNumber int    `json:"pick_number" validate:"required,min=1"`
}

func (h *Handler) GetDraftBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftBoard")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	divisionID := r.PathValue("divisionID")
	board, err := h.draftService.GetBoard(ctx, seasonID, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft board failed", "season_id", seasonID, "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardToDTO(board))
}

func (h *Handler) CreateDraftSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraftSession")
	defer span.End()

	var req createDraftSessionRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.draftService.CreateSession(ctx, usecase.CreateDraftInput{
		SeasonID:   req.SeasonID,
		DivisionID: req.DivisionID,
		TeamOrder:  req.TeamOrder,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create draft session failed", "season_id", req.SeasonID, "division_id", req.DivisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sessionToDTO(session))
}

func (h *Handler) MakePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MakePick")
	defer span.End()

	var req makePickRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sessionID := r.PathValue("sessionID")
	result, err := h.draftService.MakePick(ctx, draft.PickRequest{
		SessionID:  sessionID,
		TeamID:     req.TeamID,
		PlayerID:   req.PlayerID,
		PickNumber: req.PickNumber,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "draft pick failed",
			"session_id", sessionID,
			"team_id", req.TeamID,
			"player_id", req.PlayerID,
			"pick_number", req.PickNumber,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, pickResultToDTO(result))
}
