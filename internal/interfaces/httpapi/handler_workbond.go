package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/youth-league/internal/usecase"
)

type createShiftRequest struct {
	Name     string    `json:"name" validate:"required,max=120"`
	Location string    `json:"location" validate:"max=120"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required"`
	Hours    float64   `json:"hours" validate:"gt=0"`
	Capacity int       `json:"capacity" validate:"min=1"`
}

type signupRequest struct {
	FamilyID      string `json:"family_id" validate:"required"`
	VolunteerName string `json:"volunteer_name" validate:"max=120"`
}

type markSignupRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListShifts")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	overview, err := h.workbondService.ListShifts(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list workbond shifts failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]shiftOverviewDTO, 0, len(overview))
	for _, o := range overview {
		items = append(items, shiftOverviewToDTO(o))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateShift")
	defer span.End()

	var req createShiftRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	shift, err := h.workbondService.CreateShift(ctx, usecase.CreateShiftInput{
		SeasonID: seasonID,
		Name:     req.Name,
		Location: req.Location,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Hours:    req.Hours,
		Capacity: req.Capacity,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create workbond shift failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, shiftToDTO(shift))
}

func (h *Handler) SignUpForShift(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignUpForShift")
	defer span.End()

	var req signupRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	shiftID := r.PathValue("shiftID")
	signup, err := h.workbondService.SignUp(ctx, usecase.SignupInput{
		ShiftID:       shiftID,
		FamilyID:      req.FamilyID,
		VolunteerName: req.VolunteerName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "workbond signup failed", "shift_id", shiftID, "family_id", req.FamilyID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, signupToDTO(signup))
}

func (h *Handler) MarkSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkSignup")
	defer span.End()

	var req markSignupRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	signupID := r.PathValue("signupID")
	signup, err := h.workbondService.MarkSignup(ctx, signupID, req.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "mark workbond signup failed", "signup_id", signupID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, signupToDTO(signup))
}

func (h *Handler) WorkbondSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WorkbondSummary")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	summaries, err := h.workbondService.Summary(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "workbond summary failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]familySummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, familySummaryToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
