package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/youth-league/internal/usecase"
)

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	dashboard, err := h.dashboardService.Get(ctx, seasonID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}

func (h *Handler) GetMailingList(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMailingList")
	defer span.End()

	query := r.URL.Query()
	input := usecase.MailingListInput{
		SeasonID:   r.PathValue("seasonID"),
		Audience:   query.Get("audience"),
		DivisionID: strings.TrimSpace(query.Get("division_id")),
		TeamID:     strings.TrimSpace(query.Get("team_id")),
		Role:       query.Get("role"),
	}
	recipients, err := h.mailingService.Build(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "build mailing list failed", "season_id", input.SeasonID, "audience", input.Audience, "error", err)
		writeError(ctx, w, err)
		return
	}

	switch format := strings.ToLower(strings.TrimSpace(query.Get("format"))); format {
	case "", "json":
		writeSuccess(ctx, w, http.StatusOK, recipientsToDTO(recipients))
	case "csv":
		name := fmt.Sprintf("mailing-list-%s.csv", input.SeasonID)
		writeFile(ctx, w, name, usecase.ContentTypeCSV, []byte(usecase.MailingCSV(recipients)))
	case "line":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(usecase.AddressLine(recipients)))
	default:
		writeError(ctx, w, fmt.Errorf("%w: unknown mailing list format %q", usecase.ErrInvalidInput, format))
	}
}
