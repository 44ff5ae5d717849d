package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
	"github.com/riskibarqy/youth-league/internal/usecase"
)

const (
	maxJSONBodyBytes   = 1 << 20
	maxUploadBodyBytes = 8 << 20
)

// Services groups the use cases the handlers call.
type Services struct {
	Roster     *usecase.RosterService
	Volunteers *usecase.VolunteerService
	Imports    *usecase.ImportService
	Exports    *usecase.ExportService
	Draft      *usecase.DraftService
	Workbond   *usecase.WorkbondService
	Dashboard  *usecase.DashboardService
	Mailing    *usecase.MailingService
}

type Handler struct {
	rosterService    *usecase.RosterService
	volunteerService *usecase.VolunteerService
	importService    *usecase.ImportService
	exportService    *usecase.ExportService
	draftService     *usecase.DraftService
	workbondService  *usecase.WorkbondService
	dashboardService *usecase.DashboardService
	mailingService   *usecase.MailingService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService:    services.Roster,
		volunteerService: services.Volunteers,
		importService:    services.Imports,
		exportService:    services.Exports,
		draftService:     services.Draft,
		workbondService:  services.Workbond,
		dashboardService: services.Dashboard,
		mailingService:   services.Mailing,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a bounded JSON body into dst and validates it.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

type upload struct {
	Filename string
	Content  string
}

// readUpload pulls the multipart "file" part out of the request.
func readUpload(w http.ResponseWriter, r *http.Request) (upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodyBytes)
	if err := r.ParseMultipartForm(maxUploadBodyBytes); err != nil {
		return upload{}, fmt.Errorf("%w: expected a multipart form with a file: %v", usecase.ErrInvalidInput, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return upload{}, fmt.Errorf("%w: no file selected", usecase.ErrInvalidInput)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return upload{}, fmt.Errorf("%w: read uploaded file: %v", usecase.ErrInvalidInput, err)
	}

	return upload{Filename: header.Filename, Content: string(content)}, nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, key)
	}
	return v, nil
}
