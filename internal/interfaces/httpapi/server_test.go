package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/youth-league/internal/domain/user"
	"github.com/riskibarqy/youth-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/youth-league/internal/platform/id"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
	"github.com/riskibarqy/youth-league/internal/usecase"
)

type staticVerifier map[string]user.Principal

func (v staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

var testTokens = staticVerifier{
	"admin-token":    {UserID: "usr-admin", Role: user.RoleAdmin},
	"director-token": {UserID: "usr-director", Role: user.RoleDirector},
	"viewer-token":   {UserID: "usr-viewer", Role: user.RoleViewer},
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	repos := memory.NewSeededRepositories()
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC))
	logger := logging.NewNop()
	ids := usecase.IDGenerators{
		Player:    id.NewSequenceGenerator("ply-new-"),
		Family:    id.NewSequenceGenerator("fam-new-"),
		Volunteer: id.NewSequenceGenerator("vol-new-"),
		Shift:     id.NewSequenceGenerator("shf-new-"),
		Signup:    id.NewSequenceGenerator("sgn-new-"),
		Session:   id.NewSequenceGenerator("dft-"),
	}

	workbondSvc := usecase.NewWorkbondService(repos.Seasons, repos.Families, repos.Players, repos.Volunteers, repos.Workbond, ids, usecase.WorkbondConfig{}, clock, logger)
	handler := NewHandler(Services{
		Roster:     usecase.NewRosterService(repos.Seasons, repos.Divisions, repos.Teams, repos.Players, repos.Families, repos.Volunteers, logger),
		Volunteers: usecase.NewVolunteerService(repos.Seasons, repos.Teams, repos.Volunteers, logger),
		Imports:    usecase.NewImportService(repos.Seasons, repos.Divisions, repos.Families, repos.Players, repos.Volunteers, repos.Workbond, ids, usecase.ImportConfig{Workers: 2}, logger),
		Exports:    usecase.NewExportService(repos.Seasons, repos.Divisions, repos.Teams, repos.Players, repos.Families, repos.Volunteers, workbondSvc, clock, logger),
		Draft:      usecase.NewDraftService(repos.Seasons, repos.Divisions, repos.Teams, repos.Players, repos.Volunteers, repos.Drafts, ids, usecase.DraftConfig{}, clock, logger),
		Workbond:   workbondSvc,
		Dashboard:  usecase.NewDashboardService(repos.Seasons, repos.Divisions, repos.Players, repos.Families, repos.Volunteers, repos.Drafts, workbondSvc, logger),
		Mailing:    usecase.NewMailingService(repos.Seasons, repos.Players, repos.Families, repos.Volunteers, logger),
	}, logger)

	return NewRouter(handler, testTokens, logger, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, router, method, path, token, strings.NewReader(body), "application/json")
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) googleResponseEnvelope {
	t.Helper()

	var raw struct {
		APIVersion string           `json:"apiVersion"`
		Data       json.RawMessage  `json:"data"`
		Error      *googleErrorBody `json:"error"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if data != nil && len(raw.Data) > 0 {
		if err := sonic.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return googleResponseEnvelope{APIVersion: raw.APIVersion, Error: raw.Error}
}

func errorReason(t *testing.T, env googleResponseEnvelope) string {
	t.Helper()
	if env.Error == nil || len(env.Error.Errors) == 0 {
		t.Fatalf("expected error details in envelope")
	}
	return env.Error.Errors[0].Reason
}

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", nil, "")
	expectStatus(t, rec, http.StatusOK)
}

func TestRouter_Authorization(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/seasons", "", nil, "")
	expectStatus(t, rec, http.StatusUnauthorized)

	rec = doRequest(t, router, http.MethodGet, "/v1/seasons", "stolen-token", nil, "")
	expectStatus(t, rec, http.StatusUnauthorized)

	rec = doJSON(t, router, http.MethodPost, "/v1/draft-sessions", "viewer-token",
		`{"season_id":"spring-2026","division_id":"spring-2026-10u"}`)
	expectStatus(t, rec, http.StatusForbidden)
	env := decodeEnvelope(t, rec, nil)
	if env.Error == nil || env.Error.Status != "PERMISSION_DENIED" {
		t.Fatalf("expected PERMISSION_DENIED, got %+v", env.Error)
	}

	var seasons []seasonDTO
	rec = doRequest(t, router, http.MethodGet, "/v1/seasons", "viewer-token", nil, "")
	expectStatus(t, rec, http.StatusOK)
	decodeEnvelope(t, rec, &seasons)
	if len(seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(seasons))
	}
}

func TestRouter_ListFamiliesBySeason(t *testing.T) {
	router := newTestRouter(t)

	var families []familyDTO
	rec := doRequest(t, router, http.MethodGet, "/v1/families?season_id=spring-2026", "viewer-token", nil, "")
	expectStatus(t, rec, http.StatusOK)
	decodeEnvelope(t, rec, &families)
	if len(families) != 4 {
		t.Fatalf("expected 4 spring families, got %d", len(families))
	}

	families = nil
	rec = doRequest(t, router, http.MethodGet, "/v1/families?season_id=fall-2025", "viewer-token", nil, "")
	expectStatus(t, rec, http.StatusOK)
	decodeEnvelope(t, rec, &families)
	if len(families) != 0 {
		t.Fatalf("expected no fall families, got %d", len(families))
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/families?season_id=winter-1999", "viewer-token", nil, "")
	expectStatus(t, rec, http.StatusNotFound)
}

func TestRouter_DraftFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/seasons/spring-2026/divisions/spring-2026-10u/draft", "viewer-token", nil, "")
	expectStatus(t, rec, http.StatusNotFound)

	var session draftSessionDTO
	rec = doJSON(t, router, http.MethodPost, "/v1/draft-sessions", "admin-token",
		`{"season_id":"spring-2026","division_id":"spring-2026-10u"}`)
	expectStatus(t, rec, http.StatusCreated)
	decodeEnvelope(t, rec, &session)
	if session.ID != "dft-1" {
		t.Fatalf("unexpected session id %q", session.ID)
	}
	if len(session.Managers) != 3 {
		t.Fatalf("expected 3 managers, got %d", len(session.Managers))
	}

	var result pickResultDTO
	rec = doJSON(t, router, http.MethodPost, "/v1/draft-sessions/dft-1/picks", "director-token",
		`{"team_id":"10u-astros","player_id":"ply-maya","pick_number":1}`)
	expectStatus(t, rec, http.StatusCreated)
	decodeEnvelope(t, rec, &result)
	if result.Player.TeamID != "10u-astros" {
		t.Fatalf("expected player on 10u-astros, got %q", result.Player.TeamID)
	}
	if len(result.RoleCandidates) != 1 || result.RoleCandidates[0].VolunteerID != "vol-ana" {
		t.Fatalf("expected vol-ana as the only role candidate, got %+v", result.RoleCandidates)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/draft-sessions/dft-1/picks", "director-token",
		`{"team_id":"10u-bears","player_id":"ply-maya","pick_number":2}`)
	expectStatus(t, rec, http.StatusConflict)
	if reason := errorReason(t, decodeEnvelope(t, rec, nil)); reason != "alreadyPicked" {
		t.Fatalf("expected alreadyPicked, got %q", reason)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/draft-sessions/dft-1/picks", "director-token",
		`{"team_id":"10u-bears","player_id":"ply-leo"}`)
	expectStatus(t, rec, http.StatusBadRequest)

	var board draftBoardDTO
	rec = doRequest(t, router, http.MethodGet, "/v1/seasons/spring-2026/divisions/spring-2026-10u/draft", "viewer-token", nil, "")
	expectStatus(t, rec, http.StatusOK)
	decodeEnvelope(t, rec, &board)
	if board.Session.CurrentPick != 1 {
		t.Fatalf("expected current pick 1, got %d", board.Session.CurrentPick)
	}
	if board.OnTheClock == nil || board.OnTheClock.TeamID != "10u-bears" {
		t.Fatalf("expected 10u-bears on the clock, got %+v", board.OnTheClock)
	}
	if len(board.Available) != 5 {
		t.Fatalf("expected 5 available players, got %d", len(board.Available))
	}
}

func TestRouter_ImportPreviewAndRun(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "roster.txt", "first_name\nMaya\n", nil)
	rec := doRequest(t, router, http.MethodPost, "/v1/imports/preview", "director-token", body, contentType)
	expectStatus(t, rec, http.StatusBadRequest)

	body, contentType = multipartUpload(t, "", "", nil)
	rec = doRequest(t, router, http.MethodPost, "/v1/imports/preview", "director-token", body, contentType)
	expectStatus(t, rec, http.StatusBadRequest)

	lines := []string{"First Name,Last Name,Division"}
	for i := range 7 {
		lines = append(lines, fmt.Sprintf("Kid%d,Lopez,8U", i))
	}
	body, contentType = multipartUpload(t, "roster.csv", strings.Join(lines, "\n"), nil)
	rec = doRequest(t, router, http.MethodPost, "/v1/imports/preview", "director-token", body, contentType)
	expectStatus(t, rec, http.StatusOK)

	var preview previewDTO
	decodeEnvelope(t, rec, &preview)
	if want := []string{"First Name", "Last Name", "Division"}; !reflect.DeepEqual(preview.Headers, want) {
		t.Fatalf("unexpected headers %v", preview.Headers)
	}
	if len(preview.Rows) != 5 {
		t.Fatalf("expected preview capped at 5 rows, got %d", len(preview.Rows))
	}

	csv := "first_name,last_name,birth_date,division,primary_guardian_name,primary_guardian_email\n" +
		"Iris,Lopez,2018-02-01,8U,Marta Lopez,marta.lopez@example.com\n" +
		"Noah,,2018-05-01,8U,Marta Lopez,marta.lopez@example.com\n"
	body, contentType = multipartUpload(t, "players.csv", csv, map[string]string{"season_id": "spring-2026"})
	rec = doRequest(t, router, http.MethodPost, "/v1/imports/players", "director-token", body, contentType)
	expectStatus(t, rec, http.StatusOK)

	var result importResultDTO
	decodeEnvelope(t, rec, &result)
	if result.Success || result.Imported != 1 || result.Rejected != 1 {
		t.Fatalf("unexpected import result %+v", result)
	}
	if len(result.Errors) == 0 || result.Errors[0].Line != 3 {
		t.Fatalf("expected rejection on line 3, got %+v", result.Errors)
	}
}

func TestRouter_Downloads(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/templates/players", "viewer-token", nil, "")
	expectStatus(t, rec, http.StatusOK)
	if got := rec.Header().Get("Content-Type"); got != usecase.ContentTypeCSV {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="players-import-template.csv"` {
		t.Fatalf("unexpected content disposition %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), `"`) {
		t.Fatalf("expected quoted header row, got %q", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/seasons/spring-2026/reports/volunteers?format=xlsx", "viewer-token", nil, "")
	expectStatus(t, rec, http.StatusOK)
	if got := rec.Header().Get("Content-Type"); got != usecase.ContentTypeXLSX {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "volunteers-report-2026-03-14.xlsx") {
		t.Fatalf("unexpected content disposition %q", got)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/templates/coaches", "viewer-token", nil, "")
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestRouter_MailingList(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/seasons/spring-2026/mailing-list?audience=volunteers&role=manager&format=line", "director-token", nil, "")
	expectStatus(t, rec, http.StatusOK)
	if got := rec.Body.String(); got != "wei.chen@example.com" {
		t.Fatalf("unexpected line output %q", got)
	}

	var list mailingListDTO
	rec = doRequest(t, router, http.MethodGet, "/v1/seasons/spring-2026/mailing-list", "director-token", nil, "")
	expectStatus(t, rec, http.StatusOK)
	decodeEnvelope(t, rec, &list)
	if len(list.Recipients) != 5 {
		t.Fatalf("expected 5 recipients, got %d", len(list.Recipients))
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/seasons/spring-2026/mailing-list?format=pdf", "director-token", nil, "")
	expectStatus(t, rec, http.StatusBadRequest)

	rec = doRequest(t, router, http.MethodGet, "/v1/seasons/spring-2026/mailing-list", "viewer-token", nil, "")
	expectStatus(t, rec, http.StatusForbidden)
}

func TestRouter_WorkbondSignup(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/workbond/shifts/shf-concessions/signups", "director-token", `{"family_id":"fam-chen"}`)
	expectStatus(t, rec, http.StatusConflict)
	if reason := errorReason(t, decodeEnvelope(t, rec, nil)); reason != "shiftFull" {
		t.Fatalf("expected shiftFull, got %q", reason)
	}

	var signup signupDTO
	rec = doJSON(t, router, http.MethodPost, "/v1/workbond/shifts/shf-field-prep/signups", "director-token", `{"family_id":"fam-rivera"}`)
	expectStatus(t, rec, http.StatusCreated)
	decodeEnvelope(t, rec, &signup)
	if signup.Status != "scheduled" {
		t.Fatalf("expected scheduled signup, got %q", signup.Status)
	}

	rec = doJSON(t, router, http.MethodPatch, "/v1/workbond/signups/"+signup.ID, "director-token", `{"status":"completed"}`)
	expectStatus(t, rec, http.StatusOK)

	rec = doJSON(t, router, http.MethodPatch, "/v1/workbond/signups/"+signup.ID, "director-token", `{"status":"completed","extra":1}`)
	expectStatus(t, rec, http.StatusBadRequest)
}
