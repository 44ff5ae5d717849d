package httpapi

import (
	"net/http"

	"github.com/riskibarqy/youth-league/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// guarded wraps a handler with bearer authentication and a minimum role.
func guarded(verifier TokenVerifier, min user.Role, h http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, RequireRole(min, h))
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/seasons", guarded(verifier, user.RoleViewer, handler.ListSeasons))
	mux.Handle("GET /v1/seasons/{seasonID}/divisions", guarded(verifier, user.RoleViewer, handler.ListDivisions))
	mux.Handle("GET /v1/seasons/{seasonID}/teams", guarded(verifier, user.RoleViewer, handler.ListTeams))
	mux.Handle("GET /v1/seasons/{seasonID}/players", guarded(verifier, user.RoleViewer, handler.ListPlayers))
	mux.Handle("PATCH /v1/players/{playerID}", guarded(verifier, user.RoleDirector, handler.UpdatePlayer))
	mux.Handle("GET /v1/seasons/{seasonID}/volunteers", guarded(verifier, user.RoleViewer, handler.ListVolunteers))
	mux.Handle("PUT /v1/volunteers/{volunteerID}/role", guarded(verifier, user.RoleDirector, handler.AssignVolunteerRole))
	mux.Handle("GET /v1/families", guarded(verifier, user.RoleViewer, handler.ListFamilies))
	mux.Handle("GET /v1/families/{familyID}", guarded(verifier, user.RoleViewer, handler.GetFamily))
}

func registerTransferRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/imports/preview", guarded(verifier, user.RoleDirector, handler.PreviewImport))
	mux.Handle("POST /v1/imports/{kind}", guarded(verifier, user.RoleDirector, handler.RunImport))
	mux.Handle("GET /v1/templates/{kind}", guarded(verifier, user.RoleViewer, handler.DownloadTemplate))
	mux.Handle("GET /v1/seasons/{seasonID}/reports/{entity}", guarded(verifier, user.RoleViewer, handler.DownloadReport))
}

func registerDraftRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/seasons/{seasonID}/divisions/{divisionID}/draft", guarded(verifier, user.RoleViewer, handler.GetDraftBoard))
	mux.Handle("POST /v1/draft-sessions", guarded(verifier, user.RoleAdmin, handler.CreateDraftSession))
	mux.Handle("POST /v1/draft-sessions/{sessionID}/picks", guarded(verifier, user.RoleDirector, handler.MakePick))
}

func registerWorkbondRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/seasons/{seasonID}/workbond/shifts", guarded(verifier, user.RoleViewer, handler.ListShifts))
	mux.Handle("POST /v1/seasons/{seasonID}/workbond/shifts", guarded(verifier, user.RoleDirector, handler.CreateShift))
	mux.Handle("POST /v1/workbond/shifts/{shiftID}/signups", guarded(verifier, user.RoleDirector, handler.SignUpForShift))
	mux.Handle("PATCH /v1/workbond/signups/{signupID}", guarded(verifier, user.RoleDirector, handler.MarkSignup))
	mux.Handle("GET /v1/seasons/{seasonID}/workbond/summary", guarded(verifier, user.RoleViewer, handler.WorkbondSummary))
}

func registerReportingRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/seasons/{seasonID}/dashboard", guarded(verifier, user.RoleViewer, handler.GetDashboard))
	mux.Handle("GET /v1/seasons/{seasonID}/mailing-list", guarded(verifier, user.RoleDirector, handler.GetMailingList))
}
