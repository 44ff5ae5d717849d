package leagueapi

import (
	"context"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

func (c *Client) ListSeasons(ctx context.Context) ([]Season, error) {
	var out []Season
	err := c.getJSON(ctx, "/v1/seasons", nil, &out)
	return out, err
}

func (c *Client) ListDivisions(ctx context.Context, seasonID string) ([]Division, error) {
	if err := requireID("season", seasonID); err != nil {
		return nil, err
	}
	var out []Division
	err := c.getJSON(ctx, pathf("/v1/seasons/%s/divisions", seasonID), nil, &out)
	return out, err
}

func (c *Client) ListTeams(ctx context.Context, seasonID, divisionID string) ([]Team, error) {
	if err := requireID("season", seasonID); err != nil {
		return nil, err
	}
	query := url.Values{}
	setIf(query, "division_id", divisionID)
	var out []Team
	err := c.getJSON(ctx, pathf("/v1/seasons/%s/teams", seasonID), query, &out)
	return out, err
}

// PlayerQuery mirrors the roster filters the service accepts.
type PlayerQuery struct {
	SeasonID   string
	DivisionID string
	TeamID     string
	Status     string
	Search     string
	Unassigned bool
	Sort       string
}

func (q PlayerQuery) values() url.Values {
	out := url.Values{}
	setIf(out, "division_id", q.DivisionID)
	setIf(out, "team_id", q.TeamID)
	setIf(out, "status", q.Status)
	setIf(out, "q", q.Search)
	setIf(out, "sort", q.Sort)
	if q.Unassigned {
		out.Set("unassigned", "true")
	}
	return out
}

func (c *Client) ListPlayers(ctx context.Context, q PlayerQuery) ([]Player, error) {
	if err := requireID("season", q.SeasonID); err != nil {
		return nil, err
	}
	var out []Player
	err := c.getJSON(ctx, pathf("/v1/seasons/%s/players", q.SeasonID), q.values(), &out)
	return out, err
}

// PlayerUpdate carries only the fields being changed.
type PlayerUpdate struct {
	Status          *string `json:"status,omitempty"`
	PaymentReceived *bool   `json:"payment_received,omitempty"`
	TeamID          *string `json:"team_id,omitempty"`
}

func (c *Client) UpdatePlayer(ctx context.Context, playerID string, update PlayerUpdate) (Player, error) {
	var out Player
	if err := requireID("player", playerID); err != nil {
		return out, err
	}
	err := c.sendJSON(ctx, http.MethodPatch, pathf("/v1/players/%s", playerID), update, &out)
	return out, err
}

type VolunteerQuery struct {
	SeasonID   string
	DivisionID string
	TeamID     string
	Role       string
}

func (c *Client) ListVolunteers(ctx context.Context, q VolunteerQuery) ([]Volunteer, error) {
	if err := requireID("season", q.SeasonID); err != nil {
		return nil, err
	}
	query := url.Values{}
	setIf(query, "division_id", q.DivisionID)
	setIf(query, "team_id", q.TeamID)
	setIf(query, "role", q.Role)
	var out []Volunteer
	err := c.getJSON(ctx, pathf("/v1/seasons/%s/volunteers", q.SeasonID), query, &out)
	return out, err
}

type RoleAssignment struct {
	Role       string `json:"role"`
	SeasonID   string `json:"season_id"`
	DivisionID string `json:"division_id,omitempty"`
	TeamID     string `json:"team_id,omitempty"`
}

func (c *Client) AssignRole(ctx context.Context, volunteerID string, in RoleAssignment) (Volunteer, error) {
	var out Volunteer
	if err := requireID("volunteer", volunteerID); err != nil {
		return out, err
	}
	if strings.TrimSpace(in.Role) == "" {
		return out, validationf("role is required")
	}
	if err := requireID("season", in.SeasonID); err != nil {
		return out, err
	}
	err := c.sendJSON(ctx, http.MethodPut, pathf("/v1/volunteers/%s/role", volunteerID), in, &out)
	return out, err
}

// ListFamilies lists the families of a season, or every family when
// seasonID is empty.
func (c *Client) ListFamilies(ctx context.Context, seasonID string) ([]Family, error) {
	var out []Family
	query := url.Values{}
	setIf(query, "season_id", seasonID)
	err := c.getJSON(ctx, "/v1/families", query, &out)
	return out, err
}

func (c *Client) GetFamily(ctx context.Context, familyID, seasonID string) (Family, error) {
	var out Family
	if err := requireID("family", familyID); err != nil {
		return out, err
	}
	query := url.Values{}
	setIf(query, "season_id", seasonID)
	err := c.getJSON(ctx, pathf("/v1/families/%s", familyID), query, &out)
	return out, err
}

// PreviewImport uploads a CSV and returns the parsed table without storing it.
func (c *Client) PreviewImport(ctx context.Context, filename, content string) (Preview, error) {
	var out Preview
	if err := checkUpload(filename, content); err != nil {
		return out, err
	}
	err := c.upload(ctx, "/v1/imports/preview", filepath.Base(filename), content, nil, &out)
	return out, err
}

func (c *Client) Import(ctx context.Context, kind, seasonID, filename, content string) (ImportResult, error) {
	var out ImportResult
	if err := requireID("import kind", kind); err != nil {
		return out, err
	}
	if err := requireID("season", seasonID); err != nil {
		return out, err
	}
	if err := checkUpload(filename, content); err != nil {
		return out, err
	}
	fields := map[string]string{"season_id": strings.TrimSpace(seasonID)}
	err := c.upload(ctx, pathf("/v1/imports/%s", strings.ToLower(kind)), filepath.Base(filename), content, fields, &out)
	return out, err
}

func (c *Client) DownloadTemplate(ctx context.Context, kind string) (File, error) {
	if err := requireID("template kind", kind); err != nil {
		return File{}, err
	}
	return c.download(ctx, pathf("/v1/templates/%s", strings.ToLower(kind)), nil)
}

func (c *Client) DownloadReport(ctx context.Context, entity, seasonID, format string) (File, error) {
	if err := requireID("report", entity); err != nil {
		return File{}, err
	}
	if err := requireID("season", seasonID); err != nil {
		return File{}, err
	}
	query := url.Values{}
	setIf(query, "format", format)
	return c.download(ctx, pathf("/v1/seasons/%s/reports/%s", seasonID, strings.ToLower(entity)), query)
}

func (c *Client) GetDraftBoard(ctx context.Context, seasonID, divisionID string) (DraftBoard, error) {
	var out DraftBoard
	if err := requireID("season", seasonID); err != nil {
		return out, err
	}
	if err := requireID("division", divisionID); err != nil {
		return out, err
	}
	err := c.getJSON(ctx, pathf("/v1/seasons/%s/divisions/%s/draft", seasonID, divisionID), nil, &out)
	return out, err
}

type CreateDraftSession struct {
	SeasonID   string   `json:"season_id"`
	DivisionID string   `json:"division_id"`
	TeamOrder  []string `json:"team_order,omitempty"`
}

func (c *Client) CreateDraftSession(ctx context.Context, in CreateDraftSession) (DraftSession, error) {
	var out DraftSession
	if err := requireID("season", in.SeasonID); err != nil {
		return out, err
	}
	if err := requireID("division", in.DivisionID); err != nil {
		return out, err
	}
	err := c.sendJSON(ctx, http.MethodPost, "/v1/draft-sessions", in, &out)
	return out, err
}

type PickRequest struct {
	SessionID  string `json:"-"`
	TeamID     string `json:"team_id"`
	PlayerID   string `json:"player_id"`
	PickNumber int    `json:"pick_number"`
}

func (c *Client) MakePick(ctx context.Context, in PickRequest) (PickResult, error) {
	var out PickResult
	if err := requireID("draft session", in.SessionID); err != nil {
		return out, err
	}
	if err := requireID("team", in.TeamID); err != nil {
		return out, err
	}
	if err := requireID("player", in.PlayerID); err != nil {
		return out, err
	}
	if in.PickNumber < 1 {
		return out, validationf("pick number must be at least 1")
	}
	err := c.sendJSON(ctx, http.MethodPost, pathf("/v1/draft-sessions/%s/picks", in.SessionID), in, &out)
	return out, err
}

func (c *Client) ListShifts(ctx context.Context, seasonID string) ([]Shift, error) {
	if err := requireID("season", seasonID); err != nil {
		return nil, err
	}
	var out []Shift
	err := c.getJSON(ctx, pathf("/v1/seasons/%s/workbond/shifts", seasonID), nil, &out)
	return out, err
}

type CreateShift struct {
	Name     string    `json:"name"`
	Location string    `json:"location,omitempty"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Hours    float64   `json:"hours"`
	Capacity int       `json:"capacity"`
}

func (c *Client) CreateShift(ctx context.Context, seasonID string, in CreateShift) (Shift, error) {
	var out Shift
	if err := requireID("season", seasonID); err != nil {
		return out, err
	}
	if !in.EndsAt.After(in.StartsAt) {
		return out, validationf("shift must end after it starts")
	}
	err := c.sendJSON(ctx, http.MethodPost, pathf("/v1/seasons/%s/workbond/shifts", seasonID), in, &out)
	return out, err
}

type SignupRequest struct {
	FamilyID      string `json:"family_id"`
	VolunteerName string `json:"volunteer_name,omitempty"`
}

func (c *Client) SignUp(ctx context.Context, shiftID string, in SignupRequest) (Signup, error) {
	var out Signup
	if err := requireID("shift", shiftID); err != nil {
		return out, err
	}
	if err := requireID("family", in.FamilyID); err != nil {
		return out, err
	}
	err := c.sendJSON(ctx, http.MethodPost, pathf("/v1/workbond/shifts/%s/signups", shiftID), in, &out)
	return out, err
}

func (c *Client) MarkSignup(ctx context.Context, signupID, status string) (Signup, error) {
	var out Signup
	if err := requireID("signup", signupID); err != nil {
		return out, err
	}
	body := map[string]string{"status": strings.TrimSpace(status)}
	err := c.sendJSON(ctx, http.MethodPatch, pathf("/v1/workbond/signups/%s", signupID), body, &out)
	return out, err
}

func (c *Client) WorkbondSummary(ctx context.Context, seasonID string) ([]FamilySummary, error) {
	if err := requireID("season", seasonID); err != nil {
		return nil, err
	}
	var out []FamilySummary
	err := c.getJSON(ctx, pathf("/v1/seasons/%s/workbond/summary", seasonID), nil, &out)
	return out, err
}

func (c *Client) Dashboard(ctx context.Context, seasonID string) (Dashboard, error) {
	var out Dashboard
	if err := requireID("season", seasonID); err != nil {
		return out, err
	}
	err := c.getJSON(ctx, pathf("/v1/seasons/%s/dashboard", seasonID), nil, &out)
	return out, err
}

type MailingQuery struct {
	SeasonID   string
	Audience   string
	DivisionID string
	TeamID     string
	Role       string
}

func (q MailingQuery) values(format string) url.Values {
	out := url.Values{}
	setIf(out, "audience", q.Audience)
	setIf(out, "division_id", q.DivisionID)
	setIf(out, "team_id", q.TeamID)
	setIf(out, "role", q.Role)
	setIf(out, "format", format)
	return out
}

func (c *Client) MailingList(ctx context.Context, q MailingQuery) (MailingList, error) {
	var out MailingList
	if err := requireID("season", q.SeasonID); err != nil {
		return out, err
	}
	err := c.getJSON(ctx, pathf("/v1/seasons/%s/mailing-list", q.SeasonID), q.values(""), &out)
	return out, err
}

// MailingListFile downloads the recipients as CSV.
func (c *Client) MailingListFile(ctx context.Context, q MailingQuery) (File, error) {
	if err := requireID("season", q.SeasonID); err != nil {
		return File{}, err
	}
	return c.download(ctx, pathf("/v1/seasons/%s/mailing-list", q.SeasonID), q.values("csv"))
}

func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return validationf("%s is required", name)
	}
	return nil
}

func checkUpload(filename, content string) error {
	if strings.TrimSpace(filename) == "" {
		return validationf("no file selected")
	}
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return validationf("only .csv files can be imported")
	}
	if strings.TrimSpace(content) == "" {
		return validationf("%s is empty", filepath.Base(filename))
	}
	return nil
}

func setIf(values url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		values.Set(key, value)
	}
}

// FormatHours renders workbond hours without trailing zeros.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
