package httpapi

import (
	"time"

	"github.com/riskibarqy/youth-league/internal/domain/division"
	"github.com/riskibarqy/youth-league/internal/domain/draft"
	"github.com/riskibarqy/youth-league/internal/domain/family"
	"github.com/riskibarqy/youth-league/internal/domain/importrow"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/team"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/domain/workbond"
	"github.com/riskibarqy/youth-league/internal/platform/csvcodec"
	"github.com/riskibarqy/youth-league/internal/usecase"
)

type seasonDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	IsActive bool   `json:"is_active"`
}

type divisionDTO struct {
	ID       string `json:"id"`
	SeasonID string `json:"season_id"`
	Name     string `json:"name"`
}

type teamDTO struct {
	ID         string `json:"id"`
	SeasonID   string `json:"season_id"`
	DivisionID string `json:"division_id"`
	Name       string `json:"name"`
}

type playerDTO struct {
	ID              string `json:"id"`
	SeasonID        string `json:"season_id"`
	DivisionID      string `json:"division_id"`
	TeamID          string `json:"team_id"`
	FamilyID        string `json:"family_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	BirthDate       string `json:"birth_date"`
	Gender          string `json:"gender"`
	Status          string `json:"status"`
	IsNewPlayer     bool   `json:"is_new_player"`
	IsTravelPlayer  bool   `json:"is_travel_player"`
	PaymentReceived bool   `json:"payment_received"`
	MedicalNotes    string `json:"medical_notes,omitempty"`
}

type contactDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type familyDTO struct {
	ID             string     `json:"id"`
	Primary        contactDTO `json:"primary_guardian"`
	Secondary      contactDTO `json:"secondary_guardian"`
	Address        string     `json:"address"`
	WorkbondExempt bool       `json:"workbond_exempt"`
	WorkbondNote   string     `json:"workbond_note"`
}

type familyDetailDTO struct {
	familyDTO
	Players    []playerDTO    `json:"players"`
	Volunteers []volunteerDTO `json:"volunteers"`
}

type volunteerDTO struct {
	ID                    string `json:"id"`
	SeasonID              string `json:"season_id"`
	FamilyID              string `json:"family_id"`
	DivisionID            string `json:"division_id"`
	TeamID                string `json:"team_id"`
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	Role                  string `json:"role"`
	InterestedRoles       string `json:"interested_roles"`
	TrainingCompleted     bool   `json:"training_completed"`
	BackgroundCheckStatus string `json:"background_check_status"`
}

type previewDTO struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

type rejectionDTO struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type importResultDTO struct {
	Kind            string         `json:"kind"`
	Success         bool           `json:"success"`
	Imported        int            `json:"imported"`
	Rejected        int            `json:"rejected"`
	FamiliesCreated int            `json:"families_created"`
	Errors          []rejectionDTO `json:"errors"`
}

type managerDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	TeamID string `json:"team_id"`
}

type pickDTO struct {
	PickNumber int       `json:"pick_number"`
	TeamID     string    `json:"team_id"`
	PlayerID   string    `json:"player_id"`
	PickedAt   time.Time `json:"picked_at"`
}

type draftSessionDTO struct {
	ID          string       `json:"id"`
	SeasonID    string       `json:"season_id"`
	DivisionID  string       `json:"division_id"`
	Managers    []managerDTO `json:"managers"`
	Picks       []pickDTO    `json:"picks"`
	CurrentPick int          `json:"current_pick"`
	Synthesized bool         `json:"synthesized"`
	CreatedAt   time.Time    `json:"created_at"`
}

type draftBoardDTO struct {
	Session    draftSessionDTO `json:"session"`
	Teams      []teamDTO       `json:"teams"`
	OnTheClock *managerDTO     `json:"on_the_clock"`
	Round      int             `json:"round"`
	Available  []playerDTO     `json:"available"`
}

type roleCandidateDTO struct {
	VolunteerID   string   `json:"volunteer_id"`
	VolunteerName string   `json:"volunteer_name"`
	Roles         []string `json:"roles"`
}

type pickResultDTO struct {
	Pick           pickDTO            `json:"pick"`
	Player         playerDTO          `json:"player"`
	RoleCandidates []roleCandidateDTO `json:"role_candidates"`
}

type shiftDTO struct {
	ID       string    `json:"id"`
	SeasonID string    `json:"season_id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Hours    float64   `json:"hours"`
	Capacity int       `json:"capacity"`
}

type signupDTO struct {
	ID            string    `json:"id"`
	ShiftID       string    `json:"shift_id"`
	FamilyID      string    `json:"family_id"`
	VolunteerName string    `json:"volunteer_name"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type shiftOverviewDTO struct {
	shiftDTO
	Remaining int         `json:"remaining"`
	Signups   []signupDTO `json:"signups"`
}

type familySummaryDTO struct {
	FamilyID       string  `json:"family_id"`
	FamilyName     string  `json:"family_name"`
	RequiredHours  float64 `json:"required_hours"`
	CompletedHours float64 `json:"completed_hours"`
	ScheduledHours float64 `json:"scheduled_hours"`
	Exempt         bool    `json:"exempt"`
	ExemptReason   string  `json:"exempt_reason,omitempty"`
	Status         string  `json:"status"`
}

type dashboardDTO struct {
	SeasonID   string `json:"season_id"`
	Players    struct {
		Total    int            `json:"total"`
		ByStatus map[string]int `json:"by_status"`
		New      int            `json:"new"`
		Travel   int            `json:"travel"`
		Paid     int            `json:"paid"`
		Unpaid   int            `json:"unpaid"`
	} `json:"players"`
	Divisions  []divisionCountDTO `json:"divisions"`
	Volunteers struct {
		Total  int            `json:"total"`
		ByRole map[string]int `json:"by_role"`
	} `json:"volunteers"`
	Families int `json:"families"`
	Workbond struct {
		Families   int `json:"families"`
		Complete   int `json:"complete"`
		Incomplete int `json:"incomplete"`
		Exempt     int `json:"exempt"`
	} `json:"workbond"`
	Drafts   []draftProgressDTO `json:"drafts"`
	Warnings []warningDTO       `json:"warnings"`
}

type divisionCountDTO struct {
	DivisionID string `json:"division_id"`
	Name       string `json:"name"`
	Players    int    `json:"players"`
	Unassigned int    `json:"unassigned"`
}

type draftProgressDTO struct {
	DivisionID string `json:"division_id"`
	Name       string `json:"name"`
	Started    bool   `json:"started"`
	Picks      int    `json:"picks"`
	Round      int    `json:"round"`
	Available  int    `json:"available"`
}

type warningDTO struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

type recipientDTO struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Source string `json:"source"`
}

type mailingListDTO struct {
	Recipients  []recipientDTO `json:"recipients"`
	AddressLine string         `json:"address_line"`
}

func seasonToDTO(v season.Season) seasonDTO {
	return seasonDTO{ID: v.ID, Name: v.Name, Year: v.Year, IsActive: v.IsActive}
}

func divisionToDTO(v division.Division) divisionDTO {
	return divisionDTO{ID: v.ID, SeasonID: v.SeasonID, Name: v.Name}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{ID: v.ID, SeasonID: v.SeasonID, DivisionID: v.DivisionID, Name: v.Name}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, t := range items {
		out = append(out, teamToDTO(t))
	}
	return out
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:              v.ID,
		SeasonID:        v.SeasonID,
		DivisionID:      v.DivisionID,
		TeamID:          v.TeamID,
		FamilyID:        v.FamilyID,
		FirstName:       v.FirstName,
		LastName:        v.LastName,
		BirthDate:       v.BirthDate,
		Gender:          v.Gender,
		Status:          string(v.Status),
		IsNewPlayer:     v.IsNewPlayer,
		IsTravelPlayer:  v.IsTravelPlayer,
		PaymentReceived: v.PaymentReceived,
		MedicalNotes:    v.MedicalNotes,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

func contactToDTO(v family.Contact) contactDTO {
	return contactDTO{Name: v.Name, Email: v.Email, Phone: v.Phone}
}

func familyToDTO(v family.Family) familyDTO {
	return familyDTO{
		ID:             v.ID,
		Primary:        contactToDTO(v.Primary),
		Secondary:      contactToDTO(v.Secondary),
		Address:        v.Address,
		WorkbondExempt: v.WorkbondExempt,
		WorkbondNote:   v.WorkbondNote,
	}
}

func volunteerToDTO(v volunteer.Volunteer) volunteerDTO {
	return volunteerDTO{
		ID:                    v.ID,
		SeasonID:              v.SeasonID,
		FamilyID:              v.FamilyID,
		DivisionID:            v.DivisionID,
		TeamID:                v.TeamID,
		Name:                  v.Name,
		Email:                 v.Email,
		Phone:                 v.Phone,
		Role:                  v.Role,
		InterestedRoles:       v.InterestedRoles,
		TrainingCompleted:     v.TrainingCompleted,
		BackgroundCheckStatus: v.BackgroundCheckStatus,
	}
}

func volunteersToDTO(items []volunteer.Volunteer) []volunteerDTO {
	out := make([]volunteerDTO, 0, len(items))
	for _, v := range items {
		out = append(out, volunteerToDTO(v))
	}
	return out
}

func previewToDTO(t csvcodec.Table) previewDTO {
	rows := make([]map[string]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, r.Map())
	}
	return previewDTO{Headers: t.Headers, Rows: rows}
}

func importResultToDTO(v usecase.ImportResult) importResultDTO {
	return importResultDTO{
		Kind:            v.Kind,
		Success:         v.Success(),
		Imported:        v.Imported,
		Rejected:        v.Rejected,
		FamiliesCreated: v.FamiliesCreated,
		Errors:          rejectionsToDTO(v.Errors),
	}
}

func rejectionsToDTO(items []importrow.Rejection) []rejectionDTO {
	out := make([]rejectionDTO, 0, len(items))
	for _, r := range items {
		out = append(out, rejectionDTO{Line: r.Line, Reason: r.Reason})
	}
	return out
}

func managerToDTO(v draft.Manager) managerDTO {
	return managerDTO{ID: v.ID, Name: v.Name, Role: v.Role, TeamID: v.TeamID}
}

func pickToDTO(v draft.Pick) pickDTO {
	return pickDTO{PickNumber: v.PickNumber, TeamID: v.TeamID, PlayerID: v.PlayerID, PickedAt: v.PickedAt}
}

func sessionToDTO(v draft.Session) draftSessionDTO {
	managers := make([]managerDTO, 0, len(v.Managers))
	for _, m := range v.Managers {
		managers = append(managers, managerToDTO(m))
	}
	picks := make([]pickDTO, 0, len(v.Picks))
	for _, p := range v.Picks {
		picks = append(picks, pickToDTO(p))
	}

	return draftSessionDTO{
		ID:          v.ID,
		SeasonID:    v.SeasonID,
		DivisionID:  v.DivisionID,
		Managers:    managers,
		Picks:       picks,
		CurrentPick: v.CurrentPick(),
		Synthesized: v.Synthesized,
		CreatedAt:   v.CreatedAt,
	}
}

func boardToDTO(v usecase.DraftBoard) draftBoardDTO {
	out := draftBoardDTO{
		Session:   sessionToDTO(v.Session),
		Teams:     teamsToDTO(v.Teams),
		Round:     v.Round,
		Available: playersToDTO(v.Available),
	}
	if v.OnTheClock != nil {
		m := managerToDTO(*v.OnTheClock)
		out.OnTheClock = &m
	}
	return out
}

func pickResultToDTO(v usecase.PickResult) pickResultDTO {
	candidates := make([]roleCandidateDTO, 0, len(v.RoleCandidates))
	for _, c := range v.RoleCandidates {
		candidates = append(candidates, roleCandidateDTO{
			VolunteerID:   c.VolunteerID,
			VolunteerName: c.VolunteerName,
			Roles:         c.Roles,
		})
	}
	return pickResultDTO{
		Pick:           pickToDTO(v.Pick),
		Player:         playerToDTO(v.Player),
		RoleCandidates: candidates,
	}
}

func shiftToDTO(v workbond.Shift) shiftDTO {
	return shiftDTO{
		ID:       v.ID,
		SeasonID: v.SeasonID,
		Name:     v.Name,
		Location: v.Location,
		StartsAt: v.StartsAt,
		EndsAt:   v.EndsAt,
		Hours:    v.Hours,
		Capacity: v.Capacity,
	}
}

func signupToDTO(v workbond.Signup) signupDTO {
	return signupDTO{
		ID:            v.ID,
		ShiftID:       v.ShiftID,
		FamilyID:      v.FamilyID,
		VolunteerName: v.VolunteerName,
		Status:        string(v.Status),
		CreatedAt:     v.CreatedAt,
	}
}

func shiftOverviewToDTO(v usecase.ShiftOverview) shiftOverviewDTO {
	signups := make([]signupDTO, 0, len(v.Signups))
	for _, s := range v.Signups {
		signups = append(signups, signupToDTO(s))
	}
	return shiftOverviewDTO{shiftDTO: shiftToDTO(v.Shift), Remaining: v.Remaining, Signups: signups}
}

func familySummaryToDTO(v workbond.FamilySummary) familySummaryDTO {
	return familySummaryDTO{
		FamilyID:       v.FamilyID,
		FamilyName:     v.FamilyName,
		RequiredHours:  v.RequiredHours,
		CompletedHours: v.CompletedHours,
		ScheduledHours: v.ScheduledHours,
		Exempt:         v.Exempt,
		ExemptReason:   v.ExemptReason,
		Status:         string(v.Status),
	}
}

func dashboardToDTO(v usecase.Dashboard) dashboardDTO {
	var out dashboardDTO
	out.SeasonID = v.SeasonID

	out.Players.Total = v.Players.Total
	out.Players.ByStatus = make(map[string]int, len(v.Players.ByStatus))
	for status, n := range v.Players.ByStatus {
		out.Players.ByStatus[string(status)] = n
	}
	out.Players.New = v.Players.New
	out.Players.Travel = v.Players.Travel
	out.Players.Paid = v.Players.Paid
	out.Players.Unpaid = v.Players.Unpaid

	out.Divisions = make([]divisionCountDTO, 0, len(v.Divisions))
	for _, d := range v.Divisions {
		out.Divisions = append(out.Divisions, divisionCountDTO(d))
	}

	out.Volunteers.Total = v.Volunteers.Total
	out.Volunteers.ByRole = v.Volunteers.ByRole
	out.Families = v.Families

	out.Workbond.Families = v.Workbond.Families
	out.Workbond.Complete = v.Workbond.Complete
	out.Workbond.Incomplete = v.Workbond.Incomplete
	out.Workbond.Exempt = v.Workbond.Exempt

	out.Drafts = make([]draftProgressDTO, 0, len(v.Drafts))
	for _, d := range v.Drafts {
		out.Drafts = append(out.Drafts, draftProgressDTO(d))
	}
	out.Warnings = make([]warningDTO, 0, len(v.Warnings))
	for _, w := range v.Warnings {
		out.Warnings = append(out.Warnings, warningDTO(w))
	}
	return out
}

func recipientsToDTO(items []usecase.Recipient) mailingListDTO {
	out := make([]recipientDTO, 0, len(items))
	for _, r := range items {
		out = append(out, recipientDTO(r))
	}
	return mailingListDTO{Recipients: out, AddressLine: usecase.AddressLine(items)}
}
