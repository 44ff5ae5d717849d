package leagueapi

import "time"

type Season struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	IsActive bool   `json:"is_active"`
}

type Division struct {
	ID       string `json:"id"`
	SeasonID string `json:"season_id"`
	Name     string `json:"name"`
}

type Team struct {
	ID         string `json:"id"`
	SeasonID   string `json:"season_id"`
	DivisionID string `json:"division_id"`
	Name       string `json:"name"`
}

type Player struct {
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

func (p Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Family struct {
	ID             string      `json:"id"`
	Primary        Contact     `json:"primary_guardian"`
	Secondary      Contact     `json:"secondary_guardian"`
	Address        string      `json:"address"`
	WorkbondExempt bool        `json:"workbond_exempt"`
	WorkbondNote   string      `json:"workbond_note"`
	Players        []Player    `json:"players,omitempty"`
	Volunteers     []Volunteer `json:"volunteers,omitempty"`
}

type Volunteer struct {
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

type Preview struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

type Rejection struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Kind            string      `json:"kind"`
	Success         bool        `json:"success"`
	Imported        int         `json:"imported"`
	Rejected        int         `json:"rejected"`
	FamiliesCreated int         `json:"families_created"`
	Errors          []Rejection `json:"errors"`
}

type Manager struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	TeamID string `json:"team_id"`
}

type Pick struct {
	PickNumber int       `json:"pick_number"`
	TeamID     string    `json:"team_id"`
	PlayerID   string    `json:"player_id"`
	PickedAt   time.Time `json:"picked_at"`
}

type DraftSession struct {
	ID          string    `json:"id"`
	SeasonID    string    `json:"season_id"`
	DivisionID  string    `json:"division_id"`
	Managers    []Manager `json:"managers"`
	Picks       []Pick    `json:"picks"`
	CurrentPick int       `json:"current_pick"`
	Synthesized bool      `json:"synthesized"`
	CreatedAt   time.Time `json:"created_at"`
}

type DraftBoard struct {
	Session    DraftSession `json:"session"`
	Teams      []Team       `json:"teams"`
	OnTheClock *Manager     `json:"on_the_clock"`
	Round      int          `json:"round"`
	Available  []Player     `json:"available"`
}

type RoleCandidate struct {
	VolunteerID   string   `json:"volunteer_id"`
	VolunteerName string   `json:"volunteer_name"`
	Roles         []string `json:"roles"`
}

type PickResult struct {
	Pick           Pick            `json:"pick"`
	Player         Player          `json:"player"`
	RoleCandidates []RoleCandidate `json:"role_candidates"`
}

type Shift struct {
	ID        string    `json:"id"`
	SeasonID  string    `json:"season_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Hours     float64   `json:"hours"`
	Capacity  int       `json:"capacity"`
	Remaining int       `json:"remaining"`
	Signups   []Signup  `json:"signups,omitempty"`
}

type Signup struct {
	ID            string    `json:"id"`
	ShiftID       string    `json:"shift_id"`
	FamilyID      string    `json:"family_id"`
	VolunteerName string    `json:"volunteer_name"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type FamilySummary struct {
	FamilyID       string  `json:"family_id"`
	FamilyName     string  `json:"family_name"`
	RequiredHours  float64 `json:"required_hours"`
	CompletedHours float64 `json:"completed_hours"`
	ScheduledHours float64 `json:"scheduled_hours"`
	Exempt         bool    `json:"exempt"`
	ExemptReason   string  `json:"exempt_reason,omitempty"`
	Status         string  `json:"status"`
}

type Dashboard struct {
	SeasonID string `json:"season_id"`
	Players  struct {
		Total    int            `json:"total"`
		ByStatus map[string]int `json:"by_status"`
		New      int            `json:"new"`
		Travel   int            `json:"travel"`
		Paid     int            `json:"paid"`
		Unpaid   int            `json:"unpaid"`
	} `json:"players"`
	Divisions []struct {
		DivisionID string `json:"division_id"`
		Name       string `json:"name"`
		Players    int    `json:"players"`
		Unassigned int    `json:"unassigned"`
	} `json:"divisions"`
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
	Drafts []struct {
		DivisionID string `json:"division_id"`
		Name       string `json:"name"`
		Started    bool   `json:"started"`
		Picks      int    `json:"picks"`
		Round      int    `json:"round"`
		Available  int    `json:"available"`
	} `json:"drafts"`
	Warnings []struct {
		Section string `json:"section"`
		Message string `json:"message"`
	} `json:"warnings"`
}

type Recipient struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Source string `json:"source"`
}

type MailingList struct {
	Recipients  []Recipient `json:"recipients"`
	AddressLine string      `json:"address_line"`
}
