package player

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusWithdrawn Status = "withdrawn"
	StatusInactive  Status = "inactive"
)

var AllStatuses = map[Status]struct{}{
	StatusActive:    {},
	StatusWithdrawn: {},
	StatusInactive:  {},
}

func ParseStatus(v string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	_, ok := AllStatuses[s]
	return s, ok
}

// Player is a registered child. TeamID is empty until drafted or assigned.
type Player struct {
	ID              string
	SeasonID        string
	DivisionID      string
	TeamID          string
	FamilyID        string
	FirstName       string
	LastName        string
	BirthDate       string
	Gender          string
	Status          Status
	IsNewPlayer     bool
	IsTravelPlayer  bool
	PaymentReceived bool
	MedicalNotes    string
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.SeasonID == "" {
		return fmt.Errorf("player season id is required")
	}
	if p.DivisionID == "" {
		return fmt.Errorf("player division id is required")
	}
	if p.FamilyID == "" {
		return fmt.Errorf("player family id is required")
	}
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("player first and last name are required")
	}
	if _, err := time.Parse(time.DateOnly, p.BirthDate); err != nil {
		return fmt.Errorf("invalid player birth date %q", p.BirthDate)
	}
	if _, ok := AllStatuses[p.Status]; !ok {
		return fmt.Errorf("invalid player status: %s", p.Status)
	}

	return nil
}

type SortKey string

const (
	SortByLastName  SortKey = "last_name"
	SortByFirstName SortKey = "first_name"
	SortByBirthDate SortKey = "birth_date"
)

func ParseSortKey(v string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(v))) {
	case "", SortByLastName:
		return SortByLastName, true
	case SortByFirstName:
		return SortByFirstName, true
	case SortByBirthDate:
		return SortByBirthDate, true
	default:
		return "", false
	}
}

// Filter narrows a season roster. Empty fields match everything.
type Filter struct {
	SeasonID   string
	DivisionID string
	TeamID     string
	FamilyID   string
	Status     Status
	Search     string
	Unassigned bool
	Sort       SortKey
}

func (f Filter) Match(p Player) bool {
	if f.SeasonID != "" && p.SeasonID != f.SeasonID {
		return false
	}
	if f.DivisionID != "" && p.DivisionID != f.DivisionID {
		return false
	}
	if f.TeamID != "" && p.TeamID != f.TeamID {
		return false
	}
	if f.FamilyID != "" && p.FamilyID != f.FamilyID {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Unassigned && p.TeamID != "" {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(p.FullName()), q) {
			return false
		}
	}
	return true
}

// Sort orders players in place by key, falling back to last, first name and id.
func Sort(players []Player, key SortKey) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		switch key {
		case SortByFirstName:
			if !strings.EqualFold(a.FirstName, b.FirstName) {
				return strings.ToLower(a.FirstName) < strings.ToLower(b.FirstName)
			}
		case SortByBirthDate:
			if a.BirthDate != b.BirthDate {
				return a.BirthDate < b.BirthDate
			}
		}
		if !strings.EqualFold(a.LastName, b.LastName) {
			return strings.ToLower(a.LastName) < strings.ToLower(b.LastName)
		}
		if !strings.EqualFold(a.FirstName, b.FirstName) {
			return strings.ToLower(a.FirstName) < strings.ToLower(b.FirstName)
		}
		return a.ID < b.ID
	})
}
