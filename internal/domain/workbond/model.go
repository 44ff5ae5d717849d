package workbond

import (
	"fmt"
	"strings"
	"time"
)

// DefaultRequiredHours is the per-family obligation when none is configured.
const DefaultRequiredHours = 4.0

// Shift is a block of volunteer work families sign up for.
type Shift struct {
	ID       string
	SeasonID string
	Name     string
	Location string
	StartsAt time.Time
	EndsAt   time.Time
	Hours    float64
	Capacity int
}

func (s Shift) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("shift id is required")
	}
	if s.SeasonID == "" {
		return fmt.Errorf("shift season id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("shift name is required")
	}
	if s.StartsAt.IsZero() || !s.EndsAt.After(s.StartsAt) {
		return fmt.Errorf("shift must end after it starts")
	}
	if s.Hours <= 0 {
		return fmt.Errorf("shift hours must be greater than zero")
	}
	if s.Capacity < 1 {
		return fmt.Errorf("shift capacity must be at least 1")
	}
	return nil
}

type SignupStatus string

const (
	SignupScheduled SignupStatus = "scheduled"
	SignupCompleted SignupStatus = "completed"
	SignupNoShow    SignupStatus = "no_show"
)

func ParseSignupStatus(v string) (SignupStatus, bool) {
	switch s := SignupStatus(strings.ToLower(strings.TrimSpace(v))); s {
	case SignupScheduled, SignupCompleted, SignupNoShow:
		return s, true
	default:
		return "", false
	}
}

// Signup is one family's commitment to a shift.
type Signup struct {
	ID            string
	ShiftID       string
	FamilyID      string
	VolunteerName string
	Status        SignupStatus
	CreatedAt     time.Time
}

type SummaryStatus string

const (
	SummaryComplete   SummaryStatus = "complete"
	SummaryIncomplete SummaryStatus = "incomplete"
	SummaryExempt     SummaryStatus = "exempt"
)

// FamilySummary is a family's progress against the season obligation.
type FamilySummary struct {
	FamilyID       string
	FamilyName     string
	RequiredHours  float64
	CompletedHours float64
	ScheduledHours float64
	Exempt         bool
	ExemptReason   string
	Status         SummaryStatus
}

// ExemptionInput carries the two reasons a family can be exempt.
type ExemptionInput struct {
	Flagged      bool
	FlagNote     string
	TeamRoleHeld string
}

// Summarize totals a family's signups. Only completed signups count toward
// the requirement; scheduled ones are reported separately.
func Summarize(familyID, familyName string, required float64, exemption ExemptionInput, shifts map[string]Shift, signups []Signup) FamilySummary {
	if required <= 0 {
		required = DefaultRequiredHours
	}

	out := FamilySummary{
		FamilyID:      familyID,
		FamilyName:    familyName,
		RequiredHours: required,
	}
	for _, su := range signups {
		if su.FamilyID != familyID {
			continue
		}
		shift, ok := shifts[su.ShiftID]
		if !ok {
			continue
		}
		switch su.Status {
		case SignupCompleted:
			out.CompletedHours += shift.Hours
		case SignupScheduled:
			out.ScheduledHours += shift.Hours
		}
	}

	switch {
	case exemption.Flagged:
		out.Exempt = true
		out.ExemptReason = "flagged exempt"
		if note := strings.TrimSpace(exemption.FlagNote); note != "" {
			out.ExemptReason = note
		}
		out.Status = SummaryExempt
	case exemption.TeamRoleHeld != "":
		out.Exempt = true
		out.ExemptReason = "holds team role: " + exemption.TeamRoleHeld
		out.Status = SummaryExempt
	case out.CompletedHours >= required:
		out.Status = SummaryComplete
	default:
		out.Status = SummaryIncomplete
	}
	return out
}
