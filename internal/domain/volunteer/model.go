package volunteer

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	RoleManager        = "Manager"
	RoleAssistantCoach = "Assistant Coach"
	RoleTeamParent     = "Team Parent"
	RoleCoach          = "Coach"
	RoleBoardMember    = "Board Member"
	RoleUmpire         = "Umpire"
	RoleVolunteer      = "Volunteer"
)

// KnownRoles is every role an assignment may carry.
var KnownRoles = []string{
	RoleManager, RoleAssistantCoach, RoleTeamParent, RoleCoach,
	RoleBoardMember, RoleUmpire, RoleVolunteer,
}

// TeamRoles are the roles offered after a draft pick. They also exempt the
// family from workbond hours.
var TeamRoles = []string{RoleManager, RoleAssistantCoach, RoleTeamParent}

var roleSeparators = regexp.MustCompile(`[\n;,|]`)

// Volunteer is a season registration of an adult helper.
type Volunteer struct {
	ID                    string
	SeasonID              string
	FamilyID              string
	DivisionID            string
	TeamID                string
	Name                  string
	Email                 string
	Phone                 string
	Role                  string
	InterestedRoles       string
	TrainingCompleted     bool
	BackgroundCheckStatus string
}

func (v Volunteer) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("volunteer id is required")
	}
	if v.SeasonID == "" {
		return fmt.Errorf("volunteer season id is required")
	}
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("volunteer name is required")
	}
	if v.Role != "" {
		if _, ok := CanonicalRole(v.Role); !ok {
			return fmt.Errorf("invalid volunteer role: %s", v.Role)
		}
	}
	return nil
}

// HoldsTeamRole reports whether the assigned role is one of TeamRoles.
func (v Volunteer) HoldsTeamRole() bool {
	for _, r := range TeamRoles {
		if strings.EqualFold(strings.TrimSpace(v.Role), r) {
			return true
		}
	}
	return false
}

// CanonicalRole maps any casing of a known role to its canonical spelling.
func CanonicalRole(v string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, r := range KnownRoles {
		if strings.EqualFold(v, r) {
			return r, true
		}
	}
	return "", false
}

// ParseInterestedRoles splits the free-text field on newlines, semicolons,
// commas and pipes. Entries are trimmed; empty entries are dropped.
func ParseInterestedRoles(v string) []string {
	parts := roleSeparators.Split(v, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EligibleTeamRoles returns the TeamRoles found in the interested roles, in
// the order the volunteer listed them, each at most once.
func EligibleTeamRoles(interested string) []string {
	var out []string
	seen := make(map[string]struct{}, len(TeamRoles))
	for _, entry := range ParseInterestedRoles(interested) {
		for _, role := range TeamRoles {
			if !strings.EqualFold(entry, role) {
				continue
			}
			if _, dup := seen[role]; dup {
				break
			}
			seen[role] = struct{}{}
			out = append(out, role)
			break
		}
	}
	return out
}

// Filter narrows a season's volunteer list. Empty fields match everything.
type Filter struct {
	SeasonID   string
	DivisionID string
	TeamID     string
	FamilyID   string
	Role       string
}

func (f Filter) Match(v Volunteer) bool {
	if f.SeasonID != "" && v.SeasonID != f.SeasonID {
		return false
	}
	if f.DivisionID != "" && v.DivisionID != f.DivisionID {
		return false
	}
	if f.TeamID != "" && v.TeamID != f.TeamID {
		return false
	}
	if f.FamilyID != "" && v.FamilyID != f.FamilyID {
		return false
	}
	if f.Role != "" && !strings.EqualFold(v.Role, f.Role) {
		return false
	}
	return true
}
