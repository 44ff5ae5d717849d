package draft

import "github.com/riskibarqy/youth-league/internal/domain/volunteer"

// RoleCandidate is a family volunteer who could take a team role after
// their child is drafted.
type RoleCandidate struct {
	VolunteerID   string
	VolunteerName string
	Roles         []string
}

// RoleCandidates keeps volunteers whose interested roles include a team role.
// The first candidate and its first role are the default selection.
func RoleCandidates(volunteers []volunteer.Volunteer) []RoleCandidate {
	var out []RoleCandidate
	for _, v := range volunteers {
		roles := volunteer.EligibleTeamRoles(v.InterestedRoles)
		if len(roles) == 0 {
			continue
		}
		out = append(out, RoleCandidate{
			VolunteerID:   v.ID,
			VolunteerName: v.Name,
			Roles:         roles,
		})
	}
	return out
}
