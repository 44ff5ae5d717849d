package draft

import "github.com/riskibarqy/youth-league/internal/domain/team"

const SynthesizedManagerRole = "Team"

// SynthesizeSession builds a stand-in session when no stored one exists:
// every team is its own manager, in team order. It has no id and is flagged
// Synthesized, so ValidatePick refuses it.
func SynthesizeSession(seasonID, divisionID string, teams []team.Team) Session {
	managers := make([]Manager, 0, len(teams))
	for _, t := range teams {
		managers = append(managers, Manager{
			ID:     t.ID,
			Name:   t.Name,
			Role:   SynthesizedManagerRole,
			TeamID: t.ID,
		})
	}
	return Session{
		SeasonID:    seasonID,
		DivisionID:  divisionID,
		Managers:    managers,
		Synthesized: true,
	}
}
