package usecase

import "github.com/riskibarqy/youth-league/internal/platform/id"

// IDGenerators hands out ids for records the service creates. Nil fields
// fall back to prefixed UUIDs.
type IDGenerators struct {
	Player    id.Generator
	Family    id.Generator
	Volunteer id.Generator
	Shift     id.Generator
	Signup    id.Generator
	Session   id.Generator
}

func (g IDGenerators) withDefaults() IDGenerators {
	if g.Player == nil {
		g.Player = id.NewUUIDGenerator("ply_")
	}
	if g.Family == nil {
		g.Family = id.NewUUIDGenerator("fam_")
	}
	if g.Volunteer == nil {
		g.Volunteer = id.NewUUIDGenerator("vol_")
	}
	if g.Shift == nil {
		g.Shift = id.NewUUIDGenerator("shf_")
	}
	if g.Signup == nil {
		g.Signup = id.NewUUIDGenerator("sgn_")
	}
	if g.Session == nil {
		g.Session = id.NewUUIDGenerator("dft_")
	}
	return g
}
