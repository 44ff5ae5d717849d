package user

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDirector Role = "director"
	RoleViewer   Role = "viewer"
)

var roleRank = map[Role]int{
	RoleViewer:   1,
	RoleDirector: 2,
	RoleAdmin:    3,
}

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

func ParseRole(v string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(v)))
	_, ok := roleRank[r]
	return r, ok
}

// Allows reports whether the principal's role is at least min.
// Admins can do everything a director can, directors everything a viewer can.
func (p Principal) Allows(min Role) bool {
	have, ok := roleRank[p.Role]
	if !ok {
		return false
	}
	return have >= roleRank[min]
}
