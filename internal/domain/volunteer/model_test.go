package volunteer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEligibleTeamRoles(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "mixed separators and casing", input: "Manager; assistant coach, Team Parent", want: []string{RoleManager, RoleAssistantCoach, RoleTeamParent}},
		{name: "order follows the volunteer", input: "team parent|MANAGER", want: []string{RoleTeamParent, RoleManager}},
		{name: "newlines and duplicates", input: "Manager\nmanager\n\n Umpire ", want: []string{RoleManager}},
		{name: "no team roles", input: "Umpire, Concessions", want: nil},
		{name: "partial words do not match", input: "Assistant, Coach", want: nil},
		{name: "empty", input: "", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, EligibleTeamRoles(tc.input))
		})
	}
}

func TestParseInterestedRoles(t *testing.T) {
	require.Equal(t, []string{"Manager", "assistant coach", "Team Parent"}, ParseInterestedRoles("Manager; assistant coach, Team Parent"))
	require.Empty(t, ParseInterestedRoles(" ;;, |\n"))
}

func TestCanonicalRoleAndHoldsTeamRole(t *testing.T) {
	r, ok := CanonicalRole("board member")
	require.True(t, ok)
	require.Equal(t, RoleBoardMember, r)

	_, ok = CanonicalRole("Mascot")
	require.False(t, ok)

	require.True(t, Volunteer{Role: "team parent"}.HoldsTeamRole())
	require.False(t, Volunteer{Role: RoleUmpire}.HoldsTeamRole())
}

func TestValidate(t *testing.T) {
	v := Volunteer{ID: "v1", SeasonID: "s1", Name: "Ana Rivera", Role: "coach"}
	require.NoError(t, v.Validate())

	v.Role = "Mascot"
	require.Error(t, v.Validate())
}
