package importrow

import (
	"testing"

	"github.com/riskibarqy/youth-league/internal/platform/csvcodec"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, content string) csvcodec.Table {
	t.Helper()
	table, err := csvcodec.DecodeString(content)
	require.NoError(t, err)
	return table.Normalize()
}

func TestBind_Players(t *testing.T) {
	table := decode(t, "First Name,Last Name,DOB,Division,Parent Name,Parent Email,Paid,New Player\n"+
		"Maya,Rivera,2016-04-12,10U,\"Rivera, Ana\",ana@example.com,yes,\n"+
		"Leo,,2015-09-01,10U,Wei Chen,wei@example.com,no,true\n"+
		"Ava,Okafor,09/01/2015,8U,,,maybe,\n")

	accepted, rejected := Bind[PlayerRow](table)
	require.Len(t, accepted, 1)
	require.Equal(t, 2, accepted[0].Line)

	row := accepted[0].Row
	require.Equal(t, "Rivera, Ana", row.PrimaryGuardianName)
	require.NotNil(t, row.PaymentReceived)
	require.True(t, *row.PaymentReceived)
	require.Nil(t, row.IsNewPlayer)

	require.Len(t, rejected, 2)
	require.Equal(t, 3, rejected[0].Line)
	require.Contains(t, rejected[0].Reason, "last_name is required")

	require.Equal(t, 4, rejected[1].Line)
	require.Contains(t, rejected[1].Reason, "payment_received must be true or false")
}

func TestBind_PlayerGuardianRequiredWithoutFamily(t *testing.T) {
	table := decode(t, "first_name,last_name,birth_date,division,family_id\n"+
		"Ava,Okafor,2015-09-01,8U,\n"+
		"Ben,Okafor,2017-02-11,8U,fam-9\n")

	accepted, rejected := Bind[PlayerRow](table)
	require.Len(t, accepted, 1)
	require.Equal(t, "fam-9", accepted[0].Row.FamilyID)

	require.Len(t, rejected, 1)
	require.Contains(t, rejected[0].Reason, "primary_guardian_name is required")
	require.Contains(t, rejected[0].Reason, "primary_guardian_email is required")
}

func TestBind_PlayerFormatChecks(t *testing.T) {
	table := decode(t, "first_name,last_name,birth_date,division,family_id,status,primary_guardian_email\n"+
		"Ava,Okafor,2015-13-01,8U,fam-1,retired,not-an-email\n")

	_, rejected := Bind[PlayerRow](table)
	require.Len(t, rejected, 1)
	require.Contains(t, rejected[0].Reason, "birth_date must be a date like 2006-01-02")
	require.Contains(t, rejected[0].Reason, "status must be one of: active withdrawn inactive")
	require.Contains(t, rejected[0].Reason, "primary_guardian_email must be a valid email")
}

func TestBind_Volunteers(t *testing.T) {
	table := decode(t, "Name,Email,Role,Interested Roles\n"+
		"Ana Rivera,ana@example.com,team parent,\"Manager; Assistant Coach\"\n"+
		"Sam Lee,sam@example.com,Mascot,\n")

	accepted, rejected := Bind[VolunteerRow](table)
	require.Len(t, accepted, 1)
	require.Equal(t, "ana@example.com", accepted[0].Row.FamilyEmail())
	require.Len(t, rejected, 1)
	require.Contains(t, rejected[0].Reason, `role "Mascot" is not a known role`)
}

func TestBind_Shifts(t *testing.T) {
	table := decode(t, "shift_name,location,starts_at,ends_at,hours,capacity\n"+
		"Concessions,\"Field 2, North\",2026-04-18T09:00:00Z,2026-04-18T12:00:00Z,3,4\n"+
		"Field prep,,2026-04-18T12:00:00Z,2026-04-18T09:00:00Z,3,4\n"+
		"Cleanup,,2026-04-18T12:00:00Z,2026-04-18T13:00:00Z,0,x\n")

	accepted, rejected := Bind[ShiftRow](table)
	require.Len(t, accepted, 1)
	start, end := accepted[0].Row.Times()
	require.Equal(t, 3, end.Hour()-start.Hour())

	require.Len(t, rejected, 2)
	require.Contains(t, rejected[0].Reason, "ends_at must be after starts_at")
	require.Contains(t, rejected[1].Reason, "capacity must be a whole number")
}

func TestMissingColumns(t *testing.T) {
	require.Equal(t, []string{"birth_date", "division"}, MissingColumns[PlayerRow]([]string{"first_name", "last_name"}))
	require.Empty(t, MissingColumns[FamilyRow]([]string{"primary_guardian_name", "primary_guardian_email"}))
}

func TestTemplatesBindCleanly(t *testing.T) {
	for kind, check := range map[string]func(csvcodec.Table) int{
		csvcodec.KindPlayers: func(tb csvcodec.Table) int {
			_, rej := Bind[PlayerRow](tb)
			return len(rej)
		},
		csvcodec.KindVolunteers: func(tb csvcodec.Table) int {
			_, rej := Bind[VolunteerRow](tb)
			return len(rej)
		},
		csvcodec.KindFamilies: func(tb csvcodec.Table) int {
			_, rej := Bind[FamilyRow](tb)
			return len(rej)
		},
		csvcodec.KindWorkbond: func(tb csvcodec.Table) int {
			_, rej := Bind[ShiftRow](tb)
			return len(rej)
		},
	} {
		spec, err := csvcodec.Template(kind)
		require.NoError(t, err)
		require.Zero(t, check(decode(t, spec.CSV())), "template %s sample row must import", kind)
	}
}
