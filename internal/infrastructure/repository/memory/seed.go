package memory

import (
	"time"

	"github.com/riskibarqy/youth-league/internal/domain/division"
	"github.com/riskibarqy/youth-league/internal/domain/family"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/team"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/domain/workbond"
)

const (
	SeasonIDSpring2026 = "spring-2026"
	SeasonIDFall2025   = "fall-2025"

	DivisionID8U  = "spring-2026-8u"
	DivisionID10U = "spring-2026-10u"
)

func SeedSeasons() []season.Season {
	return []season.Season{
		{ID: SeasonIDSpring2026, Name: "Spring 2026", Year: 2026, IsActive: true},
		{ID: SeasonIDFall2025, Name: "Fall 2025", Year: 2025},
	}
}

func SeedDivisions() []division.Division {
	return []division.Division{
		{ID: DivisionID8U, SeasonID: SeasonIDSpring2026, Name: "8U"},
		{ID: DivisionID10U, SeasonID: SeasonIDSpring2026, Name: "10U"},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "10u-astros", SeasonID: SeasonIDSpring2026, DivisionID: DivisionID10U, Name: "Astros"},
		{ID: "10u-bears", SeasonID: SeasonIDSpring2026, DivisionID: DivisionID10U, Name: "Bears"},
		{ID: "10u-cubs", SeasonID: SeasonIDSpring2026, DivisionID: DivisionID10U, Name: "Cubs"},
		{ID: "8u-dodgers", SeasonID: SeasonIDSpring2026, DivisionID: DivisionID8U, Name: "Dodgers"},
		{ID: "8u-eagles", SeasonID: SeasonIDSpring2026, DivisionID: DivisionID8U, Name: "Eagles"},
	}
}

func SeedFamilies() []family.Family {
	return []family.Family{
		{
			ID:        "fam-rivera",
			Primary:   family.Contact{Name: "Ana Rivera", Email: "ana.rivera@example.com", Phone: "555-0142"},
			Secondary: family.Contact{Name: "Luis Rivera", Email: "luis.rivera@example.com", Phone: "555-0143"},
			Address:   "12 Oak St, Springfield",
		},
		{
			ID:      "fam-chen",
			Primary: family.Contact{Name: "Wei Chen", Email: "wei.chen@example.com", Phone: "555-0177"},
		},
		{
			ID:      "fam-okafor",
			Primary: family.Contact{Name: "Ngozi Okafor", Email: "ngozi.okafor@example.com", Phone: "555-0190"},
		},
		{
			ID:             "fam-novak",
			Primary:        family.Contact{Name: "Petra Novak", Email: "petra.novak@example.com", Phone: "555-0111"},
			WorkbondExempt: true,
			WorkbondNote:   "board approved hardship exemption",
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		seedPlayer("ply-maya", DivisionID10U, "fam-rivera", "Maya", "Rivera", "2016-04-12", "F"),
		seedPlayer("ply-leo", DivisionID10U, "fam-chen", "Leo", "Chen", "2016-09-01", "M"),
		seedPlayer("ply-ava", DivisionID10U, "fam-okafor", "Ava", "Okafor", "2016-02-20", "F"),
		seedPlayer("ply-jonas", DivisionID10U, "fam-novak", "Jonas", "Novak", "2016-07-30", "M"),
		seedPlayer("ply-sofia", DivisionID10U, "fam-chen", "Sofia", "Chen", "2016-01-05", "F"),
		seedPlayer("ply-mateo", DivisionID10U, "fam-rivera", "Mateo", "Rivera", "2016-11-18", "M"),
		seedPlayer("ply-ben", DivisionID8U, "fam-okafor", "Ben", "Okafor", "2018-02-11", "M"),
		seedPlayer("ply-ivy", DivisionID8U, "fam-novak", "Ivy", "Novak", "2018-06-03", "F"),
	}
}

func SeedVolunteers() []volunteer.Volunteer {
	return []volunteer.Volunteer{
		{
			ID:              "vol-ana",
			SeasonID:        SeasonIDSpring2026,
			FamilyID:        "fam-rivera",
			DivisionID:      DivisionID10U,
			Name:            "Ana Rivera",
			Email:           "ana.rivera@example.com",
			Phone:           "555-0142",
			InterestedRoles: "Manager; assistant coach, Team Parent",
		},
		{
			ID:              "vol-wei",
			SeasonID:        SeasonIDSpring2026,
			FamilyID:        "fam-chen",
			DivisionID:      DivisionID10U,
			TeamID:          "10u-bears",
			Name:            "Wei Chen",
			Email:           "wei.chen@example.com",
			Role:            volunteer.RoleManager,
			InterestedRoles: "Manager",
		},
		{
			ID:              "vol-ngozi",
			SeasonID:        SeasonIDSpring2026,
			FamilyID:        "fam-okafor",
			Name:            "Ngozi Okafor",
			Email:           "ngozi.okafor@example.com",
			InterestedRoles: "Concessions | Umpire",
		},
	}
}

func SeedShifts() []workbond.Shift {
	day := time.Date(2026, time.April, 18, 9, 0, 0, 0, time.UTC)
	return []workbond.Shift{
		{ID: "shf-concessions", SeasonID: SeasonIDSpring2026, Name: "Concession stand", Location: "Field 2, North Complex", StartsAt: day, EndsAt: day.Add(3 * time.Hour), Hours: 3, Capacity: 2},
		{ID: "shf-field-prep", SeasonID: SeasonIDSpring2026, Name: "Field prep", Location: "Field 1", StartsAt: day.Add(-2 * time.Hour), EndsAt: day, Hours: 2, Capacity: 4},
	}
}

func SeedSignups() []workbond.Signup {
	at := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return []workbond.Signup{
		{ID: "sgn-okafor-prep", ShiftID: "shf-field-prep", FamilyID: "fam-okafor", VolunteerName: "Ngozi Okafor", Status: workbond.SignupCompleted, CreatedAt: at},
		{ID: "sgn-okafor-concessions", ShiftID: "shf-concessions", FamilyID: "fam-okafor", VolunteerName: "Ngozi Okafor", Status: workbond.SignupCompleted, CreatedAt: at.Add(time.Minute)},
		{ID: "sgn-rivera-concessions", ShiftID: "shf-concessions", FamilyID: "fam-rivera", VolunteerName: "Luis Rivera", Status: workbond.SignupScheduled, CreatedAt: at.Add(2 * time.Minute)},
	}
}

func seedPlayer(id, divisionID, familyID, first, last, birthDate, gender string) player.Player {
	return player.Player{
		ID:          id,
		SeasonID:    SeasonIDSpring2026,
		DivisionID:  divisionID,
		FamilyID:    familyID,
		FirstName:   first,
		LastName:    last,
		BirthDate:   birthDate,
		Gender:      gender,
		Status:      player.StatusActive,
		IsNewPlayer: id == "ply-ava",
	}
}

// Repositories bundles seeded memory repositories for local runs and tests.
type Repositories struct {
	Seasons    *SeasonRepository
	Divisions  *DivisionRepository
	Teams      *TeamRepository
	Players    *PlayerRepository
	Families   *FamilyRepository
	Volunteers *VolunteerRepository
	Drafts     *DraftRepository
	Workbond   *WorkbondRepository
}

func NewSeededRepositories() Repositories {
	return Repositories{
		Seasons:    NewSeasonRepository(SeedSeasons()),
		Divisions:  NewDivisionRepository(SeedDivisions()),
		Teams:      NewTeamRepository(SeedTeams()),
		Players:    NewPlayerRepository(SeedPlayers()),
		Families:   NewFamilyRepository(SeedFamilies()),
		Volunteers: NewVolunteerRepository(SeedVolunteers()),
		Drafts:     NewDraftRepository(),
		Workbond:   NewWorkbondRepository(SeedShifts(), SeedSignups()),
	}
}
