package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/youth-league/internal/domain/draft"
	"github.com/riskibarqy/youth-league/internal/domain/workbond"
	"github.com/stretchr/testify/require"
)

func TestDraftRepository_AppendPickIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository(draft.Session{
		ID:         "dft-1",
		SeasonID:   SeasonIDSpring2026,
		DivisionID: DivisionID10U,
		Managers:   []draft.Manager{{ID: "a", TeamID: "10u-astros"}, {ID: "b", TeamID: "10u-bears"}},
	})

	var (
		wins atomic.Int32
		wg   sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.AppendPick(ctx, "dft-1", draft.Pick{
				PickNumber: 1,
				TeamID:     "10u-astros",
				PlayerID:   fmt.Sprintf("ply-%d", i),
				PickedAt:   time.Now(),
			})
			if err == nil {
				wins.Add(1)
				return
			}
			if !errors.Is(err, draft.ErrOutOfOrder) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	require.EqualValues(t, 1, wins.Load())
	s, ok, err := repo.GetByID(ctx, "dft-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, s.Picks, 1)

	err = repo.AppendPick(ctx, "dft-1", draft.Pick{PickNumber: 2, TeamID: "10u-bears", PlayerID: s.Picks[0].PlayerID})
	require.ErrorIs(t, err, draft.ErrAlreadyPicked)
}

func TestDraftRepository_OneSessionPerDivision(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository()
	session := draft.Session{
		ID:         "dft-1",
		SeasonID:   SeasonIDSpring2026,
		DivisionID: DivisionID10U,
		Managers:   []draft.Manager{{ID: "a", TeamID: "10u-astros"}},
	}
	require.NoError(t, repo.Create(ctx, session))

	session.ID = "dft-2"
	require.ErrorIs(t, repo.Create(ctx, session), draft.ErrSessionExists)

	got, ok, err := repo.GetByID(ctx, "dft-1")
	require.NoError(t, err)
	require.True(t, ok)
	got.Managers[0].Name = "mutated"

	again, _, _ := repo.GetByID(ctx, "dft-1")
	require.Empty(t, again.Managers[0].Name)
}

func TestWorkbondRepository_CreateSignupEnforcesCapacity(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkbondRepository(SeedShifts(), SeedSignups())

	err := repo.CreateSignup(ctx, workbond.Signup{ID: "sgn-new", ShiftID: "shf-concessions", FamilyID: "fam-chen"}, 2)
	require.ErrorIs(t, err, workbond.ErrShiftFull)

	err = repo.CreateSignup(ctx, workbond.Signup{ID: "sgn-dup", ShiftID: "shf-field-prep", FamilyID: "fam-okafor"}, 4)
	require.ErrorIs(t, err, workbond.ErrAlreadySignedUp)

	require.NoError(t, repo.CreateSignup(ctx, workbond.Signup{ID: "sgn-chen", ShiftID: "shf-field-prep", FamilyID: "fam-chen"}, 4))
	signups, err := repo.ListSignupsBySeason(ctx, SeasonIDSpring2026)
	require.NoError(t, err)
	require.Len(t, signups, 4)
}

func TestFamilyRepository_FindByEitherEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewFamilyRepository(SeedFamilies())

	f, ok, err := repo.FindByEmail(ctx, "  LUIS.Rivera@example.com ")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "fam-rivera", f.ID)

	_, ok, err = repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.False(t, ok)
}
