package leagueapi

import (
	"context"
	"sort"

	"github.com/sourcegraph/conc/iter"
)

// Task is one independent fetch in a Gather batch.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Failures maps task names to their errors.
type Failures map[string]error

func (f Failures) Empty() bool { return len(f) == 0 }

// Names lists failed tasks in a stable order.
func (f Failures) Names() []string {
	out := make([]string, 0, len(f))
	for name := range f {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Gather runs tasks concurrently and waits for all of them. A failed task
// does not cancel its siblings; each failure is reported by name.
func Gather(ctx context.Context, tasks ...Task) Failures {
	errs := iter.Map(tasks, func(t *Task) error {
		return t.Run(ctx)
	})

	failures := Failures{}
	for i, err := range errs {
		if err != nil {
			failures[tasks[i].Name] = err
		}
	}
	return failures
}

// DraftRoomData is everything the draft room needs on open.
type DraftRoomData struct {
	Board      DraftBoard
	Volunteers []Volunteer
	Failures   Failures
}

// LoadDraftRoom fetches the board and division volunteers in parallel. The
// board is required; a volunteer failure is returned in Failures.
func (c *Client) LoadDraftRoom(ctx context.Context, seasonID, divisionID string) (DraftRoomData, error) {
	var out DraftRoomData
	out.Failures = Gather(ctx,
		Task{Name: "board", Run: func(ctx context.Context) error {
			board, err := c.GetDraftBoard(ctx, seasonID, divisionID)
			out.Board = board
			return err
		}},
		Task{Name: "volunteers", Run: func(ctx context.Context) error {
			items, err := c.ListVolunteers(ctx, VolunteerQuery{SeasonID: seasonID, DivisionID: divisionID})
			out.Volunteers = items
			return err
		}},
	)

	if err, ok := out.Failures["board"]; ok {
		return out, err
	}
	return out, nil
}
