package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/youth-league/internal/client/draftroom"
	"github.com/riskibarqy/youth-league/internal/client/leagueapi"
	"github.com/urfave/cli/v2"
)

const draftHelp = `commands:
  board                      show the board
  select <player-id>         choose the next pick
  pick                       draft the selected player for the team on the clock
  role <volunteer-id> <role> change the suggested volunteer role
  confirm                    assign the suggested role
  skip                       leave volunteer roles unchanged
  reload                     re-fetch the board
  quit`

func draftCommand() *cli.Command {
	return &cli.Command{
		Name:  "draft",
		Usage: "draft sessions",
		Subcommands: []*cli.Command{
			{
				Name:  "start",
				Usage: "create a draft session for a division",
				Flags: []cli.Flag{
					seasonFlag(true),
					divisionFlag(true),
					&cli.StringSliceFlag{Name: "team-order", Usage: "team ids in pick order"},
				},
				Action: func(c *cli.Context) error {
					client, err := newClient(c)
					if err != nil {
						return err
					}
					session, err := client.CreateDraftSession(c.Context, leagueapi.CreateDraftSession{
						SeasonID:   c.String(flagSeason),
						DivisionID: c.String(flagDivision),
						TeamOrder:  c.StringSlice("team-order"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "draft session %s created with %d managers\n", session.ID, len(session.Managers))
					return nil
				},
			},
			{
				Name:  "room",
				Usage: "run the draft room interactively",
				Flags: []cli.Flag{
					seasonFlag(true),
					divisionFlag(true),
					&cli.BoolFlag{Name: "offline-fallback", Usage: "show the team rotation when the board cannot be loaded"},
				},
				Action: runDraftRoom,
			},
		},
	}
}

func runDraftRoom(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	seasonID, divisionID := c.String(flagSeason), c.String(flagDivision)

	var opts []draftroom.Option
	if c.Bool("offline-fallback") {
		// Teams are fetched up front so the fallback has something to show
		// if the board endpoint is what fails.
		teams, err := client.ListTeams(c.Context, seasonID, divisionID)
		if err != nil {
			return err
		}
		opts = append(opts, draftroom.WithOfflineFallback(teams))
	}

	room := draftroom.New(client, seasonID, divisionID, opts...)
	out := c.App.Writer
	if err := room.Load(c.Context); err != nil {
		return err
	}
	printBoard(out, room)
	fmt.Fprintln(out, draftHelp)

	scanner := bufio.NewScanner(c.App.Reader)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		quit, err := draftStep(c, room, fields)
		if err != nil {
			fmt.Fprintln(out, "error:", message(err))
		}
		if quit {
			return nil
		}
	}
}

func draftStep(c *cli.Context, room *draftroom.Room, fields []string) (bool, error) {
	out := c.App.Writer
	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(out, draftHelp)
	case "board":
		printBoard(out, room)
	case "reload":
		if err := room.Load(c.Context); err != nil {
			return false, err
		}
		printBoard(out, room)
	case "select":
		if len(args) != 1 {
			return false, crerr.Mark(crerr.New("usage: select <player-id>"), leagueapi.ErrValidation)
		}
		if err := room.Select(args[0]); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "selected %s\n", args[0])
	case "pick":
		result, err := room.Pick(c.Context)
		if result.Pick.PickNumber > 0 {
			fmt.Fprintf(out, "pick %d: %s to %s\n", result.Pick.PickNumber, dash(strings.TrimSpace(result.Player.FullName())), result.Pick.TeamID)
		}
		if err != nil {
			return false, err
		}
		if a, ok := room.Assignment(); ok {
			printAssignment(out, a)
			return false, nil
		}
		printBoard(out, room)
	case "role":
		if len(args) < 2 {
			return false, crerr.Mark(crerr.New("usage: role <volunteer-id> <role>"), leagueapi.ErrValidation)
		}
		if err := room.Choose(args[0], strings.Join(args[1:], " ")); err != nil {
			return false, err
		}
		a, _ := room.Assignment()
		printAssignment(out, a)
	case "confirm":
		v, err := room.ConfirmRole(c.Context)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "%s is now %s for %s\n", v.Name, v.Role, v.TeamID)
		printBoard(out, room)
	case "skip":
		if err := room.SkipRole(); err != nil {
			return false, err
		}
		printBoard(out, room)
	default:
		return false, crerr.Mark(crerr.Newf("unknown command %q, try help", cmd), leagueapi.ErrValidation)
	}
	return false, nil
}

func printBoard(w io.Writer, room *draftroom.Room) {
	if room.State() == draftroom.StateIdle {
		fmt.Fprintln(w, "no board loaded; run reload")
		return
	}
	board := room.Board()
	if room.Synthesized() {
		fmt.Fprintln(w, "offline rotation: picks are disabled until the session loads")
	}

	teams := make(map[string]string, len(board.Teams))
	for _, t := range board.Teams {
		teams[t.ID] = t.Name
	}
	if m, ok := room.OnTheClock(); ok {
		team := teams[m.TeamID]
		if team == "" {
			team = m.TeamID
		}
		fmt.Fprintf(w, "round %d, pick %d: %s (%s) on the clock\n", board.Round, board.Session.CurrentPick+1, m.Name, team)
	} else {
		fmt.Fprintln(w, "no managers in rotation")
	}

	fmt.Fprintf(w, "%d available:\n", len(board.Available))
	for _, p := range board.Available {
		marker := " "
		if p.ID == room.Selected() {
			marker = "*"
		}
		flags := ""
		if p.IsNewPlayer {
			flags += " new"
		}
		if p.IsTravelPlayer {
			flags += " travel"
		}
		fmt.Fprintf(w, " %s %-14s %-24s %s%s\n", marker, p.ID, p.FullName(), p.BirthDate, flags)
	}
}

func printAssignment(w io.Writer, a draftroom.Assignment) {
	fmt.Fprintf(w, "volunteers from this family can take a role on %s:\n", a.TeamID)
	for _, c := range a.Candidates {
		fmt.Fprintf(w, "  %s %s: %s\n", c.VolunteerID, c.VolunteerName, strings.Join(c.Roles, ", "))
	}
	fmt.Fprintf(w, "suggested: %s as %s (confirm, role, or skip)\n", a.VolunteerID, a.Role)
}
