package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/youth-league/internal/client/leagueapi"
	"github.com/urfave/cli/v2"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "save a bearer token for later commands",
		ArgsUsage: "<token>",
		Action: func(c *cli.Context) error {
			token := strings.TrimSpace(c.Args().First())
			if token == "" {
				token = strings.TrimSpace(c.String(flagToken))
			}
			store, err := tokenStore(c)
			if err != nil {
				return err
			}
			if err := store.Save(token); err != nil {
				return err
			}

			client, err := newClient(c)
			if err != nil {
				return err
			}
			if _, err := client.WithToken(token).ListSeasons(c.Context); err != nil {
				_ = store.Clear()
				return err
			}
			fmt.Fprintf(c.App.Writer, "token saved to %s\n", store.Path())
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the saved token",
		Action: func(c *cli.Context) error {
			store, err := tokenStore(c)
			if err != nil {
				return err
			}
			return store.Clear()
		},
	}
}

func seasonsCommand() *cli.Command {
	return &cli.Command{
		Name:  "seasons",
		Usage: "list seasons and their divisions",
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}
			seasons, err := client.ListSeasons(c.Context)
			if err != nil {
				return err
			}

			tw := newTable(c)
			fmt.Fprintln(tw, "ID\tNAME\tYEAR\tACTIVE")
			for _, s := range seasons {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%t\n", s.ID, s.Name, s.Year, s.IsActive)
			}
			return tw.Flush()
		},
	}
}

func playersCommand() *cli.Command {
	return &cli.Command{
		Name:  "players",
		Usage: "list players for a season",
		Flags: []cli.Flag{
			seasonFlag(true),
			divisionFlag(false),
			&cli.StringFlag{Name: "team"},
			&cli.StringFlag{Name: "status"},
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}},
			&cli.BoolFlag{Name: "unassigned"},
			&cli.StringFlag{Name: "sort", Value: "last_name"},
		},
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}
			players, err := leagueapi.NewPlayerListLoader(client).Load(c.Context, leagueapi.PlayerQuery{
				SeasonID:   c.String(flagSeason),
				DivisionID: c.String(flagDivision),
				TeamID:     c.String("team"),
				Status:     c.String("status"),
				Search:     c.String("search"),
				Unassigned: c.Bool("unassigned"),
				Sort:       c.String("sort"),
			})
			if err != nil {
				return err
			}

			tw := newTable(c)
			fmt.Fprintln(tw, "ID\tNAME\tBIRTH DATE\tTEAM\tSTATUS\tPAID")
			for _, p := range players {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n", p.ID, p.FullName(), p.BirthDate, dash(p.TeamID), p.Status, p.PaymentReceived)
			}
			return tw.Flush()
		},
	}
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "show the rows of a CSV file as the service parses them",
		ArgsUsage: "<file.csv>",
		Action: func(c *cli.Context) error {
			name, content, err := readArgFile(c)
			if err != nil {
				return err
			}
			client, err := newClient(c)
			if err != nil {
				return err
			}
			preview, err := client.PreviewImport(c.Context, name, content)
			if err != nil {
				return err
			}

			tw := newTable(c)
			fmt.Fprintln(tw, strings.Join(preview.Headers, "\t"))
			for _, row := range preview.Rows {
				cells := make([]string, 0, len(preview.Headers))
				for _, h := range preview.Headers {
					cells = append(cells, row[h])
				}
				fmt.Fprintln(tw, strings.Join(cells, "\t"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%d row(s)\n", len(preview.Rows))
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "import players or volunteers from a CSV file",
		ArgsUsage: "<players|volunteers> <file.csv>",
		Flags:     []cli.Flag{seasonFlag(true)},
		Action: func(c *cli.Context) error {
			kind := c.Args().Get(0)
			path := c.Args().Get(1)
			if kind == "" || path == "" {
				return crerr.Mark(crerr.New("usage: leaguectl import --season <id> <players|volunteers> <file.csv>"), leagueapi.ErrValidation)
			}
			name, content, err := readFile(path)
			if err != nil {
				return err
			}
			client, err := newClient(c)
			if err != nil {
				return err
			}
			result, err := client.Import(c.Context, kind, c.String(flagSeason), name, content)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "imported %d %s, rejected %d", result.Imported, result.Kind, result.Rejected)
			if result.FamiliesCreated > 0 {
				fmt.Fprintf(c.App.Writer, ", created %d families", result.FamiliesCreated)
			}
			fmt.Fprintln(c.App.Writer)
			for _, r := range result.Errors {
				fmt.Fprintf(c.App.Writer, "  line %d: %s\n", r.Line, r.Reason)
			}
			if !result.Success {
				return crerr.Mark(crerr.Newf("%d row(s) rejected", result.Rejected), leagueapi.ErrValidation)
			}
			return nil
		},
	}
}

func templateCommand() *cli.Command {
	return &cli.Command{
		Name:      "template",
		Usage:     "download an import template",
		ArgsUsage: "<players|volunteers>",
		Flags:     []cli.Flag{outputFlag()},
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}
			file, err := client.DownloadTemplate(c.Context, c.Args().First())
			if err != nil {
				return err
			}
			return saveFile(c, file)
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "download a season report",
		ArgsUsage: "<players|volunteers|workbond>",
		Flags: []cli.Flag{
			seasonFlag(true),
			&cli.StringFlag{Name: "format", Value: "csv", Usage: "csv or xlsx"},
			outputFlag(),
		},
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}
			file, err := client.DownloadReport(c.Context, c.Args().First(), c.String(flagSeason), c.String("format"))
			if err != nil {
				return err
			}
			return saveFile(c, file)
		},
	}
}

func mailingListCommand() *cli.Command {
	return &cli.Command{
		Name:  "mailing-list",
		Usage: "build a deduplicated recipient list",
		Flags: []cli.Flag{
			seasonFlag(true),
			divisionFlag(false),
			&cli.StringFlag{Name: "audience", Value: "all", Usage: "all, guardians or volunteers"},
			&cli.StringFlag{Name: "team"},
			&cli.StringFlag{Name: "role"},
			&cli.StringFlag{Name: "format", Value: "table", Usage: "table, line or csv"},
			outputFlag(),
		},
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}
			query := leagueapi.MailingQuery{
				SeasonID:   c.String(flagSeason),
				Audience:   c.String("audience"),
				DivisionID: c.String(flagDivision),
				TeamID:     c.String("team"),
				Role:       c.String("role"),
			}

			switch format := strings.ToLower(c.String("format")); format {
			case "csv":
				file, err := client.MailingListFile(c.Context, query)
				if err != nil {
					return err
				}
				return saveFile(c, file)
			case "line", "table":
				list, err := client.MailingList(c.Context, query)
				if err != nil {
					return err
				}
				if format == "line" {
					fmt.Fprintln(c.App.Writer, list.AddressLine)
					return nil
				}
				tw := newTable(c)
				fmt.Fprintln(tw, "NAME\tEMAIL\tSOURCE")
				for _, r := range list.Recipients {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Email, r.Source)
				}
				return tw.Flush()
			default:
				return crerr.Mark(crerr.Newf("unknown format %q", format), leagueapi.ErrValidation)
			}
		},
	}
}

func dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "show season totals",
		Flags: []cli.Flag{seasonFlag(true)},
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}
			d, err := client.Dashboard(c.Context, c.String(flagSeason))
			if err != nil {
				return err
			}

			w := c.App.Writer
			fmt.Fprintf(w, "players: %d (new %d, travel %d, paid %d, unpaid %d)\n",
				d.Players.Total, d.Players.New, d.Players.Travel, d.Players.Paid, d.Players.Unpaid)
			fmt.Fprintf(w, "families: %d, volunteers: %d\n", d.Families, d.Volunteers.Total)
			fmt.Fprintf(w, "workbond: %d complete, %d incomplete, %d exempt\n",
				d.Workbond.Complete, d.Workbond.Incomplete, d.Workbond.Exempt)

			tw := newTable(c)
			fmt.Fprintln(tw, "DIVISION\tPLAYERS\tUNASSIGNED\tDRAFT")
			for i, div := range d.Divisions {
				progress := "not started"
				if i < len(d.Drafts) && d.Drafts[i].Started {
					progress = fmt.Sprintf("round %d, %d picks", d.Drafts[i].Round, d.Drafts[i].Picks)
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", div.Name, div.Players, div.Unassigned, progress)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			for _, warn := range d.Warnings {
				fmt.Fprintf(c.App.ErrWriter, "warning: %s unavailable: %s\n", warn.Section, warn.Message)
			}
			return nil
		},
	}
}

func workbondCommand() *cli.Command {
	return &cli.Command{
		Name:  "workbond",
		Usage: "family workbond hours for a season",
		Flags: []cli.Flag{seasonFlag(true)},
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}
			summaries, err := client.WorkbondSummary(c.Context, c.String(flagSeason))
			if err != nil {
				return err
			}

			tw := newTable(c)
			fmt.Fprintln(tw, "FAMILY\tREQUIRED\tCOMPLETED\tSCHEDULED\tSTATUS")
			for _, s := range summaries {
				status := s.Status
				if s.Exempt && s.ExemptReason != "" {
					status += " (" + s.ExemptReason + ")"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.FamilyName,
					leagueapi.FormatHours(s.RequiredHours),
					leagueapi.FormatHours(s.CompletedHours),
					leagueapi.FormatHours(s.ScheduledHours),
					status)
			}
			return tw.Flush()
		},
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write to this path instead of the served file name"}
}

func newTable(c *cli.Context) *tabwriter.Writer {
	return tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
}

func readArgFile(c *cli.Context) (string, string, error) {
	path := c.Args().First()
	if path == "" {
		return "", "", crerr.Mark(crerr.New("no file selected"), leagueapi.ErrValidation)
	}
	return readFile(path)
}

func readFile(path string) (string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", crerr.Wrapf(err, "read %s", filepath.Base(path))
	}
	return path, string(raw), nil
}

func saveFile(c *cli.Context, file leagueapi.File) error {
	path := c.String("output")
	if path == "" {
		path = file.Name
	}
	if path == "" {
		return crerr.New("server did not name the file; pass --output")
	}
	if path == "-" {
		_, err := c.App.Writer.Write(file.Body)
		return err
	}
	if err := os.WriteFile(path, file.Body, 0o644); err != nil {
		return crerr.Wrapf(err, "write %s", path)
	}
	fmt.Fprintf(c.App.Writer, "saved %s (%d bytes)\n", path, len(file.Body))
	return nil
}

func dash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
