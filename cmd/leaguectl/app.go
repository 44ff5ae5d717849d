package main

import (
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/youth-league/internal/client/leagueapi"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
	"github.com/riskibarqy/youth-league/internal/platform/resilience"
	"github.com/urfave/cli/v2"
)

const (
	flagAPIURL   = "api-url"
	flagToken    = "token"
	flagSeason   = "season"
	flagDivision = "division"
	flagLogLevel = "log-level"
	flagTokenDir = "token-dir"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "leaguectl",
		Usage: "operate the youth league service from a terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagAPIURL,
				Usage:   "league service base URL",
				EnvVars: []string{"LEAGUE_API_URL"},
				Value:   "http://localhost:8080",
			},
			&cli.StringFlag{
				Name:    flagToken,
				Usage:   "bearer token; defaults to the one saved by login",
				EnvVars: []string{"LEAGUE_API_TOKEN"},
			},
			&cli.StringFlag{
				Name:    flagTokenDir,
				Usage:   "directory holding the saved token",
				EnvVars: []string{"LEAGUE_TOKEN_DIR"},
				Hidden:  true,
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "client log level",
				EnvVars: []string{"LEAGUE_LOG_LEVEL"},
				Value:   "warn",
			},
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			seasonsCommand(),
			playersCommand(),
			previewCommand(),
			importCommand(),
			templateCommand(),
			reportCommand(),
			draftCommand(),
			mailingListCommand(),
			dashboardCommand(),
			workbondCommand(),
		},
	}
}

func seasonFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{Name: flagSeason, Aliases: []string{"s"}, Usage: "season id", Required: required}
}

func divisionFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{Name: flagDivision, Aliases: []string{"d"}, Usage: "division id", Required: required}
}

func tokenStore(c *cli.Context) (*leagueapi.TokenStore, error) {
	return leagueapi.NewTokenStore(c.String(flagTokenDir))
}

// newClient builds a client from the global flags. The token comes from
// --token, else from the saved token file.
func newClient(c *cli.Context) (*leagueapi.Client, error) {
	token := c.String(flagToken)
	if token == "" {
		store, err := tokenStore(c)
		if err != nil {
			return nil, err
		}
		if token, err = store.Load(); err != nil {
			return nil, err
		}
	}

	logger := logging.NewConsole(c.App.ErrWriter, logging.ParseLevel(c.String(flagLogLevel)))
	return leagueapi.New(leagueapi.Config{
		BaseURL: c.String(flagAPIURL),
		Token:   token,
		Timeout: 30 * time.Second,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 3,
			OpenTimeout:      15 * time.Second,
			HalfOpenMaxReq:   1,
		},
	})
}

// message prefers the client's operator wording for service and input
// errors; anything else, such as a missing local file, is shown as is.
func message(err error) string {
	var apiErr *leagueapi.APIError
	if crerr.As(err, &apiErr) || crerr.Is(err, leagueapi.ErrValidation) || crerr.Is(err, leagueapi.ErrUnavailable) {
		return leagueapi.UserMessage(err)
	}
	return err.Error()
}
