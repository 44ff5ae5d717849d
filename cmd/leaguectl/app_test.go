package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/youth-league/internal/client/leagueapi"
	"github.com/stretchr/testify/require"
)

type harness struct {
	url      string
	tokenDir string
	out      *bytes.Buffer
}

func newHarness(t *testing.T, handler http.HandlerFunc) *harness {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &harness{url: srv.URL, tokenDir: t.TempDir(), out: &bytes.Buffer{}}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	app := newApp()
	app.Writer = h.out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)
	full := append([]string{"leaguectl", "--api-url", h.url, "--token-dir", h.tokenDir}, args...)
	return app.Run(full)
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestLoginSavesTokenUsedLater(t *testing.T) {
	var auth atomic.Value
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		respond(w, http.StatusOK, `{"data":[{"id":"spring-2026","name":"Spring 2026","year":2026,"is_active":true}]}`)
	})

	require.NoError(t, h.run(t, "", "login", "director-token"))
	saved, err := os.ReadFile(filepath.Join(h.tokenDir, "auth_token"))
	require.NoError(t, err)
	require.Equal(t, "director-token\n", string(saved))

	h.out.Reset()
	require.NoError(t, h.run(t, "", "seasons"))
	require.Equal(t, "Bearer director-token", auth.Load())
	require.Contains(t, h.out.String(), "spring-2026")

	require.NoError(t, h.run(t, "", "logout"))
	_, err = os.Stat(filepath.Join(h.tokenDir, "auth_token"))
	require.True(t, os.IsNotExist(err))
}

func TestLoginRejectedTokenIsNotKept(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusUnauthorized, `{"error":{"code":401,"message":"token expired"}}`)
	})

	err := h.run(t, "", "login", "stale-token")
	require.True(t, leagueapi.IsUnauthenticated(err))
	_, statErr := os.Stat(filepath.Join(h.tokenDir, "auth_token"))
	require.True(t, os.IsNotExist(statErr))
}

func TestPreviewRejectsNonCSV(t *testing.T) {
	var hits atomic.Int32
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		respond(w, http.StatusOK, `{"data":{}}`)
	})
	path := filepath.Join(t.TempDir(), "roster.txt")
	require.NoError(t, os.WriteFile(path, []byte("first_name\nMaya\n"), 0o600))

	err := h.run(t, "", "--token", "t", "preview", path)
	require.ErrorIs(t, err, leagueapi.ErrValidation)
	require.Equal(t, "only .csv files can be imported", leagueapi.UserMessage(err))
	require.Zero(t, hits.Load())
}

func TestMailingListLine(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/seasons/spring-2026/mailing-list", r.URL.Path)
		require.Equal(t, "guardians", r.URL.Query().Get("audience"))
		respond(w, http.StatusOK, `{"data":{"recipients":[{"name":"Ana Rivera","email":"ana.rivera@example.com","source":"guardians"}],"address_line":"ana.rivera@example.com"}}`)
	})

	require.NoError(t, h.run(t, "", "--token", "t", "mailing-list", "--season", "spring-2026", "--audience", "guardians", "--format", "line"))
	require.Equal(t, "ana.rivera@example.com\n", h.out.String())
}

func TestDraftRoomSession(t *testing.T) {
	var picked atomic.Bool
	var assigned atomic.Value
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/seasons/spring-2026/divisions/spring-2026-10u/draft":
			current, available := 0, `[{"id":"ply-maya","first_name":"Maya","last_name":"Rivera"},{"id":"ply-leo","first_name":"Leo","last_name":"Chen"}]`
			if picked.Load() {
				current, available = 1, `[{"id":"ply-leo","first_name":"Leo","last_name":"Chen"}]`
			}
			respond(w, http.StatusOK, `{"data":{"session":{"id":"dft-1","current_pick":`+strconv.Itoa(current)+`,"managers":[{"id":"10u-astros","name":"Astros","team_id":"10u-astros"},{"id":"vol-wei","name":"Wei Chen","team_id":"10u-bears"}]},"teams":[{"id":"10u-astros","name":"Astros"},{"id":"10u-bears","name":"Bears"}],"round":1,"available":`+available+`}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/draft-sessions/dft-1/picks":
			body, _ := io.ReadAll(r.Body)
			require.JSONEq(t, `{"team_id":"10u-astros","player_id":"ply-maya","pick_number":1}`, string(body))
			picked.Store(true)
			respond(w, http.StatusCreated, `{"data":{"pick":{"pick_number":1,"team_id":"10u-astros","player_id":"ply-maya"},"player":{"id":"ply-maya","first_name":"Maya","last_name":"Rivera"},"role_candidates":[{"volunteer_id":"vol-ana","volunteer_name":"Ana Rivera","roles":["Manager","Team Parent"]}]}}`)
		case r.Method == http.MethodPut && r.URL.Path == "/v1/volunteers/vol-ana/role":
			body, _ := io.ReadAll(r.Body)
			assigned.Store(string(body))
			respond(w, http.StatusOK, `{"data":{"id":"vol-ana","name":"Ana Rivera","role":"Team Parent","team_id":"10u-astros"}}`)
		default:
			respond(w, http.StatusNotFound, `{"error":{"message":"not found"}}`)
		}
	})

	script := strings.Join([]string{
		"pick",
		"select ply-maya",
		"pick",
		"role vol-ana team parent",
		"confirm",
		"quit",
	}, "\n")
	require.NoError(t, h.run(t, script, "--token", "t", "draft", "room", "--season", "spring-2026", "--division", "spring-2026-10u"))

	out := h.out.String()
	require.Contains(t, out, "round 1, pick 1: Astros (Astros) on the clock")
	require.Contains(t, out, "error: select an available player first")
	require.Contains(t, out, "pick 1: Maya Rivera to 10u-astros")
	require.Contains(t, out, "suggested: vol-ana as Manager")
	require.Contains(t, out, "suggested: vol-ana as Team Parent")
	require.Contains(t, out, "Ana Rivera is now Team Parent for 10u-astros")
	require.Contains(t, out, "round 1, pick 2: Wei Chen (Bears) on the clock")
	require.JSONEq(t, `{"role":"Team Parent","season_id":"spring-2026","division_id":"spring-2026-10u","team_id":"10u-astros"}`, assigned.Load().(string))
}
