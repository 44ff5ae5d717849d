package leagueapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/riskibarqy/youth-league/internal/platform/resilience"
	"github.com/stretchr/testify/require"
)

func TestGather_ReportsEachFailure(t *testing.T) {
	var ran sync.Map
	failures := Gather(t.Context(),
		Task{Name: "teams", Run: func(context.Context) error { ran.Store("teams", true); return nil }},
		Task{Name: "players", Run: func(context.Context) error { ran.Store("players", true); return errors.New("timeout") }},
		Task{Name: "families", Run: func(context.Context) error { ran.Store("families", true); return errors.New("reset") }},
	)

	require.False(t, failures.Empty())
	require.Equal(t, []string{"families", "players"}, failures.Names())
	for _, name := range []string{"teams", "players", "families"} {
		_, ok := ran.Load(name)
		require.True(t, ok, name)
	}
}

func TestClient_LoadDraftRoom(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/seasons/spring-2026/divisions/spring-2026-10u/draft":
			writeBody(w, http.StatusOK, `{"data":{"session":{"id":"dft-1","current_pick":1},"round":1,"on_the_clock":{"id":"vol-wei","team_id":"10u-bears"}}}`)
		default:
			writeBody(w, http.StatusServiceUnavailable, `{"error":{"message":"volunteers unavailable"}}`)
		}
	}, resilience.CircuitBreakerConfig{})

	data, err := client.LoadDraftRoom(t.Context(), "spring-2026", "spring-2026-10u")
	require.NoError(t, err)
	require.Equal(t, "dft-1", data.Board.Session.ID)
	require.Equal(t, "10u-bears", data.Board.OnTheClock.TeamID)
	require.Equal(t, []string{"volunteers"}, data.Failures.Names())
}

func TestClient_LoadDraftRoomWithoutBoard(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/seasons/spring-2026/volunteers" {
			writeBody(w, http.StatusOK, `{"data":[]}`)
			return
		}
		writeBody(w, http.StatusNotFound, `{"error":{"message":"draft session not found"}}`)
	}, resilience.CircuitBreakerConfig{})

	_, err := client.LoadDraftRoom(t.Context(), "spring-2026", "spring-2026-10u")
	require.Error(t, err)
	require.Equal(t, "draft session not found", UserMessage(err))
}
