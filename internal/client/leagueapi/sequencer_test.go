package leagueapi

import (
	"net/http"
	"testing"

	"github.com/riskibarqy/youth-league/internal/platform/resilience"
	"github.com/stretchr/testify/require"
)

func TestPlayerListLoader_DiscardsSupersededResponse(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "riv" {
			close(arrived)
			<-release
			writeBody(w, http.StatusOK, `{"data":[{"id":"ply-maya"}]}`)
			return
		}
		writeBody(w, http.StatusOK, `{"data":[{"id":"ply-leo"}]}`)
	}, resilience.CircuitBreakerConfig{})

	loader := NewPlayerListLoader(client)
	type outcome struct {
		players []Player
		err     error
	}
	first := make(chan outcome, 1)
	go func() {
		players, err := loader.Load(t.Context(), PlayerQuery{SeasonID: "spring-2026", Search: "riv"})
		first <- outcome{players, err}
	}()
	<-arrived

	players, err := loader.Load(t.Context(), PlayerQuery{SeasonID: "spring-2026", Search: "che"})
	require.NoError(t, err)
	require.Equal(t, "ply-leo", players[0].ID)

	close(release)
	got := <-first
	require.ErrorIs(t, got.err, ErrSuperseded)
	require.Nil(t, got.players)
}

func TestSequencer(t *testing.T) {
	var seq Sequencer
	a := seq.Next()
	require.True(t, seq.IsCurrent(a))
	b := seq.Next()
	require.False(t, seq.IsCurrent(a))
	require.True(t, seq.IsCurrent(b))
}
