package leagueapi

import (
	"context"
	"sync/atomic"

	crerr "github.com/cockroachdb/errors"
)

// ErrSuperseded is returned when a newer request started before this one
// finished; its result must not be shown.
var ErrSuperseded = crerr.New("response superseded by a newer request")

// Sequencer hands out request generations. Only the most recent generation
// is current.
type Sequencer struct {
	gen atomic.Uint64
}

func (s *Sequencer) Next() uint64 {
	return s.gen.Add(1)
}

func (s *Sequencer) IsCurrent(gen uint64) bool {
	return s.gen.Load() == gen
}

// PlayerListLoader fetches roster pages as filters change. Responses that
// arrive after a newer query was issued are discarded.
type PlayerListLoader struct {
	client *Client
	seq    Sequencer
}

func NewPlayerListLoader(client *Client) *PlayerListLoader {
	return &PlayerListLoader{client: client}
}

func (l *PlayerListLoader) Load(ctx context.Context, q PlayerQuery) ([]Player, error) {
	gen := l.seq.Next()
	players, err := l.client.ListPlayers(ctx, q)
	if !l.seq.IsCurrent(gen) {
		return nil, ErrSuperseded
	}
	return players, err
}
