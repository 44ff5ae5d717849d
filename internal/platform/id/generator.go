package id

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for imported and created records.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator returns random v4 UUIDs, optionally prefixed ("ply_", "fam_").
type UUIDGenerator struct {
	prefix string
}

func NewUUIDGenerator(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: strings.TrimSpace(prefix)}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	if g == nil || g.prefix == "" {
		return v.String(), nil
	}
	return g.prefix + v.String(), nil
}

// SequenceGenerator hands out predictable ids for seeds and tests.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s%d", g.prefix, g.next), nil
}
