package feed

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	mockTickRate    = 64.0 // ticks per second
	mockRoundLength = 40.0 // seconds per synthetic round
)

type mockPlayer struct {
	id      string
	name    string
	team    Team
	cx, cy  float64 // orbit center, map space
	radius  float64
	angular float64 // radians per second
	phase   float64
	deathAt float64 // seconds into each round when this player dies
}

// Mock is a synthetic feed: players patrol deterministic orbits inside the
// map bounds and drop out partway through each round. It stands in for the
// real analytics backend during development and drives cmd/feedsrv.
type Mock struct {
	mu      sync.Mutex
	players []mockPlayer
	start   time.Time
	paused  bool
	pauseAt time.Time

	now func() time.Time // swapped out by tests
}

// NewMock builds a mock feed with perTeam players per side patrolling a
// mapW x mapH map.
func NewMock(mapW, mapH float64, perTeam int) *Mock {
	m := &Mock{now: time.Now}
	for i := 0; i < perTeam; i++ {
		m.players = append(m.players, mockPlayer{
			id:      uuid.NewString(),
			name:    fmt.Sprintf("ct_%d", i+1),
			team:    TeamCT,
			cx:      mapW * (0.25 + 0.05*float64(i%3)),
			cy:      mapH * (0.30 + 0.04*float64(i)),
			radius:  math.Min(mapW, mapH) * 0.12,
			angular: 0.4 + 0.07*float64(i),
			phase:   float64(i) * 1.3,
			deathAt: 16 + 3*float64(i),
		})
		m.players = append(m.players, mockPlayer{
			id:      uuid.NewString(),
			name:    fmt.Sprintf("t_%d", i+1),
			team:    TeamT,
			cx:      mapW * (0.75 - 0.05*float64(i%3)),
			cy:      mapH * (0.70 - 0.04*float64(i)),
			radius:  math.Min(mapW, mapH) * 0.12,
			angular: -0.5 - 0.06*float64(i),
			phase:   float64(i) * 2.1,
			deathAt: 18 + 3*float64(i),
		})
	}
	m.start = m.now()
	return m
}

func (m *Mock) elapsed() float64 {
	if m.paused {
		return m.pauseAt.Sub(m.start).Seconds()
	}
	return m.now().Sub(m.start).Seconds()
}

// Poll returns the frame for the current instant. The frame is a pure
// function of elapsed time, so polling is idempotent within a tick.
func (m *Mock) Poll() (Frame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elapsed := m.elapsed()
	roundPos := math.Mod(elapsed, mockRoundLength)

	f := Frame{
		Tick:     int(elapsed * mockTickRate),
		Round:    int(elapsed/mockRoundLength) + 1,
		Entities: make([]Entity, 0, len(m.players)),
	}
	for _, p := range m.players {
		angle := p.phase + p.angular*elapsed
		alive := roundPos < p.deathAt
		health := 0
		if alive {
			health = 100 - int(80*roundPos/p.deathAt)
		}
		f.Entities = append(f.Entities, Entity{
			ID:     p.id,
			Name:   p.name,
			Team:   p.team,
			X:      p.cx + p.radius*math.Cos(angle),
			Y:      p.cy + p.radius*math.Sin(angle),
			Alive:  alive,
			Health: health,
		})
	}
	return f, true
}

func (m *Mock) SetPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if paused == m.paused {
		return
	}
	if paused {
		m.pauseAt = m.now()
	} else {
		m.start = m.start.Add(m.now().Sub(m.pauseAt))
	}
	m.paused = paused
}

func (m *Mock) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *Mock) Close() error { return nil }
