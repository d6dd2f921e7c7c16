// Package feed supplies snapshot frames of player state to the viewer. A
// frame is a complete picture of every tracked player at one tick; the
// viewer never diffs or interpolates between frames.
package feed

// Team is one of the two sides of a match.
type Team string

const (
	TeamCT Team = "CT"
	TeamT  Team = "T"
)

// Entity is one tracked player inside a frame. X and Y are in the map
// image's native pixel space, never in screen space.
type Entity struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Team   Team    `json:"team"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Alive  bool    `json:"alive"`
	Health int     `json:"health"`
}

// Frame is the state of every player at a single tick.
type Frame struct {
	Tick     int      `json:"tick"`
	Round    int      `json:"round"`
	Entities []Entity `json:"entities"`
}

// AliveCount reports how many players on team are alive in the frame.
func (f Frame) AliveCount(team Team) int {
	n := 0
	for _, e := range f.Entities {
		if e.Team == team && e.Alive {
			n++
		}
	}
	return n
}

// Source produces frames. Poll never blocks: it reports the most recent
// frame, with ok false until the source has produced its first one. Each
// poll is a fresh snapshot; callers must not retain the entity slice across
// polls.
type Source interface {
	Poll() (frame Frame, ok bool)
	Close() error
}

// Pausable is implemented by sources whose clock can be suspended.
type Pausable interface {
	SetPaused(bool)
	Paused() bool
}
