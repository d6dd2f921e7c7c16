package feed

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Replay plays back a recording produced by cmd/record: one JSON frame per
// line, tick-ascending. Frames are released on a wall-clock schedule derived
// from tickRate, so a 64-tick recording plays back in real time.
type Replay struct {
	mu       sync.Mutex
	frames   []Frame
	tickRate float64
	idx      int
	start    time.Time
	paused   bool
	pauseAt  time.Time

	now func() time.Time
}

// OpenReplay loads an entire recording into memory and starts its clock at
// the first frame.
func OpenReplay(path string, tickRate float64) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("feed: open replay %s: %w", path, err)
	}
	defer f.Close()

	r := &Replay{tickRate: tickRate, now: time.Now}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var frame Frame
		if err := json.Unmarshal(b, &frame); err != nil {
			return nil, fmt.Errorf("feed: replay %s line %d: %w", path, line, err)
		}
		r.frames = append(r.frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("feed: read replay %s: %w", path, err)
	}
	if len(r.frames) == 0 {
		return nil, fmt.Errorf("feed: replay %s has no frames", path)
	}

	r.start = r.now()
	return r, nil
}

func (r *Replay) elapsed() float64 {
	if r.paused {
		return r.pauseAt.Sub(r.start).Seconds()
	}
	return r.now().Sub(r.start).Seconds()
}

// Poll returns the latest frame whose tick the playback clock has reached.
// The cursor only moves forward; it stays on the final frame once the
// recording is exhausted.
func (r *Replay) Poll() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := r.frames[0].Tick + int(r.elapsed()*r.tickRate)
	for r.idx+1 < len(r.frames) && r.frames[r.idx+1].Tick <= target {
		r.idx++
	}
	return r.frames[r.idx], true
}

// Restart rewinds the recording to its first frame and resets the clock.
func (r *Replay) Restart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idx = 0
	r.start = r.now()
	if r.paused {
		r.pauseAt = r.start
	}
}

func (r *Replay) SetPaused(paused bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if paused == r.paused {
		return
	}
	if paused {
		r.pauseAt = r.now()
	} else {
		r.start = r.start.Add(r.now().Sub(r.pauseAt))
	}
	r.paused = paused
}

func (r *Replay) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

func (r *Replay) Close() error { return nil }

// Len reports the number of frames in the recording.
func (r *Replay) Len() int { return len(r.frames) }
