package scene

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/tacmap/feed"
	"github.com/milk9111/tacmap/theme"
)

type fakeMap struct{ w, h int }

func (f fakeMap) Bounds() image.Rectangle { return image.Rect(0, 0, f.w, f.h) }

var (
	ctColor = color.NRGBA{R: 0x4a, G: 0xa3, B: 0xff, A: 0xff}
	tColor  = color.NRGBA{R: 0xff, G: 0xc1, B: 0x4a, A: 0xff}
)

func testTheme() *theme.Theme {
	return &theme.Theme{
		Padding:      40,
		MarkerRadius: 6,
		Background:   theme.YAMLColor{Color: color.NRGBA{A: 0xff}},
		CT:           theme.YAMLColor{Color: ctColor},
		T:            theme.YAMLColor{Color: tColor},
	}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestComposerAwaitingAsset(t *testing.T) {
	c := NewComposer(testTheme())
	c.OnViewportResize(1000, 800)

	if c.Ready() {
		t.Fatal("composer should be awaiting its asset")
	}
	entities := []feed.Entity{
		{ID: "a", Team: feed.TeamCT, X: 400, Y: 300, Alive: true},
		{ID: "b", Team: feed.TeamT, X: 700, Y: 650, Alive: true},
	}
	if got := c.Frame(entities); got != nil {
		t.Fatalf("expected no markers before the image loads, got %d", len(got))
	}
}

func TestComposerMarkerDerivation(t *testing.T) {
	c := NewComposer(testTheme())
	c.OnViewportResize(1000, 800)
	c.OnImageReady(fakeMap{1024, 1024})

	if !c.Ready() {
		t.Fatal("composer should be ready after OnImageReady")
	}

	entities := []feed.Entity{
		{ID: "a", Name: "ct_1", Team: feed.TeamCT, X: 400, Y: 300, Alive: true},
		{ID: "b", Name: "t_1", Team: feed.TeamT, X: 400, Y: 300, Alive: false},
		{ID: "c", Name: "t_2", Team: feed.TeamT, X: 512, Y: 512, Alive: true},
	}
	markers := c.Frame(entities)
	if len(markers) != 2 {
		t.Fatalf("got %d markers, want 2 (dead entity omitted)", len(markers))
	}

	// 1024 map in 1000x800 with padding 40: scale = 760/1024, offsets (120, 20).
	scale := 760.0 / 1024.0
	if !almostEqual(markers[0].X, 400*scale+120) || !almostEqual(markers[0].Y, 300*scale+20) {
		t.Fatalf("marker 0 at (%v, %v)", markers[0].X, markers[0].Y)
	}
	if markers[0].Color != color.Color(ctColor) {
		t.Fatalf("marker 0 color = %v, want CT %v", markers[0].Color, ctColor)
	}
	if markers[1].Color != color.Color(tColor) {
		t.Fatalf("marker 1 color = %v, want T %v", markers[1].Color, tColor)
	}
	if markers[0].Radius != 6 || markers[1].Radius != 6 {
		t.Fatal("markers should use the theme radius")
	}

	// The same entities produce the same markers: nothing is cached.
	again := c.Frame(entities)
	for i := range markers {
		if markers[i] != again[i] {
			t.Fatalf("marker %d differs across identical passes", i)
		}
	}
}

func TestComposerResizeRecomputesTransform(t *testing.T) {
	c := NewComposer(testTheme())
	c.OnViewportResize(1000, 800)
	c.OnImageReady(fakeMap{1024, 1024})

	before := c.Transform()
	c.OnViewportResize(1000, 800) // same size: no change
	if c.Transform() != before {
		t.Fatal("identical resize should be a no-op")
	}

	c.OnViewportResize(2000, 1600)
	after := c.Transform()
	if !almostEqual(after.Scale, 1560.0/1024.0) { // (1600-40)/1024, Y still binds
		t.Fatalf("scale after resize = %v, want %v", after.Scale, 1560.0/1024.0)
	}
	if after == before {
		t.Fatal("resize must replace the transform")
	}
}

func TestComposerDegenerateViewport(t *testing.T) {
	c := NewComposer(testTheme())
	c.OnViewportResize(30, 30) // padding 40 eats the whole viewport
	c.OnImageReady(fakeMap{1024, 1024})

	tr := c.Transform()
	if tr.Scale != 0 || tr.Width != 0 || tr.Height != 0 {
		t.Fatalf("expected degenerate transform, got %+v", tr)
	}

	markers := c.Frame([]feed.Entity{{ID: "a", Team: feed.TeamCT, X: 512, Y: 512, Alive: true}})
	if len(markers) != 1 {
		t.Fatalf("got %d markers, want 1", len(markers))
	}
	if markers[0].X != tr.OffsetX || markers[0].Y != tr.OffsetY {
		t.Fatalf("degenerate marker at (%v, %v), want offset origin", markers[0].X, markers[0].Y)
	}
}

func TestComposerFilter(t *testing.T) {
	c := NewComposer(testTheme())
	c.OnViewportResize(1000, 800)
	c.OnImageReady(fakeMap{1024, 1024})

	f, err := feed.NewFilter(`team == "T"`)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	c.SetFilter(f)

	markers := c.Frame([]feed.Entity{
		{ID: "a", Team: feed.TeamCT, X: 100, Y: 100, Alive: true},
		{ID: "b", Team: feed.TeamT, X: 200, Y: 200, Alive: true},
	})
	if len(markers) != 1 || markers[0].Color != color.Color(tColor) {
		t.Fatalf("filter should keep only the T marker, got %d", len(markers))
	}

	c.SetFilter(nil)
	if got := len(c.Frame([]feed.Entity{{ID: "a", Team: feed.TeamCT, Alive: true}})); got != 1 {
		t.Fatalf("nil filter should show everyone, got %d markers", got)
	}
}

func TestComposerSetTheme(t *testing.T) {
	c := NewComposer(testTheme())
	c.OnViewportResize(1000, 800)
	c.OnImageReady(fakeMap{1024, 1024})

	th := testTheme()
	th.Padding = 0
	th.MarkerRadius = 10
	c.SetTheme(th)

	tr := c.Transform()
	if !almostEqual(tr.Scale, 800.0/1024.0) {
		t.Fatalf("scale after padding change = %v, want %v", tr.Scale, 800.0/1024.0)
	}
	markers := c.Frame([]feed.Entity{{ID: "a", Team: feed.TeamCT, Alive: true}})
	if markers[0].Radius != 10 {
		t.Fatalf("radius = %v, want 10", markers[0].Radius)
	}
}
