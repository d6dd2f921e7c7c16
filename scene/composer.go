// Package scene composes the tactical map frame: the background map image
// fitted to the viewport plus one marker per living player.
package scene

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/tacmap/feed"
	"github.com/milk9111/tacmap/theme"
	"github.com/milk9111/tacmap/transform"
)

// MapImage is the decoded background asset. *ebiten.Image satisfies it;
// tests substitute a fixed-size fake.
type MapImage interface {
	Bounds() image.Rectangle
}

// Marker is the screen-space visual derived for one living entity. Markers
// are rebuilt from scratch every frame and never cached.
type Marker struct {
	X, Y   float64
	Radius float64
	Color  color.Color
}

// Composer owns the mutable render environment: the current viewport size
// and the loaded map image. The transform is derived from those two and
// replaced wholesale whenever either changes.
//
// Until the map image arrives the composer is awaiting its asset and draws
// the background fill only. That transition happens once and never reverses.
type Composer struct {
	th     *theme.Theme
	filter *feed.Filter

	viewportW float64
	viewportH float64

	img MapImage
	tr  transform.Transform
}

func NewComposer(th *theme.Theme) *Composer {
	return &Composer{th: th}
}

// OnViewportResize records the new drawable size and refits the map. Safe to
// call every frame; a size that hasn't changed is a no-op.
func (c *Composer) OnViewportResize(w, h float64) {
	if w == c.viewportW && h == c.viewportH {
		return
	}
	c.viewportW, c.viewportH = w, h
	c.refit()
}

// OnImageReady installs the decoded map image and refits it to the current
// viewport. Fires once per asset; the composer holds the image for the rest
// of its life.
func (c *Composer) OnImageReady(img MapImage) {
	c.img = img
	c.refit()
}

// Ready reports whether the map image has arrived.
func (c *Composer) Ready() bool { return c.img != nil }

// SetTheme swaps the visual configuration, refitting since padding may have
// changed.
func (c *Composer) SetTheme(th *theme.Theme) {
	c.th = th
	c.refit()
}

// SetFilter installs an optional marker filter. A nil filter shows everyone.
func (c *Composer) SetFilter(f *feed.Filter) { c.filter = f }

// Transform exposes the current fit, e.g. for hover lookups.
func (c *Composer) Transform() transform.Transform { return c.tr }

func (c *Composer) refit() {
	if c.img == nil {
		c.tr = transform.Transform{}
		return
	}
	b := c.img.Bounds()
	c.tr = transform.Fit(float64(b.Dx()), float64(b.Dy()), c.viewportW, c.viewportH, c.th.Padding)
}

// Frame derives the marker set for one render pass: one marker per entity
// with Alive true, in input order. Dead entities are fully absent, not
// dimmed. Nothing is derived while the map image is still loading, since
// scale is meaningless without it.
func (c *Composer) Frame(entities []feed.Entity) []Marker {
	if !c.Ready() {
		return nil
	}
	markers := make([]Marker, 0, len(entities))
	for _, e := range entities {
		if !e.Alive {
			continue
		}
		if !c.filter.Match(e) {
			continue
		}
		sx, sy := c.tr.Apply(e.X, e.Y)
		markers = append(markers, Marker{
			X:      sx,
			Y:      sy,
			Radius: c.th.MarkerRadius,
			Color:  c.th.TeamColor(e.Team),
		})
	}
	return markers
}

// Draw composes one visual frame: background fill, the map image at the
// fitted rect, then the markers in list order (last drawn wins on overlap).
func (c *Composer) Draw(screen *ebiten.Image, entities []feed.Entity) {
	screen.Fill(c.th.Background.Color)
	if !c.Ready() || c.tr.Scale <= 0 {
		return
	}

	if bg, ok := c.img.(*ebiten.Image); ok {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(c.tr.Scale, c.tr.Scale)
		op.GeoM.Translate(c.tr.OffsetX, c.tr.OffsetY)
		screen.DrawImage(bg, op)
	}

	for _, m := range c.Frame(entities) {
		vector.FillCircle(screen, float32(m.X), float32(m.Y), float32(m.Radius), m.Color, true)
	}
}
