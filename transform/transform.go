package transform

import "math"

// Transform maps points from map-image pixel space into screen space. It is
// a plain value: recompute it with Fit whenever the viewport or the map
// image changes, never mutate one in place.
type Transform struct {
	Scale   float64
	Width   float64 // rendered map width, mapW * Scale
	Height  float64 // rendered map height, mapH * Scale
	OffsetX float64
	OffsetY float64
}

// Fit picks the largest uniform scale that keeps a mapW x mapH image inside
// the viewport minus padding, and centers the result. The scale is shared by
// both axes, so the image is never distorted.
//
// mapW and mapH must be positive. A viewport too small to hold any of the
// image (available space <= 0) yields a degenerate transform with zero scale
// and a zero-sized rect instead of an error; the caller simply draws nothing.
func Fit(mapW, mapH, viewportW, viewportH, padding float64) Transform {
	availW := viewportW - padding
	availH := viewportH - padding

	scale := math.Min(availW/mapW, availH/mapH)
	if scale <= 0 || math.IsNaN(scale) {
		return Transform{
			OffsetX: viewportW / 2,
			OffsetY: viewportH / 2,
		}
	}

	w := mapW * scale
	h := mapH * scale
	return Transform{
		Scale:   scale,
		Width:   w,
		Height:  h,
		OffsetX: (viewportW - w) / 2,
		OffsetY: (viewportH - h) / 2,
	}
}

// Apply maps a map-space point to screen space. No clamping: points outside
// the map legitimately land off screen and clip naturally.
func (t Transform) Apply(mapX, mapY float64) (screenX, screenY float64) {
	return mapX*t.Scale + t.OffsetX, mapY*t.Scale + t.OffsetY
}

// Invert maps a screen-space point back to map space. A degenerate transform
// has no inverse; it reports (0, 0).
func (t Transform) Invert(screenX, screenY float64) (mapX, mapY float64) {
	if t.Scale == 0 {
		return 0, 0
	}
	return (screenX - t.OffsetX) / t.Scale, (screenY - t.OffsetY) / t.Scale
}
