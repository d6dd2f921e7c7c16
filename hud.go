package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/tacmap/feed"
)

// HUD is the ebitenui overlay in the top-left corner: map name, playback
// position and the per-team alive counts. Toggled with Tab.
type HUD struct {
	ui     *ebitenui.UI
	title  *widget.Text
	status *widget.Text
	score  *widget.Text
}

func NewHUD() *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 170})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	title := widget.NewText(widget.TextOpts.Text("", &face, white))
	status := widget.NewText(widget.TextOpts.Text("", &face, white))
	score := widget.NewText(widget.TextOpts.Text("", &face, white))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(status)
	panel.AddChild(score)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &HUD{
		ui:     &ebitenui.UI{Container: root},
		title:  title,
		status: status,
		score:  score,
	}
}

func (h *HUD) Update(mapName string, frame feed.Frame, hasFrame, paused bool) {
	h.title.Label = mapName
	if !hasFrame {
		h.status.Label = "waiting for feed"
		h.score.Label = ""
	} else {
		state := "live"
		if paused {
			state = "paused"
		}
		h.status.Label = fmt.Sprintf("round %d  tick %d  [%s]", frame.Round, frame.Tick, state)
		h.score.Label = fmt.Sprintf("CT alive %d   T alive %d",
			frame.AliveCount(feed.TeamCT), frame.AliveCount(feed.TeamT))
	}
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}
