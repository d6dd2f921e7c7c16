package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/tacmap/assets"
	"github.com/milk9111/tacmap/feed"
	"github.com/milk9111/tacmap/scene"
	"github.com/milk9111/tacmap/theme"
)

// Options selects the map, the frame source and the visual configuration.
// With no feed or replay the built-in mock feed drives the view.
type Options struct {
	MapName        string
	FeedURL        string
	ReplayPath     string
	FilterExpr     string
	ThemePath      string
	PlayersPerTeam int
}

type Game struct {
	mapName  string
	composer *scene.Composer
	source   feed.Source

	mapLoad <-chan assets.MapLoad

	themePath  string
	themeWatch *theme.Watcher

	lastFrame feed.Frame
	hasFrame  bool

	hud     *HUD
	showHUD bool

	clipboardOK bool
}

func NewGame(opts Options) (*Game, error) {
	th := theme.Default()
	if opts.ThemePath != "" {
		loaded, err := theme.LoadFile(opts.ThemePath)
		if err != nil {
			return nil, err
		}
		th = loaded
	}

	composer := scene.NewComposer(th)
	if opts.FilterExpr != "" {
		filter, err := feed.NewFilter(opts.FilterExpr)
		if err != nil {
			return nil, err
		}
		composer.SetFilter(filter)
	}

	var source feed.Source
	switch {
	case opts.FeedURL != "":
		source = feed.DialLive(opts.FeedURL)
	case opts.ReplayPath != "":
		replay, err := feed.OpenReplay(opts.ReplayPath, 64)
		if err != nil {
			return nil, err
		}
		source = replay
	default:
		// The embedded radar images are 1024x1024; the mock patrols that space.
		source = feed.NewMock(1024, 1024, opts.PlayersPerTeam)
	}

	g := &Game{
		mapName:   opts.MapName,
		composer:  composer,
		source:    source,
		mapLoad:   assets.LoadMapAsync(opts.MapName),
		themePath: opts.ThemePath,
		hud:       NewHUD(),
		showHUD:   true,
	}

	if opts.ThemePath != "" {
		watcher, err := theme.NewWatcher(opts.ThemePath)
		if err != nil {
			log.Printf("tacmap: theme watcher disabled: %v", err)
		} else {
			g.themeWatch = watcher
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("tacmap: clipboard disabled: %v", err)
	} else {
		g.clipboardOK = true
	}

	return g, nil
}

func (g *Game) Update() error {
	g.pollMapLoad()
	g.pollTheme()
	g.handleInput()

	if f, ok := g.source.Poll(); ok {
		g.lastFrame = f
		g.hasFrame = true
	}

	g.hud.Update(g.mapName, g.lastFrame, g.hasFrame, g.paused())
	return nil
}

// pollMapLoad completes the one-shot asset load. Until it fires the composer
// stays in its awaiting-asset state and draws the background only.
func (g *Game) pollMapLoad() {
	if g.mapLoad == nil {
		return
	}
	select {
	case load := <-g.mapLoad:
		g.mapLoad = nil
		if load.Err != nil {
			log.Printf("tacmap: load map %q: %v", g.mapName, load.Err)
			return
		}
		g.composer.OnImageReady(load.Image)
	default:
	}
}

func (g *Game) pollTheme() {
	if g.themeWatch == nil {
		return
	}
	select {
	case _, ok := <-g.themeWatch.Events:
		if !ok {
			return
		}
		th, err := theme.LoadFile(g.themePath)
		if err != nil {
			log.Printf("tacmap: reload theme: %v", err)
			return
		}
		g.composer.SetTheme(th)
		log.Printf("tacmap: theme reloaded from %s", g.themePath)
	case err, ok := <-g.themeWatch.Errors:
		if ok {
			log.Printf("tacmap: theme watcher: %v", err)
		}
	default:
	}
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if p, ok := g.source.(feed.Pausable); ok {
			p.SetPaused(!p.Paused())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if r, ok := g.source.(*feed.Replay); ok {
			r.Restart()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) && g.clipboardOK && g.hasFrame {
		clipboard.Write(clipboard.FmtText, []byte(g.frameSummary()))
	}
}

func (g *Game) paused() bool {
	if p, ok := g.source.(feed.Pausable); ok {
		return p.Paused()
	}
	return false
}

func (g *Game) frameSummary() string {
	f := g.lastFrame
	return fmt.Sprintf("%s round %d tick %d CT %d T %d",
		g.mapName, f.Round, f.Tick, f.AliveCount(feed.TeamCT), f.AliveCount(feed.TeamT))
}

func (g *Game) Draw(screen *ebiten.Image) {
	var entities []feed.Entity
	if g.hasFrame {
		entities = g.lastFrame.Entities
	}
	g.composer.Draw(screen, entities)
	g.drawHoverName(screen)
	if g.showHUD {
		g.hud.Draw(screen)
	}
}

// drawHoverName labels the marker under the cursor with its player name.
func (g *Game) drawHoverName(screen *ebiten.Image) {
	if !g.hasFrame || !g.composer.Ready() {
		return
	}
	cx, cy := ebiten.CursorPosition()
	tr := g.composer.Transform()
	for _, e := range g.lastFrame.Entities {
		if !e.Alive {
			continue
		}
		sx, sy := tr.Apply(e.X, e.Y)
		dx, dy := float64(cx)-sx, float64(cy)-sy
		if dx*dx+dy*dy <= 100 {
			ebitenutil.DebugPrintAt(screen, e.Name, cx+12, cy-8)
			return
		}
	}
}

// Layout is the resize hook: ebiten reports the outside size here on every
// change, and the drawable surface matches it one to one.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.composer.OnViewportResize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func (g *Game) Close() {
	if err := g.source.Close(); err != nil {
		log.Printf("tacmap: close feed: %v", err)
	}
	if g.themeWatch != nil {
		_ = g.themeWatch.Close()
	}
}
