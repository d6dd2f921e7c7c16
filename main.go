package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	mapName := flag.String("map", "de_dust2", "map name from assets/maps.yaml")
	feedURL := flag.String("feed", "", "websocket feed URL (e.g. ws://localhost:8800/feed)")
	replayPath := flag.String("replay", "", "replay file recorded by cmd/record")
	filterExpr := flag.String("filter", "", "tengo expression over name, team, x, y, alive, health")
	themePath := flag.String("theme", "", "theme YAML overriding the built-in theme (hot-reloaded)")
	perTeam := flag.Int("players", 5, "players per team for the built-in mock feed")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowTitle("tacmap")

	game, err := NewGame(Options{
		MapName:        *mapName,
		FeedURL:        *feedURL,
		ReplayPath:     *replayPath,
		FilterExpr:     *filterExpr,
		ThemePath:      *themePath,
		PlayersPerTeam: *perTeam,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
	game.Close()
}
