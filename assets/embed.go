// Package assets embeds the radar map images and their registry. Files on
// disk next to the binary override the embedded copies, so maps can be
// swapped without rebuilding.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

//go:embed *.png maps.yaml
var assetsFS embed.FS

// MapInfo is one entry from maps.yaml.
type MapInfo struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
}

type mapsFile struct {
	Maps []MapInfo `yaml:"maps"`
}

// Maps returns the map registry.
func Maps() ([]MapInfo, error) {
	data, err := loadFile("maps.yaml")
	if err != nil {
		return nil, fmt.Errorf("assets: read maps.yaml: %w", err)
	}
	var f mapsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("assets: unmarshal maps.yaml: %w", err)
	}
	return f.Maps, nil
}

// FindMap looks a map up by name.
func FindMap(name string) (MapInfo, error) {
	maps, err := Maps()
	if err != nil {
		return MapInfo{}, err
	}
	for _, m := range maps {
		if m.Name == name {
			return m, nil
		}
	}
	return MapInfo{}, fmt.Errorf("assets: unknown map %q", name)
}

// MapLoad is the one-shot result of LoadMapAsync.
type MapLoad struct {
	Image *ebiten.Image
	Err   error
}

// LoadMapAsync decodes the named map off the caller's goroutine. The
// returned channel receives exactly one result; decoding is the viewer's
// only suspension point.
func LoadMapAsync(name string) <-chan MapLoad {
	ch := make(chan MapLoad, 1)
	go func() {
		img, err := loadMap(name)
		ch <- MapLoad{Image: img, Err: err}
		close(ch)
	}()
	return ch
}

func loadMap(name string) (*ebiten.Image, error) {
	info, err := FindMap(name)
	if err != nil {
		return nil, err
	}
	data, err := loadFile(info.Image)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", info.Image, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", info.Image, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func loadFile(name string) ([]byte, error) {
	clean := cleanAssetPath(name)
	if data, err := os.ReadFile(filepath.Join("assets", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return assetsFS.ReadFile(clean)
}

func cleanAssetPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
