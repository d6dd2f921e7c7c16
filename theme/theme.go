// Package theme holds the viewer's visual configuration: viewport padding,
// marker sizing and the two team colors. A default theme is embedded; a YAML
// file on disk overrides it and can be hot-reloaded through Watcher.
package theme

import (
	_ "embed"
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/tacmap/feed"
)

//go:embed theme.yaml
var defaultYAML []byte

type Theme struct {
	Padding      float64   `yaml:"padding"`
	MarkerRadius float64   `yaml:"marker_radius"`
	Background   YAMLColor `yaml:"background"`
	CT           YAMLColor `yaml:"ct_color"`
	T            YAMLColor `yaml:"t_color"`
}

// Default returns the embedded theme.
func Default() *Theme {
	var th Theme
	if err := yaml.Unmarshal(defaultYAML, &th); err != nil {
		log.Fatalf("theme: parse embedded theme.yaml: %v", err)
	}
	return &th
}

// LoadFile reads a theme from disk. Keys missing from the file keep their
// embedded defaults.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: load %s: %w", path, err)
	}
	th := Default()
	if err := yaml.Unmarshal(data, th); err != nil {
		return nil, fmt.Errorf("theme: unmarshal %s: %w", path, err)
	}
	return th, nil
}

// TeamColor picks the marker fill for a team. Unknown teams get a neutral
// gray rather than an error; the feed owns entity validity, not the theme.
func (t *Theme) TeamColor(team feed.Team) color.Color {
	switch team {
	case feed.TeamCT:
		return t.CT.Color
	case feed.TeamT:
		return t.T.Color
	}
	return color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
}

// YAMLColor parses "#rrggbb" or "#rrggbbaa" scalars.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
