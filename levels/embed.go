package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a tile map stored as JSON: static geometry in row-major layers,
// interactive objects (senders, receivers, crates) as tile records, and a
// flat string property bag carrying the level configuration.
type Level struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Layers is a slice of layers, each a flat array of length Width*Height
	// (row-major). Layer 0 is drawn first (bottom).
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`

	// player spawn in tile coordinates
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`

	// Objects are interactive tile records placed on the grid.
	Objects []Object `json:"objects,omitempty"`

	// Properties is the level's key/value bag: costume set, next level,
	// exit location, and requisite_<col>_<row> wiring declarations.
	Properties map[string]string `json:"properties,omitempty"`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

// Object is one interactive tile record.
type Object struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Kind    string `json:"kind"`
	Variant int    `json:"variant,omitempty"`
}

// Load reads a level by name, preferring a file under levels/ on disk (for
// iteration during development) and falling back to the embedded copy.
func Load(name string) (*Level, error) {
	clean := cleanName(name)
	if data, err := os.ReadFile(filepath.Join("levels", clean)); err == nil {
		return Parse(data)
	}
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	return Parse(data)
}

// Parse decodes and validates a level. Validation failures here are
// load-fatal: the level cannot run.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("levels: invalid dimensions %dx%d", lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("levels: layer %d has %d cells, want %d", i, len(layer), lvl.Width*lvl.Height)
		}
	}
	if lvl.SpawnX < 0 || lvl.SpawnX >= lvl.Width || lvl.SpawnY < 0 || lvl.SpawnY >= lvl.Height {
		return nil, fmt.Errorf("levels: spawn (%d,%d) out of bounds", lvl.SpawnX, lvl.SpawnY)
	}
	return &lvl, nil
}

// SolidAt reports whether any physics layer has a non-zero tile at x, y.
func (l *Level) SolidAt(x, y int) bool {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return false
	}
	idx := y*l.Width + x
	for i, layer := range l.Layers {
		if i < len(l.LayerMeta) && !l.LayerMeta[i].Physics {
			continue
		}
		if layer[idx] != 0 {
			return true
		}
	}
	return false
}

func cleanName(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
