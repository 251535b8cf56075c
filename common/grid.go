package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	TileSize = 32

	BaseWidth  = 1280
	BaseHeight = 720

	Gravity = 1800.0
)

// GridPos is an integer (column, row) tile coordinate. It is the stable
// identity key for level wiring; pixel coordinates are derived from it.
type GridPos struct {
	Col int
	Row int
}

// String renders the position in the level-data key form "<col>_<row>".
func (p GridPos) String() string {
	return fmt.Sprintf("%d_%d", p.Col, p.Row)
}

// WorldXY returns the top-left pixel corner of the tile.
func (p GridPos) WorldXY() (float64, float64) {
	return float64(p.Col * TileSize), float64(p.Row * TileSize)
}

// WorldCenter returns the pixel center of the tile.
func (p GridPos) WorldCenter() (float64, float64) {
	x, y := p.WorldXY()
	return x + TileSize/2, y + TileSize/2
}

// GridFromWorld maps a pixel coordinate to the tile containing it.
func GridFromWorld(x, y float64) GridPos {
	col := int(x) / TileSize
	row := int(y) / TileSize
	if x < 0 {
		col--
	}
	if y < 0 {
		row--
	}
	return GridPos{Col: col, Row: row}
}

// ParseGridPos parses the "<col>_<row>" form used by level property keys.
func ParseGridPos(s string) (GridPos, error) {
	parts := strings.Split(strings.TrimSpace(s), "_")
	if len(parts) != 2 {
		return GridPos{}, fmt.Errorf("invalid grid position %q", s)
	}
	col, err := strconv.Atoi(parts[0])
	if err != nil {
		return GridPos{}, fmt.Errorf("invalid grid column %q: %w", s, err)
	}
	row, err := strconv.Atoi(parts[1])
	if err != nil {
		return GridPos{}, fmt.Errorf("invalid grid row %q: %w", s, err)
	}
	return GridPos{Col: col, Row: row}, nil
}
