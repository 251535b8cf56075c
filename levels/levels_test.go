package levels

import (
	"strings"
	"testing"

	"github.com/hollowroot/relay/common"
	"github.com/hollowroot/relay/prefabs"
	"github.com/hollowroot/relay/signal"
)

const testLevel = `{
  "width": 4,
  "height": 3,
  "layers": [[1,1,1,1, 0,0,0,0, 1,1,1,1]],
  "layer_meta": [{"physics": true}],
  "spawn_x": 0,
  "spawn_y": 1,
  "objects": [
    {"x": 1, "y": 1, "kind": "lever"},
    {"x": 3, "y": 1, "kind": "door"},
    {"x": 2, "y": 1, "kind": "crate"}
  ],
  "properties": {
    "exit": "3_1",
    "requisite_3_1": "1_1 all"
  }
}`

func testDefs() *prefabs.SenderDefsSpec {
	return &prefabs.SenderDefsSpec{
		Senders: map[string]prefabs.SenderDefSpec{
			"lever": {Methods: []string{"once"}, UseRange: 48},
		},
		Receivers: []string{"door", "gate"},
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := Parse([]byte(testLevel))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if lvl.Width != 4 || lvl.Height != 3 {
		t.Fatalf("dimensions = %dx%d", lvl.Width, lvl.Height)
	}
	if !lvl.SolidAt(0, 0) || lvl.SolidAt(0, 1) {
		t.Fatalf("solid map wrong: top row solid, middle row open")
	}
	if len(lvl.Objects) != 3 {
		t.Fatalf("objects = %d, want 3", len(lvl.Objects))
	}
}

func TestParseLevelFatalErrors(t *testing.T) {
	cases := []struct {
		name string
		json string
		want string
	}{
		{"bad_dimensions", `{"width": 0, "height": 5}`, "invalid dimensions"},
		{"short_layer", `{"width": 2, "height": 2, "layers": [[1]]}`, "layer 0"},
		{"spawn_out_of_bounds", `{"width": 2, "height": 2, "layers": [], "spawn_x": 9}`, "spawn"},
		{"garbage", `{nope`, "unmarshal"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.json))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err = %v, want substring %q", err, c.want)
			}
		})
	}
}

func TestBuildGraph(t *testing.T) {
	lvl, err := Parse([]byte(testLevel))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, warnings := DecodeConfiguration(lvl.Properties)
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}

	g, err := BuildGraph(lvl, testDefs(), cfg, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(g.Diagnostics) != 0 {
		t.Fatalf("diagnostics: %v", g.Diagnostics)
	}
	if g.Arena.Len() != 1 {
		t.Fatalf("senders = %d, want 1 (crate is not a sender)", g.Arena.Len())
	}
	if len(g.Receivers) != 1 {
		t.Fatalf("receivers = %d, want 1", len(g.Receivers))
	}

	door := g.Receivers[0]
	if door.Policy() != signal.PolicyAllInputs {
		t.Fatalf("door policy = %v, want all", door.Policy())
	}
	lever := common.GridPos{Col: 1, Row: 1}
	if len(door.Inputs()) != 1 || door.Inputs()[0] != lever {
		t.Fatalf("door inputs = %v, want [%v]", door.Inputs(), lever)
	}
}

func TestBuildGraphFatalOnUnknownMethod(t *testing.T) {
	lvl, err := Parse([]byte(testLevel))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defs := &prefabs.SenderDefsSpec{
		Senders: map[string]prefabs.SenderDefSpec{
			"lever": {Methods: []string{"sometimes"}, UseRange: 48},
		},
		Receivers: []string{"door"},
	}
	if _, err := BuildGraph(lvl, defs, Configuration{}, nil); err == nil {
		t.Fatalf("unknown activation method must be load-fatal")
	}
}

func TestBuildGraphDuplicateSenderIsFatal(t *testing.T) {
	lvl := &Level{
		Width: 4, Height: 4,
		Objects: []Object{
			{X: 1, Y: 1, Kind: "lever"},
			{X: 1, Y: 1, Kind: "lever"},
		},
	}
	if _, err := BuildGraph(lvl, testDefs(), Configuration{}, nil); err == nil {
		t.Fatalf("two senders on one tile must be load-fatal")
	}
}

func TestLoadEmbeddedLevels(t *testing.T) {
	for _, name := range []string{"intro", "boiler_room"} {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			if err != nil {
				t.Fatalf("load %s: %v", name, err)
			}
			cfg, warnings := DecodeConfiguration(lvl.Properties)
			if len(warnings) != 0 {
				t.Fatalf("warnings: %v", warnings)
			}
			if !cfg.HasExit {
				t.Fatalf("shipping levels declare an exit")
			}
		})
	}
}
