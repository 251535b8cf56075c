package signal

import "github.com/hollowroot/relay/common"

// Stimulus is one tick's sampling of the player and nearby dynamic objects.
// It is produced by a collaborator (the game shell) and consumed by sender
// predicates; the core never queries the world directly.
type Stimulus struct {
	// PlayerPresent is false while no player object exists (e.g. during a
	// respawn). Predicates that need the player treat that tick as false.
	PlayerPresent bool
	// PlayerX/PlayerY are the player's pixel position.
	PlayerX float64
	PlayerY float64
	// UsePressed is true only on the frame the use key was pressed.
	UsePressed bool
	// Costume is the player's current costume name.
	Costume string
	// Bodies holds nearby dynamic objects (crates etc.) in a stable order.
	Bodies []Body
}

// Body is a dynamic object's pixel position and mass.
type Body struct {
	X    float64
	Y    float64
	Mass float64
}

// PlayerGrid returns the tile the player currently occupies.
func (s Stimulus) PlayerGrid() common.GridPos {
	return common.GridFromWorld(s.PlayerX, s.PlayerY)
}

// Sampler produces the stimulus for the current tick.
type Sampler interface {
	Sample() Stimulus
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func() Stimulus

func (f SamplerFunc) Sample() Stimulus { return f() }
