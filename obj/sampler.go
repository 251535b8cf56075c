package obj

import "github.com/hollowroot/relay/signal"

// Sampler assembles the per-tick stimulus for the signal evaluator from the
// player, input and physics world. The core never touches these directly.
type Sampler struct {
	player *Player
	input  *Input
	world  *CollisionWorld
}

func NewSampler(player *Player, input *Input, world *CollisionWorld) *Sampler {
	return &Sampler{player: player, input: input, world: world}
}

// Sample builds one tick's stimulus. A transiently absent player reads as
// PlayerPresent=false; predicates treat that tick as false.
func (s *Sampler) Sample() signal.Stimulus {
	stim := signal.Stimulus{}
	if s.player != nil {
		stim.PlayerPresent = true
		stim.PlayerX, stim.PlayerY = s.player.Pos()
		stim.Costume = s.player.Costume()
	}
	if s.input != nil {
		stim.UsePressed = s.input.UsePressed
	}
	if s.world != nil {
		for _, c := range s.world.Crates() {
			x, y := c.Pos()
			stim.Bodies = append(stim.Bodies, signal.Body{X: x, Y: y, Mass: c.Mass()})
		}
	}
	return stim
}
