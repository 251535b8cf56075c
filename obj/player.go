package obj

import (
	"github.com/hollowroot/relay/common"
	"github.com/hollowroot/relay/prefabs"
	"github.com/jakecoffman/cp"
)

// Player is the controllable character. Kinematics run on a chipmunk body;
// the costume is game state the signal core reads through the stimulus.
type Player struct {
	input *Input
	world *CollisionWorld
	spec  *prefabs.PlayerSpec

	body  *cp.Body
	shape *cp.Shape

	costume string
	coyote  int
}

func NewPlayer(spawn common.GridPos, spec *prefabs.PlayerSpec, input *Input, world *CollisionWorld) *Player {
	cx, cy := spawn.WorldCenter()
	body, shape := world.AddPlayerBody(cx, cy, spec.Width, spec.Height, 1)
	return &Player{
		input:   input,
		world:   world,
		spec:    spec,
		body:    body,
		shape:   shape,
		costume: spec.DefaultCostume,
	}
}

// Update applies input to the body. Called once per frame before the space
// steps.
func (p *Player) Update() {
	vel := p.body.Velocity()
	vel.X = p.input.MoveX * p.spec.MoveSpeed

	grounded := p.world.Grounded(p.body, p.spec.Height/2)
	if grounded {
		p.coyote = p.spec.CoyoteFrames
	} else if p.coyote > 0 {
		p.coyote--
	}

	if p.input.JumpPressed && p.coyote > 0 {
		vel.Y = -p.spec.JumpSpeed
		p.coyote = 0
	}

	p.body.SetVelocity(vel.X, vel.Y)
}

// Pos returns the player's pixel position (body center).
func (p *Player) Pos() (float64, float64) {
	v := p.body.Position()
	return v.X, v.Y
}

// Grid returns the tile the player occupies.
func (p *Player) Grid() common.GridPos {
	x, y := p.Pos()
	return common.GridFromWorld(x, y)
}

func (p *Player) Costume() string        { return p.costume }
func (p *Player) SetCostume(name string) { p.costume = name }

// Size returns the player's collider dimensions.
func (p *Player) Size() (float64, float64) {
	return p.spec.Width, p.spec.Height
}
