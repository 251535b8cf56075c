package obj

import (
	"github.com/hollowroot/relay/common"
	"github.com/hollowroot/relay/levels"
	"github.com/hollowroot/relay/prefabs"
	"github.com/jakecoffman/cp"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeCrate
)

// CollisionWorld wraps the chipmunk space holding the level's static
// geometry and its dynamic crates. Crates are tracked in creation order so
// stimulus sampling stays deterministic.
type CollisionWorld struct {
	space  *cp.Space
	crates []*Crate
}

// Crate is a pushable dynamic box; pressure plates weigh these.
type Crate struct {
	body *cp.Body
	mass float64
}

func (c *Crate) Pos() (float64, float64) {
	p := c.body.Position()
	return p.X, p.Y
}

func (c *Crate) Mass() float64 { return c.mass }

func NewCollisionWorld(lvl *levels.Level, crate *prefabs.CrateSpec) *CollisionWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	cw := &CollisionWorld{space: space}
	cw.buildStaticShapes(lvl)
	cw.spawnCrates(lvl, crate)
	return cw
}

// buildStaticShapes merges contiguous solid tiles per row into single static
// boxes so the space holds runs instead of one box per tile.
func (cw *CollisionWorld) buildStaticShapes(lvl *levels.Level) {
	for y := 0; y < lvl.Height; y++ {
		x := 0
		for x < lvl.Width {
			if !lvl.SolidAt(x, y) {
				x++
				continue
			}
			run := x
			for run < lvl.Width && lvl.SolidAt(run, y) {
				run++
			}
			x0 := float64(x * common.TileSize)
			y0 := float64(y * common.TileSize)
			x1 := float64(run * common.TileSize)
			y1 := y0 + common.TileSize

			shape := cp.NewBox2(cw.space.StaticBody, cp.BB{L: x0, B: y0, R: x1, T: y1}, 0)
			shape.SetFriction(1)
			shape.SetCollisionType(collisionTypeSolid)
			cw.space.AddShape(shape)
			x = run
		}
	}
}

func (cw *CollisionWorld) spawnCrates(lvl *levels.Level, spec *prefabs.CrateSpec) {
	if spec == nil {
		return
	}
	for _, o := range lvl.Objects {
		if o.Kind != "crate" {
			continue
		}
		size := spec.Size
		body := cp.NewBody(spec.Mass, cp.MomentForBox(spec.Mass, size, size))
		cx, cy := (common.GridPos{Col: o.X, Row: o.Y}).WorldCenter()
		body.SetPosition(cp.Vector{X: cx, Y: cy})
		cw.space.AddBody(body)

		shape := cp.NewBox(body, size, size, 0)
		shape.SetFriction(spec.Friction)
		shape.SetCollisionType(collisionTypeCrate)
		cw.space.AddShape(shape)

		cw.crates = append(cw.crates, &Crate{body: body, mass: spec.Mass})
	}
}

// AddPlayerBody creates the player's dynamic body in the space.
func (cw *CollisionWorld) AddPlayerBody(x, y, w, h, mass float64) (*cp.Body, *cp.Shape) {
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: x, Y: y})
	cw.space.AddBody(body)

	shape := cp.NewBox(body, w, h, 2)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypePlayer)
	cw.space.AddShape(shape)
	return body, shape
}

// Grounded reports whether body stands on something, via a short segment
// probe below its feet.
func (cw *CollisionWorld) Grounded(body *cp.Body, halfHeight float64) bool {
	pos := body.Position()
	from := cp.Vector{X: pos.X, Y: pos.Y + halfHeight - 1}
	to := cp.Vector{X: pos.X, Y: pos.Y + halfHeight + 3}
	info := cw.space.SegmentQueryFirst(from, to, 0, cp.SHAPE_FILTER_ALL)
	return info.Shape != nil && info.Shape.Body() != body
}

// Step advances the simulation by dt seconds.
func (cw *CollisionWorld) Step(dt float64) {
	cw.space.Step(dt)
}

// Crates returns the tracked crates in creation order.
func (cw *CollisionWorld) Crates() []*Crate { return cw.crates }
