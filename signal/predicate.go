package signal

import "github.com/hollowroot/relay/common"

// Predicate reports whether the stimulus qualifies to activate the sender at
// pos this tick. Predicates are injected per sender instance so new sender
// kinds don't touch the evaluator.
type Predicate func(stim Stimulus, pos common.GridPos) bool

// UsePredicate qualifies when the player presses use within rangePx pixels
// of the sender's tile center. Levers and computers use this.
func UsePredicate(rangePx float64) Predicate {
	return func(stim Stimulus, pos common.GridPos) bool {
		if !stim.PlayerPresent || !stim.UsePressed {
			return false
		}
		cx, cy := pos.WorldCenter()
		return common.Dist(stim.PlayerX, stim.PlayerY, cx, cy) <= rangePx
	}
}

// PressurePredicate qualifies while the player, or any tracked object of at
// least minMass, sits within radius pixels of the sender's tile center.
func PressurePredicate(radius, minMass float64) Predicate {
	return func(stim Stimulus, pos common.GridPos) bool {
		cx, cy := pos.WorldCenter()
		if stim.PlayerPresent && common.Dist(stim.PlayerX, stim.PlayerY, cx, cy) <= radius {
			return true
		}
		for _, b := range stim.Bodies {
			if b.Mass < minMass {
				continue
			}
			if common.Dist(b.X, b.Y, cx, cy) <= radius {
				return true
			}
		}
		return false
	}
}

// ProximityPredicate qualifies while the player is within radius pixels of
// the sender's tile center. Triggers and scanners use this.
func ProximityPredicate(radius float64) Predicate {
	return func(stim Stimulus, pos common.GridPos) bool {
		if !stim.PlayerPresent {
			return false
		}
		cx, cy := pos.WorldCenter()
		return common.Dist(stim.PlayerX, stim.PlayerY, cx, cy) <= radius
	}
}
