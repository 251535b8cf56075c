package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec unmarshals a yaml prefab file into the given spec type.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SenderDefsSpec declares every sender and receiver kind a level may place.
// Kinds are data so new interactive objects don't touch the evaluator.
type SenderDefsSpec struct {
	Senders   map[string]SenderDefSpec `yaml:"senders"`
	Receivers []string                 `yaml:"receivers"`
}

// SenderDefSpec is one sender kind's activation setup.
type SenderDefSpec struct {
	// Methods is the activation method set: once, intervention, timer,
	// toggle. Non-exclusive.
	Methods []string `yaml:"methods"`
	// CooldownTicks arms the timer method.
	CooldownTicks uint64 `yaml:"cooldown_ticks"`
	// UseRange selects a use-key predicate (levers, computers).
	UseRange float64 `yaml:"use_range"`
	// Radius selects a proximity predicate; with MinMass set it becomes a
	// pressure predicate that also counts tracked objects.
	Radius  float64 `yaml:"radius"`
	MinMass float64 `yaml:"min_mass"`
	// Script names a tengo predicate under prefabs/scripts/.
	Script string `yaml:"script"`
}

func LoadSenderDefs() (*SenderDefsSpec, error) {
	spec, err := LoadSpec[SenderDefsSpec]("senders.yaml")
	if err != nil {
		return nil, err
	}
	if len(spec.Senders) == 0 {
		return nil, fmt.Errorf("prefabs: senders.yaml declares no sender kinds")
	}
	return &spec, nil
}

// PlayerSpec tunes the player object.
type PlayerSpec struct {
	Name           string  `yaml:"name"`
	MoveSpeed      float64 `yaml:"move_speed"`
	JumpSpeed      float64 `yaml:"jump_speed"`
	CoyoteFrames   int     `yaml:"coyote_frames"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	DefaultCostume string  `yaml:"default_costume"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// CrateSpec tunes the dynamic crates levels place on pressure plates.
type CrateSpec struct {
	Mass     float64 `yaml:"mass"`
	Size     float64 `yaml:"size"`
	Friction float64 `yaml:"friction"`
}

func LoadCrateSpec() (*CrateSpec, error) {
	spec, err := LoadSpec[CrateSpec]("crate.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
