package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hollowroot/relay/common"
	"github.com/hollowroot/relay/levels"
	"github.com/hollowroot/relay/obj"
	"github.com/hollowroot/relay/prefabs"
	"github.com/hollowroot/relay/signal"
)

// Session owns one loaded level end to end: tile data, physics world,
// player, and the linked signal graph with its evaluator. It is torn down
// as a unit when the level changes; in-flight sender timers go with it.
type Session struct {
	logger *log.Logger

	name  string
	level *levels.Level
	cfg   levels.Configuration
	graph *levels.Graph
	eval  *signal.Evaluator

	world   *obj.CollisionWorld
	player  *obj.Player
	sampler *obj.Sampler

	completed bool
}

// NewSession loads and links a level. Any error here is load-fatal: the
// level cannot run.
func NewSession(name string, input *obj.Input, logger *log.Logger) (*Session, error) {
	lvl, err := levels.Load(name)
	if err != nil {
		return nil, err
	}

	cfg, warnings := levels.DecodeConfiguration(lvl.Properties)
	for _, w := range warnings {
		logger.Warn("level config", "level", name, "warning", w)
	}

	defs, err := prefabs.LoadSenderDefs()
	if err != nil {
		return nil, err
	}

	graph, err := levels.BuildGraph(lvl, defs, cfg, func(err error) {
		logger.Warn("script predicate", "level", name, "err", err)
	})
	if err != nil {
		return nil, err
	}
	for _, d := range graph.Diagnostics {
		logger.Warn("requisite link", "level", name, "diag", d.String())
	}

	eval, err := signal.NewEvaluator(graph.Arena, graph.Receivers, cfg.ExitLocation, cfg.HasExit)
	if err != nil {
		return nil, err
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	crateSpec, err := prefabs.LoadCrateSpec()
	if err != nil {
		logger.Warn("crate spec missing, levels spawn no crates", "err", err)
		crateSpec = nil
	}

	world := obj.NewCollisionWorld(lvl, crateSpec)
	player := obj.NewPlayer(common.GridPos{Col: lvl.SpawnX, Row: lvl.SpawnY}, playerSpec, input, world)
	player.SetCostume(cfg.StartingCostume)

	s := &Session{
		logger:  logger,
		name:    name,
		level:   lvl,
		cfg:     cfg,
		graph:   graph,
		eval:    eval,
		world:   world,
		player:  player,
		sampler: obj.NewSampler(player, input, world),
	}

	eval.OnComplete = func() {
		s.completed = true
		logger.Info("level completed", "level", name, "next", cfg.NextLevelName)
	}
	eval.OnHookPanic = func(pos common.GridPos, v any) {
		logger.Error("sender hook panicked", "pos", pos, "panic", fmt.Sprint(v))
	}
	return s, nil
}

// Step runs one frame: player input, physics, then the signal evaluation
// pass. Returned events are this tick's activation edges.
func (s *Session) Step() []signal.Event {
	s.player.Update()
	s.world.Step(1.0 / 60.0)

	events := s.eval.Tick(s.sampler.Sample())
	for _, e := range events {
		s.logger.Debug("signal", "event", string(e.Kind), "pos", e.Pos)
	}
	return events
}

func (s *Session) Name() string          { return s.name }
func (s *Session) State() signal.State   { return s.eval.State() }
func (s *Session) Err() error            { return s.eval.Err() }
func (s *Session) NextLevelName() string { return s.cfg.NextLevelName }
