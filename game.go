package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hollowroot/relay/common"
	"github.com/hollowroot/relay/obj"
	"github.com/hollowroot/relay/prefabs"
	"github.com/hollowroot/relay/signal"
)

// Game is the ebiten shell around a level session.
type Game struct {
	logger *log.Logger
	debug  bool
	frames int

	input    *obj.Input
	session  *Session
	renderer *renderer

	paused  bool
	pauseUI *ebitenui.UI

	watcher       *prefabs.Watcher
	reloadQueued  bool
	quitRequested bool
}

func NewGame(levelName string, debug bool, logger *log.Logger) (*Game, error) {
	input := obj.NewInput()
	session, err := NewSession(levelName, input, logger)
	if err != nil {
		return nil, err
	}

	g := &Game{
		logger:   logger,
		debug:    debug,
		input:    input,
		session:  session,
		renderer: newRenderer(),
	}
	g.pauseUI = NewPauseUI(g)

	if debug {
		w, err := prefabs.NewWatcher("levels", "prefabs", "prefabs/scripts")
		if err != nil {
			logger.Warn("hot reload unavailable", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.input.Update()
	g.pollWatcher()

	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		if g.quitRequested {
			return ebiten.Termination
		}
		return nil
	}
	if g.reloadQueued {
		g.reloadQueued = false
		g.reload(g.session.Name())
	}

	g.session.Step()

	switch g.session.State() {
	case signal.StateCompleted:
		next := g.session.NextLevelName()
		if next == "MainMenu" {
			// no menu scene in this build; a finished run exits cleanly
			g.logger.Info("run finished")
			return ebiten.Termination
		}
		return g.advance(next)
	case signal.StateAborted:
		return g.session.Err()
	}
	return nil
}

func (g *Game) advance(next string) error {
	session, err := NewSession(next, g.input, g.logger)
	if err != nil {
		return fmt.Errorf("advance to %s: %w", next, err)
	}
	g.session = session
	return nil
}

// reload rebuilds the current session in place, for hot reload during
// development. Failures keep the running session.
func (g *Game) reload(name string) {
	session, err := NewSession(name, g.input, g.logger)
	if err != nil {
		g.logger.Warn("reload failed, keeping running level", "level", name, "err", err)
		return
	}
	g.session = session
	g.logger.Info("level reloaded", "level", name)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Debug("watched file changed", "file", name)
			g.reloadQueued = true
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				g.logger.Warn("watcher", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    State: %s", g.frames, ebiten.ActualFPS(), g.session.State()))
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
