// Command levelcheck loads a level, links its signal graph and prints every
// warning the game would log, without opening a window. Run it after editing
// level JSON or sender defs to catch bad wiring early.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hollowroot/relay/common"
	"github.com/hollowroot/relay/levels"
	"github.com/hollowroot/relay/prefabs"
	"github.com/hollowroot/relay/signal"
)

func main() {
	strict := flag.Bool("strict", false, "exit non-zero on any warning, not just fatal errors")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: levelcheck [-strict] <level> [<level>...]")
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "levelcheck"})

	failed := false
	for _, name := range flag.Args() {
		if !checkLevel(name, logger, *strict) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func checkLevel(name string, logger *log.Logger, strict bool) bool {
	warned := false
	warn := func(msg string, kv ...any) {
		warned = true
		logger.Warn(msg, append([]any{"level", name}, kv...)...)
	}

	lvl, err := levels.Load(name)
	if err != nil {
		logger.Error("load", "level", name, "err", err)
		return false
	}

	cfg, warnings := levels.DecodeConfiguration(lvl.Properties)
	for _, w := range warnings {
		warn("config", "warning", w)
	}

	defs, err := prefabs.LoadSenderDefs()
	if err != nil {
		logger.Error("sender defs", "err", err)
		return false
	}

	graph, err := levels.BuildGraph(lvl, defs, cfg, func(err error) {
		warn("script predicate", "err", err)
	})
	if err != nil {
		logger.Error("build graph", "level", name, "err", err)
		return false
	}
	for _, d := range graph.Diagnostics {
		warn("requisite link", "diag", d.String())
	}

	if _, err := signal.NewEvaluator(graph.Arena, graph.Receivers, cfg.ExitLocation, cfg.HasExit); err != nil {
		logger.Error("evaluator", "level", name, "err", err)
		return false
	}

	if cfg.HasExit {
		if _, ok := findReceiverAt(graph.Receivers, cfg.ExitLocation); !ok {
			warn("exit location has no receiver", "pos", cfg.ExitLocation)
		}
	}

	logger.Info("ok",
		"level", name,
		"senders", graph.Arena.Len(),
		"receivers", len(graph.Receivers),
		"diagnostics", len(graph.Diagnostics))
	return !(strict && warned)
}

func findReceiverAt(receivers []*signal.Receiver, pos common.GridPos) (*signal.Receiver, bool) {
	for _, r := range receivers {
		if r.Pos() == pos {
			return r, true
		}
	}
	return nil, false
}
