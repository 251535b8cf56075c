package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hollowroot/relay/common"
)

func main() {
	levelName := flag.String("level", "intro", "level name in levels/ (basename, .json optional)")
	debug := flag.Bool("debug", false, "enable debug logging and hot reload")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "relay",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	game, err := NewGame(*levelName, *debug, logger)
	if err != nil {
		logger.Fatal("load level", "level", *levelName, "err", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("relay")

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run", "err", err)
	}
}
