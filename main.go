package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/questcore/quest"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "main")

func main() {
	debug := flag.Bool("debug", false, "enable debug drawing and logging")
	questDir := flag.String("quest", quest.DiskRoot, "directory whose files override the embedded quest data")
	mapName := flag.String("map", "", "map name in maps/ (basename, .yaml optional), defaults to the quest start map")
	watch := flag.Bool("watch", false, "reload maps and scripts when they change on disk")
	settingsPath := flag.String("settings", "settings.yaml", "file storing customized bindings")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	logrus.SetLevel(logrus.InfoLevel)
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	quest.DiskRoot = *questDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Options{
		MapName:      *mapName,
		SettingsPath: *settingsPath,
		Debug:        *debug,
		Watch:        *watch,
	})
	if err != nil {
		log.WithError(err).Error("cannot start quest")
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle(game.quest.Title)

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Error("game stopped")
	}
}
