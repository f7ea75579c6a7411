package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/questcore/command"
	"github.com/milk9111/questcore/ecs"
	"github.com/milk9111/questcore/entity"
	"github.com/milk9111/questcore/gamemap"
	"github.com/milk9111/questcore/quest"
	"github.com/milk9111/questcore/script"
	"github.com/sirupsen/logrus"
)

const (
	baseWidth  = 640
	baseHeight = 480
)

type Options struct {
	MapName      string
	SettingsPath string
	Debug        bool
	Watch        bool
}

// Game runs one quest: raw input goes through the dispatcher to the game's
// commands, then the map ticks and its events reach the quest script.
type Game struct {
	frames int
	debug  bool

	quest        *quest.QuestSpec
	settings     *quest.Settings
	settingsPath string
	mapName      string
	m            *gamemap.Map

	dispatcher *command.Dispatcher
	commands   *command.Commands
	runtime    *script.Runtime
	watcher    *quest.Watcher
	scheduler  *ecs.Scheduler

	paused  bool
	pauseUI *PauseUI
}

func NewGame(opts Options) (*Game, error) {
	q, err := quest.LoadQuest()
	if err != nil {
		return nil, err
	}

	settings, err := quest.LoadSettings(opts.SettingsPath)
	if err != nil {
		log.WithError(err).Warn("ignoring unreadable settings")
		settings = &quest.Settings{Bindings: command.Bindings{}}
	}

	g := &Game{
		debug:        opts.Debug,
		quest:        q,
		settings:     settings,
		settingsPath: opts.SettingsPath,
		dispatcher:   command.NewDispatcher(),
	}

	// The script is loaded first so that it sees errors in the saved
	// bindings.
	if q.Script != "" {
		if err := g.loadScript(q.Script); err != nil {
			log.WithError(err).Error("quest script disabled")
		}
	}

	// SavedBindings merges the quest defaults and the saved settings, so the
	// dispatcher applies both.
	g.commands = g.dispatcher.CreateCommandsFromGame(g)
	if q.Deadzone > 0 {
		g.commands.SetJoypadDeadzone(q.Deadzone)
	}
	g.commands.SetCancelKey(command.KeyEscape)
	if g.runtime != nil {
		g.runtime.SetCommands(g.commands)
	}

	mapName := opts.MapName
	if mapName == "" {
		mapName = q.StartMap
	}
	if err := g.loadMap(mapName); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := quest.NewWatcher()
		if err != nil {
			log.WithError(err).Warn("hot reload disabled")
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	g.scheduler = ecs.NewScheduler(
		NewInputPump(g.dispatcher.NotifyInput),
		ecs.SystemFunc(g.hotReload),
		ecs.SystemFunc(g.updateMap),
		ecs.SystemFunc(g.forwardMapEvents),
	)
	return g, nil
}

func (g *Game) loadMap(name string) error {
	spec, err := quest.LoadMap(name)
	if err != nil {
		return err
	}
	m, err := quest.BuildMap(spec)
	if err != nil {
		return err
	}
	if m.Hero() == nil {
		log.WithField("map", name).Warn("map has no hero")
	}
	g.m = m
	g.mapName = name
	log.WithFields(logrus.Fields{
		"map":      name,
		"entities": m.Len(),
	}).Info("map loaded")
	return nil
}

func (g *Game) loadScript(name string) error {
	src, err := quest.LoadScript(name)
	if err != nil {
		return err
	}
	rt, err := script.New(name, src)
	if err != nil {
		return err
	}
	rt.Declared = g.quest.Commands
	rt.SetCommands(g.commands)
	g.runtime = rt
	return nil
}

// ReportBindingError forwards binding-table errors to the quest script.
func (g *Game) ReportBindingError(err error) {
	if g.runtime != nil {
		g.runtime.ReportError(err)
	}
}

// SavedBindings returns the quest default bindings overridden by the saved
// settings.
func (g *Game) SavedBindings() command.Bindings {
	out := g.quest.DefaultBindings()
	for name, value := range g.settings.SavedBindings() {
		out[name] = value
	}
	return out
}

// NotifyCommand drives the hero from control events.
func (g *Game) NotifyCommand(ev command.ControlEvent) {
	if g.runtime != nil {
		g.runtime.NotifyCommand(ev)
	}

	if ev.Kind == command.CommandPressed && ev.Command == command.Pause {
		g.setPaused(!g.paused)
		return
	}
	if g.paused || g.m == nil {
		return
	}
	hero := g.m.Hero()
	if hero == nil {
		return
	}

	switch ev.Command {
	case command.Right, command.Up, command.Left, command.Down:
		hero.SetWantedDirection8(g.commands.WantedDirection8())
		return
	}
	if ev.Kind != command.CommandPressed {
		return
	}
	switch {
	case ev.Command == command.Attack:
		hero.StartAttack()
	case ev.Command == command.Item1:
		g.shootArrow(hero)
	case ev.Command == command.Item2, ev.Command.String() == "bomb":
		g.dropBomb(hero)
	}
}

func (g *Game) shootArrow(hero *entity.Hero) {
	box := hero.Box()
	dir := hero.Direction()
	dx, dy := entity.DirectionDelta(dir)
	c := box.Center()
	x, y := c.X-8+dx*16, c.Y-4+dy*12
	if dir == entity.DirUp || dir == entity.DirDown {
		x, y = c.X-4+dx*12, c.Y-8+dy*16
	}
	g.m.AddEntity(entity.NewArrow(hero.Layer(), x, y, dir))
}

func (g *Game) dropBomb(hero *entity.Hero) {
	dx, dy := entity.DirectionDelta(hero.Direction())
	box := hero.Box()
	g.m.AddEntity(entity.NewBomb(hero.Layer(), box.X+dx*16, box.Y+dy*16))
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	g.m.Suspend(paused)
	if hero := g.m.Hero(); hero != nil {
		if paused {
			hero.SetWantedDirection8(-1)
		} else {
			hero.SetWantedDirection8(g.commands.WantedDirection8())
		}
	}
	if paused {
		g.pauseUI.Refresh()
		return
	}
	g.saveSettings()
}

func (g *Game) saveSettings() {
	if g.settingsPath == "" {
		return
	}
	if err := quest.SaveSettings(g.settingsPath, g.commands); err != nil {
		log.WithError(err).Warn("settings not saved")
		return
	}
	g.settings.Bindings = g.commands.Bindings()
}

func (g *Game) updateMap() {
	if g.m != nil {
		g.m.Update()
	}
}

func (g *Game) forwardMapEvents() {
	if g.m == nil {
		return
	}
	for _, ev := range g.m.Events() {
		log.WithField("event", ev.Type).Debug("map event")
		if g.runtime == nil {
			continue
		}
		if err := g.runtime.DispatchMapEvent(ev); err != nil {
			log.WithField("event", ev.Type).WithError(err).Error("script handler failed")
		}
	}
}

func (g *Game) hotReload() {
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
			g.reload(name)
		case err := <-g.watcher.Errors:
			if err != nil {
				log.WithError(err).Warn("watch error")
			}
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	entry := log.WithField("file", name)
	switch {
	case quest.IsMapFile(name) && quest.MapName(name) == g.mapName:
		if err := g.loadMap(g.mapName); err != nil {
			entry.WithError(err).Error("map reload failed")
			return
		}
		g.m.Suspend(g.paused)
	case g.quest.Script != "" && name == "scripts/"+g.quest.Script+".tengo":
		if err := g.loadScript(g.quest.Script); err != nil {
			entry.WithError(err).Error("script reload failed")
			return
		}
	default:
		return
	}
	entry.Info("reloaded")
}

func (g *Game) Update() error {
	g.frames++
	g.scheduler.Update()
	if g.paused {
		g.pauseUI.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawMap(screen, g.m, g.debug)

	status := fmt.Sprintf("FPS: %.2f  map: %s", ebiten.ActualFPS(), g.mapName)
	if hero := g.m.Hero(); hero != nil {
		status += fmt.Sprintf("  life: %d/%d  ground: %s", hero.Life().Current, hero.Life().Max, hero.GroundBelow())
	}
	ebitenutil.DebugPrint(screen, status)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() {
	g.saveSettings()
	g.commands.Close()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
