package quest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/questcore/command"
	"github.com/milk9111/questcore/entity"
	"github.com/milk9111/questcore/ground"
	"github.com/milk9111/questcore/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useDiskRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := DiskRoot
	DiskRoot = dir
	t.Cleanup(func() { DiskRoot = prev })
	return dir
}

func TestLoadQuest(t *testing.T) {
	useDiskRoot(t)

	q, err := LoadQuest()
	require.NoError(t, err)
	assert.Equal(t, "first", q.StartMap)
	assert.Contains(t, q.Commands, "bomb")
	assert.Equal(t, "b", q.Keyboard["bomb"])
}

func TestBuildFirstMap(t *testing.T) {
	useDiskRoot(t)

	spec, err := LoadMap("first")
	require.NoError(t, err)
	m, err := BuildMap(spec)
	require.NoError(t, err)

	assert.Equal(t, "first", m.Name)
	assert.Equal(t, 11, m.Len())
	require.NotNil(t, m.Hero())
	assert.Equal(t, ground.Wall, m.TileGround(0, 0, 0))
	assert.Equal(t, ground.DeepWater, m.TileGround(0, 200, 48))
	assert.Equal(t, ground.WallTopLeft, m.TileGround(0, 16, 16))
	assert.Equal(t, ground.Traversable, m.TileGround(0, 24, 24))

	sw, ok := m.EntityByName("door_switch").(*entity.Switch)
	require.True(t, ok)
	assert.Equal(t, entity.SwitchWalkable, sw.Type)

	trap := m.EntityByName("trapdoor")
	require.NotNil(t, trap)
	assert.False(t, trap.Core().IsEnabled())
	assert.Equal(t, ground.Traversable, m.Ground(0, 100, 130, nil))
}

func TestDiskOverride(t *testing.T) {
	dir := useDiskRoot(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "maps"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "maps", "first.yaml"), []byte(`
width: 64
height: 32
tiles:
  - {layer: 0, x: 0, y: 0, w: 8, h: 8, ground: lava}
`), 0o644))

	spec, err := LoadMap("maps/first.yaml")
	require.NoError(t, err)
	assert.Equal(t, "maps/first.yaml", spec.Name)
	m, err := BuildMap(spec)
	require.NoError(t, err)
	assert.Equal(t, 64, m.Width())
	assert.Equal(t, 3, m.Layers())
	assert.Equal(t, ground.Lava, m.TileGround(0, 0, 0))

	_, ok := ModTime("maps/first.yaml")
	assert.True(t, ok)
	_, ok = ModTime("quest.yaml")
	assert.False(t, ok)
}

func TestBuildMapSkipsBadData(t *testing.T) {
	m, err := BuildMap(&MapSpec{
		Name:   "bad",
		Width:  64,
		Height: 64,
		Tiles: []TileSpec{
			{Layer: 0, X: 0, Y: 0, W: 8, H: 8, Ground: "quicksand"},
			{Layer: 7, X: 0, Y: 0, W: 8, H: 8, Ground: "wall"},
		},
		Entities: []EntitySpec{
			{Type: "dragon"},
			{Type: "block", X: 16, Y: 16},
			{Type: "switch", Props: map[string]any{"kind": "pressure_plate"}},
			{Type: "block", Layer: 9},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, ground.Traversable, m.TileGround(0, 0, 0))
	assert.Equal(t, 1, m.Len())

	_, err = BuildEntity(EntitySpec{Type: "dragon"})
	assert.ErrorIs(t, err, ErrUnknownEntityType)
	_, err = BuildEntity(EntitySpec{Type: "dynamic_tile", Props: map[string]any{"ground": "quicksand"}})
	assert.ErrorIs(t, err, ErrUnknownGround)

	_, err = BuildMap(&MapSpec{Width: 0, Height: 10})
	assert.ErrorIs(t, err, ErrInvalidMap)
}

func TestEntityProps(t *testing.T) {
	e, err := BuildEntity(EntitySpec{Type: "block", Props: map[string]any{"max_moves": 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, e.(*entity.Block).MaxMoves)

	e, err = BuildEntity(EntitySpec{Type: "block"})
	require.NoError(t, err)
	assert.Equal(t, -1, e.(*entity.Block).MaxMoves)

	e, err = BuildEntity(EntitySpec{Type: "wall", W: 8, H: 8, Props: map[string]any{"stops": []any{"enemy"}}})
	require.NoError(t, err)
	assert.True(t, e.IsObstacleFor(entity.NewEnemy("e", 0, 0, 0, 1)))
	assert.False(t, e.IsObstacleFor(entity.NewHero(0, 0, 0)))

	e, err = BuildEntity(EntitySpec{Type: "hero", Props: map[string]any{"life": 10, "speed": 2}})
	require.NoError(t, err)
	h := e.(*entity.Hero)
	assert.Equal(t, 2, h.Speed)
	assert.Equal(t, 10, h.Life().Max)
}

func TestApplyDefaultBindings(t *testing.T) {
	useDiskRoot(t)
	q, err := LoadQuest()
	require.NoError(t, err)

	c := command.NewCommands(nil)
	c.SetKeyboardBinding(command.Action, command.Key("q"))
	require.NoError(t, ApplyDefaultBindings(c, q))

	bomb, err := command.ParseCommand("bomb", q.Commands...)
	require.NoError(t, err)
	assert.Equal(t, command.Key("b"), c.KeyboardBinding(bomb))
	assert.Equal(t, command.KeySpace, c.KeyboardBinding(command.Action))
	assert.Equal(t, command.ButtonBinding(5), c.JoypadBinding(bomb))
	assert.Equal(t, 0.25, c.JoypadDeadzone())
	assert.Equal(t, 0, c.JoypadAxisBinding(command.AxisX))
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save", "settings.yaml")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Empty(t, s.Bindings)

	c := command.NewCommands(nil)
	c.SetKeyboardBinding(command.Attack, command.Key("k"))
	require.NoError(t, SaveSettings(path, c))

	s, err = LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "k", s.SavedBindings()["keyboard_attack"])

	restored := command.NewCommands(nil)
	require.NoError(t, restored.ApplyBindings(s.Bindings))
	assert.Equal(t, command.Key("k"), restored.KeyboardBinding(command.Attack))
	assert.Equal(t, command.Attack, restored.CommandFromKey(command.Key("k")))
}

func TestQuestScriptCompiles(t *testing.T) {
	useDiskRoot(t)
	q, err := LoadQuest()
	require.NoError(t, err)

	src, err := LoadScript(q.Script)
	require.NoError(t, err)
	rt, err := script.New(q.Script, src)
	require.NoError(t, err)
	assert.True(t, rt.Handles("on_switch"))
}

func TestWatcherReportsChangedMaps(t *testing.T) {
	dir := useDiskRoot(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "maps"), 0o755))

	w, err := NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "maps", "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "maps", "cave.yaml"), []byte("width: 8\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "maps/cave.yaml", name)
		assert.True(t, IsMapFile(name))
		assert.Equal(t, "cave", MapName(name))
	case <-time.After(2 * time.Second):
		t.Fatal("no watch event")
	}
}

func TestWatcherWithoutDirectories(t *testing.T) {
	useDiskRoot(t)
	_, err := NewWatcherDirs(filepath.Join(DiskRoot, "missing"))
	assert.ErrorIs(t, err, ErrNothingToWatch)
}
