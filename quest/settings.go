package quest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/milk9111/questcore/command"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultBindings converts the bindings declared in quest.yaml to their
// persisted form.
func (q *QuestSpec) DefaultBindings() command.Bindings {
	b := command.Bindings{}
	if q == nil {
		return b
	}
	for name, key := range q.Keyboard {
		b[command.KeyboardVariable(command.Custom(name))] = key
	}
	for name, jb := range q.Joypad {
		b[command.JoypadVariable(command.Custom(name))] = jb
	}
	for name, keys := range q.KeyboardAxes {
		b[command.KeyboardAxisVariable(command.CustomAxis(name))] = keys
	}
	for name, axis := range q.JoypadAxes {
		b[command.JoypadAxisVariable(command.CustomAxis(name))] = axis
	}
	return b
}

// ApplyDefaultBindings resets c to the engine defaults, then applies the
// bindings and deadzone declared by the quest.
func ApplyDefaultBindings(c *command.Commands, q *QuestSpec) error {
	c.ResetBindings()
	if q == nil {
		return nil
	}
	if q.Deadzone > 0 {
		c.SetJoypadDeadzone(q.Deadzone)
	}
	return c.ApplyBindings(q.DefaultBindings())
}

// Settings is the content of settings.yaml.
type Settings struct {
	Bindings command.Bindings `yaml:"bindings"`
}

// LoadSettings reads settings from path. A missing file yields empty
// settings.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Settings{Bindings: command.Bindings{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("quest: read settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("quest: unmarshal settings: %w", err)
	}
	if s.Bindings == nil {
		s.Bindings = command.Bindings{}
	}
	return &s, nil
}

// SaveSettings persists the current bindings of c to path.
func SaveSettings(path string, c *command.Commands) error {
	data, err := yaml.Marshal(Settings{Bindings: c.Bindings()})
	if err != nil {
		return fmt.Errorf("quest: marshal settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("quest: save settings: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("quest: save settings: %w", err)
	}
	log.WithFields(logrus.Fields{"path": path, "bytes": len(data)}).Debug("settings saved")
	return nil
}

// SavedBindings makes Settings a command.BindingSource.
func (s *Settings) SavedBindings() command.Bindings {
	if s == nil {
		return nil
	}
	return s.Bindings
}
