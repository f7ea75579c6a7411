package quest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// QuestSpec is the content of quest.yaml.
type QuestSpec struct {
	Title    string `yaml:"title"`
	StartMap string `yaml:"start_map"`
	Script   string `yaml:"script"`
	// Commands declares the custom commands of the quest.
	Commands []string `yaml:"commands"`
	// Keyboard and Joypad map command names to default bindings.
	Keyboard     map[string]string `yaml:"keyboard"`
	Joypad       map[string]string `yaml:"joypad"`
	KeyboardAxes map[string]string `yaml:"keyboard_axes"`
	JoypadAxes   map[string]string `yaml:"joypad_axes"`
	Deadzone     float64           `yaml:"joypad_deadzone"`
}

// MapSpec is the content of maps/<name>.yaml. Sizes are in pixels.
type MapSpec struct {
	Name     string       `yaml:"name"`
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	Layers   int          `yaml:"layers"`
	Tiles    []TileSpec   `yaml:"tiles"`
	Entities []EntitySpec `yaml:"entities"`
}

type TileSpec struct {
	Layer  int    `yaml:"layer"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	W      int    `yaml:"w"`
	H      int    `yaml:"h"`
	Ground string `yaml:"ground"`
}

// EntitySpec places one entity. Props are decoded by the builder of Type.
type EntitySpec struct {
	Type  string         `yaml:"type"`
	Name  string         `yaml:"name"`
	Layer int            `yaml:"layer"`
	X     int            `yaml:"x"`
	Y     int            `yaml:"y"`
	W     int            `yaml:"w"`
	H     int            `yaml:"h"`
	Props map[string]any `yaml:"props,omitempty"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("quest: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("quest: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadQuest() (*QuestSpec, error) {
	spec, err := LoadSpec[QuestSpec]("quest.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadMap(name string) (*MapSpec, error) {
	spec, err := LoadSpec[MapSpec](mapPath(name))
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return &spec, nil
}

// DecodeProps converts raw yaml props into T.
func DecodeProps[T any](raw map[string]any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}
