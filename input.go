package main

import (
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/questcore/command"
)

// axisEpsilon filters joypad axis noise below what the deadzone cares about.
const axisEpsilon = 0.01

// InputPump turns ebiten keyboard and gamepad state into low-level input
// events. Only the first connected gamepad is read.
type InputPump struct {
	sink func(command.InputEvent)

	keys    []ebiten.Key
	gamepad ebiten.GamepadID
	hasPad  bool
	axes    []float64
	hat     int
}

func NewInputPump(sink func(command.InputEvent)) *InputPump {
	return &InputPump{sink: sink, hat: command.HatCentered}
}

func (p *InputPump) Update() {
	p.pumpKeyboard()
	p.pumpGamepad()
}

func (p *InputPump) pumpKeyboard() {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if name, ok := keyName(k); ok {
			p.sink(command.PressKey(name))
		}
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if name, ok := keyName(k); ok {
			p.sink(command.ReleaseKey(name))
		}
	}
}

func (p *InputPump) pumpGamepad() {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		if p.hasPad {
			p.disconnect()
		}
		return
	}
	if !p.hasPad || p.gamepad != ids[0] {
		p.gamepad = ids[0]
		p.hasPad = true
		p.axes = make([]float64, ebiten.GamepadAxisCount(p.gamepad))
		p.hat = command.HatCentered
		log.WithField("gamepad", ebiten.GamepadName(p.gamepad)).Info("gamepad connected")
	}
	id := p.gamepad

	for b := 0; b < ebiten.GamepadButtonCount(id); b++ {
		button := ebiten.GamepadButton(b)
		if inpututil.IsGamepadButtonJustPressed(id, button) {
			p.sink(command.PressButton(b))
		}
		if inpututil.IsGamepadButtonJustReleased(id, button) {
			p.sink(command.ReleaseButton(b))
		}
	}

	for a := range p.axes {
		v := ebiten.GamepadAxisValue(id, ebiten.GamepadAxisType(a))
		if math.Abs(v-p.axes[a]) < axisEpsilon {
			continue
		}
		p.axes[a] = v
		p.sink(command.AxisMoved(a, v))
	}

	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		if hat := dpadDirection(id); hat != p.hat {
			p.hat = hat
			p.sink(command.HatMoved(0, hat))
		}
	}
}

func (p *InputPump) disconnect() {
	log.Info("gamepad disconnected")
	for a, v := range p.axes {
		if v != 0 {
			p.sink(command.AxisMoved(a, 0))
		}
	}
	if p.hat != command.HatCentered {
		p.sink(command.HatMoved(0, command.HatCentered))
	}
	p.hasPad = false
	p.axes = nil
	p.hat = command.HatCentered
}

// dpadDirection reads the standard layout d-pad as hat 0.
func dpadDirection(id ebiten.GamepadID) int {
	dx, dy := 0, 0
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
		dx++
	}
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
		dx--
	}
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop) {
		dy--
	}
	if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom) {
		dy++
	}
	return hatFromDelta[dy+1][dx+1]
}

var hatFromDelta = [3][3]int{
	{command.HatUpLeft, command.HatUp, command.HatUpRight},
	{command.HatLeft, command.HatCentered, command.HatRight},
	{command.HatDownLeft, command.HatDown, command.HatDownRight},
}

var specialKeys = map[ebiten.Key]command.Key{
	ebiten.KeySpace:          command.KeySpace,
	ebiten.KeyEnter:          command.KeyReturn,
	ebiten.KeyEscape:         command.KeyEscape,
	ebiten.KeyTab:            command.KeyTab,
	ebiten.KeyBackspace:      command.KeyBackspace,
	ebiten.KeyDelete:         "delete",
	ebiten.KeyInsert:         "insert",
	ebiten.KeyHome:           "home",
	ebiten.KeyEnd:            "end",
	ebiten.KeyPageUp:         "page up",
	ebiten.KeyPageDown:       "page down",
	ebiten.KeyPause:          "pause",
	ebiten.KeyArrowUp:        command.KeyUp,
	ebiten.KeyArrowDown:      command.KeyDown,
	ebiten.KeyArrowLeft:      command.KeyLeft,
	ebiten.KeyArrowRight:     command.KeyRight,
	ebiten.KeyShiftLeft:      "left shift",
	ebiten.KeyShiftRight:     "right shift",
	ebiten.KeyControlLeft:    "left control",
	ebiten.KeyControlRight:   "right control",
	ebiten.KeyAltLeft:        "left alt",
	ebiten.KeyAltRight:       "right alt",
	ebiten.KeyMetaLeft:       "left meta",
	ebiten.KeyMetaRight:      "right meta",
	ebiten.KeyCapsLock:       "caps lock",
	ebiten.KeyMinus:          "minus",
	ebiten.KeyEqual:          "equals",
	ebiten.KeyComma:          "comma",
	ebiten.KeyPeriod:         "period",
	ebiten.KeySlash:          "slash",
	ebiten.KeyBackslash:      "backslash",
	ebiten.KeySemicolon:      "semicolon",
	ebiten.KeyQuote:          "quote",
	ebiten.KeyBackquote:      "backquote",
	ebiten.KeyBracketLeft:    "left bracket",
	ebiten.KeyBracketRight:   "right bracket",
	ebiten.KeyNumpadEnter:    "keypad enter",
	ebiten.KeyNumpadAdd:      "keypad plus",
	ebiten.KeyNumpadSubtract: "keypad minus",
	ebiten.KeyNumpadMultiply: "keypad multiply",
	ebiten.KeyNumpadDivide:   "keypad divide",
	ebiten.KeyNumpadDecimal:  "keypad period",
}

// keyName returns the persisted name of an ebiten key.
func keyName(k ebiten.Key) (command.Key, bool) {
	switch {
	case k >= ebiten.KeyA && k <= ebiten.KeyZ:
		return command.Key(string(rune('a' + int(k-ebiten.KeyA)))), true
	case k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9:
		return command.Key(strconv.Itoa(int(k - ebiten.KeyDigit0))), true
	case k >= ebiten.KeyNumpad0 && k <= ebiten.KeyNumpad9:
		return command.Key("keypad " + strconv.Itoa(int(k-ebiten.KeyNumpad0))), true
	case k >= ebiten.KeyF1 && k <= ebiten.KeyF12:
		return command.Key("f" + strconv.Itoa(int(k-ebiten.KeyF1)+1)), true
	}
	name, ok := specialKeys[k]
	return name, ok
}

