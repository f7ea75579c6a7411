package command

import (
	"strconv"
	"strings"
)

// Key is a keyboard key identified by its persisted name ("space", "right",
// "a", "f1"). The empty key means no key.
type Key string

const KeyNone Key = ""

const (
	KeySpace     Key = "space"
	KeyReturn    Key = "return"
	KeyEscape    Key = "escape"
	KeyTab       Key = "tab"
	KeyBackspace Key = "backspace"
	KeyUp        Key = "up"
	KeyDown      Key = "down"
	KeyLeft      Key = "left"
	KeyRight     Key = "right"
)

var keyNames = func() map[Key]struct{} {
	names := []string{
		"space", "return", "escape", "tab", "backspace", "delete", "insert",
		"home", "end", "page up", "page down", "pause",
		"up", "down", "left", "right",
		"left shift", "right shift", "left control", "right control",
		"left alt", "right alt", "left meta", "right meta", "caps lock",
		"minus", "equals", "comma", "period", "slash", "backslash",
		"semicolon", "quote", "backquote", "left bracket", "right bracket",
		"keypad enter", "keypad plus", "keypad minus", "keypad multiply",
		"keypad divide", "keypad period",
	}
	for c := 'a'; c <= 'z'; c++ {
		names = append(names, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		names = append(names, string(c), "keypad "+string(c))
	}
	for i := 1; i <= 12; i++ {
		names = append(names, "f"+strconv.Itoa(i))
	}
	m := make(map[Key]struct{}, len(names))
	for _, n := range names {
		m[Key(n)] = struct{}{}
	}
	return m
}()

// ParseKey resolves a persisted key name. Names are case-insensitive.
func ParseKey(name string) (Key, bool) {
	k := Key(strings.ToLower(strings.TrimSpace(name)))
	_, ok := keyNames[k]
	return k, ok
}

// KeyNames returns every known key name.
func KeyNames() []Key {
	out := make([]Key, 0, len(keyNames))
	for k := range keyNames {
		out = append(out, k)
	}
	return out
}

func (k Key) String() string {
	if k == KeyNone {
		return ""
	}
	return string(k)
}
