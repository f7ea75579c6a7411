package quest

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed quest.yaml maps/*.yaml scripts/*.tengo
var QuestFS embed.FS

// DiskRoot is the directory whose files override the embedded quest data.
var DiskRoot = "quest"

// Load returns the named quest file, preferring the copy on disk.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	return QuestFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	return Load(scriptPath(name))
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(DiskPath(cleanPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// DiskPath returns where the override of a quest file lives.
func DiskPath(clean string) string {
	return filepath.Join(DiskRoot, filepath.FromSlash(clean))
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "quest/"); ok {
		s = after
	}
	return s
}

func mapPath(name string) string {
	s := cleanPath(name)
	s = strings.TrimPrefix(s, "maps/")
	if !strings.HasSuffix(s, ".yaml") {
		s += ".yaml"
	}
	return "maps/" + s
}

func scriptPath(name string) string {
	s := cleanPath(name)
	s = strings.TrimPrefix(s, "scripts/")
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}
	return "scripts/" + s
}
