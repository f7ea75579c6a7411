package quest

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports quest files changed on disk. Events carries paths relative
// to DiskRoot, such as "maps/first.yaml".
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches DiskRoot and its maps and scripts directories. Missing
// directories are skipped.
func NewWatcher() (*Watcher, error) {
	return NewWatcherDirs(DiskRoot, filepath.Join(DiskRoot, "maps"), filepath.Join(DiskRoot, "scripts"))
}

func NewWatcherDirs(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	added := 0
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			log.WithField("dir", dir).WithError(err).Debug("not watching")
			continue
		}
		added++
	}
	if added == 0 && len(dirs) > 0 {
		_ = w.Close()
		return nil, ErrNothingToWatch
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isQuestFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- relativeName(event.Name):
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// IsMapFile reports whether a name from Events is a map.
func IsMapFile(name string) bool {
	return strings.HasPrefix(name, "maps/") && isSpecFile(name)
}

// MapName returns the map name of a maps/<name>.yaml path.
func MapName(name string) string {
	name = strings.TrimPrefix(name, "maps/")
	return strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
}

func relativeName(path string) string {
	if rel, err := filepath.Rel(DiskRoot, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func isQuestFile(path string) bool {
	return isSpecFile(path) || isScriptFile(path)
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
