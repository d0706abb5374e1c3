package workspace

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ChangeFunc is called after a source file was parsed again. doc is nil
// when the file was deleted.
type ChangeFunc func(path string, doc *Document)

// FileWatcher polls the workspace root for changed source files.
type FileWatcher struct {
	workspace    *Workspace
	onChange     ChangeFunc
	stopCh       chan struct{}
	stopOnce     sync.Once
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewFileWatcher(w *Workspace, onChange ChangeFunc) *FileWatcher {
	return &FileWatcher{
		workspace:    w,
		onChange:     onChange,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

// SetInterval changes the poll interval. It must be called before Start.
func (fw *FileWatcher) SetInterval(d time.Duration) {
	fw.pollInterval = d
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() { close(fw.stopCh) })
}

func (fw *FileWatcher) run() {
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	fw.Poll()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.Poll()
		}
	}
}

// Poll checks the tree once and returns the number of files that were
// parsed again or removed.
func (fw *FileWatcher) Poll() int {
	changed := 0
	current := make(map[string]bool)
	root := fw.workspace.RootDir()

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fw.workspace.IsSource(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		current[path] = true

		lastMod, known := fw.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			fw.modTimes[path] = info.ModTime()
			doc, err := fw.workspace.ScanFile(path)
			if err != nil {
				fw.workspace.log.Warningf("scan %s: %s", path, err)
				return nil
			}
			changed++
			fw.notify(path, doc)
		}
		return nil
	})

	for path := range fw.modTimes {
		if !current[path] {
			delete(fw.modTimes, path)
			fw.workspace.RemoveFile(path)
			changed++
			fw.notify(path, nil)
		}
	}
	return changed
}

func (fw *FileWatcher) notify(path string, doc *Document) {
	if fw.onChange != nil {
		fw.onChange(path, doc)
	}
}
