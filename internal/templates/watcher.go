package templates

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// DirectorySource describes a directory backed catalog.
type DirectorySource struct {
	Dir             string
	IncludeBuiltins bool
	Renderer        *markdown.Renderer
}

// Load reads the directory and returns its templates, preceded by the builtin
// templates when requested.
func (s DirectorySource) Load() ([]Template, error) {
	var out []Template
	if s.IncludeBuiltins {
		out = append(out, BuiltinTemplates()...)
	}
	if strings.TrimSpace(s.Dir) == "" {
		return out, nil
	}
	loaded, err := LoadDir(os.DirFS(s.Dir), s.Renderer)
	if err != nil {
		return nil, err
	}
	return append(out, loaded...), nil
}

// ReloadInto loads the source and swaps it into catalog.
func (s DirectorySource) ReloadInto(catalog *Catalog) error {
	loaded, err := s.Load()
	if err != nil {
		return err
	}
	return catalog.Replace(loaded)
}

// Watcher reloads a catalog when template files under a directory change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	source   DirectorySource
	catalog  *Catalog
	logger   interfaces.Logger
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher watches source.Dir and its subdirectories. Hidden directories are
// skipped.
func NewWatcher(source DirectorySource, catalog *Catalog, logger interfaces.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	w := &Watcher{
		watcher: fsWatcher,
		source:  source,
		catalog: catalog,
		logger:  logger,
		done:    make(chan struct{}),
	}
	if err := w.addRecursive(source.Dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Start processes file events until Stop is called.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handle(event)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("templates.watch.error", "error", err)
			case <-w.done:
				return
			}
		}
	}()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("templates.watch.add_dir_failed", "path", event.Name, "error", err)
			}
			return
		}
	}
	if !IsTemplateFile(event.Name) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if err := w.source.ReloadInto(w.catalog); err != nil {
		w.logger.Error("templates.reload.failed", "path", event.Name, "error", err)
		return
	}
	w.logger.Info("templates.reloaded", "path", event.Name, "count", w.catalog.Len())
}

// Stop ends event processing and releases the fsnotify watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
