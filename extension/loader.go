// Package extension loads units of behavior that hook into an event kernel
// under their own owner tag, so that unloading one removes all of its
// handlers at once.
package extension

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/opd-ai/orion/events"
	"github.com/sirupsen/logrus"
)

var (
	// ErrAlreadyLoaded is returned when an extension with the same name is loaded.
	ErrAlreadyLoaded = errors.New("extension already loaded")
	// ErrNotLoaded is returned when unloading a name that is not loaded.
	ErrNotLoaded = errors.New("extension not loaded")
	// ErrInvalidName is returned for extensions with an empty name.
	ErrInvalidName = errors.New("extension name is empty")
)

// Extension registers handlers on a kernel. Every registration must use
// the owner tag passed to Initialize.
type Extension interface {
	Name() string
	Initialize(k *events.Kernel, owner string) error
}

// Closer is implemented by extensions that hold resources beyond their
// handlers.
type Closer interface {
	Close() error
}

// Loader tracks the extensions loaded into one kernel.
type Loader struct {
	kernel *events.Kernel
	logger logrus.FieldLogger

	mu      sync.Mutex
	loaded  map[string]Extension
	pending map[string]struct{} // names whose Initialize is running
}

// NewLoader returns a Loader for k. A nil logger uses logrus.StandardLogger().
func NewLoader(k *events.Kernel, logger logrus.FieldLogger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{
		kernel: k,
		logger: logger,
		loaded:  make(map[string]Extension),
		pending: make(map[string]struct{}),
	}
}

// Owner returns the kernel owner tag for the extension name.
func Owner(name string) string {
	return "extension:" + name
}

// Load initializes ext. If Initialize fails any handlers it registered are
// removed and the error is returned. Initialize and the ExtensionLoadEvent
// handlers run without the loader lock and may call back into the Loader;
// the name counts as taken until Initialize returns.
func (l *Loader) Load(ext Extension) error {
	name := ext.Name()
	if name == "" {
		return ErrInvalidName
	}

	if err := l.load(name, ext); err != nil {
		return err
	}

	l.logger.WithFields(logrus.Fields{
		"function":  "Load",
		"extension": name,
	}).Info("Loaded extension")

	l.kernel.Raise(&events.ExtensionLoadEvent{Name: name})
	return nil
}

func (l *Loader) load(name string, ext Extension) error {
	if err := l.reserve(name); err != nil {
		return err
	}

	owner := Owner(name)
	initErr := ext.Initialize(l.kernel, owner)

	l.mu.Lock()
	delete(l.pending, name)
	if initErr == nil {
		l.loaded[name] = ext
	}
	l.mu.Unlock()

	if initErr != nil {
		removed := l.kernel.Deregister(owner)
		l.logger.WithFields(logrus.Fields{
			"function":   "Load",
			"extension":  name,
			"rolledBack": removed,
			"error":      initErr.Error(),
		}).Warn("Extension failed to initialize")
		return fmt.Errorf("initialize extension %s: %w", name, initErr)
	}
	return nil
}

// reserve claims name for a Load in progress.
func (l *Loader) reserve(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.loaded[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyLoaded, name)
	}
	if _, ok := l.pending[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyLoaded, name)
	}
	l.pending[name] = struct{}{}
	return nil
}

// Unload removes every handler of the named extension and closes it.
func (l *Loader) Unload(name string) error {
	l.mu.Lock()
	ext, ok := l.loaded[name]
	delete(l.loaded, name)
	l.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotLoaded, name)
	}
	return l.unload(name, ext)
}

func (l *Loader) unload(name string, ext Extension) error {
	removed := l.kernel.Deregister(Owner(name))

	var closeErr error
	if c, ok := ext.(Closer); ok {
		if err := c.Close(); err != nil {
			closeErr = fmt.Errorf("close extension %s: %w", name, err)
		}
	}

	l.logger.WithFields(logrus.Fields{
		"function":  "Unload",
		"extension": name,
		"removed":   removed,
	}).Info("Unloaded extension")

	l.kernel.Raise(&events.ExtensionUnloadEvent{Name: name, Removed: removed})
	return closeErr
}

// UnloadAll unloads every extension in reverse name order and joins the
// close errors.
func (l *Loader) UnloadAll() error {
	l.mu.Lock()
	names := l.names()
	exts := make([]Extension, len(names))
	for i, name := range names {
		exts[i] = l.loaded[name]
	}
	clear(l.loaded)
	l.mu.Unlock()

	var errs []error
	for i := len(names) - 1; i >= 0; i-- {
		if err := l.unload(names[i], exts[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Loaded returns the sorted names of loaded extensions.
func (l *Loader) Loaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.names()
}

func (l *Loader) names() []string {
	names := make([]string, 0, len(l.loaded))
	for name := range l.loaded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
