package gradient

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for file watch events.
const DefaultWatchDebounce = 500 * time.Millisecond

// configWatcher reloads the animator when its configuration file changes.
type configWatcher struct {
	watcher   *fsnotify.Watcher
	filePath  string
	debounce  time.Duration
	onReload  func() error
	onError   func(error)
	stopCh    chan struct{}
	stoppedCh chan struct{}
	mu        sync.Mutex
	started   bool
	stopped   bool
}

// newConfigWatcher creates a watcher for filePath.
// onReload is called once per burst of changes; its error goes to onError,
// as do watcher errors.
func newConfigWatcher(filePath string, debounce time.Duration, onReload func() error, onError func(error)) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	// Editors that save by rename replace the file's inode, so the directory
	// is watched instead of the file.
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &configWatcher{
		watcher:   watcher,
		filePath:  filePath,
		debounce:  debounce,
		onReload:  onReload,
		onError:   onError,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}, nil
}

// Start begins watching in a goroutine. It does nothing after Stop.
func (cw *configWatcher) Start() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.started || cw.stopped {
		return
	}
	cw.started = true
	go cw.watchLoop()
}

// Stop stops the watcher and waits for its goroutine. Safe to call more
// than once and without Start.
func (cw *configWatcher) Stop() {
	cw.mu.Lock()
	if cw.stopped {
		cw.mu.Unlock()
		return
	}
	cw.stopped = true
	started := cw.started
	cw.mu.Unlock()

	if !started {
		cw.watcher.Close()
		return
	}
	close(cw.stopCh)
	<-cw.stoppedCh
}

// matches reports whether event touches the watched file in a way that can
// change its content.
func (cw *configWatcher) matches(event fsnotify.Event, absPath string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if filepath.Base(event.Name) == filepath.Base(cw.filePath) {
		return true
	}
	eventAbs, err := filepath.Abs(event.Name)
	return err == nil && eventAbs == absPath
}

func (cw *configWatcher) watchLoop() {
	defer close(cw.stoppedCh)
	defer cw.watcher.Close()

	absPath, _ := filepath.Abs(cw.filePath)

	// pending fires once the file has been quiet for the debounce interval.
	var pending *time.Timer
	var fire <-chan time.Time
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !cw.matches(event, absPath) {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(cw.debounce)
			} else {
				pending.Reset(cw.debounce)
			}
			fire = pending.C

		case <-fire:
			fire = nil
			if cw.onReload == nil {
				continue
			}
			if err := cw.onReload(); err != nil && cw.onError != nil {
				cw.onError(err)
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			if cw.onError != nil {
				cw.onError(err)
			}
		}
	}
}
