// Package app wires configuration, logging, grammars, the editing session,
// the renderer and a terminal backend into the running editor.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/onree/internal/config"
	"github.com/dshills/onree/internal/config/watcher"
	"github.com/dshills/onree/internal/editor"
	"github.com/dshills/onree/internal/engine/document"
	"github.com/dshills/onree/internal/renderer"
	"github.com/dshills/onree/internal/renderer/backend"
	"github.com/dshills/onree/internal/renderer/core"
	"github.com/dshills/onree/internal/renderer/highlight"
)

// HelpMessage is shown in the message bar at startup.
const HelpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses the default.
	ConfigPath string

	// File is opened on startup. Empty starts with an unnamed document.
	File string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// LogFile overrides logging.file when set.
	LogFile string

	// Logger replaces the file logger built from configuration.
	Logger *Logger

	// DisableWatcher turns off config and grammar reloading.
	DisableWatcher bool
}

// Application is the running editor.
type Application struct {
	mu sync.Mutex

	id   uuid.UUID
	opts Options

	config    *config.Config
	logger    *Logger
	logCloser io.Closer

	grammars *highlight.Registry
	themes   *highlight.ThemeRegistry
	watcher  *watcher.Watcher

	backend  backend.Backend
	renderer *renderer.Renderer
	session  *editor.Session
	metrics  *Metrics

	running       atomic.Bool
	reloadPending atomic.Bool
	done          chan struct{}
	stopOnce      sync.Once
}

// New loads configuration, sets up logging and grammars and opens
// opts.File. Configuration errors are logged and the defaults used.
func New(opts Options) (*Application, error) {
	app := &Application{
		id:       uuid.New(),
		opts:     opts,
		grammars: highlight.DefaultRegistry(),
		themes:   highlight.NewThemeRegistry(),
		metrics:  NewMetrics(),
		done:     make(chan struct{}),
	}

	var cfgOpts []config.Option
	if opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithPath(opts.ConfigPath))
	}
	app.config = config.New(cfgOpts...)
	cfgErr := app.config.Load(context.Background())

	if err := app.initLogger(); err != nil {
		return nil, &ComponentError{Component: "logging", Action: "init", Err: err}
	}
	app.logger.Info("onree %s starting", editor.Version)
	if cfgErr != nil {
		app.logger.WithComponent("config").Warn("using defaults: %v", cfgErr)
	}

	app.loadGrammars()
	app.applyTheme()

	edCfg := app.config.Editor()
	doc := document.New(
		document.WithTabStop(edCfg.TabStop),
		document.WithRegistry(app.grammars),
		document.WithLogger(app.logger.WithComponent("document")),
	)
	if opts.File != "" {
		if err := OpenFile(doc, opts.File); err != nil {
			_ = app.closeLog()
			return nil, err
		}
		app.logger.Info("opened %s: %d rows", opts.File, doc.NumRows())
	}

	app.session = editor.New(doc, 1, 1,
		editor.WithQuitTimes(edCfg.QuitTimes),
		editor.WithMessageTimeout(edCfg.MessageTimeout),
		editor.WithSaveFunc(SaveFile),
		editor.WithLogger(app.logger.WithComponent("editor")),
	)
	app.session.SetStatus(HelpMessage)
	return app, nil
}

func (app *Application) initLogger() error {
	if app.opts.Logger != nil {
		app.logger = app.opts.Logger.WithField("session", app.id.String())
		app.logCloser = nopCloser{}
		return nil
	}

	logCfg := app.config.Logging()
	if app.opts.LogLevel != "" {
		logCfg.Level = app.opts.LogLevel
	}
	if app.opts.LogFile != "" {
		logCfg.File = app.opts.LogFile
	}
	l, closer, err := NewFileLogger(logCfg)
	if err != nil {
		return err
	}
	app.logger = l.WithField("session", app.id.String())
	app.logCloser = closer
	return nil
}

// loadGrammars registers user grammar files on top of the built-ins.
func (app *Application) loadGrammars() {
	dir := app.config.Grammars().Dir
	n, err := highlight.LoadDir(app.grammars, dir)
	log := app.logger.WithComponent("grammars")
	if err != nil {
		log.Warn("%v", err)
	}
	if n > 0 {
		log.Info("loaded %d grammars from %s", n, dir)
	}
}

// applyTheme selects the configured theme and applies the match color
// override.
func (app *Application) applyTheme() {
	ui := app.config.UI()
	log := app.logger.WithComponent("theme")
	if !app.themes.SetCurrent(ui.Theme) {
		log.Warn("unknown theme %q, using %s", ui.Theme, app.themes.Current().Name)
	}
	if app.renderer != nil {
		app.renderer.SetTheme(app.theme())
	}
}

// theme returns the current theme with the configured match color.
func (app *Application) theme() *highlight.Theme {
	base := app.themes.Current()
	hex := app.config.UI().MatchColor
	if hex == "" {
		return base
	}
	c, err := core.ColorFromHex(hex)
	if err != nil {
		app.logger.WithComponent("theme").Warn("ui.matchColor: %v", err)
		return base
	}

	t := *base
	t.ClassStyles = make(map[highlight.Class]core.Style, len(base.ClassStyles))
	for k, v := range base.ClassStyles {
		t.ClassStyles[k] = v
	}
	t.ClassStyles[highlight.ClassMatch] = t.StyleFor(highlight.ClassMatch).WithBackground(c)
	return &t
}

// SetBackend sets the display backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend and processes events until the session
// quits or Shutdown is called.
func (app *Application) Run() error {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := b.Init(); err != nil {
		return &ComponentError{Component: "backend", Action: "init", Err: err}
	}
	defer b.Shutdown()

	app.renderer = renderer.New(b, app.theme())
	app.renderer.SetWelcome(fmt.Sprintf("ONREE Editor --- Version %s", editor.Version))
	w, _ := app.renderer.Size()
	app.session.Resize(app.renderer.TextRows(), w)

	if !app.opts.DisableWatcher {
		app.startWatcher(b)
		defer app.watcher.Stop()
	}

	err := app.eventLoop(b)
	app.logger.WithFields(app.metrics.Snapshot().Fields()).Debug("event loop stopped")
	return err
}

func (app *Application) eventLoop(b backend.Backend) error {
	for {
		select {
		case <-app.done:
			return nil
		default:
		}

		app.draw()

		quit, err := app.handleEvent(b.PollEvent())
		if err != nil {
			return err
		}
		if quit {
			app.logger.Info("quit")
			return nil
		}
	}
}

func (app *Application) draw() {
	start := time.Now()
	app.session.Scroll()
	app.renderer.Render(app.session)
	app.metrics.RecordRender(time.Since(start))
}

// handleEvent applies one backend event. A panic in the editor is returned
// as a RecoveredPanicError.
func (app *Application) handleEvent(ev backend.Event) (quit bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			app.logger.Error("%v", err)
		}
	}()

	switch ev.Type {
	case backend.EventKey:
		start := time.Now()
		kerr := app.session.HandleKey(ev.Key)
		app.metrics.RecordKey(time.Since(start))
		if errors.Is(kerr, editor.ErrQuit) {
			return true, nil
		}
		if kerr != nil {
			return false, kerr
		}
		app.reloadIfPending()
	case backend.EventResize:
		app.metrics.RecordResize()
		app.renderer.Resize(ev.Width, ev.Height)
		app.session.Resize(app.renderer.TextRows(), ev.Width)
	case backend.EventInterrupt:
		app.reloadIfPending()
	}
	return false, nil
}

// startWatcher watches the config file and grammar directory. Changes
// are handed to the event loop as interrupts.
func (app *Application) startWatcher(b backend.Backend) {
	log := app.logger.WithComponent("watcher")
	app.watcher = watcher.New(watcher.WithErrorHandler(func(err error) {
		log.Warn("%v", err)
	}))

	if err := app.watcher.Watch(app.config.Path()); err != nil {
		log.Warn("watch %s: %v", app.config.Path(), err)
	}
	if dir := app.config.Grammars().Dir; dir != "" {
		if err := app.watcher.WatchDir(dir); err != nil {
			log.Warn("watch %s: %v", dir, err)
		}
	}
	app.watcher.OnChange(func(ev watcher.Event) {
		log.Debug("%s %s", ev.Op, ev.Path)
		app.reloadPending.Store(true)
		b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	})
	if err := app.watcher.Start(); err != nil {
		log.Warn("start: %v", err)
	}
}

// reloadIfPending reloads configuration, theme and grammars. A reload
// requested while a prompt is open runs on the first event after the
// prompt closes, so the search overlay never holds a stale snapshot.
func (app *Application) reloadIfPending() {
	if app.session.Prompting() || !app.reloadPending.Swap(false) {
		return
	}
	if err := app.Reload(context.Background()); err != nil {
		app.session.SetStatus("Config error: %v", err)
	}
}

// Reload re-reads configuration and grammar files and reapplies them to the
// open document. Settings fixed at startup, such as the tab stop, keep their
// values. On a configuration error the previous settings stay in effect.
func (app *Application) Reload(ctx context.Context) error {
	oldDir := app.config.Grammars().Dir
	if err := app.config.Load(ctx); err != nil {
		app.logger.WithComponent("config").Warn("reload: %v", err)
		return err
	}
	app.logger.SetLevel(ParseLogLevel(app.config.Logging().Level))
	if newDir := app.config.Grammars().Dir; newDir != oldDir {
		app.moveGrammarWatch(oldDir, newDir)
	}

	app.loadGrammars()
	app.applyTheme()

	doc := app.session.Doc
	doc.SetGrammar(app.grammars.Select(doc.Filename()))
	app.metrics.RecordReload()
	app.logger.Info("configuration reloaded")
	return nil
}

// moveGrammarWatch points the watcher at a new grammar directory.
func (app *Application) moveGrammarWatch(oldDir, newDir string) {
	if app.watcher == nil {
		return
	}
	log := app.logger.WithComponent("watcher")
	if oldDir != "" {
		if err := app.watcher.Unwatch(oldDir); err != nil {
			log.Warn("unwatch %s: %v", oldDir, err)
		}
	}
	if newDir != "" {
		if err := app.watcher.WatchDir(newDir); err != nil {
			log.Warn("watch %s: %v", newDir, err)
		}
	}
}

// Shutdown stops the event loop. It is safe to call more than once and
// from any goroutine.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
		app.mu.Lock()
		b := app.backend
		app.mu.Unlock()
		if b != nil && app.running.Load() {
			b.PostEvent(backend.Event{Type: backend.EventInterrupt})
		}
	})
}

// Close releases the log file. Call it after Run returns.
func (app *Application) Close() error {
	return app.closeLog()
}

func (app *Application) closeLog() error {
	if app.logCloser == nil {
		return nil
	}
	err := app.logCloser.Close()
	app.logCloser = nil
	if err != nil {
		return fmt.Errorf("closing log: %w", err)
	}
	return nil
}

// ID returns the application session identifier.
func (app *Application) ID() uuid.UUID { return app.id }

// Config returns the configuration.
func (app *Application) Config() *config.Config { return app.config }

// Session returns the editing session.
func (app *Application) Session() *editor.Session { return app.session }

// Grammars returns the grammar registry.
func (app *Application) Grammars() *highlight.Registry { return app.grammars }

// Themes returns the theme registry.
func (app *Application) Themes() *highlight.ThemeRegistry { return app.themes }

// Metrics returns the event loop metrics.
func (app *Application) Metrics() *Metrics { return app.metrics }

// Logger returns the application logger.
func (app *Application) Logger() *Logger { return app.logger }

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool { return app.running.Load() }
