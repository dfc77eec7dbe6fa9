package tui

import (
	"context"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/onair/internal/config"
	"github.com/tessro/onair/internal/core"
	"github.com/tessro/onair/internal/feed"
	"github.com/tessro/onair/internal/logging"
	"github.com/tessro/onair/internal/messages"
	"github.com/tessro/onair/internal/metadata"
	"github.com/tessro/onair/internal/player"
	"github.com/tessro/onair/internal/schedule"
)

// Deps are the services the dashboard drives.
type Deps struct {
	Config     *config.Config
	ConfigPath string
	Clock      clock.Clock
	Output     player.Output
	Store      messages.Store
	Metadata   *metadata.Client
	// Copy writes text to the clipboard. Defaults to the system clipboard.
	Copy func(text string) error
}

// App owns the dashboard's background resources: the schedule clock, the
// metadata subscription, the message rotation, the file watcher and the
// player. Close releases all of them.
type App struct {
	cfg        *config.Config
	configPath string
	clock      clock.Clock
	copyText   func(string) error

	player   *player.Controller
	meta     *metadata.Client
	store    messages.Store
	feed     *feed.Presenter
	resolver *schedule.Resolver

	mu          sync.Mutex
	send        func(tea.Msg)
	sub         *metadata.Subscription
	watchCancel context.CancelFunc
	started     bool
	closeOnce   sync.Once
}

// NewApp wires the dashboard's services. Nothing runs until Start.
func NewApp(d Deps) *App {
	if d.Clock == nil {
		d.Clock = clock.New()
	}
	if d.Copy == nil {
		d.Copy = clipboard.WriteAll
	}

	a := &App{
		cfg:        d.Config,
		configPath: d.ConfigPath,
		clock:      d.Clock,
		copyText:   d.Copy,
		meta:       d.Metadata,
		store:      d.Store,
	}

	a.player = player.New(d.Output,
		player.WithVolume(d.Config.Player.VolumeLevel()),
		player.WithEventHandler(func(e player.Event) { a.dispatch(playerEventMsg(e)) }),
	)

	a.feed = feed.New(d.Store, feed.Options{
		Clock:          d.Clock,
		RotateInterval: d.Config.Messages.RotateEvery(),
		FadeDuration:   d.Config.Messages.Fade(),
		Passphrase:     d.Config.Moderator.Passphrase,
		OnFrame:        func(f feed.Frame) { a.dispatch(frameMsg(f)) },
	})

	a.resolver = schedule.NewResolver(d.Config.Programs, d.Config.Schedule.Every(), d.Clock,
		func(s schedule.Status) { a.dispatch(statusMsg(s)) })

	return a
}

// SetSender sets where background updates are delivered.
func (a *App) SetSender(send func(tea.Msg)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.send = send
}

func (a *App) dispatch(msg tea.Msg) {
	a.mu.Lock()
	send := a.send
	a.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// Programs returns the configured schedule.
func (a *App) Programs() []core.Program {
	return a.cfg.Programs
}

// Start launches the background resources. Calling it again does nothing.
func (a *App) Start() {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.mu.Unlock()

	a.resolver.Start()

	sub := a.meta.Subscribe(func(title string) { a.dispatch(titleMsg(title)) })

	if err := a.feed.Start(); err != nil {
		a.dispatch(errMsg{err})
	}

	var watchCancel context.CancelFunc
	if fs, ok := a.store.(*messages.FileStore); ok {
		ctx, cancel := context.WithCancel(context.Background())
		if err := messages.Watch(ctx, fs.Path(), func() { a.dispatch(messagesChangedMsg{}) }); err != nil {
			cancel()
			logging.Debug("not watching message file", logging.Err(err))
		} else {
			watchCancel = cancel
		}
	}

	a.mu.Lock()
	a.sub = sub
	a.watchCancel = watchCancel
	a.mu.Unlock()
}

// Close stops everything Start launched and releases the player and store.
// It is safe to call more than once.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		a.mu.Lock()
		sub, watchCancel := a.sub, a.watchCancel
		a.mu.Unlock()

		a.resolver.Cancel()
		if sub != nil {
			sub.Unsubscribe()
		}
		a.feed.Stop()
		if watchCancel != nil {
			watchCancel()
		}
		if cerr := a.player.Close(); cerr != nil {
			err = cerr
		}
		if cerr := a.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	})
	return err
}

// Run starts the dashboard and blocks until the user quits.
func Run(app *App) error {
	model := NewModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen())
	app.SetSender(p.Send)

	_, err := p.Run()
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	return err
}
