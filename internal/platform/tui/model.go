package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blast/internal/core"
	"github.com/vovakirdan/blast/internal/registry"
	"github.com/vovakirdan/blast/internal/storage"
)

// Cues receives the audible side of game events.
type Cues interface {
	Cleared(size int)
	Rejected()
	Recreated()
}

// SessionStore records finished sessions.
type SessionStore interface {
	SaveSession(rec storage.Session) (int64, error)
}

// Env carries the optional collaborators of a game model. Nil fields
// disable the feature.
type Env struct {
	Store  SessionStore
	Cues   Cues
	Logger *log.Logger
}

// shaped games report their board dimensions for session records.
type shaped interface {
	Shape() (rows, columns, colors int)
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	env        Env
	keyMapper  *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	started    time.Time
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, env Env, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if env.Logger == nil {
		env.Logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		env:        env,
		keyMapper:  NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		started:    time.Now(),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.env.Logger.Info("session started", "variant", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) || m.inputFrame.Has(core.ActionBack) {
		m.endSession()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize follows the terminal size. Games that cannot resize in place
// are restarted.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	m.restart(m.config.Seed)
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.endSession()
		m.restart(time.Now().UnixNano())
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.playCues(result.Events)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart deals a new board with the given seed.
func (m *Model) restart(seed int64) {
	m.config.Seed = seed
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.started = time.Now()
	m.env.Logger.Info("session started", "variant", m.game.ID(), "seed", seed)
}

// playCues forwards tick events to the audio cues.
func (m *Model) playCues(events []core.Event) {
	for _, ev := range events {
		m.env.Logger.Debug("event", "kind", ev.Kind, "size", ev.Size)
		if m.env.Cues == nil {
			continue
		}
		switch ev.Kind {
		case core.EventCleared:
			m.env.Cues.Cleared(ev.Size)
		case core.EventRejected:
			m.env.Cues.Rejected()
		case core.EventRecreated:
			m.env.Cues.Recreated()
		}
	}
}

// endSession records the session when anything was played.
func (m *Model) endSession() {
	rec, ok := sessionRecord(m.game, m.gameState, m.config.Seed, time.Since(m.started))
	if !ok || m.env.Store == nil {
		return
	}
	if _, err := m.env.Store.SaveSession(rec); err != nil {
		m.env.Logger.Warn("session not saved", "variant", rec.Variant, "err", err)
		return
	}
	m.env.Logger.Info("session saved", "variant", rec.Variant,
		"selections", rec.Selections, "cleared", rec.TilesCleared)
}

// sessionRecord builds the stored form of a session. Sessions without a
// single accepted selection are not worth keeping.
func sessionRecord(game registry.Game, st core.GameState, seed int64, played time.Duration) (storage.Session, bool) {
	if st.Failed || st.Selections == 0 {
		return storage.Session{}, false
	}
	rec := storage.Session{
		Variant:      game.ID(),
		Seed:         seed,
		Selections:   st.Selections,
		TilesCleared: st.Cleared,
		LargestGroup: st.LargestGroup,
		Recreations:  st.Recreations,
		Duration:     played,
	}
	if s, ok := game.(shaped); ok {
		rec.Rows, rec.Columns, rec.Colors = s.Shape()
	}
	return rec, true
}

// saveScreenshot saves the current screen to ~/.blast/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".blast", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.env.Logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.Logger.Warn("screenshot failed", "err", err)
		return
	}
	m.env.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for one game.
func Run(game registry.Game, env Env, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, env, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
