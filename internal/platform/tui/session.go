package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/eggtrail/internal/config"
	"github.com/vovakirdan/eggtrail/internal/core"
	"github.com/vovakirdan/eggtrail/internal/registry"
	"github.com/vovakirdan/eggtrail/internal/storage"
)

// SessionOptions configure one player session.
type SessionOptions struct {
	GameID     string
	Levels     []config.LevelConfig
	StartLevel int // when > 0 the session skips the menu
	User       string
	Logger     *log.Logger
}

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeGame
	modeBoard
)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the scoreboard reachable from the menu. It is the top-level model for
// local play and for SSH sessions.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	opts      SessionOptions
	logger    *log.Logger
	mode      sessionMode
	menu      MenuModel
	board     ScoreboardModel
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.User != "" {
		logger = logger.With("user", opts.User)
	}

	return SessionModel{
		store:  store,
		config: cfg,
		opts:   opts,
		logger: logger,
		menu:   NewMenuModel(store, cfg, opts.GameID, opts.Levels),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.opts.StartLevel > 0 {
		return func() tea.Msg { return startLevelMsg(m.opts.StartLevel) }
	}
	return m.menu.Init()
}

// startLevelMsg asks the session to start a game on a level.
type startLevelMsg int

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case startLevelMsg:
		return m.startGame(int(msg))
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeBoard:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		m.mode = modeBoard
		m.board = NewScoreboardModel(m.store, m.opts.GameID, m.config.ScreenW, m.config.ScreenH)
		return m, m.board.Init()
	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().Level)
	}
	return m, cmd
}

// startGame creates a game on level and switches to it.
func (m SessionModel) startGame(level int) (tea.Model, tea.Cmd) {
	game, err := registry.Create(m.opts.GameID)
	if err != nil {
		m.logger.Error("cannot create game", "game", m.opts.GameID, "err", err)
		m.quitting = true
		return m, tea.Quit
	}
	if s, ok := game.(levelStarter); ok {
		s.StartAt(level)
	}
	m.logger.Info("game started", "level", level)

	gameModel := NewGameModel(game, m.store, m.config, m.logger)
	m.gameModel = &gameModel
	m.mode = modeGame
	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		m.toMenu()
		// The pending tick of the old game is dropped by the menu.
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateBoard handles updates when the scoreboard is open.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.board = board
	}

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		m.toMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// toMenu rebuilds the menu so it shows fresh level records.
func (m *SessionModel) toMenu() {
	m.mode = modeMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.store, m.config, m.opts.GameID, m.opts.Levels)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeGame:
		return m.gameModel.View()
	case modeBoard:
		return m.board.View()
	}
	return m.menu.View()
}

// InGame reports whether a game is on screen.
func (m SessionModel) InGame() bool {
	return m.mode == modeGame
}

// Run starts a local session in the terminal.
func Run(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
