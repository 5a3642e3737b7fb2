package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/eggtrail/internal/core"
)

// GameKeyMap defines the key bindings used while a round is on screen.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Confirm    key.Binding
	Remove     key.Binding
	Back       key.Binding
	Restart    key.Binding
	Retry      key.Binding
	Pause      key.Binding
	BuyPipe    key.Binding
	BuyBlock   key.Binding
	BuyTurbo   key.Binding
	BuyPad     key.Binding
	BuyPortal  key.Binding
	SpeedBoost key.Binding
	Storm      key.Binding
	PadCharge  key.Binding
	Skill1     key.Binding
	Skill2     key.Binding
	Skill3     key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Remove, k.Back, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Confirm, k.Remove},
		{k.BuyPipe, k.BuyBlock, k.BuyTurbo, k.BuyPad, k.BuyPortal},
		{k.SpeedBoost, k.Storm, k.PadCharge, k.Skill1, k.Skill2, k.Skill3},
		{k.Back, k.Retry, k.Restart, k.Pause, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "cursor up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "cursor down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "cursor left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "cursor right")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "place / start / next")),
		Remove:     key.NewBinding(key.WithKeys("x", "delete", "backspace"), key.WithHelp("x", "remove")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel / menu")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Retry:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "retry level")),
		Pause:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		BuyPipe:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "pipe")),
		BuyBlock:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "block")),
		BuyTurbo:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "turbo")),
		BuyPad:     key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "pad")),
		BuyPortal:  key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "portal")),
		SpeedBoost: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "speed boost")),
		Storm:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "storm")),
		PadCharge:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "pad charge")),
		Skill1:     key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "super egg")),
		Skill2:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "coin rain")),
		Skill3:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "rapid fire")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key and mouse messages to game input.
// This centralizes bindings and makes them testable.
type KeyMapper struct {
	keys     GameKeyMap
	bindings []actionBinding
}

type actionBinding struct {
	binding *key.Binding
	action  core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{keys: DefaultGameKeyMap()}
	k := &km.keys
	km.bindings = []actionBinding{
		{&k.Up, core.ActionUp},
		{&k.Down, core.ActionDown},
		{&k.Left, core.ActionLeft},
		{&k.Right, core.ActionRight},
		{&k.Confirm, core.ActionConfirm},
		{&k.Remove, core.ActionRemove},
		{&k.Back, core.ActionBack},
		{&k.Restart, core.ActionRestart},
		{&k.Retry, core.ActionRetry},
		{&k.Pause, core.ActionPause},
		{&k.BuyPipe, core.ActionBuyPipe},
		{&k.BuyBlock, core.ActionBuyBlock},
		{&k.BuyTurbo, core.ActionBuyTurbo},
		{&k.BuyPad, core.ActionBuyPad},
		{&k.BuyPortal, core.ActionBuyPortal},
		{&k.SpeedBoost, core.ActionSpeedBoost},
		{&k.Storm, core.ActionStorm},
		{&k.PadCharge, core.ActionPadCharge},
		{&k.Skill1, core.ActionSkill1},
		{&k.Skill2, core.ActionSkill2},
		{&k.Skill3, core.ActionSkill3},
	}
	return km
}

// Keys returns the bindings for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.keys.Quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.bindings {
		if key.Matches(msg, *b.binding) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MapMouse turns a button press into a click. Motion, release and wheel
// events are ignored.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) (core.Click, bool) {
	if msg.Action != tea.MouseActionPress {
		return core.Click{}, false
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		return core.Click{X: msg.X, Y: msg.Y}, true
	case tea.MouseButtonRight:
		return core.Click{X: msg.X, Y: msg.Y, Secondary: true}, true
	}
	return core.Click{}, false
}

// MapMouseToFrame records a button press in an input frame.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	if c, ok := km.MapMouse(msg); ok {
		frame.AddClick(c)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScores
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScores
	}
	return MenuActionNone
}
