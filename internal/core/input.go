package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // move the placement cursor up
	ActionDown           // move the placement cursor down
	ActionLeft           // move the placement cursor left
	ActionRight          // move the placement cursor right
	ActionConfirm        // Enter - place at cursor, confirm skills, next level
	ActionRemove         // X, Delete - remove the gadget under the cursor
	ActionBack           // Esc - go back to menu
	ActionRestart        // R - restart from level 1
	ActionRetry          // Space - retry the current level after a failed round
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause
	ActionBuyPipe        // 1
	ActionBuyBlock       // 2
	ActionBuyTurbo       // 3
	ActionBuyPad         // 4
	ActionBuyPortal      // 5
	ActionSpeedBoost     // B
	ActionStorm          // S
	ActionPadCharge      // D
	ActionSkill1         // Z
	ActionSkill2         // C
	ActionSkill3         // V
)

var actionNames = map[Action]string{
	ActionNone:       "None",
	ActionUp:         "Up",
	ActionDown:       "Down",
	ActionLeft:       "Left",
	ActionRight:      "Right",
	ActionConfirm:    "Confirm",
	ActionRemove:     "Remove",
	ActionBack:       "Back",
	ActionRestart:    "Restart",
	ActionRetry:      "Retry",
	ActionQuit:       "Quit",
	ActionPause:      "Pause",
	ActionBuyPipe:    "BuyPipe",
	ActionBuyBlock:   "BuyBlock",
	ActionBuyTurbo:   "BuyTurbo",
	ActionBuyPad:     "BuyPad",
	ActionBuyPortal:  "BuyPortal",
	ActionSpeedBoost: "SpeedBoost",
	ActionStorm:      "Storm",
	ActionPadCharge:  "PadCharge",
	ActionSkill1:     "Skill1",
	ActionSkill2:     "Skill2",
	ActionSkill3:     "Skill3",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Click is a pointer press in screen cells.
type Click struct {
	X, Y      int
	Secondary bool // right button
}

// InputFrame collects everything the player did during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Clicks are pointer presses in the order they arrived.
	Clicks []Click
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddClick queues a pointer press for this frame.
func (f *InputFrame) AddClick(c Click) {
	f.Clicks = append(f.Clicks, c)
}

// Clear resets all actions and clicks for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Clicks = f.Clicks[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Clicks = append([]Click(nil), f.Clicks...)
	return clone
}
