package sim

// EventType names something that happened inside the world.
type EventType int

const (
	EventBallSpawned EventType = iota
	EventBallCompleted
	EventPurchased
	EventGadgetPlaced
	EventGadgetUpgraded
	EventGadgetRemoved
	EventGadgetExpired
	EventRoundReset
	EventRoundStarted
	EventRoundWon
	EventRoundEnded
	EventStormReward
	EventPowerupCollected
	EventPadScattered
	EventPortalState
	EventPortalInfused
	EventTeleported
	EventBoostStarted
	EventBoostEnded
)

var eventNames = map[EventType]string{
	EventBallSpawned:      "ball_spawned",
	EventBallCompleted:    "ball_completed",
	EventPurchased:        "purchased",
	EventGadgetPlaced:     "gadget_placed",
	EventGadgetUpgraded:   "gadget_upgraded",
	EventGadgetRemoved:    "gadget_removed",
	EventGadgetExpired:    "gadget_expired",
	EventRoundReset:       "round_reset",
	EventRoundStarted:     "round_started",
	EventRoundWon:         "round_won",
	EventRoundEnded:       "round_ended",
	EventStormReward:      "storm_reward",
	EventPowerupCollected: "powerup_collected",
	EventPadScattered:     "pad_scattered",
	EventPortalState:      "portal_state",
	EventPortalInfused:    "portal_infused",
	EventTeleported:       "teleported",
	EventBoostStarted:     "boost_started",
	EventBoostEnded:       "boost_ended",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is a domain event for the presentation layer. Fields that do not
// apply to a type are zero.
type Event struct {
	Type   EventType
	Level  int
	Kind   Kind
	Charge Charge
	ID     int
	Value  int
	Result RoundResult
}

// maxEvents bounds the queue when nobody drains it.
const maxEvents = 1024

func (w *World) emit(e Event) {
	if len(w.events) >= maxEvents {
		w.events = append(w.events[:0], w.events[1:]...)
	}
	w.events = append(w.events, e)
}

// DrainEvents returns the queued events and empties the queue.
func (w *World) DrainEvents() []Event {
	out := w.events
	w.events = nil
	return out
}
