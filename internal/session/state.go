package session

// State is the step of the booking flow a session is in.
type State int

const (
	Loading State = iota
	Ready
	TimeSelected
	TableSelected
	GuestCountSelected
	Confirming
	Submitted
	Cancelled
)

var stateNames = map[State]string{
	Loading:            "loading",
	Ready:              "ready",
	TimeSelected:       "time_selected",
	TableSelected:      "table_selected",
	GuestCountSelected: "guest_count_selected",
	Confirming:         "confirming",
	Submitted:          "submitted",
	Cancelled:          "cancelled",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether the session is finished.
func (s State) Terminal() bool {
	return s == Submitted || s == Cancelled
}

// Event is a guest action or an outcome that moves the session.
type Event int

const (
	EvStarted Event = iota
	EvTimeSet
	EvTimeCleared
	EvPickerOpened
	EvTableSelected
	EvGuestsChanged
	EvGuestsConfirmed
	EvReviewed
	EvLapsed
	EvSubmitted
	EvClosed
	EvAbandoned
)

var eventNames = map[Event]string{
	EvStarted:         "start",
	EvTimeSet:         "set time",
	EvTimeCleared:     "clear time",
	EvPickerOpened:    "open table picker",
	EvTableSelected:   "select table",
	EvGuestsChanged:   "change guests",
	EvGuestsConfirmed: "confirm guests",
	EvReviewed:        "review",
	EvLapsed:          "revalidate",
	EvSubmitted:       "submit",
	EvClosed:          "close",
	EvAbandoned:       "abandon",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// transitions lists every allowed State x Event pair and its target.
// A missing pair is forbidden; terminal states have no row.
var transitions = map[State]map[Event]State{
	Loading: {
		EvStarted:   Ready,
		EvAbandoned: Cancelled,
	},
	Ready: {
		EvTimeSet:     TimeSelected,
		EvTimeCleared: Ready,
		EvClosed:      Ready,
		EvAbandoned:   Cancelled,
	},
	TimeSelected: {
		EvTimeSet:       TimeSelected,
		EvTimeCleared:   Ready,
		EvPickerOpened:  TimeSelected,
		EvTableSelected: TableSelected,
		EvClosed:        TimeSelected,
		EvAbandoned:     Cancelled,
	},
	TableSelected: {
		EvTimeSet:         TimeSelected,
		EvTimeCleared:     Ready,
		EvPickerOpened:    TableSelected,
		EvTableSelected:   TableSelected,
		EvGuestsChanged:   TableSelected,
		EvGuestsConfirmed: GuestCountSelected,
		EvClosed:          TimeSelected,
		EvAbandoned:       Cancelled,
	},
	GuestCountSelected: {
		EvTimeSet:       TimeSelected,
		EvTimeCleared:   Ready,
		EvPickerOpened:  GuestCountSelected,
		EvTableSelected: TableSelected,
		EvReviewed:      Confirming,
		EvLapsed:        TimeSelected,
		EvClosed:        TableSelected,
		EvAbandoned:     Cancelled,
	},
	Confirming: {
		EvTimeSet:     TimeSelected,
		EvTimeCleared: Ready,
		EvLapsed:      TimeSelected,
		EvSubmitted:   Submitted,
		EvClosed:      GuestCountSelected,
		EvAbandoned:   Cancelled,
	},
}

// next looks up the target of ev from s.
func next(s State, ev Event) (State, error) {
	target, ok := transitions[s][ev]
	if !ok {
		return s, &TransitionError{From: s, Event: ev}
	}
	return target, nil
}
