package wizard

import "fmt"

// State is a step of the booking wizard
type State int

const (
	ServiceSelection State = iota
	TherapistSelection
	DateTimeSelection
	CustomerDetails
	Confirmation
)

var stateNames = map[State]string{
	ServiceSelection:   "service_selection",
	TherapistSelection: "therapist_selection",
	DateTimeSelection:  "datetime_selection",
	CustomerDetails:    "customer_details",
	Confirmation:       "confirmation",
}

// String returns the snake_case name used in snapshots, metrics and the API
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Valid reports whether s is one of the defined states
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// ParseState converts a name produced by String back into a State
func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown state %q", ErrInvalidSnapshot, name)
}

func (s State) next() State {
	if s >= Confirmation {
		return Confirmation
	}
	return s + 1
}

func (s State) prev() State {
	if s <= ServiceSelection {
		return ServiceSelection
	}
	return s - 1
}
