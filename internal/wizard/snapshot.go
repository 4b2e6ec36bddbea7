package wizard

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// Snapshot is the serializable state of a Flow kept between requests
type Snapshot struct {
	State     State           `json:"state"`
	Draft     domain.Draft    `json:"draft"`
	Confirmed *domain.Booking `json:"confirmed,omitempty"`
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: unknown state %d", ErrInvalidSnapshot, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Snapshot captures state, draft and confirmed booking
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		State:     f.state,
		Draft:     f.draft,
		Confirmed: f.confirmed.Clone(),
	}
}

// Restore replaces the flow state with a previously taken snapshot.
// A confirmed booking must be present exactly when the state is Confirmation.
func (f *Flow) Restore(snap Snapshot) error {
	if !snap.State.Valid() {
		return fmt.Errorf("%w: unknown state %d", ErrInvalidSnapshot, int(snap.State))
	}
	if (snap.State == Confirmation) != (snap.Confirmed != nil) {
		return fmt.Errorf("%w: state %s with confirmed=%t", ErrInvalidSnapshot, snap.State, snap.Confirmed != nil)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrBusy
	}
	f.state = snap.State
	f.draft = snap.Draft
	f.confirmed = snap.Confirmed.Clone()
	return nil
}
