package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-SpaBooking/internal/availability"
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Flow is the booking wizard of a single session.
// It owns the draft, gates every forward transition and performs the final
// submission against the repository. Operations are expected to be
// sequential; the mutex only protects the single in-flight submission.
type Flow struct {
	repo         BookingRepository
	catalog      Catalog
	timeProvider TimeProvider
	logger       Logger

	mu         sync.Mutex
	state      State
	draft      domain.Draft
	confirmed  *domain.Booking
	submitting bool
}

// NewFlow creates a flow in ServiceSelection with an empty draft.
// A nil timeProvider falls back to the wall clock.
func NewFlow(repo BookingRepository, catalog Catalog, timeProvider TimeProvider, logger Logger) *Flow {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Flow{
		repo:         repo,
		catalog:      catalog,
		timeProvider: timeProvider,
		logger:       logger,
		state:        ServiceSelection,
	}
}

// State returns the current step
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the draft
func (f *Flow) Draft() domain.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Confirmed returns a copy of the created booking, or nil before Confirmation
func (f *Flow) Confirmed() *domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmed.Clone()
}

// SelectService sets the service id without validating it
func (f *Flow) SelectService(id string) error {
	return f.mutate(func(d *domain.Draft) { d.ServiceID = id })
}

// SelectTherapist sets the therapist id without validating it
func (f *Flow) SelectTherapist(id string) error {
	return f.mutate(func(d *domain.Draft) { d.TherapistID = id })
}

// SelectDateTime sets date and time without validating them
func (f *Flow) SelectDateTime(date types.Date, t types.TimeString) error {
	return f.mutate(func(d *domain.Draft) {
		d.Date = date
		d.Time = t
	})
}

// SetCustomerField sets one customer field without validating its value
func (f *Flow) SetCustomerField(field domain.CustomerField, value string) error {
	var set func(c *domain.Customer)
	switch field {
	case domain.CustomerFieldName:
		set = func(c *domain.Customer) { c.Name = value }
	case domain.CustomerFieldPhone:
		set = func(c *domain.Customer) { c.Phone = value }
	case domain.CustomerFieldEmail:
		set = func(c *domain.Customer) { c.Email = value }
	case domain.CustomerFieldNotes:
		set = func(c *domain.Customer) { c.Notes = value }
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return f.mutate(func(d *domain.Draft) { set(&d.Customer) })
}

func (f *Flow) mutate(apply func(d *domain.Draft)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrBusy
	}
	if f.state == Confirmation {
		return ErrTerminalState
	}
	apply(&f.draft)
	return nil
}

// Advance moves to the next step if the current gate passes.
// On failure the state is unchanged and a *ValidationError lists every blocking field.
func (f *Flow) Advance() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrBusy
	}
	if f.state == Confirmation {
		return ErrTerminalState
	}

	if fields := f.gate(f.state, f.draft); len(fields) > 0 {
		f.logger.Warn("BookingFlow.Advance: gate %s failed: %v", f.state, fieldNames(fields))
		return &ValidationError{Step: f.state, Fields: fields}
	}

	if f.state == CustomerDetails {
		return ErrSubmitRequired
	}

	from := f.state
	f.state = f.state.next()
	f.logger.Info("BookingFlow.Advance: %s -> %s", from, f.state)
	return nil
}

// Retreat moves to the previous step keeping all fields. No-op at ServiceSelection.
func (f *Flow) Retreat() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrBusy
	}
	if f.state == Confirmation {
		return ErrTerminalState
	}

	f.state = f.state.prev()
	return nil
}

// Reset clears the draft and the confirmed booking and returns to ServiceSelection
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrBusy
	}

	f.state = ServiceSelection
	f.draft = domain.Draft{}
	f.confirmed = nil
	return nil
}

// Submit re-checks the slot against a fresh roster and creates the booking.
//
// A taken slot yields *SlotConflictError and moves the flow back to
// DateTimeSelection; a repository failure yields *StorageError and keeps
// CustomerDetails with the draft intact. A second call while one is
// pending returns ErrBusy.
func (f *Flow) Submit(ctx context.Context) (*domain.Booking, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	if f.state != CustomerDetails {
		state := f.state
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: Submit - state %s", ErrInvalidState, state)
	}
	if fields := f.gate(CustomerDetails, f.draft); len(fields) > 0 {
		f.mu.Unlock()
		f.logger.Warn("BookingFlow.Submit: gate failed: %v", fieldNames(fields))
		return nil, &ValidationError{Step: CustomerDetails, Fields: fields}
	}
	draft := f.draft
	f.submitting = true
	f.mu.Unlock()

	created, err := f.submit(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			f.state = DateTimeSelection
		}
		return nil, err
	}

	f.state = Confirmation
	f.confirmed = created.Clone()
	return created, nil
}

func (f *Flow) submit(ctx context.Context, draft domain.Draft) (*domain.Booking, error) {
	f.logger.Info("BookingFlow.Submit: service=%s, therapist=%s, date=%s, time=%s",
		draft.ServiceID, draft.TherapistID, draft.Date, draft.Time)

	// 1. Caller may already have given up
	if err := ctx.Err(); err != nil {
		return nil, &StorageError{Op: "submit", Err: err}
	}

	// 2. Fresh roster for the chosen day and therapist
	roster, err := f.repo.List(ctx, domain.BookingsFilter{
		Date:        &draft.Date,
		TherapistID: &draft.TherapistID,
	})
	if err != nil {
		f.logger.Error("BookingFlow.Submit: failed to list bookings: %v", err)
		return nil, &StorageError{Op: "list", Err: err}
	}

	// 3. Re-check the slot
	if !availability.IsAvailable(roster, draft.Date, draft.Time, draft.TherapistID) {
		f.logger.Warn("BookingFlow.Submit: slot taken, date=%s, time=%s, therapist=%s",
			draft.Date, draft.Time, draft.TherapistID)
		return nil, f.conflict(draft)
	}

	// 4. Build the record with denormalized catalog data
	booking := f.buildBooking(draft)

	// 5. Persist
	created, err := f.repo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			f.logger.Warn("BookingFlow.Submit: slot taken concurrently, date=%s, time=%s, therapist=%s",
				draft.Date, draft.Time, draft.TherapistID)
			return nil, f.conflict(draft)
		}
		f.logger.Error("BookingFlow.Submit: failed to create booking: %v", err)
		return nil, &StorageError{Op: "create", Err: err}
	}
	if created == nil || created.ID == "" {
		return nil, &StorageError{Op: "create", Err: errors.New("repository returned booking without id")}
	}

	f.logger.Info("BookingFlow.Submit: booking id=%s confirmed", created.ID)
	return created, nil
}

func (f *Flow) conflict(d domain.Draft) error {
	return &SlotConflictError{Date: d.Date, Time: d.Time, TherapistID: d.TherapistID}
}

func (f *Flow) buildBooking(d domain.Draft) *domain.Booking {
	b := &domain.Booking{
		ServiceID:     d.ServiceID,
		TherapistID:   d.TherapistID,
		Date:          d.Date,
		Time:          d.Time,
		Customer:      trimCustomer(d.Customer),
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPending,
	}
	if service, ok := f.catalog.Service(d.ServiceID); ok {
		b.ServiceName = service.Name
		b.ServicePrice = service.Price
		b.DurationMinutes = service.DurationMinutes
	}
	if therapist, ok := f.catalog.Therapist(d.TherapistID); ok {
		b.TherapistName = therapist.Name
	}
	return b
}

func fieldNames(fields []FieldError) []string {
	names := make([]string, len(fields))
	for i, fe := range fields {
		names[i] = fe.Field
	}
	return names
}
