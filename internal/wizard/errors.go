package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

var (
	// ErrValidation matches every *ValidationError
	ErrValidation = errors.New("wizard: validation failed")

	// ErrSlotConflict matches every *SlotConflictError
	ErrSlotConflict = errors.New("wizard: slot is already booked")

	// ErrStorage matches every *StorageError
	ErrStorage = errors.New("wizard: storage failure")

	// ErrBusy is returned while a submission is in flight
	ErrBusy = errors.New("wizard: submission already in progress")

	// ErrInvalidState is returned by Submit outside the customer details step
	ErrInvalidState = errors.New("wizard: operation not allowed in current state")

	// ErrTerminalState is returned when moving or editing a confirmed flow
	ErrTerminalState = errors.New("wizard: flow is confirmed, reset to start over")

	// ErrSubmitRequired is returned by Advance from the customer details step
	ErrSubmitRequired = errors.New("wizard: customer details are complete, submit to confirm")

	// ErrUnknownField is returned by SetCustomerField for a field outside the customer step
	ErrUnknownField = errors.New("wizard: unknown customer field")

	// ErrInvalidSnapshot is returned by Restore for a corrupted snapshot
	ErrInvalidSnapshot = errors.New("wizard: invalid snapshot")
)

// Reasons reported in FieldError
const (
	ReasonRequired      = "required"
	ReasonUnknown       = "unknown"
	ReasonUnavailable   = "unavailable"
	ReasonInvalidFormat = "invalid_format"
	ReasonInPast        = "in_past"
	ReasonNotASlot      = "not_a_slot"
	ReasonOutsideHours  = "outside_working_hours"
	ReasonTooLong       = "too_long"
)

// Field names reported in ValidationError
const (
	FieldServiceID     = "serviceId"
	FieldTherapistID   = "therapistId"
	FieldDate          = "date"
	FieldTime          = "time"
	FieldCustomerName  = "customer.name"
	FieldCustomerPhone = "customer.phone"
	FieldCustomerEmail = "customer.email"
	FieldCustomerNotes = "customer.notes"
)

// FieldError names one field that failed a gate
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every field that blocks leaving Step
type ValidationError struct {
	Step   State
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Reason
	}
	return fmt.Sprintf("%s: step %s: %s", ErrValidation, e.Step, strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FieldNames returns the names of the failed fields in gate order
func (e *ValidationError) FieldNames() []string {
	return fieldNames(e.Fields)
}

// SlotConflictError reports that the chosen slot was taken before submission committed
type SlotConflictError struct {
	Date        types.Date
	Time        types.TimeString
	TherapistID string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%s: date=%s time=%s therapist=%s", ErrSlotConflict, e.Date, e.Time, e.TherapistID)
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

// StorageError wraps a repository failure seen during submission
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
