package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// gate returns every field that blocks leaving step.
// Gates are cumulative: leaving a step also re-checks all earlier steps,
// so a field cleared after its step was passed still blocks advancing.
func (f *Flow) gate(step State, d domain.Draft) []FieldError {
	var fields []FieldError
	for s := ServiceSelection; s <= step && s < Confirmation; s++ {
		switch s {
		case ServiceSelection:
			fields = append(fields, f.serviceGate(d)...)
		case TherapistSelection:
			fields = append(fields, f.therapistGate(d)...)
		case DateTimeSelection:
			fields = append(fields, f.dateTimeGate(d)...)
		case CustomerDetails:
			fields = append(fields, customerGate(d.Customer)...)
		}
	}
	return fields
}

func (f *Flow) serviceGate(d domain.Draft) []FieldError {
	if d.ServiceID == "" {
		return []FieldError{{Field: FieldServiceID, Reason: ReasonRequired}}
	}
	service, ok := f.catalog.Service(d.ServiceID)
	if !ok {
		return []FieldError{{Field: FieldServiceID, Reason: ReasonUnknown}}
	}
	if !service.IsActive {
		return []FieldError{{Field: FieldServiceID, Reason: ReasonUnavailable}}
	}
	return nil
}

func (f *Flow) therapistGate(d domain.Draft) []FieldError {
	if d.TherapistID == "" {
		return []FieldError{{Field: FieldTherapistID, Reason: ReasonRequired}}
	}
	therapist, ok := f.catalog.Therapist(d.TherapistID)
	if !ok {
		return []FieldError{{Field: FieldTherapistID, Reason: ReasonUnknown}}
	}
	if !therapist.IsAvailable {
		return []FieldError{{Field: FieldTherapistID, Reason: ReasonUnavailable}}
	}
	return nil
}

func (f *Flow) dateTimeGate(d domain.Draft) []FieldError {
	var fields []FieldError

	dateOK := false
	switch {
	case d.Date.IsZero():
		fields = append(fields, FieldError{Field: FieldDate, Reason: ReasonRequired})
	case d.Date.Validate() != nil:
		fields = append(fields, FieldError{Field: FieldDate, Reason: ReasonInvalidFormat})
	case d.Date.IsBefore(types.NewDate(f.timeProvider.Now())):
		fields = append(fields, FieldError{Field: FieldDate, Reason: ReasonInPast})
	default:
		dateOK = true
	}

	switch {
	case d.Time.IsZero():
		fields = append(fields, FieldError{Field: FieldTime, Reason: ReasonRequired})
	case d.Time.Validate() != nil:
		fields = append(fields, FieldError{Field: FieldTime, Reason: ReasonInvalidFormat})
	case !f.catalog.IsTimeSlot(d.Time):
		fields = append(fields, FieldError{Field: FieldTime, Reason: ReasonNotASlot})
	case dateOK && !f.therapistWorks(d):
		fields = append(fields, FieldError{Field: FieldTime, Reason: ReasonOutsideHours})
	}

	return fields
}

// therapistWorks checks working hours only; an unknown therapist
// is reported by therapistGate
func (f *Flow) therapistWorks(d domain.Draft) bool {
	therapist, ok := f.catalog.Therapist(d.TherapistID)
	if !ok {
		return true
	}
	weekday, err := d.Date.Weekday()
	if err != nil {
		return true
	}
	return therapist.WorksAt(weekday, d.Time)
}

func customerGate(c domain.Customer) []FieldError {
	var fields []FieldError

	checks := []struct {
		field    string
		value    string
		required bool
		max      int
	}{
		{field: FieldCustomerName, value: c.Name, required: true, max: domain.MaxCustomerNameLength},
		{field: FieldCustomerPhone, value: c.Phone, required: true, max: domain.MaxPhoneLength},
		{field: FieldCustomerEmail, value: c.Email, max: domain.MaxEmailLength},
		{field: FieldCustomerNotes, value: c.Notes, max: domain.MaxNotesLength},
	}

	for _, ch := range checks {
		v := strings.TrimSpace(ch.value)
		switch {
		case ch.required && v == "":
			fields = append(fields, FieldError{Field: ch.field, Reason: ReasonRequired})
		case utf8.RuneCountInString(v) > ch.max:
			fields = append(fields, FieldError{Field: ch.field, Reason: ReasonTooLong})
		}
	}

	return fields
}

func trimCustomer(c domain.Customer) domain.Customer {
	return domain.Customer{
		Name:  strings.TrimSpace(c.Name),
		Phone: strings.TrimSpace(c.Phone),
		Email: strings.TrimSpace(c.Email),
		Notes: strings.TrimSpace(c.Notes),
	}
}
