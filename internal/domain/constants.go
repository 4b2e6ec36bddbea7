package domain

import "github.com/m04kA/SMC-SpaBooking/pkg/types"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxCustomerNameLength = 100
	MaxPhoneLength        = 32
	MaxEmailLength        = 254
	MaxNotesLength        = 500
)

// DefaultTimeSlots is the fixed list of bookable start times
var DefaultTimeSlots = []types.TimeString{
	"09:00", "10:30", "12:00", "13:30", "15:00", "16:30", "18:00", "19:30",
}

// CustomerField names a field of the customer step
type CustomerField string

const (
	CustomerFieldName  CustomerField = "name"
	CustomerFieldPhone CustomerField = "phone"
	CustomerFieldEmail CustomerField = "email"
	CustomerFieldNotes CustomerField = "notes"
)

// Draft is the in-progress booking owned by one wizard session.
// Empty values mean "not selected yet".
type Draft struct {
	ServiceID   string           `json:"serviceId"`
	TherapistID string           `json:"therapistId"`
	Date        types.Date       `json:"date"`
	Time        types.TimeString `json:"time"`
	Customer    Customer         `json:"customer"`
}

// IsEmpty reports whether nothing has been filled in
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}
