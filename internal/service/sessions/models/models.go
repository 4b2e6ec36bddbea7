package models

import (
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	bookingModels "github.com/m04kA/SMC-SpaBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SpaBooking/internal/wizard"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Request модели

// CustomerPatch частичное обновление контактов клиента
type CustomerPatch struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// UpdateDraftRequest частичное обновление черновика.
// Отсутствующие поля не меняются; значения не проверяются до перехода на следующий шаг.
type UpdateDraftRequest struct {
	ServiceID   *string        `json:"serviceId,omitempty"`
	TherapistID *string        `json:"therapistId,omitempty"`
	Date        *string        `json:"date,omitempty"`
	Time        *string        `json:"time,omitempty"`
	Customer    *CustomerPatch `json:"customer,omitempty"`
}

// IsEmpty возвращает true, если запрос ничего не меняет
func (r *UpdateDraftRequest) IsEmpty() bool {
	if r.ServiceID != nil || r.TherapistID != nil || r.Date != nil || r.Time != nil {
		return false
	}
	if r.Customer == nil {
		return true
	}
	c := r.Customer
	return c.Name == nil && c.Phone == nil && c.Email == nil && c.Notes == nil
}

// CustomerFields возвращает изменяемые поля клиента в фиксированном порядке
func (p *CustomerPatch) CustomerFields() []CustomerFieldValue {
	if p == nil {
		return nil
	}
	fields := make([]CustomerFieldValue, 0, 4)
	if p.Name != nil {
		fields = append(fields, CustomerFieldValue{Field: domain.CustomerFieldName, Value: *p.Name})
	}
	if p.Phone != nil {
		fields = append(fields, CustomerFieldValue{Field: domain.CustomerFieldPhone, Value: *p.Phone})
	}
	if p.Email != nil {
		fields = append(fields, CustomerFieldValue{Field: domain.CustomerFieldEmail, Value: *p.Email})
	}
	if p.Notes != nil {
		fields = append(fields, CustomerFieldValue{Field: domain.CustomerFieldNotes, Value: *p.Notes})
	}
	return fields
}

// CustomerFieldValue одно поле клиента со значением
type CustomerFieldValue struct {
	Field domain.CustomerField
	Value string
}

// Response модели

// DraftResponse черновик бронирования
type DraftResponse struct {
	ServiceID   string          `json:"serviceId"`
	TherapistID string          `json:"therapistId"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Customer    domain.Customer `json:"customer"`
}

// SessionResponse состояние сессии мастера
type SessionResponse struct {
	SessionID string                         `json:"sessionId"`
	State     string                         `json:"state"`
	Step      int                            `json:"step"` // 1..5
	Draft     DraftResponse                  `json:"draft"`
	Booking   *bookingModels.BookingResponse `json:"booking,omitempty"`
}

// FromSnapshot конвертирует снапшот мастера в DTO
func FromSnapshot(id string, snap wizard.Snapshot) *SessionResponse {
	return &SessionResponse{
		SessionID: id,
		State:     snap.State.String(),
		Step:      int(snap.State) + 1,
		Draft:     fromDraft(snap.Draft),
		Booking:   bookingModels.FromDomainBooking(snap.Confirmed),
	}
}

func fromDraft(d domain.Draft) DraftResponse {
	return DraftResponse{
		ServiceID:   d.ServiceID,
		TherapistID: d.TherapistID,
		Date:        d.Date.String(),
		Time:        d.Time.String(),
		Customer:    d.Customer,
	}
}

// DateTime возвращает дату и время из запроса, дополняя отсутствующие значения текущими
func (r *UpdateDraftRequest) DateTime(current domain.Draft) (types.Date, types.TimeString) {
	date, t := current.Date, current.Time
	if r.Date != nil {
		date = types.Date(*r.Date)
	}
	if r.Time != nil {
		t = types.TimeString(*r.Time)
	}
	return date, t
}
