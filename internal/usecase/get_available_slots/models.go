package get_available_slots

import (
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TherapistID string     // ID массажиста
	ServiceID   string     // ID услуги (опционально, для длительности)
	Date        types.Date // Дата в формате YYYY-MM-DD
}

// Response модель ответа со списком слотов
type Response struct {
	Date            types.Date // Дата, на которую запрашивались слоты
	TherapistID     string     // ID массажиста
	TherapistName   string     // Имя массажиста
	ServiceID       string     // ID услуги, если была указана
	DurationMinutes int        // Длительность услуги, 0 если услуга не указана
	Slots           []Slot     // Слоты в рабочие часы массажиста
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:30")
	Available bool             // Слот свободен у массажиста
}
