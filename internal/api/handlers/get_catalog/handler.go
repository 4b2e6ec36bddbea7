package get_catalog

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

type Handler struct {
	catalog Catalog
	logger  Logger
}

func NewHandler(catalog Catalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/catalog
// Отдает активные услуги, массажистов и список слотов.
// ?specialty= оставляет только массажистов с этой специализацией.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services := h.catalog.ActiveServices()
	therapists := filterBySpecialty(h.catalog.Therapists(), strings.TrimSpace(r.URL.Query().Get("specialty")))

	slots := h.catalog.TimeSlots()
	slotStrings := make([]string, len(slots))
	for i, slot := range slots {
		slotStrings[i] = slot.String()
	}

	h.logger.Info("GET /catalog - Catalog retrieved: services=%d, therapists=%d", len(services), len(therapists))
	handlers.RespondJSON(w, http.StatusOK, FromCatalog(services, therapists, slotStrings))
}

func filterBySpecialty(therapists []domain.Therapist, specialty string) []domain.Therapist {
	if specialty == "" {
		return therapists
	}

	filtered := make([]domain.Therapist, 0, len(therapists))
	for i := range therapists {
		if therapists[i].HasSpecialty(specialty) {
			filtered = append(filtered, therapists[i])
		}
	}
	return filtered
}
