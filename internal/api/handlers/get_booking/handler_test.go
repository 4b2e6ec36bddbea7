package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SpaBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SpaBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
)

type fakeService struct {
	booking *models.BookingResponse
	err     error
	gotID   string
}

func (s *fakeService) GetByID(_ context.Context, id string) (*models.BookingResponse, error) {
	s.gotID = id
	return s.booking, s.err
}

func serve(svc BookingService, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeService{booking: &models.BookingResponse{ID: "b-1", Status: "confirmed", Time: "09:00"}}

		rec := serve(svc, "/bookings/b-1")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "b-1", svc.gotID)

		var body models.BookingResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "b-1", body.ID)
		assert.Equal(t, "09:00", body.Time)
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"invalid id", fmt.Errorf("%w: empty booking id", bookings.ErrInvalidInput), http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "/bookings/b-1")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_Handle_MalformedID(t *testing.T) {
	svc := bookings.NewService(memory.NewBookingRepository(nil), logger.NewNop())

	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
