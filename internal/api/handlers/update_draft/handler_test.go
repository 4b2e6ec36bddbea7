package update_draft

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/service/sessions/models"
	"github.com/m04kA/SMC-SpaBooking/internal/wizard"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
)

type fakeService struct {
	got *models.UpdateDraftRequest
	err error
}

func (s *fakeService) UpdateDraft(_ context.Context, id string, req *models.UpdateDraftRequest) (*models.SessionResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.SessionResponse{SessionID: id, State: "customer_details"}, nil
}

func serve(svc SessionService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/sessions/{sessionId}/draft", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/sessions/s1/draft", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		svc := &fakeService{}
		rec := serve(svc, `{"time":"14:00","customer":{"phone":"0912345678"}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.got)
		assert.Nil(t, svc.got.ServiceID)
		assert.Nil(t, svc.got.Date)
		require.NotNil(t, svc.got.Time)
		assert.Equal(t, "14:00", *svc.got.Time)
		require.NotNil(t, svc.got.Customer)
		require.NotNil(t, svc.got.Customer.Phone)
		assert.Nil(t, svc.got.Customer.Name)
	})

	t.Run("unknown field", func(t *testing.T) {
		svc := &fakeService{}
		rec := serve(svc, `{"room":"3"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.got)
	})

	t.Run("empty body", func(t *testing.T) {
		rec := serve(&fakeService{}, ``)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("terminal session", func(t *testing.T) {
		rec := serve(&fakeService{err: wizard.ErrTerminalState}, `{"serviceId":"swedish"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
