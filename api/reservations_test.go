package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skydesk/reservations/internal/auth"
	"github.com/skydesk/reservations/internal/domain"
	"github.com/skydesk/reservations/internal/service/reservation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReservationUseCase struct {
	mock.Mock
}

func (m *MockReservationUseCase) Create(ctx context.Context, input reservation.CreateReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Update(ctx context.Context, id int64, input reservation.UpdateReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) Cancel(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockReservationUseCase) List(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func authedRouter(service reservation.ReservationUseCase, identity *auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api")
	if identity != nil {
		group.Use(func(c *gin.Context) { c.Set(identityKey, identity) })
	}
	NewReservationHandler(service).Register(group)
	return router
}

func clientIdentity() *auth.Identity {
	return &auth.Identity{UserID: 1, Username: "ada", Role: domain.RoleClient}
}

func createBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"flight_id":  7,
		"passengers": 2,
		"class":      "economy",
		"passengers_details": []map[string]string{
			{"name": "Ada Lovelace", "passport_number": "P1"},
			{"name": "Alan Turing", "passport_number": "P2"},
		},
	})
	assert.NoError(t, err)
	return bytes.NewBuffer(payload)
}

func TestReservationHandler_Create(t *testing.T) {
	service := &MockReservationUseCase{}
	router := authedRouter(service, clientIdentity())

	service.On("Create", mock.Anything, mock.MatchedBy(func(input reservation.CreateReservationInput) bool {
		return input.UserID == 1 && input.FlightID == 7 && input.Passengers == 2
	})).Return(&domain.Reservation{ID: 5, Reference: "ref-1", UserID: 1, FlightID: 7, Passengers: 2, Status: domain.ReservationStatusConfirmed}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", createBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "ref-1")
	service.AssertExpectations(t)
}

func TestReservationHandler_Create_CapacityConflict(t *testing.T) {
	service := &MockReservationUseCase{}
	router := authedRouter(service, clientIdentity())

	service.On("Create", mock.Anything, mock.Anything).
		Return(nil, domain.ErrInsufficientCapacity).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", createBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"capacity"`)
}

func TestReservationHandler_Create_MissingIdentity(t *testing.T) {
	service := &MockReservationUseCase{}
	router := authedRouter(service, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", createBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	service.AssertNotCalled(t, "Create")
}

func TestReservationHandler_List_ScopedToCaller(t *testing.T) {
	service := &MockReservationUseCase{}
	router := authedRouter(service, clientIdentity())

	service.On("List", mock.Anything, int64(1)).
		Return([]domain.Reservation{{ID: 5, UserID: 1}}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reservations", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestReservationHandler_Update_NotFound(t *testing.T) {
	service := &MockReservationUseCase{}
	router := authedRouter(service, clientIdentity())

	service.On("Update", mock.Anything, int64(999), mock.Anything).
		Return(nil, domain.ErrNotFound).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/reservations/999", createBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"not_found"`)
}

func TestReservationHandler_Update_BadID(t *testing.T) {
	service := &MockReservationUseCase{}
	router := authedRouter(service, clientIdentity())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/reservations/abc", createBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Update")
}

func TestReservationHandler_Cancel(t *testing.T) {
	service := &MockReservationUseCase{}
	router := authedRouter(service, clientIdentity())

	service.On("Cancel", mock.Anything, int64(5), int64(1)).Return(nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reservations/5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestReservationHandler_Cancel_ConsistencyFailure(t *testing.T) {
	service := &MockReservationUseCase{}
	router := authedRouter(service, clientIdentity())

	service.On("Cancel", mock.Anything, int64(5), int64(1)).
		Return(domain.ErrConsistency).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reservations/5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"consistency"`)
}
