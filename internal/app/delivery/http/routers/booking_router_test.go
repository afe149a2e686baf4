package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eduvoyage-service/internal/app/config"
	"eduvoyage-service/internal/app/delivery/http/controllers"
	"eduvoyage-service/internal/app/delivery/http/middlewares"
	"eduvoyage-service/internal/pkg/dto/requests"
	"eduvoyage-service/internal/pkg/dto/responses"
	"eduvoyage-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAvailabilityUsecase struct {
	mock.Mock
}

func (m *MockAvailabilityUsecase) GetDaySlots(ctx context.Context, date string) ([]responses.TimeSlot, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.TimeSlot), args.Error(1)
}

type MockBookingUsecase struct {
	mock.Mock
}

func (m *MockBookingUsecase) Create(ctx context.Context, request *requests.CreateBooking) (*responses.BookingConfirmation, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.BookingConfirmation), args.Error(1)
}

func (m *MockBookingUsecase) Reschedule(ctx context.Context, capability requests.Capability, request *requests.RescheduleBooking) (*responses.BookingConfirmation, error) {
	args := m.Called(ctx, capability, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.BookingConfirmation), args.Error(1)
}

func (m *MockBookingUsecase) Cancel(ctx context.Context, capability requests.Capability) error {
	args := m.Called(ctx, capability)
	return args.Error(0)
}

func newTestRouter(availabilityUsecase *MockAvailabilityUsecase, bookingUsecase *MockBookingUsecase) *chi.Mux {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix: "api",
			Version:        "v1",
			FrontendDomain: "https://eduvoyage.example",
			MaxRequests:    100,
		},
	}

	availabilityController := &controllers.AvailabilityController{Log: logger, AvailabilityUsecase: availabilityUsecase}
	bookingController := &controllers.BookingController{Log: logger, BookingUsecase: bookingUsecase}
	mws := &middlewares.Middlewares{Log: logger, InternalConfig: internalConfig}

	router := chi.NewRouter()
	router.Use(mws.RequestIDMiddleware)
	SetupRoutes(router, internalConfig, mws, availabilityController, bookingController)
	return router
}

func TestHealthzEndpoint(t *testing.T) {
	router := newTestRouter(new(MockAvailabilityUsecase), new(MockBookingUsecase))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	availabilityUsecase := new(MockAvailabilityUsecase)
	availabilityUsecase.On("GetDaySlots", mock.Anything, "2026-09-07").Return([]responses.TimeSlot{
		{Time: "09:00"},
		{Time: "09:30", Disabled: true, Reason: "busy"},
	}, nil)
	router := newTestRouter(availabilityUsecase, new(MockBookingUsecase))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/availability?date=2026-09-07", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var response responses.ResponseDTO
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	availabilityUsecase.AssertExpectations(t)
}

func TestAvailabilityEndpointMissingDate(t *testing.T) {
	router := newTestRouter(new(MockAvailabilityUsecase), new(MockBookingUsecase))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/availability", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingEndpoint(t *testing.T) {
	bookingUsecase := new(MockBookingUsecase)
	bookingUsecase.On("Create", mock.Anything, mock.Anything).Return(&responses.BookingConfirmation{
		EventID: "828840291",
		Date:    "2026-09-07",
		Time:    "10:00",
	}, nil)
	router := newTestRouter(new(MockAvailabilityUsecase), bookingUsecase)

	body, _ := json.Marshal(requests.CreateBooking{
		Name:  "Mina Rahman",
		Email: "mina@example.com",
		Date:  "2026-09-07",
		Time:  "10:00",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/bookings", bytes.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	bookingUsecase.AssertExpectations(t)
}

func TestCreateBookingEndpointValidation(t *testing.T) {
	router := newTestRouter(new(MockAvailabilityUsecase), new(MockBookingUsecase))

	body, _ := json.Marshal(requests.CreateBooking{
		Name:  "Mina Rahman",
		Email: "not-an-email",
		Date:  "2026-09-07",
		Time:  "10:00",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/bookings", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelEndpointRejection(t *testing.T) {
	bookingUsecase := new(MockBookingUsecase)
	bookingUsecase.On("Cancel", mock.Anything, requests.Capability{}).
		Return(exceptions.ErrCapabilityRejected())
	router := newTestRouter(new(MockAvailabilityUsecase), bookingUsecase)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/bookings/cancel", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
