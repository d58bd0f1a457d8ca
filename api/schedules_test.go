package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/groupsix/gymbook/internal/domain"
	"github.com/groupsix/gymbook/internal/service/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockScheduleUseCase struct {
	mock.Mock
}

func (m *MockScheduleUseCase) Create(ctx context.Context, input schedule.CreateSessionInput) (*domain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockScheduleUseCase) Get(ctx context.Context, id int64) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockScheduleUseCase) List(ctx context.Context) ([]domain.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockScheduleUseCase) ListToday(ctx context.Context) ([]domain.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockScheduleUseCase) ListUpcoming(ctx context.Context, days int) ([]domain.Session, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockScheduleUseCase) Update(ctx context.Context, id int64, input schedule.UpdateSessionInput) (*domain.Session, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockScheduleUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newAdminTestRouter(service schedule.ScheduleUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewScheduleHandler(service).RegisterAdmin(&router.RouterGroup)
	return router
}

func newCustomerTestRouter(service schedule.ScheduleUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewScheduleHandler(service).RegisterCustomer(&router.RouterGroup)
	return router
}

func TestScheduleHandler_Create(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	router := newAdminTestRouter(mockService)

	created := &domain.Session{ID: 1, Name: "Morning Yoga", Date: "2026-09-01", Time: "07:00", Capacity: 20}
	mockService.On("Create", mock.Anything, schedule.CreateSessionInput{Name: "Morning Yoga", Date: "2026-09-01", Time: "07:00", Capacity: 20}).Return(created, nil).Once()

	body := `{"name":"Morning Yoga","date":"2026-09-01","time":"07:00","capacity":20}`
	req := httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp sessionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 20, resp.Remaining)
	assert.False(t, resp.Full)

	mockService.AssertExpectations(t)
}

func TestScheduleHandler_Create_ValidationError(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	router := newAdminTestRouter(mockService)

	mockService.On("Create", mock.Anything, mock.Anything).Return(nil, domain.NewValidationError("name", "must not be empty")).Once()

	req := httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader(`{"name":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleHandler_Get_NotFound(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	router := newAdminTestRouter(mockService)

	mockService.On("Get", mock.Anything, int64(99)).Return(nil, domain.ErrSessionNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/schedules/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScheduleHandler_Get_InvalidID(t *testing.T) {
	router := newAdminTestRouter(&MockScheduleUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/schedules/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleHandler_Update_CapacityConflict(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	router := newAdminTestRouter(mockService)

	mockService.On("Update", mock.Anything, int64(3), mock.Anything).Return(nil, domain.ErrCapacityTooLow).Once()

	body := `{"name":"Evening Pilates","date":"2026-09-03","time":"18:00","capacity":1}`
	req := httptest.NewRequest(http.MethodPut, "/schedules/3", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestScheduleHandler_Delete(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	router := newAdminTestRouter(mockService)

	mockService.On("Delete", mock.Anything, int64(5)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/schedules/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestScheduleHandler_Upcoming_GroupedByDate(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	router := newCustomerTestRouter(mockService)

	sessions := []domain.Session{
		{ID: 1, Name: "Morning Yoga", Date: "2026-09-01", Time: "07:00", Capacity: 20},
		{ID: 2, Name: "HIIT Blast", Date: "2026-09-01", Time: "12:00", Capacity: 15},
		{ID: 3, Name: "Morning Yoga", Date: "2026-09-02", Time: "07:00", Capacity: 20},
	}
	mockService.On("ListUpcoming", mock.Anything, 0).Return(sessions, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var days []scheduleDay
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
	assert.Len(t, days, 2)
	assert.Equal(t, "2026-09-01", days[0].Date)
	assert.Len(t, days[0].Sessions, 2)
	assert.Equal(t, "2026-09-02", days[1].Date)
	assert.Len(t, days[1].Sessions, 1)
}

func TestScheduleHandler_Upcoming_CustomWindow(t *testing.T) {
	mockService := &MockScheduleUseCase{}
	router := newCustomerTestRouter(mockService)

	mockService.On("ListUpcoming", mock.Anything, 3).Return([]domain.Session{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/schedule?days=3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestScheduleHandler_Upcoming_InvalidWindow(t *testing.T) {
	router := newCustomerTestRouter(&MockScheduleUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/schedule?days=yesterday", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
