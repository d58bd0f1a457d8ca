package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/groupsix/gymbook/internal/domain"
	"github.com/groupsix/gymbook/internal/kafka"
	"github.com/groupsix/gymbook/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Book(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) ListBySession(ctx context.Context, sessionID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(ctx context.Context, s *domain.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockScheduleRepository) List(ctx context.Context) ([]domain.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockScheduleRepository) ListByDateRange(ctx context.Context, start, end string) ([]domain.Session, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockScheduleRepository) Update(ctx context.Context, s *domain.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScheduleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduleRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateUpcoming(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func TestBookingService_Book_Success(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockSchedules := &MockScheduleRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, mockSchedules, mockCache, mockProducer, "booking_topic")

	ctx := context.Background()
	session := &domain.Session{ID: 7, Name: "Morning Yoga", Date: "2026-09-01", Time: "07:00", Capacity: 20, BookedCount: 3}

	mockBookings.On("Book", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mockCache.On("InvalidateUpcoming", ctx).Return(nil).Once()
	mockSchedules.On("GetByID", ctx, int64(7)).Return(session, nil).Once()
	mockProducer.On("Publish", ctx, "booking_topic", mock.Anything, mock.MatchedBy(func(v interface{}) bool {
		event, ok := v.(kafka.BookingEvent)
		return ok && event.Type == "booking_created" && event.SessionName == "Morning Yoga"
	})).Return(nil).Once()

	booking, err := service.Book(ctx, BookSessionInput{SessionID: 7, CustomerName: "Alice", CustomerEmail: "alice@example.com"})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.NotEmpty(t, booking.Reference)
	assert.Equal(t, int64(7), booking.SessionID)
	assert.Equal(t, "Alice", booking.CustomerName)

	mockBookings.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_Book_ValidationErrors(t *testing.T) {
	service := NewBookingService(&MockBookingRepository{}, &MockScheduleRepository{}, nil, nil, "")
	ctx := context.Background()

	testCases := []struct {
		name  string
		input BookSessionInput
	}{
		{name: "empty customer name", input: BookSessionInput{SessionID: 1, CustomerName: "  ", CustomerEmail: "a@b.com"}},
		{name: "empty email", input: BookSessionInput{SessionID: 1, CustomerName: "Alice", CustomerEmail: ""}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			booking, err := service.Book(ctx, tc.input)
			assert.Nil(t, booking)
			var vErr *domain.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestBookingService_Book_SessionFull(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, &MockScheduleRepository{}, nil, mockProducer, "booking_topic")

	ctx := context.Background()
	mockBookings.On("Book", ctx, mock.Anything).Return(domain.ErrSessionFull).Once()

	booking, err := service.Book(ctx, BookSessionInput{SessionID: 1, CustomerName: "Alice", CustomerEmail: "a@b.com"})

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, domain.ErrSessionFull)

	mockBookings.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_Book_PublishFailureDoesNotFailBooking(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockSchedules := &MockScheduleRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, mockSchedules, nil, mockProducer, "booking_topic")

	ctx := context.Background()
	mockBookings.On("Book", ctx, mock.Anything).Return(nil).Once()
	mockSchedules.On("GetByID", ctx, int64(1)).Return(nil, domain.ErrSessionNotFound).Once()
	mockProducer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	booking, err := service.Book(ctx, BookSessionInput{SessionID: 1, CustomerName: "Alice", CustomerEmail: "a@b.com"})

	assert.NoError(t, err)
	assert.NotNil(t, booking)

	mockProducer.AssertExpectations(t)
}

func TestBookingService_ListBySession_UnknownSession(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockSchedules := &MockScheduleRepository{}

	service := NewBookingService(mockBookings, mockSchedules, nil, nil, "")

	ctx := context.Background()
	mockSchedules.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrSessionNotFound).Once()

	bookings, err := service.ListBySession(ctx, 99)

	assert.Nil(t, bookings)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	mockBookings.AssertNotCalled(t, "ListBySession")
}

func TestBookingService_Book_CapacityBoundary(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewBookingService(store, store, nil, nil, "")

	ctx := context.Background()
	session := &domain.Session{Name: "Evening Pilates", Date: "2026-09-03", Time: "18:00", Capacity: 1}
	assert.NoError(t, store.Create(ctx, session))

	first, err := service.Book(ctx, BookSessionInput{SessionID: session.ID, CustomerName: "Alice", CustomerEmail: "alice@example.com"})
	assert.NoError(t, err)
	assert.NotNil(t, first)

	second, err := service.Book(ctx, BookSessionInput{SessionID: session.ID, CustomerName: "Bob", CustomerEmail: "bob@example.com"})
	assert.Nil(t, second)
	assert.ErrorIs(t, err, domain.ErrSessionFull)

	got, err := store.GetByID(ctx, session.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, got.BookedCount)
	assert.True(t, got.IsFull())
}

// Many customers race for a session with fewer spots than customers:
// exactly capacity bookings must win and the count must never overshoot.
func TestBookingService_Book_ConcurrentCustomers(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewBookingService(store, store, nil, nil, "")

	ctx := context.Background()
	const capacity = 5
	const customers = 20

	session := &domain.Session{Name: "HIIT Blast", Date: "2026-09-02", Time: "12:00", Capacity: capacity}
	assert.NoError(t, store.Create(ctx, session))

	var wg sync.WaitGroup
	results := make(chan error, customers)
	for i := 0; i < customers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := service.Book(ctx, BookSessionInput{
				SessionID:     session.ID,
				CustomerName:  fmt.Sprintf("Customer %d", n),
				CustomerEmail: fmt.Sprintf("customer%d@example.com", n),
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var booked, rejected int
	for err := range results {
		switch {
		case err == nil:
			booked++
		case errors.Is(err, domain.ErrSessionFull):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, capacity, booked)
	assert.Equal(t, customers-capacity, rejected)

	got, err := store.GetByID(ctx, session.ID)
	assert.NoError(t, err)
	assert.Equal(t, capacity, got.BookedCount)

	bookings, err := service.ListBySession(ctx, session.ID)
	assert.NoError(t, err)
	assert.Len(t, bookings, capacity)
}

func TestBookingService_Book_FillThenReject(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewBookingService(store, store, nil, nil, "")

	ctx := context.Background()
	session := &domain.Session{Name: "Morning Yoga", Date: "2026-09-05", Time: "07:00", Capacity: 2}
	assert.NoError(t, store.Create(ctx, session))

	for _, customer := range []struct{ name, email string }{
		{"Alice", "alice@example.com"},
		{"Bob", "bob@example.com"},
	} {
		booking, err := service.Book(ctx, BookSessionInput{SessionID: session.ID, CustomerName: customer.name, CustomerEmail: customer.email})
		assert.NoError(t, err)
		assert.NotEmpty(t, booking.Reference)
	}

	_, err := service.Book(ctx, BookSessionInput{SessionID: session.ID, CustomerName: "Carl", CustomerEmail: "carl@example.com"})
	assert.ErrorIs(t, err, domain.ErrSessionFull)

	bookings, err := service.ListBySession(ctx, session.ID)
	assert.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestBookingService_ListBySession_AfterSessionDelete(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewBookingService(store, store, nil, nil, "")

	ctx := context.Background()
	session := &domain.Session{Name: "Morning Yoga", Date: "2026-09-05", Time: "07:00", Capacity: 10}
	assert.NoError(t, store.Create(ctx, session))

	_, err := service.Book(ctx, BookSessionInput{SessionID: session.ID, CustomerName: "Alice", CustomerEmail: "alice@example.com"})
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, session.ID))

	_, err = service.ListBySession(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
