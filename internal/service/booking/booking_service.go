// Package booking is the booking ledger: it records reservations and
// guards the capacity invariant at booking time.
package booking

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/groupsix/gymbook/internal/domain"
	"github.com/groupsix/gymbook/internal/kafka"
	"github.com/groupsix/gymbook/internal/repository"
)

type BookingUseCase interface {
	Book(ctx context.Context, input BookSessionInput) (*domain.Booking, error)
	ListBySession(ctx context.Context, sessionID int64) ([]domain.Booking, error)
}

// Cache is the slice of the schedule cache bookings need to touch.
type Cache interface {
	InvalidateUpcoming(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookSessionInput struct {
	SessionID     int64  `json:"session_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

type BookingService struct {
	bookings           repository.BookingRepository
	schedules          repository.ScheduleRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	schedules repository.ScheduleRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		schedules:    schedules,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book validates the customer fields and hands the capacity decision to
// the store, where the check and the increment are one atomic unit. A
// full session or an unknown id comes back as a domain error; nothing
// is retried here.
func (s *BookingService) Book(ctx context.Context, input BookSessionInput) (*domain.Booking, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, domain.NewValidationError("customer_name", "must not be empty")
	}
	email := strings.TrimSpace(input.CustomerEmail)
	if email == "" {
		return nil, domain.NewValidationError("customer_email", "must not be empty")
	}

	booking := &domain.Booking{
		SessionID:     input.SessionID,
		Reference:     uuid.NewString(),
		CustomerName:  name,
		CustomerEmail: email,
	}
	if err := s.bookings.Book(ctx, booking); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateUpcoming(ctx)
	}
	s.publishCreated(ctx, booking)
	return booking, nil
}

func (s *BookingService) ListBySession(ctx context.Context, sessionID int64) ([]domain.Booking, error) {
	if _, err := s.schedules.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.bookings.ListBySession(ctx, sessionID)
}

// publishCreated is best-effort: the booking is already committed, so a
// broker hiccup only costs the notification.
func (s *BookingService) publishCreated(ctx context.Context, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}

	event := kafka.BookingEvent{
		Type:          "booking_created",
		Reference:     booking.Reference,
		SessionID:     booking.SessionID,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		BookingTime:   booking.BookingTime,
	}
	if session, err := s.schedules.GetByID(ctx, booking.SessionID); err == nil {
		event.SessionName = session.Name
		event.SessionDate = session.Date
		event.SessionTime = session.Time
	}

	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		log.Printf("WARNING: failed to publish booking_created for %s: %v", booking.Reference, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			log.Printf("WARNING: failed to publish notification for %s: %v", booking.Reference, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
