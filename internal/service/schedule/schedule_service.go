// Package schedule is the session catalog: it owns the CRUD lifecycle
// of gym sessions and the date filters the two interfaces browse with.
package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/groupsix/gymbook/internal/domain"
	"github.com/groupsix/gymbook/internal/repository"
)

// DefaultCapacity is applied when a new session does not specify one.
const DefaultCapacity = 20

const dateLayout = "2006-01-02"

type ScheduleUseCase interface {
	Create(ctx context.Context, input CreateSessionInput) (*domain.Session, error)
	Get(ctx context.Context, id int64) (*domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	ListToday(ctx context.Context) ([]domain.Session, error)
	ListUpcoming(ctx context.Context, days int) ([]domain.Session, error)
	Update(ctx context.Context, id int64, input UpdateSessionInput) (*domain.Session, error)
	Delete(ctx context.Context, id int64) error
}

// Cache holds the customer-facing upcoming window. A nil cache is
// valid; everything then goes straight to the store.
type Cache interface {
	GetUpcoming(ctx context.Context) ([]domain.Session, error)
	SetUpcoming(ctx context.Context, sessions []domain.Session) error
	InvalidateUpcoming(ctx context.Context) error
}

type CreateSessionInput struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Capacity int    `json:"capacity"`
}

type UpdateSessionInput struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Capacity int    `json:"capacity"`
}

type ScheduleService struct {
	repo         repository.ScheduleRepository
	cache        Cache
	upcomingDays int
}

func NewScheduleService(repo repository.ScheduleRepository, cache Cache, upcomingDays int) *ScheduleService {
	return &ScheduleService{repo: repo, cache: cache, upcomingDays: upcomingDays}
}

func (s *ScheduleService) Create(ctx context.Context, input CreateSessionInput) (*domain.Session, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}
	date, timeOfDay, err := validateDateTime(input.Date, input.Time)
	if err != nil {
		return nil, err
	}
	capacity := input.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if capacity < 0 {
		return nil, domain.NewValidationError("capacity", "must be a positive integer")
	}

	session := &domain.Session{Name: name, Date: date, Time: timeOfDay, Capacity: capacity}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return session, nil
}

func (s *ScheduleService) Get(ctx context.Context, id int64) (*domain.Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ScheduleService) List(ctx context.Context) ([]domain.Session, error) {
	return s.repo.List(ctx)
}

func (s *ScheduleService) ListToday(ctx context.Context) ([]domain.Session, error) {
	today := time.Now().Format(dateLayout)
	return s.repo.ListByDateRange(ctx, today, today)
}

// ListUpcoming returns sessions in [today, today+days], both ends
// inclusive by wall-clock date. The customer window (days <= 0 falls
// back to the configured one) is served from cache when possible.
func (s *ScheduleService) ListUpcoming(ctx context.Context, days int) ([]domain.Session, error) {
	if days <= 0 {
		days = s.upcomingDays
	}

	cacheable := s.cache != nil && days == s.upcomingDays
	if cacheable {
		if cached, err := s.cache.GetUpcoming(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	now := time.Now()
	start := now.Format(dateLayout)
	end := now.AddDate(0, 0, days).Format(dateLayout)
	sessions, err := s.repo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if cacheable {
		_ = s.cache.SetUpcoming(ctx, sessions)
	}
	return sessions, nil
}

func (s *ScheduleService) Update(ctx context.Context, id int64, input UpdateSessionInput) (*domain.Session, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}
	date, timeOfDay, err := validateDateTime(input.Date, input.Time)
	if err != nil {
		return nil, err
	}
	if input.Capacity <= 0 {
		return nil, domain.NewValidationError("capacity", "must be a positive integer")
	}

	session := &domain.Session{ID: id, Name: name, Date: date, Time: timeOfDay, Capacity: input.Capacity}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.repo.GetByID(ctx, id)
}

func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ScheduleService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateUpcoming(ctx)
	}
}

func validateDateTime(date, timeOfDay string) (string, string, error) {
	date = strings.TrimSpace(date)
	timeOfDay = strings.TrimSpace(timeOfDay)
	if date == "" {
		return "", "", domain.NewValidationError("date", "must not be empty")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", "", domain.NewValidationError("date", "must be YYYY-MM-DD")
	}
	if timeOfDay == "" {
		return "", "", domain.NewValidationError("time", "must not be empty")
	}
	return date, timeOfDay, nil
}

var _ ScheduleUseCase = (*ScheduleService)(nil)
