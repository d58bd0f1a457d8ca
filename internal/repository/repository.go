// Package repository implements persistence for sessions, bookings and
// admin accounts. Three backends share the same interfaces: PostgreSQL
// (pgx), embedded SQLite and an in-process memory store.
package repository

import (
	"context"

	"github.com/groupsix/gymbook/internal/domain"
)

// ScheduleRepository owns the session table.
type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	ListByDateRange(ctx context.Context, start, end string) ([]domain.Session, error)
	// Update applies all mutable fields. It fails with
	// domain.ErrCapacityTooLow when the new capacity is below the
	// current booked count, checked atomically against concurrent
	// bookings.
	Update(ctx context.Context, s *domain.Session) error
	// Delete removes the session and every booking referencing it in
	// one transaction.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// BookingRepository owns the booking table.
type BookingRepository interface {
	// Book atomically re-checks capacity, increments the session's
	// booked count and inserts the booking row. The check and the
	// increment are never observable as two separate steps.
	Book(ctx context.Context, b *domain.Booking) error
	ListBySession(ctx context.Context, sessionID int64) ([]domain.Booking, error)
}

// AdminRepository owns the admin credential table.
type AdminRepository interface {
	Verify(ctx context.Context, username, password string) (bool, error)
	Create(ctx context.Context, username, password string) error
	Count(ctx context.Context) (int, error)
}
