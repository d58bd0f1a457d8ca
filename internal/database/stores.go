package database

import (
	"context"
	"fmt"

	"github.com/groupsix/gymbook/config"
	"github.com/groupsix/gymbook/internal/repository"
)

// Stores bundles the three repositories over whichever driver the
// configuration selects.
type Stores struct {
	Schedules repository.ScheduleRepository
	Bookings  repository.BookingRepository
	Admins    repository.AdminRepository

	closeFn func()
}

func (s *Stores) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

func NewStores(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	switch cfg.Driver {
	case "", "postgres":
		if err := Migrate(cfg.URL()); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := NewPool(ctx, cfg.DSN())
		if err != nil {
			return nil, err
		}
		return &Stores{
			Schedules: repository.NewScheduleRepository(pool),
			Bookings:  repository.NewBookingRepository(pool),
			Admins:    repository.NewAdminRepository(pool),
			closeFn:   pool.Close,
		}, nil
	case "sqlite":
		db, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Schedules: repository.NewSQLiteScheduleRepository(db),
			Bookings:  repository.NewSQLiteBookingRepository(db),
			Admins:    repository.NewSQLiteAdminRepository(db),
			closeFn:   func() { db.Close() },
		}, nil
	case "memory":
		m := repository.NewMemoryStore()
		return &Stores{Schedules: m, Bookings: m, Admins: m.Admins()}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
