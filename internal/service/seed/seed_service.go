// Package seed bootstraps an empty store with the canned schedule and
// the default admin credential.
package seed

import (
	"context"
	"time"

	"github.com/groupsix/gymbook/internal/domain"
	"github.com/groupsix/gymbook/internal/repository"
)

// Default admin credential, created only when the admin table is empty.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

var sampleClasses = []struct {
	Name     string
	Time     string
	Capacity int
}{
	{"Morning Yoga", "07:00", 20},
	{"HIIT Blast", "12:00", 15},
	{"Evening Pilates", "18:00", 12},
}

type SeedService struct {
	schedules repository.ScheduleRepository
	admins    repository.AdminRepository
	days      int
}

func NewSeedService(schedules repository.ScheduleRepository, admins repository.AdminRepository, days int) *SeedService {
	if days <= 0 {
		days = 14
	}
	return &SeedService{schedules: schedules, admins: admins, days: days}
}

// InitializeSampleData populates the next s.days days with the canned
// classes. It is idempotent: any existing session makes it a no-op.
// Returns the number of sessions created.
func (s *SeedService) InitializeSampleData(ctx context.Context) (int, error) {
	existing, err := s.schedules.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	created := 0
	for day := 0; day < s.days; day++ {
		date := time.Now().AddDate(0, 0, day).Format("2006-01-02")
		for _, class := range sampleClasses {
			session := &domain.Session{Name: class.Name, Date: date, Time: class.Time, Capacity: class.Capacity}
			if err := s.schedules.Create(ctx, session); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// EnsureAdmin seeds the default credential if no admin exists yet.
func (s *SeedService) EnsureAdmin(ctx context.Context) error {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return s.admins.Create(ctx, AdminUsername, AdminPassword)
}
