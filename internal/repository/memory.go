package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/groupsix/gymbook/internal/domain"
)

// MemoryStore keeps everything in process memory behind one mutex. It
// backs the "memory" database driver (demo runs without any external
// store) and the service test suites. The mutex serializes the
// check-then-increment, which is the same guarantee the SQL stores get
// from their transactions.
type MemoryStore struct {
	mu            sync.Mutex
	nextSessionID int64
	nextBookingID int64
	nextAdminID   int64
	sessions      map[int64]*domain.Session
	bookings      map[int64]*domain.Booking
	admins        []domain.AdminAccount
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*domain.Session),
		bookings: make(map[int64]*domain.Booking),
	}
}

func (m *MemoryStore) Create(ctx context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSessionID++
	s.ID = m.nextSessionID
	s.BookedCount = 0
	s.CreatedAt = time.Now().UTC()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]domain.Session, error) {
	return m.ListByDateRange(ctx, "", "9999-12-31")
}

func (m *MemoryStore) ListByDateRange(ctx context.Context, start, end string) ([]domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions := make([]domain.Session, 0)
	for _, s := range m.sessions {
		if s.Date >= start && s.Date <= end {
			sessions = append(sessions, *s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Date != sessions[j].Date {
			return sessions[i].Date < sessions[j].Date
		}
		if sessions[i].Time != sessions[j].Time {
			return sessions[i].Time < sessions[j].Time
		}
		return sessions[i].ID < sessions[j].ID
	})
	return sessions, nil
}

func (m *MemoryStore) Update(ctx context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.sessions[s.ID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if s.Capacity < cur.BookedCount {
		return domain.ErrCapacityTooLow
	}
	cur.Name = s.Name
	cur.Date = s.Date
	cur.Time = s.Time
	cur.Capacity = s.Capacity
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	for bid, b := range m.bookings {
		if b.SessionID == id {
			delete(m.bookings, bid)
		}
	}
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions), nil
}

func (m *MemoryStore) Book(ctx context.Context, b *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[b.SessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if s.BookedCount >= s.Capacity {
		return domain.ErrSessionFull
	}
	s.BookedCount++

	m.nextBookingID++
	b.ID = m.nextBookingID
	b.BookingTime = time.Now().UTC()
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *MemoryStore) ListBySession(ctx context.Context, sessionID int64) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bookings := make([]domain.Booking, 0)
	for _, b := range m.bookings {
		if b.SessionID == sessionID {
			bookings = append(bookings, *b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].BookingTime.Equal(bookings[j].BookingTime) {
			return bookings[i].BookingTime.After(bookings[j].BookingTime)
		}
		return bookings[i].ID > bookings[j].ID
	})
	return bookings, nil
}

func (m *MemoryStore) Verify(ctx context.Context, username, password string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.admins {
		if a.Username == username && a.Password == password {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) CreateAdmin(ctx context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextAdminID++
	m.admins = append(m.admins, domain.AdminAccount{ID: m.nextAdminID, Username: username, Password: password})
	return nil
}

func (m *MemoryStore) CountAdmins(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.admins), nil
}

// adminView adapts MemoryStore to AdminRepository, whose method names
// collide with the schedule side.
type adminView struct {
	store *MemoryStore
}

// Admins returns the AdminRepository view of the store.
func (m *MemoryStore) Admins() AdminRepository {
	return adminView{store: m}
}

func (v adminView) Verify(ctx context.Context, username, password string) (bool, error) {
	return v.store.Verify(ctx, username, password)
}

func (v adminView) Create(ctx context.Context, username, password string) error {
	return v.store.CreateAdmin(ctx, username, password)
}

func (v adminView) Count(ctx context.Context) (int, error) {
	return v.store.CountAdmins(ctx)
}

var (
	_ ScheduleRepository = (*MemoryStore)(nil)
	_ BookingRepository  = (*MemoryStore)(nil)
	_ AdminRepository    = adminView{}
)
