package domain

import "time"

// Session is one schedulable gym class with a seat capacity.
// Date is an ISO YYYY-MM-DD string and Time is HH:MM; both are kept as
// text so ordering and range filters behave the same on every store.
type Session struct {
	ID          int64
	Name        string
	Date        string
	Time        string
	Capacity    int
	BookedCount int
	CreatedAt   time.Time
}

// Remaining returns the number of free seats.
func (s *Session) Remaining() int {
	return s.Capacity - s.BookedCount
}

// IsFull reports whether the session accepts no more bookings.
func (s *Session) IsFull() bool {
	return s.BookedCount >= s.Capacity
}
