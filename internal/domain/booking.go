package domain

import "time"

// Booking is one customer's reservation against a Session. Reference is
// the confirmation code handed back to the customer.
type Booking struct {
	ID            int64
	SessionID     int64
	Reference     string
	CustomerName  string
	CustomerEmail string
	BookingTime   time.Time
}
