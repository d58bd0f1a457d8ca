package email

import (
	"context"
	"fmt"

	"github.com/groupsix/gymbook/internal/kafka"
)

// Sender delivers booking confirmations. Real delivery is out of scope;
// the worker logs what would be sent.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s: %s for %q on %s %s (ref %s)\n",
		event.CustomerEmail, event.Type, event.SessionName, event.SessionDate, event.SessionTime, event.Reference)
	return nil
}
