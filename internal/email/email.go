package email

import (
	"context"
	"log"

	"github.com/skydesk/reservations/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	log.Printf("send email to user %d: reservation %s %s (flight %d, %d passengers)",
		event.UserID, event.Reference, event.Type, event.FlightID, event.Passengers)
	return nil
}
