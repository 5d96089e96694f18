package booking

import (
	"context"
	"time"

	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/events"
)

type bookingEvent struct {
	BookingID     int64                `json:"booking_id"`
	ServiceID     int64                `json:"service_id"`
	CustomerID    int64                `json:"customer_id"`
	WorkerID      int64                `json:"worker_id"`
	Status        domain.BookingStatus `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	BookingDate   string               `json:"booking_date"`
	StartTime     string               `json:"start_time"`
	CancelledBy   *domain.Role         `json:"cancelled_by,omitempty"`
	Reason        *string              `json:"cancellation_reason,omitempty"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

// EventNotifier publishes booking events under their routing key.
type EventNotifier struct {
	publisher events.Publisher
}

func NewEventNotifier(publisher events.Publisher) *EventNotifier {
	return &EventNotifier{publisher: publisher}
}

func (n *EventNotifier) Notify(ctx context.Context, event string, b *domain.Booking, workerID int64) error {
	return n.publisher.Publish(ctx, event, bookingEvent{
		BookingID:     b.ID,
		ServiceID:     b.ServiceID,
		CustomerID:    b.CustomerID,
		WorkerID:      workerID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		BookingDate:   b.BookingDate,
		StartTime:     b.StartTime,
		CancelledBy:   b.CancelledBy,
		Reason:        b.CancellationReason,
		OccurredAt:    time.Now().UTC(),
	})
}
