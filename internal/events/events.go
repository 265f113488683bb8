package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopicAppointmentCreated is the routing key for appointment creation events.
const TopicAppointmentCreated = "appointment.created"

// Publisher pushes domain-change events to the message bus after a committed
// write. Publishing is fire-and-forget: an unavailable transport is logged
// and the event is dropped, never retried, and never fails the write that
// triggered it. Delivery is therefore at-most-once.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{})
	Connected() bool
	Close() error
}

// AppointmentCreatedEvent is published after an appointment commit.
// OccurredAt is the commit timestamp.
type AppointmentCreatedEvent struct {
	EventID       uuid.UUID `json:"eventId"`
	EventType     string    `json:"eventType"`
	TenantID      uuid.UUID `json:"tenantId"`
	AppointmentID uuid.UUID `json:"appointmentId"`
	BranchID      uuid.UUID `json:"branchId"`
	PatientID     uuid.UUID `json:"patientId"`
	StartAt       time.Time `json:"startAt"`
	OccurredAt    time.Time `json:"occurredAt"`
}
