package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Event subjects
const (
	InquiryReceived = "inquiry.received"

	AppointmentCreated = "appointment.created"
	AppointmentSynced  = "appointment.synced"

	BookingSessionStarted   = "booking.session.started"
	BookingSessionSubmitted = "booking.session.submitted"
)

// Event payloads
type InquiryReceivedEvent struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	MessageID  string    `json:"message_id"`
	ReceivedAt time.Time `json:"received_at"`
}

type AppointmentCreatedEvent struct {
	AppointmentID string    `json:"appointment_id"`
	ClientName    string    `json:"client_name"`
	ClientEmail   string    `json:"client_email,omitempty"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Country       string    `json:"country,omitempty"`
	Service       string    `json:"service,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type AppointmentSyncedEvent struct {
	AppointmentID string    `json:"appointment_id"`
	Mode          string    `json:"mode"`
	SyncedAt      time.Time `json:"synced_at"`
}

type BookingSessionStartedEvent struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

type BookingSessionSubmittedEvent struct {
	SessionID     string    `json:"session_id"`
	AppointmentID string    `json:"appointment_id"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
