package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/platform/crm"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/platform/mailer"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/repo/postgres"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/utils"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/events"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/logger"
)

var ErrSessionNotFound = errors.New("booking session not found")

// SessionStore abstracts the TTL-backed session storage.
type SessionStore interface {
	Save(ctx context.Context, sess *domain.BookingSession) error
	Get(ctx context.Context, id string) (*domain.BookingSession, error)
	Delete(ctx context.Context, id string) error
}

type SlotInput struct {
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

type BookingService interface {
	CreateSession(ctx context.Context) (*domain.BookingSession, error)
	GetSession(ctx context.Context, id string) (*domain.BookingSession, error)
	SelectCountry(ctx context.Context, id, country string) (*domain.BookingSession, error)
	SelectSlot(ctx context.Context, id string, slot SlotInput) (*domain.BookingSession, error)
	EnterDetails(ctx context.Context, id string, details domain.ClientDetails) (*domain.BookingSession, error)
	Back(ctx context.Context, id string) (*domain.BookingSession, error)
	Confirm(ctx context.Context, id string) (*domain.Appointment, error)
}

type bookingService struct {
	sessions SessionStore
	appts    postgres.AppointmentRepo
	syncer   crm.Syncer
	mail     mailer.Service
	bus      events.Publisher
}

func NewBookingService(
	sessions SessionStore,
	appts postgres.AppointmentRepo,
	syncer crm.Syncer,
	mail mailer.Service,
	bus events.Publisher,
) BookingService {
	return &bookingService{
		sessions: sessions,
		appts:    appts,
		syncer:   syncer,
		mail:     mail,
		bus:      bus,
	}
}

func (s *bookingService) CreateSession(ctx context.Context) (*domain.BookingSession, error) {
	sess := domain.NewBookingSession()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to store booking session: %w", err)
	}

	event := events.BookingSessionStartedEvent{
		SessionID: sess.ID,
		StartedAt: sess.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.BookingSessionStarted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish session started event", "error", err, "session_id", sess.ID)
	}

	return sess, nil
}

func (s *bookingService) GetSession(ctx context.Context, id string) (*domain.BookingSession, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *bookingService) SelectCountry(ctx context.Context, id, country string) (*domain.BookingSession, error) {
	c, ok := domain.ParseCountry(country)
	if !ok {
		return nil, domainErrf("country must be RD or USA")
	}
	return s.transition(ctx, id, func(sess *domain.BookingSession) error {
		return sess.SelectCountry(c)
	})
}

func (s *bookingService) SelectSlot(ctx context.Context, id string, slot SlotInput) (*domain.BookingSession, error) {
	return s.transition(ctx, id, func(sess *domain.BookingSession) error {
		return sess.SelectSlot(slot.Service, slot.Date, slot.Time)
	})
}

func (s *bookingService) EnterDetails(ctx context.Context, id string, details domain.ClientDetails) (*domain.BookingSession, error) {
	details.Email = utils.NormalizeEmail(details.Email)
	if details.Email != "" && !utils.IsValidEmail(details.Email) {
		return nil, domainErrf("invalid email")
	}
	details.Phone = utils.NormalizePhone(details.Phone)
	return s.transition(ctx, id, func(sess *domain.BookingSession) error {
		return sess.EnterDetails(details)
	})
}

func (s *bookingService) Back(ctx context.Context, id string) (*domain.BookingSession, error) {
	return s.transition(ctx, id, func(sess *domain.BookingSession) error {
		return sess.Back()
	})
}

// Confirm turns the session into an appointment record: persist, then
// sync and notify. Sync and email failures never fail the booking; a
// persistence failure leaves the session in confirm for a manual retry.
func (s *bookingService) Confirm(ctx context.Context, id string) (*domain.Appointment, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.State != domain.StateConfirm || !sess.HasSlot() {
		return nil, domainErrf("cannot submit in state %q", sess.State)
	}

	appt := sess.Appointment()
	if err := appt.Validate(); err != nil {
		return nil, domainErrf("%s", err.Error())
	}

	if err := s.appts.Create(ctx, &appt); err != nil {
		return nil, fmt.Errorf("failed to record appointment: %w", err)
	}

	created := events.AppointmentCreatedEvent{
		AppointmentID: appt.ID,
		ClientName:    appt.ClientName,
		ClientEmail:   appt.ClientEmail,
		Date:          appt.Date,
		Time:          appt.Time,
		Country:       string(appt.Country),
		Service:       appt.Service,
		CreatedAt:     appt.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.AppointmentCreated, created); err != nil {
		logger.ErrorContext(ctx, "Failed to publish appointment created event", "error", err, "appointment_id", appt.ID)
	}

	result, err := s.syncer.Sync(ctx, appt)
	if err != nil {
		logger.ErrorContext(ctx, "Appointment sync failed", "error", err, "appointment_id", appt.ID)
	} else {
		synced := events.AppointmentSyncedEvent{
			AppointmentID: appt.ID,
			Mode:          string(result.Mode),
			SyncedAt:      time.Now().UTC(),
		}
		if err := s.bus.Publish(ctx, events.AppointmentSynced, synced); err != nil {
			logger.ErrorContext(ctx, "Failed to publish appointment synced event", "error", err, "appointment_id", appt.ID)
		}
	}

	if err := s.mail.SendBookingConfirmation(appt); err != nil {
		logger.ErrorContext(ctx, "Failed to send booking confirmation", "error", err, "appointment_id", appt.ID)
	}

	if err := sess.Submit(); err != nil {
		return nil, domainErrf("%s", err.Error())
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		logger.ErrorContext(ctx, "Failed to persist submitted session", "error", err, "session_id", sess.ID)
	}

	event := events.BookingSessionSubmittedEvent{
		SessionID:     sess.ID,
		AppointmentID: appt.ID,
		SubmittedAt:   time.Now().UTC(),
	}
	if err := s.bus.Publish(ctx, events.BookingSessionSubmitted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish session submitted event", "error", err, "session_id", sess.ID)
	}

	return &appt, nil
}

func (s *bookingService) transition(ctx context.Context, id string, fn func(*domain.BookingSession) error) (*domain.BookingSession, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to store booking session: %w", err)
	}
	return sess, nil
}

func domainErrf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ValidationError marks caller input problems; handlers map it to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }
