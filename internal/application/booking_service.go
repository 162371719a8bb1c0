package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/healisdev/healis-api/config"
	"github.com/healisdev/healis-api/internal/domain/booking"
	"github.com/healisdev/healis-api/internal/domain/entity"
	repo "github.com/healisdev/healis-api/internal/domain/repository"
	"github.com/healisdev/healis-api/pkg/helpers"
	"github.com/healisdev/healis-api/pkg/mailer"
	tpl "github.com/healisdev/healis-api/pkg/mailer/templates"
	"github.com/healisdev/healis-api/pkg/validation"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidTime     = errors.New("time must be in HH:MM format")
)

// BookingService is the shared lifecycle for every service domain. All
// behavior that differs between domains comes in through the Descriptor.
type BookingService struct {
	Users    repo.UserRepository
	Bookings repo.BookingRepository
	Pub      *helpers.RabbitPublisher
	Cfg      *config.Config
	Logger   *logrus.Logger

	now func() time.Time
}

func NewBookingService(users repo.UserRepository, bookings repo.BookingRepository, pub *helpers.RabbitPublisher, cfg *config.Config, logger *logrus.Logger) *BookingService {
	return &BookingService{
		Users:    users,
		Bookings: bookings,
		Pub:      pub,
		Cfg:      cfg,
		Logger:   logger,
		now:      time.Now,
	}
}

type CreateBookingInput struct {
	UserID      string
	Subject     map[string]any
	Location    string
	Date        *time.Time
	Time        string
	TotalAmount float64
}

// Create resolves the patient, validates the schedule, persists the document
// and queues the confirmation email for domains that send one. The user
// lookup happens before any write; an unknown user leaves no trace.
func (s *BookingService) Create(ctx context.Context, d booking.Descriptor, in CreateBookingInput) (*entity.Booking, error) {
	u, err := s.Users.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if in.Time != "" && !validation.IsHHMM(in.Time) {
		return nil, ErrInvalidTime
	}

	snapshot := entity.PatientSnapshot{
		UserID:   u.ID,
		FullName: u.FullName,
		Email:    u.Email,
	}
	if d.PatientPhone {
		snapshot.PhoneNumber = u.PhoneNumber
	}

	var subject json.RawMessage
	if len(in.Subject) > 0 {
		subject, err = json.Marshal(in.Subject)
		if err != nil {
			return nil, err
		}
	}

	b := &entity.Booking{
		ID:          uuid.NewString(),
		Domain:      d.Slug,
		Patient:     snapshot,
		Subject:     subject,
		Location:    in.Location,
		BookingDate: in.Date,
		BookingTime: in.Time,
		TotalAmount: in.TotalAmount,
		Status:      entity.StatusScheduled,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if d.Confirmation {
		s.queueConfirmation(ctx, d, b)
	}
	return b, nil
}

// List returns the user's bookings in the domain's presentation order.
func (s *BookingService) List(ctx context.Context, d booking.Descriptor, userID string) ([]*entity.Booking, error) {
	return s.Bookings.ListByUser(ctx, d.Slug, userID, repo.ListOrder{ByCreated: d.SortByCreated, Asc: d.SortAsc})
}

// Transition overwrites the booking status with the transition's target and
// stamps the relevant timestamp. completedAt may be caller-supplied when the
// transition allows it; a zero clientTime falls back to the server clock.
func (s *BookingService) Transition(ctx context.Context, d booking.Descriptor, id string, t booking.Transition, clientTime *time.Time) (*entity.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, d.Slug, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	b.Status = t.Target
	now := s.now()
	if t.StampCancelled {
		b.CancelledAt = &now
	}
	if t.StampCompleted {
		at := now
		if t.ClientTime && clientTime != nil && !clientTime.IsZero() {
			at = *clientTime
		}
		b.CompletedAt = &at
	}
	if err := s.Bookings.Update(ctx, b); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// Delete removes the document permanently. Only reminders and medications
// expose a delete route.
func (s *BookingService) Delete(ctx context.Context, d booking.Descriptor, id string) error {
	if err := s.Bookings.Delete(ctx, d.Slug, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

// queueConfirmation is fire and forget: the booking is already committed, so
// a broker failure is logged and swallowed.
func (s *BookingService) queueConfirmation(ctx context.Context, d booking.Descriptor, b *entity.Booking) {
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	data := tpl.NewBookingConfirmationData(s.Cfg, b.Patient.FullName, b.Patient.Email, d.Label, b.ID, confirmationDetails(b))
	job := mailer.EmailJob{To: b.Patient.Email, Template: tpl.BookingConfirmation, Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"domain":     d.Slug,
			"booking_id": b.ID,
		}).Warn("confirmation email enqueue failed")
	}
}

func confirmationDetails(b *entity.Booking) []tpl.Detail {
	var out []tpl.Detail
	if b.BookingDate != nil {
		out = append(out, tpl.Detail{Label: "Date", Value: b.BookingDate.Format("January 2, 2006")})
	}
	if b.BookingTime != "" {
		out = append(out, tpl.Detail{Label: "Time", Value: b.BookingTime})
	}
	if b.Location != "" {
		out = append(out, tpl.Detail{Label: "Location", Value: b.Location})
	}
	if b.TotalAmount > 0 {
		out = append(out, tpl.Detail{Label: "Total Amount", Value: fmt.Sprintf("₹%.2f", b.TotalAmount)})
	}
	return out
}
