package templates

import (
	"time"

	"github.com/healisdev/healis-api/config"
)

// Option pattern
type Option func(*EmailData)

func WithService(service string) Option { return func(d *EmailData) { d.Service = service } }
func WithBookingID(id string) Option    { return func(d *EmailData) { d.BookingID = id } }
func WithDetails(details []Detail) Option {
	return func(d *EmailData) { d.Details = details }
}
func WithExpiresIn(dur time.Duration) Option {
	return func(d *EmailData) { d.ExpiresInMinutes = int(dur.Minutes()) }
}

// NewBaseEmailData fills the common fields from config, then applies Options.
func NewBaseEmailData(cfg *config.Config, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,

		CompanyName:  cfg.CompanyName,
		DashboardURL: cfg.DashboardURL,
		BookingsURL:  cfg.BookingsURL,
		SupportURL:   cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, name, email, opts...)
	return ToMap(d)
}

func NewOTPData(cfg *config.Config, email, code, service string, validity time.Duration, opts ...Option) map[string]any {
	opts = append([]Option{WithService(service), WithExpiresIn(validity)}, opts...)
	d := NewBaseEmailData(cfg, "", email, opts...)
	d.Code = code
	return ToMap(d)
}

func NewBookingConfirmationData(cfg *config.Config, name, email, service, bookingID string, details []Detail, opts ...Option) map[string]any {
	opts = append([]Option{WithService(service), WithBookingID(bookingID), WithDetails(details)}, opts...)
	d := NewBaseEmailData(cfg, name, email, opts...)
	return ToMap(d)
}
