package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/healisdev/healis-api/config"
	"github.com/healisdev/healis-api/internal/otp"
	"github.com/healisdev/healis-api/pkg/mailer"
	tpl "github.com/healisdev/healis-api/pkg/mailer/templates"
)

// ErrOTPDelivery means the code was stored but the email could not be sent.
// The stored code is deliberately not rolled back; the caller can re-issue.
var ErrOTPDelivery = errors.New("could not send OTP email")

// OTPService issues booking-confirmation codes over email. Delivery is
// synchronous: a Mailgun failure surfaces to the caller rather than leaving
// the patient waiting for mail that will never arrive.
type OTPService struct {
	Ledger *otp.Ledger
	Mail   *mailer.Mailgun
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewOTPService(ledger *otp.Ledger, mail *mailer.Mailgun, cfg *config.Config, logger *logrus.Logger) *OTPService {
	return &OTPService{Ledger: ledger, Mail: mail, Cfg: cfg, Logger: logger}
}

// Issue generates and stores a fresh code for the email, replacing any
// outstanding one, then delivers it for the named service.
func (s *OTPService) Issue(ctx context.Context, email, service string) error {
	code, err := s.Ledger.Issue(ctx, email)
	if err != nil {
		return err
	}
	if s.Cfg != nil && !s.Cfg.MailSendEnabled {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Debug("mail sending disabled, otp stored only")
		}
		return nil
	}
	if s.Mail == nil {
		return fmt.Errorf("%w: mailer not configured", ErrOTPDelivery)
	}

	data := tpl.NewOTPData(s.Cfg, email, code, service, s.Ledger.Validity())
	subject, text, html, err := tpl.Render(tpl.OTP, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOTPDelivery, err)
	}
	if err := s.Mail.Send(ctx, email, subject, text, html); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("otp email send failed")
		}
		return fmt.Errorf("%w: %v", ErrOTPDelivery, err)
	}
	return nil
}

// Verify checks and consumes the outstanding code for the email. Ledger
// sentinel errors pass through for the handler to map onto wire messages.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	return s.Ledger.Verify(ctx, email, code)
}
