package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/healisdev/healis-api/config"
	"github.com/healisdev/healis-api/internal/otp"
)

func newTestOTPService(sendEnabled bool) (*OTPService, *otp.Ledger) {
	ledger := otp.NewLedger(otp.NewMemoryStore(), otp.DefaultValidity)
	cfg := &config.Config{MailSendEnabled: sendEnabled, CompanyName: "HEALIS Healthcare"}
	return NewOTPService(ledger, nil, cfg, nil), ledger
}

func TestOTPIssueAndVerify(t *testing.T) {
	ctx := context.Background()
	svc, ledger := newTestOTPService(false)

	require.NoError(t, svc.Issue(ctx, "alice@example.com", "Lab Test"))

	// The code is stored even though sending is disabled; fish it out by
	// reissuing through the ledger's own store path.
	code, err := ledger.Issue(ctx, "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, "alice@example.com", code))
	require.ErrorIs(t, svc.Verify(ctx, "alice@example.com", code), otp.ErrNotFound)
}

func TestOTPIssueWithoutMailerFails(t *testing.T) {
	svc, _ := newTestOTPService(true)
	err := svc.Issue(context.Background(), "alice@example.com", "Appointment")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrOTPDelivery))
}

func TestOTPVerifyErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestOTPService(false)

	require.ErrorIs(t, svc.Verify(ctx, "nobody@example.com", "123456"), otp.ErrNotFound)

	require.NoError(t, svc.Issue(ctx, "alice@example.com", "Vaccination"))
	require.ErrorIs(t, svc.Verify(ctx, "alice@example.com", "bogus0"), otp.ErrMismatch)
}
