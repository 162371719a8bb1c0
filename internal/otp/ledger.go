package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Verification failure kinds. None of these is fatal; callers surface them
// as a boolean-plus-message result.
var (
	// ErrNotFound covers both "never issued" and "already consumed".
	ErrNotFound = errors.New("otp: no code for email")
	// ErrExpired means the code outlived its validity window. The stale
	// entry is purged as a side effect, so a retry reports ErrNotFound.
	ErrExpired = errors.New("otp: code expired")
	// ErrMismatch means the entry exists and is fresh but the submitted
	// code is wrong. The entry survives, so retries within the window work.
	ErrMismatch = errors.New("otp: code mismatch")
)

// Entry is the stored state for one outstanding code.
type Entry struct {
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Store is the injectable backing for the ledger. Keys are lower-cased email
// addresses; one outstanding code per email across all booking domains.
type Store interface {
	Put(ctx context.Context, email string, e Entry) error
	Get(ctx context.Context, email string) (Entry, bool, error)
	Delete(ctx context.Context, email string) error
}

// DefaultValidity is how long an issued code stays verifiable.
const DefaultValidity = 5 * time.Minute

// Ledger issues and verifies short-lived single-use codes scoped to an email
// address. Issuing overwrites any outstanding code for the same email: the
// overwrite doubles as the only throttle, and it also means anyone who knows
// the email can invalidate an in-flight code by requesting a new one.
type Ledger struct {
	store    Store
	validity time.Duration
	now      func() time.Time
}

func NewLedger(store Store, validity time.Duration) *Ledger {
	if validity <= 0 {
		validity = DefaultValidity
	}
	return &Ledger{store: store, validity: validity, now: time.Now}
}

// Validity reports the configured verification window.
func (l *Ledger) Validity() time.Duration { return l.validity }

// Issue generates a fresh code for the email and records it, replacing any
// previous entry.
func (l *Ledger) Issue(ctx context.Context, email string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}
	e := Entry{Code: code, IssuedAt: l.now()}
	if err := l.store.Put(ctx, normalize(email), e); err != nil {
		return "", err
	}
	return code, nil
}

// Verify consumes the outstanding code for the email when it matches.
// Expired entries are reaped here; there is no background sweep.
func (l *Ledger) Verify(ctx context.Context, email, code string) error {
	key := normalize(email)
	e, ok, err := l.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if l.now().Sub(e.IssuedAt) > l.validity {
		// Purge regardless of what was submitted.
		if derr := l.store.Delete(ctx, key); derr != nil {
			return derr
		}
		return ErrExpired
	}
	if e.Code != code {
		return ErrMismatch
	}
	return l.store.Delete(ctx, key)
}

// GenerateCode returns a uniformly random code in [100000, 999999]. The
// space is 900 000 values, never a leading zero; generated codes always
// print as exactly six digits.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
