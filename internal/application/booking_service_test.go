package application

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/healisdev/healis-api/internal/domain/booking"
	"github.com/healisdev/healis-api/internal/domain/entity"
)

// seedPhoneSeq keeps seeded phone numbers unique; the fake repo enforces the
// same unique phone constraint as the users table.
var seedPhoneSeq atomic.Int64

func seedUser(t *testing.T, users *fakeUserRepo, email string) *entity.User {
	t.Helper()
	u := &entity.User{
		ID:          uuid.NewString(),
		FullName:    "Alice Fernandes",
		PhoneNumber: fmt.Sprintf("+91987654%04d", seedPhoneSeq.Add(1)),
		Email:       email,
		Gender:      entity.GenderFemale,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func mustDescriptor(t *testing.T, slug string) booking.Descriptor {
	t.Helper()
	d, ok := booking.Lookup(slug)
	require.True(t, ok, "descriptor for %s", slug)
	return d
}

func newTestBookingService(users *fakeUserRepo, bookings *fakeBookingRepo) *BookingService {
	return NewBookingService(users, bookings, nil, nil, nil)
}

func TestCreateUnknownUserWritesNothing(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	d := mustDescriptor(t, "appointments")

	_, err := svc.Create(context.Background(), d, CreateBookingInput{
		UserID: "missing",
		Time:   "10:30",
	})
	require.ErrorIs(t, err, ErrUserNotFound)
	require.Equal(t, 0, bookings.count(), "failed create must leave no document")
}

func TestCreateTimeValidation(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	u := seedUser(t, users, "alice@example.com")
	d := mustDescriptor(t, "appointments")

	for _, bad := range []string{"25:00", "12:60", "9:30", "1030", "24:00"} {
		_, err := svc.Create(context.Background(), d, CreateBookingInput{UserID: u.ID, Time: bad})
		require.ErrorIs(t, err, ErrInvalidTime, "time %q", bad)
	}
	for _, good := range []string{"00:00", "23:59", "09:05"} {
		b, err := svc.Create(context.Background(), d, CreateBookingInput{UserID: u.ID, Time: good})
		require.NoError(t, err, "time %q", good)
		require.Equal(t, entity.StatusScheduled, b.Status)
	}
}

func TestCreateSnapshotsPatient(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	u := seedUser(t, users, "alice@example.com")

	// Reminders carry the phone number in the snapshot; appointments do not.
	rem := mustDescriptor(t, "reminders")
	b, err := svc.Create(context.Background(), rem, CreateBookingInput{UserID: u.ID, Time: "08:00"})
	require.NoError(t, err)
	require.Equal(t, u.PhoneNumber, b.Patient.PhoneNumber)

	app := mustDescriptor(t, "appointments")
	b, err = svc.Create(context.Background(), app, CreateBookingInput{UserID: u.ID, Time: "08:00"})
	require.NoError(t, err)
	require.Empty(t, b.Patient.PhoneNumber)
	require.Equal(t, u.FullName, b.Patient.FullName)
	require.Equal(t, u.Email, b.Patient.Email)
}

func TestListOrdering(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	u := seedUser(t, users, "alice@example.com")

	dates := []string{"2026-03-10", "2026-03-01", "2026-03-05"}
	for _, ds := range dates {
		day, err := time.Parse("2006-01-02", ds)
		require.NoError(t, err)
		for _, slug := range []string{"lab-tests", "appointments"} {
			d := mustDescriptor(t, slug)
			_, err := svc.Create(context.Background(), d, CreateBookingInput{
				UserID: u.ID, Date: &day, Time: "10:30",
			})
			require.NoError(t, err)
		}
	}

	// Lab tests read as history: strictly descending by booking date.
	labs, err := svc.List(context.Background(), mustDescriptor(t, "lab-tests"), u.ID)
	require.NoError(t, err)
	require.Len(t, labs, 3)
	for i := 1; i < len(labs); i++ {
		require.True(t, !labs[i-1].BookingDate.Before(*labs[i].BookingDate), "lab tests must sort descending")
	}

	// Appointments look forward: ascending.
	apps, err := svc.List(context.Background(), mustDescriptor(t, "appointments"), u.ID)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	for i := 1; i < len(apps); i++ {
		require.True(t, !apps[i-1].BookingDate.After(*apps[i].BookingDate), "appointments must sort ascending")
	}
}

func TestListIsScopedToUserAndDomain(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	alice := seedUser(t, users, "alice@example.com")
	bob := seedUser(t, users, "bob@example.com")

	d := mustDescriptor(t, "vaccinations")
	_, err := svc.Create(context.Background(), d, CreateBookingInput{UserID: alice.ID, Time: "10:00"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), d, CreateBookingInput{UserID: bob.ID, Time: "11:00"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), mustDescriptor(t, "pharmacy"), CreateBookingInput{UserID: alice.ID})
	require.NoError(t, err)

	got, err := svc.List(context.Background(), d, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, alice.ID, got[0].Patient.UserID)
}

func TestTransitionOverwritesUnconditionally(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	u := seedUser(t, users, "alice@example.com")
	d := mustDescriptor(t, "reminders")

	b, err := svc.Create(context.Background(), d, CreateBookingInput{UserID: u.ID, Time: "08:00"})
	require.NoError(t, err)

	complete, ok := d.Transition("complete")
	require.True(t, ok)
	cancel, ok := d.Transition("cancel")
	require.True(t, ok)

	done, err := svc.Transition(context.Background(), d, b.ID, complete, nil)
	require.NoError(t, err)
	require.Equal(t, entity.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	// Cancelling an already-completed booking is allowed; the status simply
	// overwrites.
	undone, err := svc.Transition(context.Background(), d, b.ID, cancel, nil)
	require.NoError(t, err)
	require.Equal(t, entity.StatusCancelled, undone.Status)
	require.NotNil(t, undone.CancelledAt)
}

func TestTransitionClientSuppliedCompletedAt(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	u := seedUser(t, users, "alice@example.com")
	d := mustDescriptor(t, "medications")

	b, err := svc.Create(context.Background(), d, CreateBookingInput{UserID: u.ID})
	require.NoError(t, err)

	complete, ok := d.Transition("complete")
	require.True(t, ok)
	at := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	got, err := svc.Transition(context.Background(), d, b.ID, complete, &at)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	require.True(t, got.CompletedAt.Equal(at))

	// Discontinue stamps the server clock, not a caller value.
	disc, ok := d.Transition("discontinue")
	require.True(t, ok)
	got, err = svc.Transition(context.Background(), d, b.ID, disc, &at)
	require.NoError(t, err)
	require.Equal(t, entity.StatusDiscontinued, got.Status)
	require.False(t, got.CompletedAt.Equal(at))
}

func TestTransitionMissingBooking(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	d := mustDescriptor(t, "appointments")
	cancel, _ := d.Transition("cancel")

	_, err := svc.Transition(context.Background(), d, "missing", cancel, nil)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepoFailureIsNotReportedAsNotFound(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	u := seedUser(t, users, "alice@example.com")
	d := mustDescriptor(t, "appointments")

	b, err := svc.Create(context.Background(), d, CreateBookingInput{UserID: u.ID, Time: "10:30"})
	require.NoError(t, err)

	// A storage failure must surface as itself, not masquerade as a missing
	// user or booking.
	boom := errors.New("connection refused")
	users.failWith = boom
	_, err = svc.Create(context.Background(), d, CreateBookingInput{UserID: u.ID, Time: "10:30"})
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrUserNotFound)
	users.failWith = nil

	cancel, ok := d.Transition("cancel")
	require.True(t, ok)
	bookings.failWith = boom
	_, err = svc.Transition(context.Background(), d, b.ID, cancel, nil)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrBookingNotFound)
}

func TestDelete(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	u := seedUser(t, users, "alice@example.com")
	d := mustDescriptor(t, "medications")

	b, err := svc.Create(context.Background(), d, CreateBookingInput{UserID: u.ID})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), d, b.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), d, b.ID), ErrBookingNotFound)
}

func TestLabTestEndToEnd(t *testing.T) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	u := seedUser(t, users, "alice@example.com")
	d := mustDescriptor(t, "lab-tests")

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), d, CreateBookingInput{
		UserID: u.ID,
		Subject: map[string]any{"tests": []map[string]any{
			{"id": "cbc", "name": "Complete Blood Count", "price": 599},
			{"id": "lipid", "name": "Lipid Profile", "price": 799},
		}},
		Date:        &day,
		Time:        "10:30",
		TotalAmount: 1398,
	})
	require.NoError(t, err)

	list, err := svc.List(context.Background(), d, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 1398.0, list[0].TotalAmount)
	require.Equal(t, entity.StatusScheduled, list[0].Status)

	cancel, _ := d.Transition("cancel")
	got, err := svc.Transition(context.Background(), d, created.ID, cancel, nil)
	require.NoError(t, err)
	require.Equal(t, entity.StatusCancelled, got.Status)
}

func TestCreateSucceedsWhenQueueIsDown(t *testing.T) {
	// Confirmation email is best-effort after commit; with no publisher
	// configured the create still succeeds for confirmation domains.
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	svc := newTestBookingService(users, bookings)
	u := seedUser(t, users, "alice@example.com")
	d := mustDescriptor(t, "health-checkup")
	require.True(t, d.Confirmation)

	_, err := svc.Create(context.Background(), d, CreateBookingInput{UserID: u.ID})
	require.NoError(t, err)
	require.Equal(t, 1, bookings.count())
}
