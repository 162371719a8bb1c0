package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healisdev/healis-api/internal/domain/entity"
	"github.com/healisdev/healis-api/internal/domain/repository"
)

// BookingRepository stores one row per booking document; the
// domain-specific subject lives in a JSONB column.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = `
	id, domain, patient_user_id, patient_full_name, patient_email, patient_phone,
	subject, location, booking_date, booking_time, total_amount, status,
	completed_at, cancelled_at, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	subject := b.Subject
	if len(subject) == 0 {
		subject = []byte("{}")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bookings (
			id, domain, patient_user_id, patient_full_name, patient_email, patient_phone,
			subject, location, booking_date, booking_time, total_amount, status
		)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9, NULLIF($10, ''), $11, $12)
		RETURNING created_at, updated_at
	`, b.ID, b.Domain, b.Patient.UserID, b.Patient.FullName, b.Patient.Email, b.Patient.PhoneNumber,
		subject, b.Location, b.BookingDate, b.BookingTime, b.TotalAmount, b.Status)

	return row.Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) GetByID(ctx context.Context, domain, id string) (*entity.Booking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE domain = $1 AND id = $2
	`, domain, id)
	return scanBooking(row)
}

func (r *BookingRepository) ListByUser(ctx context.Context, domain, userID string, order repository.ListOrder) ([]*entity.Booking, error) {
	col := "booking_date"
	if order.ByCreated {
		col = "created_at"
	}
	dir := "DESC"
	if order.Asc {
		dir = "ASC"
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM bookings
		WHERE domain = $1 AND patient_user_id = $2
		ORDER BY %s %s, created_at %s
	`, bookingColumns, col, dir, dir), domain, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookingRepository) Update(ctx context.Context, b *entity.Booking) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE bookings
		SET status = $1, completed_at = $2, cancelled_at = $3, updated_at = now()
		WHERE domain = $4 AND id = $5
		RETURNING updated_at
	`, b.Status, b.CompletedAt, b.CancelledAt, b.Domain, b.ID)

	if err := row.Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, domain, id string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM bookings
		WHERE domain = $1 AND id = $2
	`, domain, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	b := &entity.Booking{}
	var phone, location, bookingTime *string
	if err := row.Scan(&b.ID, &b.Domain, &b.Patient.UserID, &b.Patient.FullName, &b.Patient.Email,
		&phone, &b.Subject, &location, &b.BookingDate, &bookingTime, &b.TotalAmount, &b.Status,
		&b.CompletedAt, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if phone != nil {
		b.Patient.PhoneNumber = *phone
	}
	if location != nil {
		b.Location = *location
	}
	if bookingTime != nil {
		b.BookingTime = *bookingTime
	}
	return b, nil
}

var _ repository.BookingRepository = (*BookingRepository)(nil)
