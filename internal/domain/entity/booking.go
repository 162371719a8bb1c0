package entity

import (
	"encoding/json"
	"time"
)

// Status of a booking document. Scheduled is the initial state for every
// domain; Cancelled, Completed and Discontinued are terminal. Transitions are
// not enforced: any status may overwrite any other, which keeps support-side
// corrections possible.
type Status string

const (
	StatusScheduled    Status = "Scheduled"
	StatusConfirmed    Status = "Confirmed"
	StatusCompleted    Status = "Completed"
	StatusCancelled    Status = "Cancelled"
	StatusDiscontinued Status = "Discontinued"
)

// PatientSnapshot is the identity copy embedded in a booking at creation
// time. It is intentionally not kept in sync with the User record: a booking
// records who the patient was and how to reach them when it was made.
type PatientSnapshot struct {
	UserID      string `json:"userId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Booking is one document per booked service, shared across all domains.
// Subject holds the domain-specific part (doctor, tests, vaccine, items,
// package, nutritionist, therapist, or the flattened reminder/medication
// fields) as a JSON object merged into API responses.
type Booking struct {
	ID          string
	Domain      string
	Patient     PatientSnapshot
	Subject     json.RawMessage
	Location    string
	BookingDate *time.Time
	BookingTime string
	TotalAmount float64
	Status      Status
	CompletedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SubjectMap decodes the subject document for response rendering.
func (b *Booking) SubjectMap() map[string]any {
	out := map[string]any{}
	if len(b.Subject) > 0 {
		_ = json.Unmarshal(b.Subject, &out)
	}
	return out
}
