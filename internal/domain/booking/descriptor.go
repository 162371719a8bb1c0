package booking

import (
	"github.com/healisdev/healis-api/internal/domain/entity"
)

// Transition is one status-changing operation exposed by a domain, e.g.
// PATCH /{slug}/:id/cancel. The target status overwrites the current one
// unconditionally; legality of the edge is deliberately not checked.
type Transition struct {
	Op              string // path segment: cancel, complete, discontinue
	Target          entity.Status
	StampCancelled  bool
	StampCompleted  bool
	ClientTime      bool // completedAt may be supplied by the caller
	Message         string
	WithSuccessFlag bool // reminder/medication responses carry success:true
}

// Descriptor turns one service category into configuration for the shared
// booking lifecycle. Every domain shares the same create/list/transition
// code path; only the routes, response keys, ordering and messages differ.
type Descriptor struct {
	Slug  string // route prefix, e.g. "lab-tests"
	Label string // human label used in emails and log fields

	CreateOp  string // trailing segment of the create route: book, order, add
	ResBase   string // extra path segment for list/transition routes, e.g. "orders"
	ItemKey   string // JSON key for a single booking in transition responses
	ListKey   string // JSON key wrapping list responses
	IDKey     string // JSON key for the created booking id
	DateKey   string // JSON key for the schedule date; empty when the domain has none
	TimeKey   string // JSON key for the time-of-day string; empty when the domain has none
	AmountKey string // JSON key for the monetary total; empty when the domain has none

	// SortByCreated orders lists by creation time instead of the schedule
	// date (pharmacy orders have no schedule). SortAsc is a per-domain UX
	// choice: forward-looking domains list soonest first, history-style
	// domains list newest first.
	SortByCreated bool
	SortAsc       bool

	Confirmation bool // send a confirmation email after a successful create
	Deletable    bool // reminders and medications support hard delete
	PatientPhone bool // snapshot includes the phone number (reminders)

	Transitions []Transition

	CreatedMessage  string
	NotFoundMessage string
	DeletedMessage  string
}

// Transition looks up a transition by its route segment.
func (d Descriptor) Transition(op string) (Transition, bool) {
	for _, t := range d.Transitions {
		if t.Op == op {
			return t, true
		}
	}
	return Transition{}, false
}

func cancelOnly(msg string) []Transition {
	return []Transition{{
		Op:             "cancel",
		Target:         entity.StatusCancelled,
		StampCancelled: true,
		Message:        msg,
	}}
}

// Domains is the full per-domain configuration table. The ordering column
// and direction per domain mirror how each list is presented: appointments,
// mental-health sessions, reminders and medications look forward (ascending),
// the rest read as history (descending).
var Domains = []Descriptor{
	{
		Slug:            "appointments",
		Label:           "Appointment",
		CreateOp:        "book",
		ItemKey:         "appointment",
		ListKey:         "appointments",
		IDKey:           "appointmentId",
		DateKey:         "appointmentDate",
		TimeKey:         "appointmentTime",
		SortAsc:         true,
		Confirmation:    true,
		Transitions:     cancelOnly("Appointment cancelled successfully"),
		CreatedMessage:  "Appointment booked successfully",
		NotFoundMessage: "Appointment not found",
	},
	{
		Slug:            "lab-tests",
		Label:           "Lab Test",
		CreateOp:        "book",
		ItemKey:         "labTest",
		ListKey:         "labTests",
		IDKey:           "labTestId",
		DateKey:         "bookingDate",
		TimeKey:         "bookingTime",
		AmountKey:       "totalAmount",
		Transitions:     cancelOnly("Lab test booking cancelled successfully"),
		CreatedMessage:  "Lab tests booked successfully",
		NotFoundMessage: "Lab test booking not found",
	},
	{
		Slug:            "vaccinations",
		Label:           "Vaccination",
		CreateOp:        "book",
		ItemKey:         "vaccination",
		ListKey:         "vaccinations",
		IDKey:           "vaccinationId",
		DateKey:         "appointmentDate",
		TimeKey:         "appointmentTime",
		AmountKey:       "price",
		Transitions:     cancelOnly("Vaccination booking cancelled successfully"),
		CreatedMessage:  "Vaccination booked successfully",
		NotFoundMessage: "Vaccination booking not found",
	},
	{
		Slug:            "pharmacy",
		Label:           "Pharmacy Order",
		CreateOp:        "order",
		ResBase:         "orders",
		ItemKey:         "pharmacyOrder",
		ListKey:         "pharmacyOrders",
		IDKey:           "orderId",
		AmountKey:       "totalAmount",
		SortByCreated:   true,
		Transitions:     cancelOnly("Pharmacy order cancelled successfully"),
		CreatedMessage:  "Pharmacy order placed successfully",
		NotFoundMessage: "Pharmacy order not found",
	},
	{
		Slug:            "mental-health",
		Label:           "Mental Health Appointment",
		CreateOp:        "book",
		ResBase:         "appointments",
		ItemKey:         "appointment",
		ListKey:         "mentalHealthAppointments",
		IDKey:           "appointmentId",
		DateKey:         "appointmentDate",
		TimeKey:         "appointmentTime",
		SortAsc:         true,
		Transitions:     cancelOnly("Mental Health Appointment cancelled successfully"),
		CreatedMessage:  "Mental Health Appointment booked successfully",
		NotFoundMessage: "Mental Health Appointment not found",
	},
	{
		Slug:            "health-checkup",
		Label:           "Health Checkup",
		CreateOp:        "book",
		ItemKey:         "healthCheckup",
		ListKey:         "healthCheckups",
		IDKey:           "healthCheckupId",
		DateKey:         "bookingDate",
		AmountKey:       "totalPrice",
		Confirmation:    true,
		Transitions:     cancelOnly("Health Checkup booking cancelled successfully"),
		CreatedMessage:  "Health Checkup booked successfully",
		NotFoundMessage: "Health Checkup booking not found",
	},
	{
		Slug:            "nutritionist",
		Label:           "Nutritionist Booking",
		CreateOp:        "book",
		ResBase:         "bookings",
		ItemKey:         "booking",
		ListKey:         "nutritionistBookings",
		IDKey:           "bookingId",
		DateKey:         "bookingDate",
		TimeKey:         "bookingTime",
		AmountKey:       "totalPrice",
		Transitions:     cancelOnly("Nutritionist Booking cancelled successfully"),
		CreatedMessage:  "Nutritionist Booking successful",
		NotFoundMessage: "Nutritionist Booking not found",
	},
	{
		Slug:         "reminders",
		Label:        "Reminder",
		CreateOp:     "add",
		ItemKey:      "reminder",
		ListKey:      "reminders",
		IDKey:        "reminderId",
		DateKey:      "date",
		TimeKey:      "time",
		SortAsc:      true,
		Deletable:    true,
		PatientPhone: true,
		Transitions: []Transition{
			{
				Op:              "cancel",
				Target:          entity.StatusCancelled,
				StampCancelled:  true,
				Message:         "Reminder cancelled successfully",
				WithSuccessFlag: true,
			},
			{
				Op:              "complete",
				Target:          entity.StatusCompleted,
				StampCompleted:  true,
				ClientTime:      true,
				Message:         "Reminder marked as completed",
				WithSuccessFlag: true,
			},
		},
		CreatedMessage:  "Reminder added successfully",
		NotFoundMessage: "Reminder not found",
		DeletedMessage:  "Reminder deleted successfully",
	},
	{
		Slug:      "medications",
		Label:     "Medication",
		CreateOp:  "add",
		ItemKey:   "medication",
		ListKey:   "medications",
		IDKey:     "medicationId",
		DateKey:   "startDate",
		SortAsc:   true,
		Deletable: true,
		Transitions: []Transition{
			{
				Op:              "discontinue",
				Target:          entity.StatusDiscontinued,
				StampCompleted:  true,
				Message:         "Medication discontinued successfully",
				WithSuccessFlag: true,
			},
			{
				Op:              "complete",
				Target:          entity.StatusCompleted,
				StampCompleted:  true,
				ClientTime:      true,
				Message:         "Medication marked as completed",
				WithSuccessFlag: true,
			},
		},
		CreatedMessage:  "Medication added successfully",
		NotFoundMessage: "Medication not found",
		DeletedMessage:  "Medication deleted successfully",
	},
}

// Lookup returns the descriptor for a domain slug.
func Lookup(slug string) (Descriptor, bool) {
	for _, d := range Domains {
		if d.Slug == slug {
			return d, true
		}
	}
	return Descriptor{}, false
}
