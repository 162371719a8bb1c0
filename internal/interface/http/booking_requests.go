package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healisdev/healis-api/internal/application"
)

// Create payloads differ per domain. The web client sends flat fields
// (doctorId, doctorName, ...); bindCreate regroups them into the nested
// subject document the way it is stored and listed back.

type labTestItem struct {
	ID    string  `json:"id" binding:"required"`
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

type pharmacyItem struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Brand    string  `json:"brand"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Price    float64 `json:"price"`
}

type appointmentCreateRequest struct {
	UserID          string `json:"userId" binding:"required"`
	DoctorID        string `json:"doctorId" binding:"required"`
	DoctorName      string `json:"doctorName" binding:"required"`
	DoctorSpecialty string `json:"doctorSpecialty"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
}

type labTestCreateRequest struct {
	UserID      string        `json:"userId" binding:"required"`
	Tests       []labTestItem `json:"tests" binding:"required,min=1,dive"`
	Date        string        `json:"date" binding:"required"`
	Time        string        `json:"time" binding:"required"`
	TotalAmount float64       `json:"totalAmount" binding:"required"`
}

type vaccinationCreateRequest struct {
	UserID          string  `json:"userId" binding:"required"`
	VaccineID       string  `json:"vaccineId" binding:"required"`
	VaccineName     string  `json:"vaccineName" binding:"required"`
	Manufacturer    string  `json:"manufacturer"`
	Location        string  `json:"location"`
	AppointmentDate string  `json:"appointmentDate" binding:"required"`
	AppointmentTime string  `json:"appointmentTime" binding:"required"`
	Price           float64 `json:"price"`
}

type pharmacyCreateRequest struct {
	UserID      string         `json:"userId" binding:"required"`
	Items       []pharmacyItem `json:"items" binding:"required,min=1,dive"`
	TotalAmount float64        `json:"totalAmount" binding:"required"`
}

type mentalHealthCreateRequest struct {
	UserID             string `json:"userId" binding:"required"`
	TherapistID        string `json:"therapistId" binding:"required"`
	TherapistName      string `json:"therapistName" binding:"required"`
	TherapistSpecialty string `json:"therapistSpecialty"`
	AppointmentDate    string `json:"appointmentDate" binding:"required"`
	AppointmentTime    string `json:"appointmentTime" binding:"required"`
}

type healthCheckupCreateRequest struct {
	UserID             string   `json:"userId" binding:"required"`
	PackageID          string   `json:"packageId" binding:"required"`
	PackageName        string   `json:"packageName" binding:"required"`
	PackageDescription string   `json:"packageDescription"`
	Location           string   `json:"location"`
	Tests              []string `json:"tests"`
	BookingDate        string   `json:"bookingDate" binding:"required"`
	TotalPrice         float64  `json:"totalPrice"`
}

type nutritionistCreateRequest struct {
	UserID                string  `json:"userId" binding:"required"`
	NutritionistID        string  `json:"nutritionistId" binding:"required"`
	NutritionistName      string  `json:"nutritionistName" binding:"required"`
	NutritionistSpecialty string  `json:"nutritionistSpecialty"`
	BookingDate           string  `json:"bookingDate" binding:"required"`
	BookingTime           string  `json:"bookingTime" binding:"required"`
	TotalPrice            float64 `json:"totalPrice"`
}

type reminderCreateRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Doctor   string `json:"doctor"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
	Color    string `json:"color"`
}

type medicationCreateRequest struct {
	UserID       string   `json:"userId" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Dosage       string   `json:"dosage" binding:"required"`
	Frequency    string   `json:"frequency" binding:"required"`
	Times        []string `json:"times"`
	StartDate    string   `json:"startDate" binding:"required"`
	EndDate      string   `json:"endDate"`
	Instructions string   `json:"instructions"`
	Color        string   `json:"color"`
}

// parseDate accepts both a plain calendar date and a full ISO timestamp;
// the web client sends either depending on the form widget.
func parseDate(s string) (*time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}

// bindCreate decodes the domain's create payload into the shared input.
func bindCreate(c *gin.Context, slug string) (application.CreateBookingInput, error) {
	switch slug {
	case "appointments":
		var req appointmentCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return application.CreateBookingInput{}, err
		}
		date, err := parseDate(req.AppointmentDate)
		if err != nil {
			return application.CreateBookingInput{}, err
		}
		return application.CreateBookingInput{
			UserID: req.UserID,
			Subject: map[string]any{"doctor": map[string]any{
				"id":        req.DoctorID,
				"name":      req.DoctorName,
				"specialty": req.DoctorSpecialty,
			}},
			Date: date,
			Time: req.AppointmentTime,
		}, nil

	case "lab-tests":
		var req labTestCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return application.CreateBookingInput{}, err
		}
		date, err := parseDate(req.Date)
		if err != nil {
			return application.CreateBookingInput{}, err
		}
		return application.CreateBookingInput{
			UserID:      req.UserID,
			Subject:     map[string]any{"tests": req.Tests},
			Date:        date,
			Time:        req.Time,
			TotalAmount: req.TotalAmount,
		}, nil

	case "vaccinations":
		var req vaccinationCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return application.CreateBookingInput{}, err
		}
		date, err := parseDate(req.AppointmentDate)
		if err != nil {
			return application.CreateBookingInput{}, err
		}
		return application.CreateBookingInput{
			UserID: req.UserID,
			Subject: map[string]any{"vaccine": map[string]any{
				"id":           req.VaccineID,
				"name":         req.VaccineName,
				"manufacturer": req.Manufacturer,
			}},
			Location:    req.Location,
			Date:        date,
			Time:        req.AppointmentTime,
			TotalAmount: req.Price,
		}, nil

	case "pharmacy":
		var req pharmacyCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return application.CreateBookingInput{}, err
		}
		// The cart sends each medicine's own id; the stored line item
		// renames it to medicineId.
		items := make([]map[string]any, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, map[string]any{
				"medicineId": it.ID,
				"name":       it.Name,
				"brand":      it.Brand,
				"quantity":   it.Quantity,
				"price":      it.Price,
			})
		}
		return application.CreateBookingInput{
			UserID:      req.UserID,
			Subject:     map[string]any{"items": items},
			TotalAmount: req.TotalAmount,
		}, nil

	case "mental-health":
		var req mentalHealthCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return application.CreateBookingInput{}, err
		}
		date, err := parseDate(req.AppointmentDate)
		if err != nil {
			return application.CreateBookingInput{}, err
		}
		return application.CreateBookingInput{
			UserID: req.UserID,
			Subject: map[string]any{"therapist": map[string]any{
				"id":        req.TherapistID,
				"name":      req.TherapistName,
				"specialty": req.TherapistSpecialty,
			}},
			Date: date,
			Time: req.AppointmentTime,
		}, nil

	case "health-checkup":
		var req healthCheckupCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return application.CreateBookingInput{}, err
		}
		date, err := parseDate(req.BookingDate)
		if err != nil {
			return application.CreateBookingInput{}, err
		}
		subject := map[string]any{"package": map[string]any{
			"id":          req.PackageID,
			"name":        req.PackageName,
			"description": req.PackageDescription,
		}}
		if len(req.Tests) > 0 {
			subject["tests"] = req.Tests
		}
		return application.CreateBookingInput{
			UserID:      req.UserID,
			Subject:     subject,
			Location:    req.Location,
			Date:        date,
			TotalAmount: req.TotalPrice,
		}, nil

	case "nutritionist":
		var req nutritionistCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return application.CreateBookingInput{}, err
		}
		date, err := parseDate(req.BookingDate)
		if err != nil {
			return application.CreateBookingInput{}, err
		}
		return application.CreateBookingInput{
			UserID: req.UserID,
			Subject: map[string]any{"nutritionist": map[string]any{
				"id":             req.NutritionistID,
				"name":           req.NutritionistName,
				"specialization": req.NutritionistSpecialty,
			}},
			Date:        date,
			Time:        req.BookingTime,
			TotalAmount: req.TotalPrice,
		}, nil

	case "reminders":
		var req reminderCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return application.CreateBookingInput{}, err
		}
		date, err := parseDate(req.Date)
		if err != nil {
			return application.CreateBookingInput{}, err
		}
		subject := map[string]any{"title": req.Title}
		if req.Doctor != "" {
			subject["doctor"] = req.Doctor
		}
		if req.Notes != "" {
			subject["notes"] = req.Notes
		}
		if req.Color != "" {
			subject["color"] = req.Color
		}
		return application.CreateBookingInput{
			UserID:   req.UserID,
			Subject:  subject,
			Location: req.Location,
			Date:     date,
			Time:     req.Time,
		}, nil

	case "medications":
		var req medicationCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return application.CreateBookingInput{}, err
		}
		date, err := parseDate(req.StartDate)
		if err != nil {
			return application.CreateBookingInput{}, err
		}
		subject := map[string]any{
			"name":      req.Name,
			"dosage":    req.Dosage,
			"frequency": req.Frequency,
		}
		if len(req.Times) > 0 {
			subject["times"] = req.Times
		}
		if req.EndDate != "" {
			subject["endDate"] = req.EndDate
		}
		if req.Instructions != "" {
			subject["instructions"] = req.Instructions
		}
		if req.Color != "" {
			subject["color"] = req.Color
		}
		return application.CreateBookingInput{
			UserID:  req.UserID,
			Subject: subject,
			Date:    date,
		}, nil
	}
	return application.CreateBookingInput{}, fmt.Errorf("unknown booking domain %q", slug)
}
