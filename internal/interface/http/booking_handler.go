package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/healisdev/healis-api/internal/application"
	"github.com/healisdev/healis-api/internal/domain/booking"
	"github.com/healisdev/healis-api/internal/domain/entity"
	"github.com/healisdev/healis-api/pkg/response"
)

// BookingHandler serves one booking domain. All nine domains share this
// handler; the descriptor supplies routes, response keys and messages.
type BookingHandler struct {
	D      booking.Descriptor
	Svc    *application.BookingService
	Logger *logrus.Logger
}

func NewBookingHandler(d booking.Descriptor, svc *application.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{D: d, Svc: svc, Logger: logger}
}

// bookingDoc renders a booking the way the domain presents it: subject
// fields merged at the top level, schedule and amount under the domain's
// own key names.
func bookingDoc(d booking.Descriptor, b *entity.Booking) gin.H {
	doc := gin.H{
		"id":        b.ID,
		"patient":   b.Patient,
		"status":    b.Status,
		"createdAt": b.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt": b.UpdatedAt.UTC().Format(time.RFC3339),
	}
	for k, v := range b.SubjectMap() {
		doc[k] = v
	}
	if d.DateKey != "" && b.BookingDate != nil {
		doc[d.DateKey] = b.BookingDate.UTC().Format("2006-01-02")
	}
	if d.TimeKey != "" && b.BookingTime != "" {
		doc[d.TimeKey] = b.BookingTime
	}
	if d.AmountKey != "" {
		doc[d.AmountKey] = b.TotalAmount
	}
	if b.Location != "" {
		doc["location"] = b.Location
	}
	if b.CompletedAt != nil {
		doc["completedAt"] = b.CompletedAt.UTC().Format(time.RFC3339)
	}
	if b.CancelledAt != nil {
		doc["cancelledAt"] = b.CancelledAt.UTC().Format(time.RFC3339)
	}
	return doc
}

// Create handles POST /{domain}/{book|order|add}.
func (h *BookingHandler) Create(c *gin.Context) {
	in, err := bindCreate(c, h.D.Slug)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), h.D, in)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, application.ErrInvalidTime):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("domain", h.D.Slug).Error("booking create failed")
			}
			response.Error(c, http.StatusInternalServerError, "Error creating booking", err)
		}
		return
	}
	response.OK(c, http.StatusCreated, h.D.CreatedMessage, gin.H{h.D.IDKey: b.ID})
}

// List handles GET /{domain}/[resBase/]:userId.
func (h *BookingHandler) List(c *gin.Context) {
	userID := c.Param("userId")
	items, err := h.Svc.List(c.Request.Context(), h.D, userID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("domain", h.D.Slug).Error("booking list failed")
		}
		response.Error(c, http.StatusInternalServerError, "Error fetching bookings", err)
		return
	}
	docs := make([]gin.H, 0, len(items))
	for _, b := range items {
		docs = append(docs, bookingDoc(h.D, b))
	}
	response.Data(c, http.StatusOK, gin.H{h.D.ListKey: docs})
}

// Transition returns a handler for PATCH /{domain}/[resBase/]:id/{op}.
func (h *BookingHandler) Transition(t booking.Transition) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var clientTime *time.Time
		if t.ClientTime {
			var body struct {
				CompletedAt *time.Time `json:"completedAt"`
			}
			// Body is optional; a missing or empty one means "stamp now".
			if err := c.ShouldBindJSON(&body); err == nil && body.CompletedAt != nil {
				clientTime = body.CompletedAt
			}
		}
		b, err := h.Svc.Transition(c.Request.Context(), h.D, id, t, clientTime)
		if err != nil {
			if errors.Is(err, application.ErrBookingNotFound) {
				response.Error(c, http.StatusNotFound, h.D.NotFoundMessage, nil)
				return
			}
			if h.Logger != nil {
				h.Logger.WithError(err).WithFields(logrus.Fields{"domain": h.D.Slug, "id": id}).Error("booking transition failed")
			}
			response.Error(c, http.StatusInternalServerError, "Error updating booking", err)
			return
		}
		body := gin.H{"message": t.Message, h.D.ItemKey: bookingDoc(h.D, b)}
		if t.WithSuccessFlag {
			body["success"] = true
		}
		response.Data(c, http.StatusOK, body)
	}
}

// Delete handles DELETE /{domain}/:id for deletable domains.
func (h *BookingHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), h.D, id); err != nil {
		if errors.Is(err, application.ErrBookingNotFound) {
			response.Error(c, http.StatusNotFound, h.D.NotFoundMessage, nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithFields(logrus.Fields{"domain": h.D.Slug, "id": id}).Error("booking delete failed")
		}
		response.Error(c, http.StatusInternalServerError, "Error deleting booking", err)
		return
	}
	response.Flag(c, http.StatusOK, true, h.D.DeletedMessage)
}
