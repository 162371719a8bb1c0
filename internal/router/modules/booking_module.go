package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/healisdev/healis-api/internal/interface/http"
)

// BookingModule registers the route set for one booking domain:
//
//	POST   /{slug}/{book|order|add}
//	GET    /{slug}/[resBase/]:userId
//	PATCH  /{slug}/[resBase/]:id/{cancel|complete|discontinue}
//	DELETE /{slug}/:id                (reminders, medications)
//	POST   /{slug}/generate-otp
//	POST   /{slug}/verify-otp
//
// GET and PATCH live in separate method trees, so the :userId and :id
// wildcards never collide.
type BookingModule struct {
	Booking *handlers.BookingHandler
	OTP     *handlers.OTPHandler
}

func NewBookingModule(b *handlers.BookingHandler, o *handlers.OTPHandler) *BookingModule {
	return &BookingModule{Booking: b, OTP: o}
}

func (m *BookingModule) Register(rg *gin.RouterGroup) {
	d := m.Booking.D
	g := rg.Group("/" + d.Slug)

	g.POST("/"+d.CreateOp, m.Booking.Create)

	base := ""
	if d.ResBase != "" {
		base = "/" + d.ResBase
	}
	g.GET(base+"/:userId", m.Booking.List)
	for _, t := range d.Transitions {
		g.PATCH(base+"/:id/"+t.Op, m.Booking.Transition(t))
	}
	if d.Deletable {
		g.DELETE("/:id", m.Booking.Delete)
	}

	g.POST("/generate-otp", m.OTP.Generate)
	g.POST("/verify-otp", m.OTP.Verify)
}
