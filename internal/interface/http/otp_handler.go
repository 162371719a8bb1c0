package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/healisdev/healis-api/internal/application"
	"github.com/healisdev/healis-api/internal/otp"
	"github.com/healisdev/healis-api/pkg/response"
)

// OTPHandler serves the per-domain generate-otp / verify-otp pair. The
// ledger itself is email-keyed and shared: which domain's route issued the
// code only changes the service name in the email.
type OTPHandler struct {
	Service string // human label used in the OTP email subject
	Svc     *application.OTPService
	Logger  *logrus.Logger
}

func NewOTPHandler(service string, svc *application.OTPService, logger *logrus.Logger) *OTPHandler {
	return &OTPHandler{Service: service, Svc: svc, Logger: logger}
}

// Generate handles POST /{domain}/generate-otp.
func (h *OTPHandler) Generate(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Flag(c, http.StatusBadRequest, false, "A valid email is required")
		return
	}
	if err := h.Svc.Issue(c.Request.Context(), req.Email, h.Service); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("email", req.Email).Error("otp issue failed")
		}
		response.Flag(c, http.StatusInternalServerError, false, "Failed to send OTP")
		return
	}
	response.Flag(c, http.StatusOK, true, "OTP sent successfully")
}

// Verify handles POST /{domain}/verify-otp.
func (h *OTPHandler) Verify(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Flag(c, http.StatusBadRequest, false, "Email and OTP are required")
		return
	}
	if err := h.Svc.Verify(c.Request.Context(), req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, otp.ErrExpired):
			response.Flag(c, http.StatusBadRequest, false, "OTP has expired")
		case errors.Is(err, otp.ErrNotFound), errors.Is(err, otp.ErrMismatch):
			response.Flag(c, http.StatusBadRequest, false, "Invalid OTP")
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("email", req.Email).Error("otp verify failed")
			}
			response.Flag(c, http.StatusInternalServerError, false, "Error verifying OTP")
		}
		return
	}
	response.Flag(c, http.StatusOK, true, "OTP verified successfully")
}
