package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/healisdev/healis-api/internal/application"
	"github.com/healisdev/healis-api/internal/domain/entity"
	"github.com/healisdev/healis-api/pkg/helpers"
	"github.com/healisdev/healis-api/pkg/response"
	"github.com/healisdev/healis-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		Svc:     svc,
		Logger:  logger,
		Cookies: helpers.NewCookie(cookieDomain, cookieSecure),
	}
}

type registerRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	Gender      string `json:"gender" binding:"required,oneof=Male Female 'Prefer Not to Say'"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
}

// Register handles POST /auth.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Data(c, http.StatusBadRequest, gin.H{"message": "Invalid registration data", "error": validation.ToDetails(err)})
		return
	}
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid date of birth", err)
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: *dob,
		Gender:      entity.Gender(req.Gender),
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		if errors.Is(err, application.ErrDuplicateUser) {
			response.Error(c, http.StatusBadRequest, "User with this email or phone number already exists", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("registration failed")
		}
		response.Error(c, http.StatusInternalServerError, "Error registering user", err)
		return
	}
	response.OK(c, http.StatusCreated, "Registration successful", gin.H{"userId": u.ID})
}

// Login handles POST /auth/login. Unknown email and wrong password are
// reported separately: 404 for the former, 401 for the latter.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Email and password are required", nil)
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Invalid password", nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("login failed")
			}
			response.Error(c, http.StatusInternalServerError, "Error logging in", err)
		}
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, http.StatusOK, "Login successful", gin.H{"userId": u.ID, "fullName": u.FullName})
}

// GetUser handles GET /auth/:userId, used by the booking forms to prefill
// the patient's contact details.
func (h *AuthHandler) GetUser(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("user lookup failed")
		}
		response.Error(c, http.StatusInternalServerError, "Error fetching user", err)
		return
	}
	response.Data(c, http.StatusOK, gin.H{"fullName": u.FullName, "email": u.Email})
}

// Refresh handles POST /auth/refresh using the refresh_token cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie("refresh_token")
	if err != nil || token == "" {
		response.Error(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, userID, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "invalid refresh token", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("token refresh failed")
		}
		response.Error(c, http.StatusInternalServerError, "Error refreshing token", err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, http.StatusOK, "Token refreshed", gin.H{"userId": userID})
}

// Logout handles POST /auth/logout (auth required).
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString("userID"))
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, "Logged out", nil)
}

// GetProfile handles GET /profile (auth required).
func (h *AuthHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("profile lookup failed")
		}
		response.Error(c, http.StatusInternalServerError, "Error fetching profile", err)
		return
	}
	response.Data(c, http.StatusOK, gin.H{
		"userId":      u.ID,
		"fullName":    u.FullName,
		"email":       u.Email,
		"phoneNumber": u.PhoneNumber,
		"dateOfBirth": u.DateOfBirth.UTC().Format("2006-01-02"),
		"gender":      u.Gender,
	})
}

// Search handles GET /auth/search?q=&size= (auth required).
func (h *AuthHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchPatients(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("patient search failed")
		}
		response.Error(c, http.StatusInternalServerError, "Error searching patients", err)
		return
	}
	response.Data(c, http.StatusOK, gin.H{"patients": hits})
}
