package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/healisdev/healis-api/internal/application"
	"github.com/healisdev/healis-api/internal/domain/entity"
	"github.com/healisdev/healis-api/pkg/helpers"
	"github.com/healisdev/healis-api/pkg/validation"
)

type authTestAPI struct {
	engine *gin.Engine
}

func newAuthTestAPI(t *testing.T) *authTestAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	users := &stubUserRepo{users: make(map[string]*entity.User)}
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	svc := application.NewAuthService(users, jwt, rdb, nil, nil, nil, "", nil)
	h := NewAuthHandler(svc, nil, "", false)

	engine := gin.New()
	engine.POST("/auth", h.Register)
	engine.POST("/auth/login", h.Login)
	engine.POST("/auth/refresh", h.Refresh)
	engine.GET("/auth/:userId", h.GetUser)

	return &authTestAPI{engine: engine}
}

func registerBody(email string) gin.H {
	return gin.H{
		"fullName":    "Alice Fernandes",
		"phoneNumber": "+919876543210",
		"dateOfBirth": "1992-06-15",
		"gender":      "Female",
		"email":       email,
		"password":    "password123",
	}
}

func (a *authTestAPI) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := newJSONRequest(t, method, path, body)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w, decodeBody(t, w)
}

func TestRegisterValidation(t *testing.T) {
	api := newAuthTestAPI(t)

	w, body := api.do(t, http.MethodPost, "/auth", gin.H{
		"fullName": "Alice Fernandes",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid registration data", body["message"])
	details, _ := body["error"].(map[string]any)
	require.Contains(t, details, "email")
	require.Contains(t, details, "password")
	require.Contains(t, details, "phoneNumber")
}

func TestRegisterLoginAndGetUser(t *testing.T) {
	api := newAuthTestAPI(t)

	w, body := api.do(t, http.MethodPost, "/auth", registerBody("Alice@Example.com"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, "Registration successful", body["message"])
	userID, _ := body["userId"].(string)
	require.NotEmpty(t, userID)

	w, body = api.do(t, http.MethodPost, "/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "Login successful", body["message"])
	require.Equal(t, userID, body["userId"])
	require.Equal(t, "Alice Fernandes", body["fullName"])

	var access, refresh *http.Cookie
	for _, ck := range w.Result().Cookies() {
		switch ck.Name {
		case "access_token":
			access = ck
		case "refresh_token":
			refresh = ck
		}
	}
	require.NotNil(t, access, "login must set the access token cookie")
	require.NotNil(t, refresh, "login must set the refresh token cookie")
	require.True(t, access.HttpOnly)

	w, body = api.do(t, http.MethodGet, "/auth/"+userID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Alice Fernandes", body["fullName"])
	require.Equal(t, "alice@example.com", body["email"])

	// Refresh rides on the cookie alone.
	w, body = api.do(t, http.MethodPost, "/auth/refresh", nil, refresh)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, userID, body["userId"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	api := newAuthTestAPI(t)

	w, _ := api.do(t, http.MethodPost, "/auth", registerBody("alice@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := api.do(t, http.MethodPost, "/auth", registerBody("alice@example.com"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "User with this email or phone number already exists", body["message"])
}

func TestLoginErrorStatuses(t *testing.T) {
	api := newAuthTestAPI(t)
	w, _ := api.do(t, http.MethodPost, "/auth", registerBody("alice@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := api.do(t, http.MethodPost, "/auth/login", gin.H{
		"email": "nobody@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "User not found", body["message"])

	w, body = api.do(t, http.MethodPost, "/auth/login", gin.H{
		"email": "alice@example.com", "password": "wrongpass",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid password", body["message"])
}

func TestRefreshWithoutCookie(t *testing.T) {
	api := newAuthTestAPI(t)
	w, _ := api.do(t, http.MethodPost, "/auth/refresh", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserUnknown(t *testing.T) {
	api := newAuthTestAPI(t)
	w, body := api.do(t, http.MethodGet, "/auth/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "User not found", body["message"])
}
