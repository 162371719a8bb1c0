package router

import (
	"github.com/healisdev/healis-api/internal/application"
	"github.com/healisdev/healis-api/internal/container"
	"github.com/healisdev/healis-api/internal/domain/booking"
	pginfra "github.com/healisdev/healis-api/internal/infrastructure/postgres"
	handlers "github.com/healisdev/healis-api/internal/interface/http"
	"github.com/healisdev/healis-api/internal/otp"
	"github.com/healisdev/healis-api/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers one module per booking domain plus auth and
// debug. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	bookingRepo := pginfra.NewBookingRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		container.GetRabbitPub(),
		container.GetES(),
		cfg.ESPatientsIndex,
		cfg,
	)
	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))

	bookingSvc := application.NewBookingService(userRepo, bookingRepo, container.GetRabbitPub(), cfg, logger)
	ledger := otp.NewLedger(otp.NewRedisStore(container.GetRedis(), cfg.OTPValidity), cfg.OTPValidity)
	otpSvc := application.NewOTPService(ledger, container.GetMailgun(), cfg, logger)

	for _, d := range booking.Domains {
		bh := handlers.NewBookingHandler(d, bookingSvc, logger)
		oh := handlers.NewOTPHandler(d.Label, otpSvc, logger)
		r.Add(modules.NewBookingModule(bh, oh))
	}

	r.Add(modules.NewDebugModule())
}
