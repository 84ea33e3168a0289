package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/funaab-ict/clearance-service/internal/adapters/middleware"
	"github.com/funaab-ict/clearance-service/internal/core/domain"
)

// RouterConfig bundles everything the HTTP surface needs.
type RouterConfig struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Students  *StudentHandler
	Devices   *DeviceHandler
	Tags      *TagHandler
	Scanners  *ScannerHandler
	Clearance *ClearanceHandler
	RFID      *RFIDHandler
	Health    *HealthHandler

	AuthMW   *middleware.AuthMiddleware
	DeviceMW *middleware.DeviceMiddleware

	AllowedOrigins []string
}

// NewRouter wires every route with its authentication requirement. Device API
// keys are accepted only on the scan-report and tag check-status endpoints;
// everything else requires a user token.
func NewRouter(cfg RouterConfig) http.Handler {
	admin := []string{string(domain.RoleAdmin)}
	staff := []string{string(domain.RoleAdmin), string(domain.RoleStaff)}
	anyone := []string{string(domain.RoleAdmin), string(domain.RoleStaff), string(domain.RoleStudent)}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.Get("/health", cfg.Health.Health)
	r.Get("/health/ready", cfg.Health.Ready)
	r.Get("/health/live", cfg.Health.Live)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/token", cfg.Auth.Login)
	r.Post("/logout", cfg.AuthMW.RequireRole(anyone, cfg.Auth.Logout))
	r.Get("/users/me", cfg.AuthMW.RequireRole(anyone, cfg.Auth.Me))

	r.Get("/students/lookup", cfg.AuthMW.RequireRole(anyone, cfg.Students.Lookup))

	r.Route("/admin", func(r chi.Router) {
		r.Post("/users", cfg.AuthMW.RequireRole(admin, cfg.Users.Create))
		r.Get("/users", cfg.AuthMW.RequireRole(admin, cfg.Users.List))
		r.Get("/users/lookup", cfg.AuthMW.RequireRole(admin, cfg.Users.Lookup))
		r.Put("/users/{id}", cfg.AuthMW.RequireRole(admin, cfg.Users.Update))
		r.Delete("/users/{id}", cfg.AuthMW.RequireRole(admin, cfg.Users.Delete))

		r.Post("/students", cfg.AuthMW.RequireRole(staff, cfg.Students.Create))
		r.Get("/students", cfg.AuthMW.RequireRole(staff, cfg.Students.List))
		r.Get("/students/lookup", cfg.AuthMW.RequireRole(staff, cfg.Students.Lookup))
		r.Get("/students/{id}", cfg.AuthMW.RequireRole(staff, cfg.Students.GetByID))
		r.Put("/students/{id}", cfg.AuthMW.RequireRole(staff, cfg.Students.Update))
		r.Delete("/students/{id}", cfg.AuthMW.RequireRole(admin, cfg.Students.Delete))

		r.Post("/tags/link", cfg.AuthMW.RequireRole(admin, cfg.Tags.Link))
		r.Delete("/tags/{tagID}/unlink", cfg.AuthMW.RequireRole(admin, cfg.Tags.Unlink))

		r.Post("/devices", cfg.AuthMW.RequireRole(admin, cfg.Devices.Register))
		r.Get("/devices", cfg.AuthMW.RequireRole(admin, cfg.Devices.List))
		r.Delete("/devices/{id}", cfg.AuthMW.RequireRole(admin, cfg.Devices.Delete))

		r.Post("/scanners/activate", cfg.AuthMW.RequireRole(staff, cfg.Scanners.Activate))
		r.Post("/scanners/scan", cfg.DeviceMW.RequireDevice(cfg.Scanners.Scan))
		r.Get("/scanners/retrieve", cfg.AuthMW.RequireRole(staff, cfg.Scanners.Retrieve))

		r.Get("/clearance/overview", cfg.AuthMW.RequireRole(admin, cfg.Clearance.Overview))
	})

	r.Put("/clearance/update", cfg.AuthMW.RequireRole(staff, cfg.Clearance.UpdateStatus))

	r.Post("/rfid/check-status", cfg.DeviceMW.RequireDevice(cfg.RFID.CheckStatus))

	return r
}
