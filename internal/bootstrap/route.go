package bootstrap

import (
	"EnvWatchAPI/internal/config"
	"EnvWatchAPI/internal/controller"
	"EnvWatchAPI/internal/middleware"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type Route struct {
	cfg              *config.AppConfig
	chi              *chi.Mux
	reportController *controller.ReportController
	authController   *controller.AuthController
	auth             *middleware.AuthMiddleware
	rateLimit        *middleware.RateLimitMiddleware
}

func NewRoute(cfg *config.AppConfig, chiMux *chi.Mux, reportController *controller.ReportController, authController *controller.AuthController, auth *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) *Route {
	return &Route{
		cfg:              cfg,
		chi:              chiMux,
		reportController: reportController,
		authController:   authController,
		auth:             auth,
		rateLimit:        rateLimit,
	}
}

func (route *Route) Register() {
	route.chi.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("EnvWatchAPI is running"))
	})

	submitWindow := time.Duration(route.cfg.SubmitRateLimitWindow) * time.Second
	loginWindow := time.Duration(route.cfg.LoginRateLimitWindow) * time.Second

	route.chi.Route("/api", func(r chi.Router) {
		r.With(route.rateLimit.Limit("submit", route.cfg.SubmitRateLimit, submitWindow)).
			Post("/reports", route.reportController.CreateReport)

		r.Get("/reports/{ticketId}", route.reportController.GetReportByTicketID)

		r.With(route.auth.VerifyToken).Get("/reports", route.reportController.GetReports)
		r.With(route.auth.VerifyToken).Patch("/reports/{id}/status", route.reportController.UpdateReportStatus)

		r.With(route.rateLimit.Limit("login", route.cfg.LoginRateLimit, loginWindow)).
			Post("/admin/login", route.authController.Login)
	})
}
