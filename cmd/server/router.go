package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bcmenu/benglish-api/internal/api"
	apiMiddleware "github.com/bcmenu/benglish-api/internal/api/middleware"
	"github.com/bcmenu/benglish-api/internal/api/shared"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.passwordHasher,
		app.resetTokens,
		app.mailer,
		app.uploader,
		app.config.Mail,
	)
	categoryHandler := api.NewCategoryHandler(app.categoryStore)
	progressHandler := api.NewProgressHandler(app.progressService)
	reviewHandler := api.NewReviewHandler(app.reviewService)
	dailyHandler := api.NewDailyHandler(app.progressService)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	// The auth endpoints get a stricter limiter than the rest of the API:
	// they are the credential-guessing surface.
	authLimiter := apiMiddleware.NewRateLimiter(
		app.config.Server.RateLimitRPS,
		app.config.Server.RateLimitBurst,
	)
	generalLimiter := apiMiddleware.NewRateLimiter(
		app.config.Server.RateLimitRPS*10,
		app.config.Server.RateLimitBurst*10,
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithOK(w, r)
		})

		// Public auth endpoints
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Limit)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/refresh", authHandler.Refresh)
			r.Post("/auth/logout", authHandler.Logout)
			r.Post("/auth/forgot", authHandler.ForgotPassword)
			r.Post("/auth/change-password-temp", authHandler.ChangePasswordWithToken)
		})

		// Public catalog
		r.Group(func(r chi.Router) {
			r.Use(generalLimiter.Limit)
			r.Get("/categories", categoryHandler.List)
			r.Get("/categories/{id}", categoryHandler.GetByID)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(generalLimiter.Limit)
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)
			r.Delete("/auth/account", authHandler.DeleteAccount)
			r.Put("/auth/avatar", authHandler.UpdateAvatar)

			r.Post("/progress/learn", progressHandler.Learn)
			r.Get("/progress/summary", progressHandler.Summary)
			r.Get("/progress/learned", progressHandler.Learned)
			r.Post("/progress/difficult-wrong", progressHandler.DifficultWrong)
			r.Get("/progress/difficult-count", progressHandler.DifficultCount)

			r.Get("/review/ready", reviewHandler.Ready)
			r.Post("/review/complete", reviewHandler.Complete)

			r.Get("/activity/days", dailyHandler.ActivityDays)
			r.Get("/daily-progress", dailyHandler.Get)
			r.Post("/daily-progress/increment", dailyHandler.Increment)
		})
	})

	return r
}
