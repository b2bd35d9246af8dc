package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/hlstech/website/internal/handler"
	"github.com/hlstech/website/internal/middleware"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Cors.TrustedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Route not found"}`))
	})

	projectHandler := handler.NewProjectHandler(app.logger, app.projectStore)
	blogHandler := handler.NewBlogHandler(app.logger, app.blogStore)
	serviceHandler := handler.NewServiceHandler(app.logger, app.serviceStore)
	testimonialHandler := handler.NewTestimonialHandler(app.logger, app.testimonialStore)
	contactHandler := handler.NewContactHandler(app.logger, app.contactStore, app.newsletterStore, app.mailer, app.mailQueue)
	adminHandler := handler.NewAdminHandler(app.logger, app.adminStore, app.tokens)
	analyticsHandler := handler.NewAnalyticsHandler(app.logger, app.analyticsStore)

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(
			app.config.RateLimitRequests,
			time.Duration(app.config.RateLimitWindowMinutes)*time.Minute,
		))

		r.Get("/health", handler.Health(app.pool))

		// Public site reads
		r.Get("/projects", projectHandler.List)
		r.Get("/projects/{id}", projectHandler.Get)
		r.Get("/blogs", blogHandler.List)
		r.Get("/blogs/slug/{slug}", blogHandler.GetBySlug)
		r.Get("/services", serviceHandler.List)
		r.Get("/services/{id}", serviceHandler.Get)
		r.Get("/testimonials", testimonialHandler.List)
		r.Get("/testimonials/{id}", testimonialHandler.Get)

		// Public site writes
		r.Post("/contact", contactHandler.Submit)
		r.Post("/contact/newsletter", contactHandler.Subscribe)
		r.Post("/admin/login", adminHandler.Login)

		// Protected admin routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(app.tokens, app.adminStore))

			r.Get("/admin/me", adminHandler.Me)

			r.Post("/projects", projectHandler.Create)
			r.Put("/projects/{id}", projectHandler.Update)
			r.Delete("/projects/{id}", projectHandler.Delete)

			r.Get("/blogs/{id}", blogHandler.Get)
			r.Post("/blogs", blogHandler.Create)
			r.Put("/blogs/{id}", blogHandler.Update)
			r.Delete("/blogs/{id}", blogHandler.Delete)

			r.Post("/services", serviceHandler.Create)
			r.Put("/services/{id}", serviceHandler.Update)
			r.Delete("/services/{id}", serviceHandler.Delete)

			r.Get("/testimonials/all", testimonialHandler.ListAll)
			r.Post("/testimonials", testimonialHandler.Create)
			r.Put("/testimonials/{id}", testimonialHandler.Update)
			r.Patch("/testimonials/{id}/approve", testimonialHandler.Approve)
			r.Delete("/testimonials/{id}", testimonialHandler.Delete)

			r.Get("/contact", contactHandler.List)
			r.Get("/contact/newsletter/all", contactHandler.Subscribers)
			r.Get("/contact/{id}", contactHandler.Get)
			r.Patch("/contact/{id}/status", contactHandler.UpdateStatus)
			r.Delete("/contact/{id}", contactHandler.Delete)

			r.Get("/analytics/dashboard", analyticsHandler.Dashboard)

			// Super admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin())

				r.Post("/admin/register", adminHandler.Register)
				r.Get("/admin/all", adminHandler.List)
			})
		})
	})

	return r
}
