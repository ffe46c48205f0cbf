package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public surface and the authenticated admin
// surface. Anything that writes requires an admin session; public GETs
// only carry the session through so showAll works for admins.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.identify)

			r.Get("/projects", handlers.projectHandler.listProjects())
			r.Get("/projects/filters", handlers.projectHandler.listFilters())
			r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
			r.Get("/work-info", handlers.workInfoHandler.getWorkInfo())
			r.Get("/social-links", handlers.socialLinksHandler.getSocialLinks())

			r.Post("/contact", handlers.contactHandler.submitContact())
			r.Post("/auth/login", handlers.authHandler.login())
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects", handlers.projectHandler.updateProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Patch("/projects/{projectID}", handlers.projectHandler.patchProject())
			r.Delete("/projects", handlers.projectHandler.deleteProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

			r.Put("/work-info", handlers.workInfoHandler.updateWorkInfo())
			r.Put("/social-links", handlers.socialLinksHandler.updateSocialLinks())
		})
	})
}
