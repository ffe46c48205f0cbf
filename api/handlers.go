package api

import (
	"github.com/nkarpov/portfolio-site-backend/cache"
	"github.com/nkarpov/portfolio-site-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, catalogCache *cache.CatalogCache, cfg map[string]string, passwordHash, secret []byte, production bool) *routeHandlers {
	return &routeHandlers{
		authHandler:        newAuthHandler(passwordHash, secret, production),
		projectHandler:     newProjectHandler(db.ProjectRepo(), catalogCache, production),
		workInfoHandler:    newWorkInfoHandler(db.WorkInfoRepo(), production),
		socialLinksHandler: newSocialLinksHandler(db.SocialLinksRepo(), production),
		contactHandler:     newContactHandler(cfg, production),
	}
}
