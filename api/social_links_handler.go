package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nkarpov/portfolio-site-backend/errs"
	"github.com/nkarpov/portfolio-site-backend/models"
)

// socialLinksStore is the singleton social-links repository surface.
// *database.SocialLinksRepo satisfies it.
type socialLinksStore interface {
	Get() (*models.SocialLinks, error)
	Update(links *models.SocialLinks) error
}

type socialLinksHandler struct {
	responder   Responder
	logger      zerolog.Logger
	socialLinks socialLinksStore
}

func newSocialLinksHandler(socialLinks socialLinksStore, production bool) socialLinksHandler {
	logger := log.With().Str("handlerName", "socialLinksHandler").Logger()
	return socialLinksHandler{
		responder:   NewResponder(logger, production),
		logger:      logger,
		socialLinks: socialLinks,
	}
}

// getSocialLinks returns the singleton document, creating defaults on
// first read. Links come back in their drag-and-drop order.
func (h socialLinksHandler) getSocialLinks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links, err := h.socialLinks.Get()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "social links", err))
			return
		}

		sortLinks(links)
		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"data":    links,
		})
	}
}

// updateSocialLinks replaces the singleton document wholesale. The
// order field of each link is renumbered from its position so a
// reordered list persists consistently.
func (h socialLinksHandler) updateSocialLinks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var links models.SocialLinks
		if err := json.NewDecoder(r.Body).Decode(&links); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode social links request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		for i := range links.Links {
			links.Links[i].Order = i
		}

		if err := h.socialLinks.Update(&links); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "social links", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"data":    links,
		})
	}
}

func sortLinks(links *models.SocialLinks) {
	sort.SliceStable(links.Links, func(i, j int) bool {
		return links.Links[i].Order < links.Links[j].Order
	})
}
