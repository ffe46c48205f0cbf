package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nkarpov/portfolio-site-backend/errs"
	"github.com/nkarpov/portfolio-site-backend/models"
	"github.com/nkarpov/portfolio-site-backend/services"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	cfg       map[string]string
	// send is swappable in tests; defaults to the Resend service.
	send func(cfg map[string]string, req models.ContactRequest) error
}

func newContactHandler(cfg map[string]string, production bool) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()
	return contactHandler{
		responder: NewResponder(logger, production),
		logger:    logger,
		cfg:       cfg,
		send:      services.SendContactNotification,
	}
}

// submitContact validates the contact form and mails it to the site
// owner. Without mail credentials the submission is logged and reported
// as a soft success so the public form never errors on configuration.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		required := []struct {
			field string
			value string
		}{
			{"name", req.Name},
			{"email", req.Email},
			{"subject", req.Subject},
			{"message", req.Message},
			{"projectType", req.ProjectType},
		}
		for _, f := range required {
			if f.value == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError(f.field))
				return
			}
		}

		if !services.MailConfigured(h.cfg) {
			h.logger.Info().
				Str("name", req.Name).
				Str("email", req.Email).
				Str("subject", req.Subject).
				Msg("contact request received, mail delivery not configured")
			h.responder.WriteJSON(w, map[string]any{
				"success": true,
				"message": "Заявка принята",
			})
			return
		}

		if err := h.send(h.cfg, req); err != nil {
			h.logger.Error().Err(err).Msg("failed to send contact notification")
			h.responder.WriteError(w, errs.NewInternalError("Не удалось отправить заявку"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"message": "Заявка отправлена",
		})
	}
}
