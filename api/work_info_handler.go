package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nkarpov/portfolio-site-backend/errs"
	"github.com/nkarpov/portfolio-site-backend/models"
)

// workInfoStore is the singleton work-info repository surface.
// *database.WorkInfoRepo satisfies it.
type workInfoStore interface {
	Get() (*models.WorkInfo, error)
	Update(info *models.WorkInfo) error
}

type workInfoHandler struct {
	responder Responder
	logger    zerolog.Logger
	workInfo  workInfoStore
}

func newWorkInfoHandler(workInfo workInfoStore, production bool) workInfoHandler {
	logger := log.With().Str("handlerName", "workInfoHandler").Logger()
	return workInfoHandler{
		responder: NewResponder(logger, production),
		logger:    logger,
		workInfo:  workInfo,
	}
}

// getWorkInfo returns the singleton document, creating defaults on
// first read.
func (h workInfoHandler) getWorkInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := h.workInfo.Get()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "work info", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"data":    info,
		})
	}
}

// updateWorkInfo replaces the singleton document wholesale.
func (h workInfoHandler) updateWorkInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var info models.WorkInfo
		if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode work info request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.workInfo.Update(&info); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "work info", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"data":    info,
		})
	}
}
