package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nkarpov/portfolio-site-backend/errs"
)

// Responder writes the API's JSON envelopes. Every success body carries
// "success": true, every error body "success": false plus an "error"
// message.
type Responder struct {
	logger     zerolog.Logger
	production bool
}

func NewResponder(logger zerolog.Logger, production bool) Responder {
	return Responder{logger, production}
}

// WriteJSON writes data as a JSON response. The caller sets a non-200
// status with w.WriteHeader beforehand when needed.
func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError translates err into the JSON error envelope. Unexpected
// errors become 500s; their details are only echoed outside production.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())

		response := map[string]any{
			"success": false,
			"error":   "Internal Server Error",
		}
		if !r.production {
			response["details"] = err.Error()
		}
		w.WriteHeader(http.StatusInternalServerError)
		r.WriteJSON(w, response)
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Msg(apiErr.GetFullError())
	}

	response := map[string]any{
		"success": false,
		"error":   apiErr.Error(),
	}
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}
	if apiErr.Cause != nil && !r.production {
		response["cause"] = apiErr.GetFullError()
	}

	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, response)
}
