package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/nkarpov/portfolio-site-backend/errs"
)

// sessionTTL bounds an issued admin session.
const sessionTTL = 24 * time.Hour

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	passwordHash []byte
	secret       []byte
}

func newAuthHandler(passwordHash, secret []byte, production bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()
	return authHandler{
		responder:    NewResponder(logger, production),
		logger:       logger,
		passwordHash: passwordHash,
		secret:       secret,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// login verifies the shared admin password against its bcrypt hash and
// issues a signed session token with the fixed admin role.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(h.passwordHash) == 0 {
			h.responder.WriteError(w, errs.NewServiceUnavailableError("Вход администратора не настроен"))
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("failed admin login attempt")
			h.responder.WriteError(w, errs.NewUnauthorizedError("Неверный пароль"))
			return
		}

		claims := jwt.MapClaims{
			"role": "admin",
			"iat":  time.Now().Unix(),
			"exp":  time.Now().Add(sessionTTL).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"success":   true,
			"token":     token,
			"expiresIn": int(sessionTTL.Seconds()),
		})
	}
}
