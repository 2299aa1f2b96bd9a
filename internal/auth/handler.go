package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-auth-go/pkg/utilities"
)

// CookieName is the cookie carrying the session token.
const CookieName = "access_token"

// Exchanger turns an identity token into a session token.
type Exchanger interface {
	Exchange(ctx context.Context, identityToken string) (string, error)
}

// Handler exposes the token exchange over HTTP.
type Handler struct {
	svc          Exchanger
	logger       *zap.SugaredLogger
	secureCookie bool
}

// NewHandler constructs a Handler. secureCookie sets the Secure flag on the
// session cookie and should be on in production.
func NewHandler(svc Exchanger, logger *zap.SugaredLogger, secureCookie bool) *Handler {
	return &Handler{svc: svc, logger: logger, secureCookie: secureCookie}
}

// CreateToken handles POST /api/v1/auth/token.
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	logger := utilities.LoggerFrom(r.Context(), h.logger)

	identityToken, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		logger.Errorw("Firebase token is required", "err", ErrMissingCredential)
		h.writeError(w, ErrMissingCredential)
		return
	}

	token, err := h.svc.Exchange(r.Context(), identityToken)
	if err != nil {
		logger.Errorw("token exchange failed", "err", err)
		h.writeError(w, err)
		return
	}

	logger.Info("JWT created")
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
	})
	h.writeJSON(w, http.StatusOK, TokenResponse{Success: true, Message: "Token created", Token: token})
}

// bearerToken extracts <token> from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// statusFor maps exchange errors to an HTTP status and a client-facing message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return http.StatusUnauthorized, ErrMissingCredential.Error()
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized, ErrInvalidToken.Error()
	case errors.Is(err, ErrSecretUnavailable):
		return http.StatusInternalServerError, "Signing secret unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, msg := statusFor(err)
	h.writeJSON(w, status, TokenResponse{Success: false, Message: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
