package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-auth-go/internal/secret"
	"github.com/ovaphlow/pitchfork/service-auth-go/pkg/utilities"
)

// SessionTTL is the validity window of a minted session token.
const SessionTTL = time.Hour

// sentinel errors for common failure modes
var (
	ErrMissingCredential = errors.New("Firebase token is required")
	ErrInvalidToken      = errors.New("Invalid Firebase token")
	ErrSecretUnavailable = errors.New("signing secret unavailable")
)

// SecretGetter is the lookup side of the secret provider.
type SecretGetter interface {
	Get(name string) (string, error)
}

// Service exchanges identity tokens for session tokens.
type Service struct {
	secrets SecretGetter
	logger  *zap.SugaredLogger
	now     func() time.Time
}

type Option func(*Service)

// WithClock overrides time.Now for issued-at and expiry claims.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(secrets SecretGetter, logger *zap.SugaredLogger, opts ...Option) *Service {
	s := &Service{secrets: secrets, logger: logger, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Exchange reads the uid claim of identityToken and returns a session token
// for it, signed with the JWT secret and valid for SessionTTL.
//
// The identity token is decoded but its signature is NOT verified: any
// well-formed JWT carrying a non-empty string uid claim is accepted,
// whatever its alg header says.
func (s *Service) Exchange(ctx context.Context, identityToken string) (string, error) {
	logger := utilities.LoggerFrom(ctx, s.logger)
	logger.Debugw("Creating token", "identity_token", redact(identityToken))

	uid, err := subjectFromUnverified(identityToken)
	if err != nil {
		logger.Errorw("Invalid Firebase token", "err", err)
		return "", err
	}

	key, err := s.secrets.Get(secret.JWTSecretName)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSecretUnavailable, err)
	}
	if key == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrSecretUnavailable, secret.JWTSecretName)
	}

	now := s.now()
	claims := SessionClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	logger.Debugw("Token created", "uid", uid, "expires_at", claims.ExpiresAt.Time)
	return signed, nil
}

func subjectFromUnverified(identityToken string) (string, error) {
	claims := jwt.MapClaims{}
	// ErrTokenUnverifiable only reports an unknown or missing alg; the
	// claims are already decoded by then.
	_, _, err := jwt.NewParser().ParseUnverified(identityToken, claims)
	if err != nil && !errors.Is(err, jwt.ErrTokenUnverifiable) {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return "", fmt.Errorf("%w: missing uid claim", ErrInvalidToken)
	}
	return uid, nil
}

// ParseSessionToken verifies a session token signed with key and returns its claims.
func ParseSessionToken(token, key string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(key), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// redact keeps enough of a token to correlate log lines without leaking it.
func redact(token string) string {
	if len(token) <= 12 {
		return "***"
	}
	return token[:12] + "..."
}
