package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/youth-league/internal/domain/user"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
	"github.com/riskibarqy/youth-league/internal/usecase"
)

// Claims is the access token payload issued by the league account service.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Verifier struct {
	secret []byte
	issuer string
	clock  clockwork.Clock
	logger *logging.Logger
}

type Option func(*Verifier)

func WithClock(clock clockwork.Clock) Option {
	return func(v *Verifier) {
		if clock != nil {
			v.clock = clock
		}
	}
}

func NewVerifier(secret, issuer string, logger *logging.Logger, opts ...Option) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	v := &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		clock:  clockwork.NewRealClock(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.clock.Now),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		v.logger.DebugContext(ctx, "reject access token", "error", err)
		return user.Principal{}, fmt.Errorf("%w: %s", usecase.ErrUnauthorized, reason(err))
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return user.Principal{}, fmt.Errorf("%w: token subject is empty", usecase.ErrUnauthorized)
	}
	role, ok := user.ParseRole(claims.Role)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown role %q", usecase.ErrUnauthorized, claims.Role)
	}

	return user.Principal{
		UserID: claims.Subject,
		Email:  strings.TrimSpace(claims.Email),
		Role:   role,
	}, nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "invalid signature"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "unexpected issuer"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed token"
	default:
		return "invalid token"
	}
}
