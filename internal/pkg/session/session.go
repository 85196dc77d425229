package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shandysiswandi/gomart/internal/pkg/clock"
	"github.com/shandysiswandi/gomart/internal/pkg/uid"
)

const (
	RoleAnonymous = "anonymous"
	RoleShopper   = "shopper"
)

var (
	ErrSigningKeyTooShort = errors.New("HS512 signing key must be at least 64 bytes (512 bits)")
	ErrTokenExpired       = errors.New("session token has expired")
	ErrInvalidToken       = errors.New("invalid session token")
)

// Claims are the session token claims. Subject carries the session id.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// SessionID returns the cart session id.
func (c Claims) SessionID() string {
	return c.Subject
}

// Token is a freshly issued session.
type Token struct {
	Value     string
	SessionID string
	ExpiresAt time.Time
}

// Manager issues and verifies session tokens.
type Manager interface {
	Issue(ctx context.Context) (Token, error)
	Verify(token string) (Claims, error)
}

type Config struct {
	Secret   []byte
	Issuer   string
	Audience []string
	TTL      time.Duration
	Clock    clock.Clocker
	UUID     uid.StringID
}

// HS512 is the Manager backed by an HMAC-SHA512 secret.
type HS512 struct {
	cfg Config
}

func NewHS512(cfg Config) (*HS512, error) {
	if len(cfg.Secret) < 64 {
		return nil, ErrSigningKeyTooShort
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &HS512{cfg: cfg}, nil
}

func (h *HS512) Issue(ctx context.Context) (Token, error) {
	if err := ctx.Err(); err != nil {
		return Token{}, err
	}

	now := h.cfg.Clock.Now()
	sid := h.cfg.UUID.Generate()
	exp := now.Add(h.cfg.TTL)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        h.cfg.UUID.Generate(),
			Subject:   sid,
			Issuer:    h.cfg.Issuer,
			Audience:  h.cfg.Audience,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: RoleShopper,
	}).SignedString(h.cfg.Secret)
	if err != nil {
		return Token{}, err
	}

	return Token{Value: signed, SessionID: sid, ExpiresAt: exp}, nil
}

func (h *HS512) Verify(token string) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithIssuer(h.cfg.Issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(h.cfg.Clock.Now),
	}
	if len(h.cfg.Audience) > 0 {
		opts = append(opts, jwt.WithAudience(h.cfg.Audience...))
	}

	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return h.cfg.Secret, nil
	}, opts...)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Claims{}, ErrTokenExpired
	}
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
