package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	helper "bookshelf_backend/internals/helpers"
)

// Session is what a verified token tells us about the caller.
type Session struct {
	UserID    string
	ExpiresAt time.Time
}

// Verifier checks session tokens issued by the auth provider. Build it once
// at startup and share it between route groups.
type Verifier struct {
	secret     []byte
	cookieName string
	leeway     time.Duration
	log        *zap.Logger
}

type VerifierOpts struct {
	Secret     string
	CookieName string
	Leeway     time.Duration
	Log        *zap.Logger
}

func NewVerifier(o VerifierOpts) (*Verifier, error) {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Leeway == 0 {
		o.Leeway = 30 * time.Second
	}
	return &Verifier{
		secret:     []byte(secret),
		cookieName: o.CookieName,
		leeway:     o.Leeway,
		log:        o.Log.Named("auth"),
	}, nil
}

func (v *Verifier) Verify(raw string) (*Session, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("token has no exp")
	}
	expiresAt := time.Unix(int64(exp), 0).UTC()
	if time.Now().UTC().After(expiresAt.Add(v.leeway)) {
		return nil, errors.New("token expired")
	}

	userID, err := extractUserID(claims)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: userID, ExpiresAt: expiresAt}, nil
}

// Required rejects requests without a valid session with 401 before any
// feature handler runs.
func (v *Verifier) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := extractToken(c, v.cookieName)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - "+err.Error())
		}
		session, err := v.Verify(raw)
		if err != nil {
			v.log.Debug("rejected session", zap.String("path", c.Path()), zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid session")
		}
		c.Locals(helper.LocUserID, session.UserID)
		return c.Next()
	}
}
