package services

import (
	"errors"
	"strings"
	"time"

	"github.com/arzan03/BookNook/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the validity window of both session and reset tokens.
const TokenTTL = time.Hour

const (
	sessionAudience = "session"
	resetAudience   = "password-reset"
)

type sessionClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

type resetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: TokenTTL, now: time.Now}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

// IssueSession generates a session token carrying the user id.
func (t *TokenIssuer) IssueSession(userID string) (string, error) {
	return t.sign(&sessionClaims{ID: userID, RegisteredClaims: t.registered(sessionAudience)})
}

// IssueReset generates a password reset token carrying the email.
func (t *TokenIssuer) IssueReset(email string) (string, error) {
	return t.sign(&resetClaims{Email: email, RegisteredClaims: t.registered(resetAudience)})
}

// VerifySession returns the user id of a valid session token.
// Expired tokens fail with an apperr Expired error, everything else with Unauthorized.
func (t *TokenIssuer) VerifySession(token string) (string, error) {
	var claims sessionClaims
	if err := t.parse(token, &claims, sessionAudience); err != nil {
		return "", err
	}
	if strings.TrimSpace(claims.ID) == "" {
		return "", apperr.NewUnauthorized("Invalid token payload")
	}
	return claims.ID, nil
}

// VerifyReset returns the email of a valid password reset token.
func (t *TokenIssuer) VerifyReset(token string) (string, error) {
	var claims resetClaims
	if err := t.parse(token, &claims, resetAudience); err != nil {
		return "", err
	}
	if strings.TrimSpace(claims.Email) == "" {
		return "", apperr.NewUnauthorized("Invalid token payload")
	}
	return claims.Email, nil
}

func (t *TokenIssuer) registered(audience string) jwt.RegisteredClaims {
	now := t.now()
	return jwt.RegisteredClaims{
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
}

func (t *TokenIssuer) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", apperr.NewInternal("Failed to sign token", err)
	}
	return signed, nil
}

func (t *TokenIssuer) parse(token string, claims jwt.Claims, audience string) error {
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperr.Wrap(apperr.Expired, "Token has expired", err)
	default:
		return apperr.Wrap(apperr.Unauthorized, "Invalid token", err)
	}
}
