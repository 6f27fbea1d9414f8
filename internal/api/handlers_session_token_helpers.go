package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingSessionToken = errors.New("missing session token")
	errInvalidSessionToken = errors.New("invalid session token")
)

func (handler *Handler) buildSessionToken(sessionID string, now time.Time) (string, error) {
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionTokenIssuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(handler.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.signingKey)
}

func (handler *Handler) parseSessionToken(raw string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.signingKey, nil
	}, jwt.WithIssuer(sessionTokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", errInvalidSessionToken
	}
	if strings.TrimSpace(claims.SessionID) == "" {
		return "", errInvalidSessionToken
	}
	return claims.SessionID, nil
}

func (handler *Handler) setSessionCookie(c *fiber.Ctx, token string, now time.Time) error {
	sealed, err := handler.cookieCodec.seal(sessionCookiePurpose, []byte(token))
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  now.Add(handler.sessionTTL),
	})
	return nil
}

// renewSession re-issues the token after a write so its expiry follows the
// store's idle window. Cookie clients get a fresh cookie; every client gets
// the token in X-Session-Token.
func (handler *Handler) renewSession(c *fiber.Ctx, sessionID string) error {
	now := time.Now()
	token, err := handler.buildSessionToken(sessionID, now)
	if err != nil {
		return err
	}
	if !hasBearerToken(c) {
		if err := handler.setSessionCookie(c, token, now); err != nil {
			return err
		}
	}
	c.Set(sessionTokenHeader, token)
	c.Set(sessionExpiresHeader, now.Add(handler.sessionTTL).UTC().Format(time.RFC3339))
	return nil
}

// sessionTokenFromRequest prefers an explicit bearer token over the sealed
// cookie.
func (handler *Handler) sessionTokenFromRequest(c *fiber.Ctx) (string, error) {
	authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if strings.HasPrefix(authorization, bearerPrefix) {
		token := strings.TrimSpace(strings.TrimPrefix(authorization, bearerPrefix))
		if token == "" {
			return "", errMissingSessionToken
		}
		return token, nil
	}

	rawCookie := strings.TrimSpace(c.Cookies(sessionCookieName))
	if rawCookie == "" {
		return "", errMissingSessionToken
	}
	token, err := handler.cookieCodec.open(sessionCookiePurpose, rawCookie)
	if err != nil {
		return "", errInvalidSessionToken
	}
	return string(token), nil
}

func hasBearerToken(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.TrimSpace(c.Get(fiber.HeaderAuthorization)), bearerPrefix)
}
