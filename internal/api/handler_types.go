package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/wellness/internal/i18n"
	"github.com/terraincognita07/wellness/internal/services"
)

type Handler struct {
	assessments    *services.AssessmentService
	i18n           *i18n.Manager
	signingKey     []byte
	cookieCodec    *secureCookieCodec
	cookieSecure   bool
	sessionTTL     time.Duration
	createLimiter  *attemptLimiter
	streamInterval time.Duration
}

const (
	createSessionLimit   = 20
	createSessionWindow  = time.Minute
	defaultStreamTick    = 500 * time.Millisecond
	sessionTokenIssuer   = "wellness"
	bearerPrefix         = "Bearer "
	sessionTokenHeader   = "X-Session-Token"
	sessionExpiresHeader = "X-Session-Expires"
	streamEventProgress  = "progress"
	streamEventCompleted = "done"
)

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type stepInput struct {
	Edits []services.FieldEdit `json:"edits"`
}

type submitInput struct {
	Choice string `json:"choice"`
}
