package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/wellness/internal/i18n"
	"github.com/terraincognita07/wellness/internal/security"
	"github.com/terraincognita07/wellness/internal/services"
)

func NewHandler(assessments *services.AssessmentService, secret string, i18nManager *i18n.Manager, cookieSecure bool, sessionTTL time.Duration) (*Handler, error) {
	if assessments == nil {
		return nil, errors.New("assessment service is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if sessionTTL <= 0 {
		sessionTTL = services.DefaultSessionTTL
	}

	keys, err := security.DeriveSessionKeys([]byte(secret))
	if err != nil {
		return nil, err
	}
	codec, err := newSecureCookieCodec(keys.Sealing)
	if err != nil {
		return nil, err
	}

	return &Handler{
		assessments:    assessments,
		i18n:           i18nManager,
		signingKey:     keys.Signing,
		cookieCodec:    codec,
		cookieSecure:   cookieSecure,
		sessionTTL:     sessionTTL,
		createLimiter:  newAttemptLimiter(),
		streamInterval: defaultStreamTick,
	}, nil
}
