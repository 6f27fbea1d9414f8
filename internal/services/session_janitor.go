package services

import (
	"context"
	"log"
	"time"
)

const (
	DefaultSessionTTL      = 24 * time.Hour
	defaultJanitorInterval = 15 * time.Minute
)

// SessionJanitor removes assessment sessions that have been idle longer
// than the session TTL.
type SessionJanitor struct {
	assessments *AssessmentService
	ttl         time.Duration
	interval    time.Duration
}

func NewSessionJanitor(assessments *AssessmentService, ttl time.Duration) *SessionJanitor {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	interval := defaultJanitorInterval
	if ttl < interval {
		interval = ttl
	}
	return &SessionJanitor{
		assessments: assessments,
		ttl:         ttl,
		interval:    interval,
	}
}

func (janitor *SessionJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(janitor.interval)
	go func() {
		defer ticker.Stop()

		janitor.run()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				janitor.run()
			}
		}
	}()
}

func (janitor *SessionJanitor) run() {
	removed, err := janitor.assessments.PurgeIdle(janitor.ttl)
	if err != nil {
		log.Printf("sessions: purge idle failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("sessions: purged %d idle assessment sessions", removed)
	}
}
