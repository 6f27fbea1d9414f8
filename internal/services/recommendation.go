package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/wellness/internal/models"
)

var ErrMalformedResults = errors.New("malformed recommendation results")

// Recommender turns a completed assessment into a wellness plan. It must
// not write anywhere; the caller stores the returned results.
type Recommender interface {
	ProduceResults(ctx context.Context, snapshot Snapshot) (models.ResultsInfo, error)
}

// FixedRecommender returns the same placeholder plan for every assessment.
type FixedRecommender struct {
	now func() time.Time
}

func NewFixedRecommender() *FixedRecommender {
	return &FixedRecommender{now: func() time.Time { return time.Now().UTC() }}
}

func (recommender *FixedRecommender) ProduceResults(ctx context.Context, _ Snapshot) (models.ResultsInfo, error) {
	if err := ctx.Err(); err != nil {
		return models.ResultsInfo{}, err
	}

	return models.ResultsInfo{
		FitnessRecommendations:      "Based on your fitness profile, we recommend incorporating 3-4 days of moderate exercise including both cardio and strength training. Start with 20-30 minute sessions and gradually increase to 45-60 minutes as your fitness improves.",
		NutritionRecommendations:    "Your diet could benefit from increasing whole foods and reducing processed items. Aim for balanced meals with lean proteins, complex carbohydrates, and healthy fats. Stay hydrated by drinking 8 glasses of water daily.",
		MentalHealthRecommendations: "To manage stress, try incorporating 10-15 minutes of mindfulness or meditation daily. Focus on small wins and practice positive self-talk. Consider limiting social media use if it contributes to stress or anxiety.",
		SleepRecommendations:        "Establish a regular sleep schedule, aiming for 7-9 hours of quality sleep. Create a bedtime routine to signal your body it's time to wind down. Limit screen time and caffeine in the hours before bed.",
		OverallWellnessScore:        72,
		PriorityAreas:               []string{"stress_management", "sleep_quality", "physical_activity"},
		Timestamp:                   recommender.now().Format(time.RFC3339Nano),
	}, nil
}

// ValidateResults rejects output a presenter could not render: a missing
// or unparsable timestamp, or a score outside 0-100.
func ValidateResults(results models.ResultsInfo) error {
	if results.Timestamp == "" {
		return fmt.Errorf("%w: empty timestamp", ErrMalformedResults)
	}
	if _, err := time.Parse(time.RFC3339Nano, results.Timestamp); err != nil {
		return fmt.Errorf("%w: timestamp %q", ErrMalformedResults, results.Timestamp)
	}
	if results.OverallWellnessScore < models.MinWellnessScore || results.OverallWellnessScore > models.MaxWellnessScore {
		return fmt.Errorf("%w: score %d", ErrMalformedResults, results.OverallWellnessScore)
	}
	return nil
}
