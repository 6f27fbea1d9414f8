package services

import (
	"context"
	"time"

	"github.com/terraincognita07/wellness/internal/models"
)

const (
	DefaultAnalysisLatency = 5 * time.Second
	defaultProduceTimeout  = 30 * time.Second
)

const (
	AnalysisStatusAnalyzing       = "analysis.status.analyzing"
	AnalysisStatusLifestyle       = "analysis.status.lifestyle"
	AnalysisStatusRecommendations = "analysis.status.recommendations"
	AnalysisStatusFinalizing      = "analysis.status.finalizing"
)

type analysisMilestone struct {
	fraction  float64
	statusKey string
}

var analysisMilestones = []analysisMilestone{
	{fraction: 0, statusKey: AnalysisStatusAnalyzing},
	{fraction: 0.3, statusKey: AnalysisStatusLifestyle},
	{fraction: 0.6, statusKey: AnalysisStatusRecommendations},
	{fraction: 0.9, statusKey: AnalysisStatusFinalizing},
}

type AnalysisProgress struct {
	Percent   int    `json:"percent"`
	StatusKey string `json:"status_key"`
	Elapsed   bool   `json:"elapsed"`
}

type AnalysisRunner struct {
	recommender    Recommender
	latency        time.Duration
	produceTimeout time.Duration
	schedule       func(delay time.Duration, callback func())
}

func NewAnalysisRunner(recommender Recommender, latency time.Duration) *AnalysisRunner {
	if latency <= 0 {
		latency = DefaultAnalysisLatency
	}
	return &AnalysisRunner{
		recommender:    recommender,
		latency:        latency,
		produceTimeout: defaultProduceTimeout,
		schedule: func(delay time.Duration, callback func()) {
			time.AfterFunc(delay, callback)
		},
	}
}

func (runner *AnalysisRunner) Latency() time.Duration {
	return runner.latency
}

// Progress never decreases as now advances.
func (runner *AnalysisRunner) Progress(startedAt time.Time, now time.Time) AnalysisProgress {
	elapsed := now.Sub(startedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	fraction := float64(elapsed) / float64(runner.latency)
	if fraction > 1 {
		fraction = 1
	}

	statusKey := analysisMilestones[0].statusKey
	for _, milestone := range analysisMilestones {
		if fraction >= milestone.fraction {
			statusKey = milestone.statusKey
		}
	}

	return AnalysisProgress{
		Percent:   int(fraction * 100),
		StatusKey: statusKey,
		Elapsed:   elapsed >= runner.latency,
	}
}

func (runner *AnalysisRunner) Start(snapshot Snapshot, deliver func(models.ResultsInfo, error)) {
	frozen := snapshot.Clone()
	runner.schedule(runner.latency, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runner.produceTimeout)
		defer cancel()

		results, err := runner.recommender.ProduceResults(ctx, frozen)
		if err == nil {
			err = ValidateResults(results)
		}
		if err != nil {
			deliver(models.ResultsInfo{}, err)
			return
		}
		deliver(results, nil)
	})
}
