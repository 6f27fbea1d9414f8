package models

import "slices"

// ResultsInfo is the generated wellness plan. An empty Timestamp means no
// results have been produced yet.
type ResultsInfo struct {
	FitnessRecommendations      string   `json:"fitnessRecommendations"`
	NutritionRecommendations    string   `json:"nutritionRecommendations"`
	MentalHealthRecommendations string   `json:"mentalHealthRecommendations"`
	SleepRecommendations        string   `json:"sleepRecommendations"`
	OverallWellnessScore        int      `json:"overallWellnessScore"`
	PriorityAreas               []string `json:"priorityAreas"`
	Timestamp                   string   `json:"timestamp"`
}

const (
	MinWellnessScore = 0
	MaxWellnessScore = 100
)

func EmptyResults() ResultsInfo {
	return ResultsInfo{PriorityAreas: []string{}}
}

func (results ResultsInfo) Ready() bool {
	return results.Timestamp != ""
}

func (results ResultsInfo) Clone() ResultsInfo {
	cloned := results
	cloned.PriorityAreas = slices.Clone(results.PriorityAreas)
	if cloned.PriorityAreas == nil {
		cloned.PriorityAreas = []string{}
	}
	return cloned
}
