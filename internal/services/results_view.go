package services

import (
	"strings"

	"github.com/terraincognita07/wellness/internal/models"
)

const (
	ResultsCategoryOverview  = "overview"
	ResultsCategoryFitness   = "fitness"
	ResultsCategoryNutrition = "nutrition"
	ResultsCategoryMental    = "mental"
	ResultsCategorySleep     = "sleep"

	resultsDisclaimerKey = "results.disclaimer"
)

type RecommendationCard struct {
	Category string `json:"category"`
	TitleKey string `json:"title_key"`
	Text     string `json:"text"`
}

type PriorityTag struct {
	Tag      string `json:"tag"`
	LabelKey string `json:"label_key"`
	Fallback string `json:"fallback"`
}

type ResultsView struct {
	Ready           bool                 `json:"ready"`
	Score           int                  `json:"score"`
	GeneratedAt     string               `json:"generated_at,omitempty"`
	Category        string               `json:"category"`
	Categories      []string             `json:"categories"`
	Recommendations []RecommendationCard `json:"recommendations"`
	PriorityAreas   []PriorityTag        `json:"priority_areas"`
	DisclaimerKey   string               `json:"disclaimer_key,omitempty"`
}

func ResultsCategories() []string {
	return []string{
		ResultsCategoryOverview,
		ResultsCategoryFitness,
		ResultsCategoryNutrition,
		ResultsCategoryMental,
		ResultsCategorySleep,
	}
}

func NormalizeResultsCategory(raw string) string {
	category := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range ResultsCategories() {
		if category == known {
			return known
		}
	}
	return ResultsCategoryOverview
}

// BuildResultsView is a read-only projection of results for one category.
// Without a timestamp it returns the not-ready prompt state.
func BuildResultsView(results models.ResultsInfo, category string) ResultsView {
	view := ResultsView{
		Category:        NormalizeResultsCategory(category),
		Categories:      ResultsCategories(),
		Recommendations: []RecommendationCard{},
		PriorityAreas:   []PriorityTag{},
	}
	if !results.Ready() {
		return view
	}

	view.Ready = true
	view.Score = results.OverallWellnessScore
	view.GeneratedAt = results.Timestamp
	view.DisclaimerKey = resultsDisclaimerKey

	cards := []RecommendationCard{
		{Category: ResultsCategoryFitness, TitleKey: "results.category.fitness", Text: results.FitnessRecommendations},
		{Category: ResultsCategoryNutrition, TitleKey: "results.category.nutrition", Text: results.NutritionRecommendations},
		{Category: ResultsCategoryMental, TitleKey: "results.category.mental", Text: results.MentalHealthRecommendations},
		{Category: ResultsCategorySleep, TitleKey: "results.category.sleep", Text: results.SleepRecommendations},
	}

	if view.Category == ResultsCategoryOverview {
		view.Recommendations = cards
		for _, area := range results.PriorityAreas {
			view.PriorityAreas = append(view.PriorityAreas, PriorityTag{
				Tag:      area,
				LabelKey: "priority." + area,
				Fallback: PriorityFallbackLabel(area),
			})
		}
		return view
	}

	for _, card := range cards {
		if card.Category == view.Category {
			view.Recommendations = append(view.Recommendations, card)
		}
	}
	return view
}

func PriorityFallbackLabel(tag string) string {
	return strings.ReplaceAll(tag, "_", " ")
}
