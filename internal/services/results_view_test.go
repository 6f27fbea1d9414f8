package services

import (
	"testing"

	"github.com/terraincognita07/wellness/internal/models"
)

func sampleResults() models.ResultsInfo {
	return models.ResultsInfo{
		FitnessRecommendations:      "move",
		NutritionRecommendations:    "eat",
		MentalHealthRecommendations: "breathe",
		SleepRecommendations:        "rest",
		OverallWellnessScore:        72,
		PriorityAreas:               []string{"stress_management", "sleep_quality"},
		Timestamp:                   "2026-03-03T09:30:00Z",
	}
}

func TestBuildResultsViewWithoutTimestampIsNotReady(t *testing.T) {
	view := BuildResultsView(models.EmptyResults(), "fitness")
	if view.Ready {
		t.Fatal("expected not-ready view for empty timestamp")
	}
	if len(view.Recommendations) != 0 || len(view.PriorityAreas) != 0 {
		t.Fatalf("expected empty content, got %+v", view)
	}
	if view.DisclaimerKey != "" {
		t.Fatalf("DisclaimerKey = %q, want empty", view.DisclaimerKey)
	}
}

func TestBuildResultsViewOverviewShowsEverything(t *testing.T) {
	view := BuildResultsView(sampleResults(), "")
	if !view.Ready || view.Category != ResultsCategoryOverview {
		t.Fatalf("view = %+v, want ready overview", view)
	}
	if view.Score != 72 || view.GeneratedAt != "2026-03-03T09:30:00Z" {
		t.Fatalf("score/generated = %d/%q", view.Score, view.GeneratedAt)
	}
	if len(view.Recommendations) != 4 {
		t.Fatalf("recommendations = %d, want 4", len(view.Recommendations))
	}
	if len(view.PriorityAreas) != 2 {
		t.Fatalf("priority areas = %d, want 2", len(view.PriorityAreas))
	}
	tag := view.PriorityAreas[0]
	if tag.LabelKey != "priority.stress_management" || tag.Fallback != "stress management" {
		t.Fatalf("priority tag = %+v", tag)
	}
	if view.DisclaimerKey != "results.disclaimer" {
		t.Fatalf("DisclaimerKey = %q", view.DisclaimerKey)
	}
}

func TestBuildResultsViewSingleCategory(t *testing.T) {
	view := BuildResultsView(sampleResults(), " Mental ")
	if view.Category != ResultsCategoryMental {
		t.Fatalf("Category = %q, want mental", view.Category)
	}
	if len(view.Recommendations) != 1 || view.Recommendations[0].Text != "breathe" {
		t.Fatalf("recommendations = %+v, want only mental card", view.Recommendations)
	}
	if len(view.PriorityAreas) != 0 {
		t.Fatalf("priority areas shown outside overview: %+v", view.PriorityAreas)
	}
}

func TestBuildResultsViewUnknownCategoryFallsBackToOverview(t *testing.T) {
	view := BuildResultsView(sampleResults(), "finance")
	if view.Category != ResultsCategoryOverview || len(view.Recommendations) != 4 {
		t.Fatalf("view = %+v, want overview fallback", view)
	}
}

func TestBuildResultsViewDoesNotMutateResults(t *testing.T) {
	results := sampleResults()
	before := results.Clone()
	BuildResultsView(results, "overview")
	BuildResultsView(results, "sleep")

	if results.Timestamp != before.Timestamp || len(results.PriorityAreas) != len(before.PriorityAreas) {
		t.Fatalf("results mutated: %+v", results)
	}
}
