package services

import (
	"testing"

	"github.com/terraincognita07/wellness/internal/models"
	"github.com/terraincognita07/wellness/internal/questionnaire"
)

func TestAggregatorUpdateOverwritesOnlyGivenKeys(t *testing.T) {
	aggregator := NewAggregator(questionnaire.Default())
	aggregator.Update(questionnaire.SectionPersonal, models.Answers{
		"age":        models.TextAnswer("21"),
		"motivation": models.TextAnswer("more energy"),
	})

	before := aggregator.Get(questionnaire.SectionPersonal)
	aggregator.Update(questionnaire.SectionPersonal, models.Answers{
		"age":          models.TextAnswer("22"),
		"primaryGoals": models.ChoicesAnswer("nutrition"),
	})
	after := aggregator.Get(questionnaire.SectionPersonal)

	if after.Text("age") != "22" {
		t.Fatalf("age = %q, want 22", after.Text("age"))
	}
	if got := after.Choices("primaryGoals"); len(got) != 1 || got[0] != "nutrition" {
		t.Fatalf("primaryGoals = %v, want [nutrition]", got)
	}
	for field, answer := range before {
		if field == "age" || field == "primaryGoals" {
			continue
		}
		if !after[field].Equal(answer) {
			t.Fatalf("field %s changed from %+v to %+v", field, answer, after[field])
		}
	}
	if len(after) != len(before) {
		t.Fatalf("slice has %d keys after update, want %d", len(after), len(before))
	}
}

func TestAggregatorUpdateIsIdempotent(t *testing.T) {
	partial := models.Answers{
		"sleepQuality":   models.TextAnswer("fairly_good"),
		"weekdayBedtime": models.TextAnswer("11:00 PM"),
	}

	once := NewAggregator(questionnaire.Default())
	once.Update(questionnaire.SectionSleep, partial)

	twice := NewAggregator(questionnaire.Default())
	twice.Update(questionnaire.SectionSleep, partial)
	twice.Update(questionnaire.SectionSleep, partial)

	left := once.Get(questionnaire.SectionSleep)
	right := twice.Get(questionnaire.SectionSleep)
	if len(left) != len(right) {
		t.Fatalf("slice sizes differ: %d vs %d", len(left), len(right))
	}
	for field, answer := range left {
		if !right[field].Equal(answer) {
			t.Fatalf("field %s differs: %+v vs %+v", field, answer, right[field])
		}
	}
}

func TestAggregatorResetRestoresDefaults(t *testing.T) {
	catalog := questionnaire.Default()
	aggregator := NewAggregator(catalog)
	aggregator.Update(questionnaire.SectionFitness, models.Answers{
		"activityLevel": models.TextAnswer("very_active"),
		"fitnessGoals":  models.ChoicesAnswer("build_muscle"),
	})
	aggregator.SetResults(models.ResultsInfo{OverallWellnessScore: 80, Timestamp: "2026-01-01T00:00:00Z"})

	aggregator.Reset()

	for _, section := range catalog.Sections() {
		values := aggregator.Get(section.ID)
		for _, field := range section.Fields {
			answer, ok := values[field.Name]
			if !ok {
				t.Fatalf("%s.%s missing after reset", section.ID, field.Name)
			}
			if !answer.IsEmpty() || answer.IsMulti() != field.IsMulti() {
				t.Fatalf("%s.%s = %+v after reset, want empty default", section.ID, field.Name, answer)
			}
		}
	}
	if results := aggregator.Results(); results.Timestamp != "" || results.OverallWellnessScore != 0 {
		t.Fatalf("results after reset = %+v, want empty", results)
	}
}

func TestAggregatorGetReturnsCopy(t *testing.T) {
	aggregator := NewAggregator(questionnaire.Default())
	values := aggregator.Get(questionnaire.SectionMedical)
	values["allergies"] = models.TextAnswer("pollen")

	if got := aggregator.Get(questionnaire.SectionMedical).Text("allergies"); got != "" {
		t.Fatalf("aggregator state mutated through Get(), allergies = %q", got)
	}
}

func TestAggregatorSetResultsReplacesWholesale(t *testing.T) {
	aggregator := NewAggregator(questionnaire.Default())
	aggregator.SetResults(models.ResultsInfo{
		FitnessRecommendations: "walk",
		PriorityAreas:          []string{"sleep_quality"},
		Timestamp:              "2026-01-01T00:00:00Z",
	})
	aggregator.SetResults(models.ResultsInfo{OverallWellnessScore: 50, Timestamp: "2026-01-02T00:00:00Z"})

	results := aggregator.Results()
	if results.FitnessRecommendations != "" || len(results.PriorityAreas) != 0 {
		t.Fatalf("SetResults() kept old fields: %+v", results)
	}
	if results.OverallWellnessScore != 50 {
		t.Fatalf("score = %d, want 50", results.OverallWellnessScore)
	}
}

func TestRestoreAggregatorMergesOverDefaults(t *testing.T) {
	catalog := questionnaire.Default()
	restored := RestoreAggregator(catalog, Snapshot{
		questionnaire.SectionLifestyle: {"classSchedule": models.TextAnswer("MWF mornings")},
	}, models.EmptyResults())

	values := restored.Get(questionnaire.SectionLifestyle)
	if values.Text("classSchedule") != "MWF mornings" {
		t.Fatalf("classSchedule = %q, want restored value", values.Text("classSchedule"))
	}
	if _, ok := values["preferredActivityTime"]; !ok {
		t.Fatal("expected defaults for fields absent from stored slice")
	}
}
