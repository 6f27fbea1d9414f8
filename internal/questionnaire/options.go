package questionnaire

const (
	OptionSetBiologicalSex      = "biological_sex"
	OptionSetWellnessGoals      = "wellness_goals"
	OptionSetActivityLevel      = "activity_level"
	OptionSetYesNo              = "yes_no"
	OptionSetFitnessGoals       = "fitness_goals"
	OptionSetResources          = "resources"
	OptionSetFitnessRating      = "fitness_rating"
	OptionSetDietaryPreferences = "dietary_preferences"
	OptionSetMealRegularity     = "meal_regularity"
	OptionSetSnacking           = "snacking"
	OptionSetDietQuality        = "diet_quality"
	OptionSetFruitVeggieIntake  = "fruit_veggie_intake"
	OptionSetFrequency          = "frequency"
	OptionSetStressTriggers     = "stress_triggers"
	OptionSetSleepQuality       = "sleep_quality"
	OptionSetTimeToFallAsleep   = "time_to_fall_asleep"
	OptionSetNightAwakenings    = "night_awakenings"
	OptionSetElectronics        = "electronics"
	OptionSetAcademicWorkload   = "academic_workload"
	OptionSetPreferredTime      = "preferred_time"
)

var optionSets = map[string][]string{
	OptionSetBiologicalSex:      {"male", "female", "other"},
	OptionSetWellnessGoals:      {"improve_fitness", "stress_management", "mental_health", "sleep_quality", "nutrition", "other"},
	OptionSetActivityLevel:      {"sedentary", "lightly_active", "moderately_active", "very_active"},
	OptionSetYesNo:              {"yes", "no"},
	OptionSetFitnessGoals:       {"build_muscle", "improve_endurance", "increase_flexibility", "weight_loss", "weight_gain", "sports_performance", "general_health", "other"},
	OptionSetResources:          {"gym", "home_equipment", "outdoor", "no_equipment"},
	OptionSetFitnessRating:      {"1", "2", "3", "4", "5"},
	OptionSetDietaryPreferences: {"vegetarian", "vegan", "gluten_free", "lactose_free", "halal_kosher", "allergies", "none"},
	OptionSetMealRegularity:     {"never", "occasionally", "frequently"},
	OptionSetSnacking:           {"rarely", "some_days", "most_days", "constant"},
	OptionSetDietQuality:        {"1", "2", "3", "4", "5"},
	OptionSetFruitVeggieIntake:  {"0", "1_2", "3_4", "5_plus"},
	OptionSetFrequency:          {"not_at_all", "several_days", "more_than_half", "nearly_every_day"},
	OptionSetStressTriggers:     {"academics", "exams", "financial", "social", "family", "health", "future", "other"},
	OptionSetSleepQuality:       {"very_good", "fairly_good", "fairly_bad", "very_bad"},
	OptionSetTimeToFallAsleep:   {"less_15", "15_30", "30_60", "over_60"},
	OptionSetNightAwakenings:    {"rarely", "occasionally", "frequently"},
	OptionSetElectronics:        {"never", "occasionally", "most_nights", "every_night"},
	OptionSetAcademicWorkload:   {"less_2", "2_4", "4_6", "6_8", "more_8"},
	OptionSetPreferredTime:      {"morning", "afternoon", "evening", "late_night"},
}

// OptionSetNames lists every option set in a stable order.
func OptionSetNames() []string {
	return []string{
		OptionSetBiologicalSex,
		OptionSetWellnessGoals,
		OptionSetActivityLevel,
		OptionSetYesNo,
		OptionSetFitnessGoals,
		OptionSetResources,
		OptionSetFitnessRating,
		OptionSetDietaryPreferences,
		OptionSetMealRegularity,
		OptionSetSnacking,
		OptionSetDietQuality,
		OptionSetFruitVeggieIntake,
		OptionSetFrequency,
		OptionSetStressTriggers,
		OptionSetSleepQuality,
		OptionSetTimeToFallAsleep,
		OptionSetNightAwakenings,
		OptionSetElectronics,
		OptionSetAcademicWorkload,
		OptionSetPreferredTime,
	}
}

func OptionLabelKey(set string, value string) string {
	return "option." + set + "." + value
}

func options(set string) []Option {
	values := optionSets[set]
	result := make([]Option, 0, len(values))
	for _, value := range values {
		result = append(result, Option{Value: value, LabelKey: OptionLabelKey(set, value)})
	}
	return result
}
