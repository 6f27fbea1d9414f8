package questionnaire

import "strings"

type Catalog struct {
	flow     Flow
	sections map[SectionID]Section
}

func NewCatalog(flow Flow, sections ...Section) *Catalog {
	byID := make(map[SectionID]Section, len(sections))
	for _, section := range sections {
		byID[section.ID] = section
	}
	return &Catalog{flow: flow, sections: byID}
}

// Default returns the wellness assessment: eight sections walked in the
// order personal, fitness, nutrition, mental health, sleep, lifestyle,
// medical, additional.
func Default() *Catalog {
	return NewCatalog(
		NewFlow(
			SectionPersonal,
			SectionFitness,
			SectionNutrition,
			SectionMentalHealth,
			SectionSleep,
			SectionLifestyle,
			SectionMedical,
			SectionAdditional,
		),
		personalSection(),
		fitnessSection(),
		nutritionSection(),
		mentalHealthSection(),
		sleepSection(),
		lifestyleSection(),
		medicalSection(),
		additionalSection(),
	)
}

func (catalog *Catalog) Flow() Flow {
	return catalog.flow
}

func (catalog *Catalog) Section(id SectionID) (Section, bool) {
	section, ok := catalog.sections[id]
	return section, ok
}

// Sections returns the sections in flow order.
func (catalog *Catalog) Sections() []Section {
	result := make([]Section, 0, len(catalog.sections))
	for _, id := range catalog.flow.order {
		if section, ok := catalog.sections[id]; ok {
			result = append(result, section)
		}
	}
	return result
}

func (catalog *Catalog) ParseSectionID(raw string) (SectionID, bool) {
	id := SectionID(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := catalog.sections[id]
	return id, ok
}

func text(name string) Field {
	return Field{Name: name, Kind: KindText}
}

func requiredText(name string) Field {
	return Field{Name: name, Kind: KindText, Required: Always}
}

func choice(name string, set string) Field {
	return Field{Name: name, Kind: KindChoice, OptionSet: set, Options: options(set)}
}

func requiredChoice(name string, set string) Field {
	field := choice(name, set)
	field.Required = Always
	return field
}

func multiChoice(name string, set string) Field {
	return Field{Name: name, Kind: KindMultiChoice, OptionSet: set, Options: options(set)}
}

func requiredMultiChoice(name string, set string) Field {
	field := multiChoice(name, set)
	field.Required = Always
	return field
}

func personalSection() Section {
	topPriority := choice("topPriority", OptionSetWellnessGoals)
	topPriority.DependsOn = "primaryGoals"
	topPriority.Visible = WhenMoreThan("primaryGoals", 1)
	topPriority.Required = Always
	topPriority.Restrict = RestrictToChosen("primaryGoals")

	return Section{
		ID: SectionPersonal,
		Fields: []Field{
			requiredText("age"),
			requiredChoice("biologicalSex", OptionSetBiologicalSex),
			requiredMultiChoice("primaryGoals", OptionSetWellnessGoals),
			topPriority,
			text("motivation"),
			text("obstacles"),
		},
	}
}

func fitnessSection() Section {
	currentRoutine := text("currentRoutine")
	currentRoutine.DependsOn = "hasCurrentRoutine"
	currentRoutine.Visible = WhenEquals("hasCurrentRoutine", "yes")
	currentRoutine.Required = Always

	return Section{
		ID: SectionFitness,
		Fields: []Field{
			requiredChoice("activityLevel", OptionSetActivityLevel),
			requiredChoice("hasCurrentRoutine", OptionSetYesNo),
			currentRoutine,
			requiredMultiChoice("fitnessGoals", OptionSetFitnessGoals),
			text("preferredActivities"),
			text("timeForExercise"),
			multiChoice("resources", OptionSetResources),
			text("injuries"),
			requiredChoice("selfRatedFitness", OptionSetFitnessRating),
		},
	}
}

func nutritionSection() Section {
	return Section{
		ID: SectionNutrition,
		Fields: []Field{
			multiChoice("dietaryPreferences", OptionSetDietaryPreferences),
			text("currentDietPattern"),
			requiredChoice("mealRegularity", OptionSetMealRegularity),
			requiredChoice("snacking", OptionSetSnacking),
			requiredChoice("dietQuality", OptionSetDietQuality),
			requiredChoice("fruitVeggieIntake", OptionSetFruitVeggieIntake),
			text("beverages"),
			text("caffeineIntake"),
		},
	}
}

func mentalHealthSection() Section {
	return Section{
		ID: SectionMentalHealth,
		Fields: []Field{
			requiredChoice("interestInActivities", OptionSetFrequency),
			requiredChoice("feelingDepressed", OptionSetFrequency),
			requiredChoice("nervousAnxious", OptionSetFrequency),
			requiredChoice("uncontrollableWorry", OptionSetFrequency),
			requiredMultiChoice("stressTriggers", OptionSetStressTriggers),
			text("currentMentalHealthSupport"),
			text("overallMentalWellbeing"),
		},
	}
}

// Bedtimes and wake times are free text ("11:00 PM"); no time format is
// enforced.
func sleepSection() Section {
	return Section{
		ID: SectionSleep,
		Fields: []Field{
			requiredText("weekdayBedtime"),
			requiredText("weekdayWakeTime"),
			requiredText("weekendBedtime"),
			requiredText("weekendWakeTime"),
			text("weekdaySleepHours"),
			text("weekendSleepHours"),
			requiredChoice("sleepQuality", OptionSetSleepQuality),
			requiredChoice("timeToFallAsleep", OptionSetTimeToFallAsleep),
			requiredChoice("nightAwakenings", OptionSetNightAwakenings),
			requiredChoice("electronicsBeforeBed", OptionSetElectronics),
		},
	}
}

func lifestyleSection() Section {
	return Section{
		ID: SectionLifestyle,
		Fields: []Field{
			requiredChoice("academicWorkload", OptionSetAcademicWorkload),
			requiredText("classSchedule"),
			text("employment"),
			text("extracurriculars"),
			requiredText("freeTimeWindows"),
			requiredChoice("preferredActivityTime", OptionSetPreferredTime),
		},
	}
}

func medicalSection() Section {
	return Section{
		ID: SectionMedical,
		Fields: []Field{
			text("chronicConditions"),
			text("medications"),
			text("recentHealthEvents"),
			text("allergies"),
			text("currentMedicalCare"),
		},
	}
}

func additionalSection() Section {
	return Section{
		ID: SectionAdditional,
		Fields: []Field{
			text("otherConsiderations"),
			text("expectationsOrRequests"),
		},
	}
}
