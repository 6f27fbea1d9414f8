package api

import (
	"fmt"

	"github.com/terraincognita07/wellness/internal/questionnaire"
	"github.com/terraincognita07/wellness/internal/services"
)

func buildQuestionnaireView(messages map[string]string, catalog *questionnaire.Catalog) questionnaireView {
	flow := catalog.Flow()
	view := questionnaireView{
		Flow:     flow.Sections(),
		Sections: make([]sectionView, 0, flow.Len()),
	}

	for _, section := range catalog.Sections() {
		fields := make([]fieldView, 0, len(section.Fields))
		for _, field := range section.Fields {
			fields = append(fields, fieldView{
				Name:        field.Name,
				Label:       translateMessage(messages, section.FieldLabelKey(field)),
				Kind:        string(field.Kind),
				Required:    field.Required != nil,
				Conditional: field.Visible != nil || field.Restrict != nil,
				DependsOn:   field.DependsOn,
				Options:     localizeOptions(messages, field.Options),
			})
		}
		view.Sections = append(view.Sections, sectionView{
			ID:          section.ID,
			Position:    flow.Position(section.ID),
			Title:       translateMessage(messages, section.TitleKey()),
			Description: translateMessage(messages, section.DescriptionKey()),
			Fields:      fields,
		})
	}
	return view
}

func localizeOptions(messages map[string]string, options []questionnaire.Option) []optionView {
	if len(options) == 0 {
		return nil
	}
	localized := make([]optionView, 0, len(options))
	for _, option := range options {
		localized = append(localized, optionView{
			Value: option.Value,
			Label: translateMessage(messages, option.LabelKey),
		})
	}
	return localized
}

func buildStepView(messages map[string]string, catalog *questionnaire.Catalog, state services.StepState) stepView {
	view := stepView{
		StepState:    state,
		Labels:       map[string]string{},
		OptionLabels: map[string][]optionView{},
	}

	section, ok := catalog.Section(state.Section)
	if !ok {
		return view
	}
	view.Title = translateMessage(messages, section.TitleKey())
	view.Description = translateMessage(messages, section.DescriptionKey())
	view.ProgressLabel = fmt.Sprintf(translateMessage(messages, "wizard.step"), state.Position, state.Total)

	for _, name := range state.Visible {
		if field, found := section.Field(name); found {
			view.Labels[name] = translateMessage(messages, section.FieldLabelKey(field))
		}
	}
	for name, options := range state.Options {
		view.OptionLabels[name] = localizeOptions(messages, options)
	}
	return view
}

func buildConfirmView(messages map[string]string) *confirmView {
	return &confirmView{
		Title:   translateMessage(messages, "confirm.title"),
		Message: translateMessage(messages, "confirm.message"),
		Review:  translateMessage(messages, "confirm.review"),
		Submit:  translateMessage(messages, "confirm.submit"),
	}
}

func buildAnalysisView(messages map[string]string, status services.AnalysisStatus) analysisView {
	view := analysisView{AnalysisStatus: status}
	if status.StatusKey != "" {
		view.StatusLabel = translateMessage(messages, status.StatusKey)
	}
	if status.Error != "" {
		view.ErrorMessage = translateMessage(messages, "analysis.failed")
	}
	return view
}

func buildResultsView(messages map[string]string, results services.ResultsView) resultsView {
	view := resultsView{
		Ready:           results.Ready,
		Score:           results.Score,
		GeneratedAt:     results.GeneratedAt,
		Category:        results.Category,
		Categories:      make([]optionView, 0, len(results.Categories)),
		Recommendations: make([]recommendationCardView, 0, len(results.Recommendations)),
		PriorityAreas:   make([]priorityTagView, 0, len(results.PriorityAreas)),
	}

	for _, category := range results.Categories {
		view.Categories = append(view.Categories, optionView{
			Value: category,
			Label: translateMessage(messages, "results.category."+category),
		})
	}
	if !results.Ready {
		view.Message = translateMessage(messages, "results.empty")
		return view
	}

	for _, card := range results.Recommendations {
		view.Recommendations = append(view.Recommendations, recommendationCardView{
			RecommendationCard: card,
			Title:              translateMessage(messages, card.TitleKey),
		})
	}
	for _, tag := range results.PriorityAreas {
		label := translateMessage(messages, tag.LabelKey)
		if label == tag.LabelKey {
			label = tag.Fallback
		}
		view.PriorityAreas = append(view.PriorityAreas, priorityTagView{PriorityTag: tag, Label: label})
	}
	view.Disclaimer = translateMessage(messages, results.DisclaimerKey)
	return view
}
