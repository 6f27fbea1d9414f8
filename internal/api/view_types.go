package api

import (
	"github.com/terraincognita07/wellness/internal/questionnaire"
	"github.com/terraincognita07/wellness/internal/services"
)

type optionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type fieldView struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Kind        string       `json:"kind"`
	Required    bool         `json:"required"`
	Conditional bool         `json:"conditional"`
	DependsOn   string       `json:"depends_on,omitempty"`
	Options     []optionView `json:"options,omitempty"`
}

type sectionView struct {
	ID          questionnaire.SectionID `json:"id"`
	Position    int                     `json:"position"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Fields      []fieldView             `json:"fields"`
}

type questionnaireView struct {
	Language string                    `json:"language"`
	Flow     []questionnaire.SectionID `json:"flow"`
	Sections []sectionView             `json:"sections"`
}

type stepView struct {
	services.StepState
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	ProgressLabel string                  `json:"progress_label"`
	Labels        map[string]string       `json:"labels"`
	OptionLabels  map[string][]optionView `json:"option_labels"`
}

type advanceView struct {
	Transition services.Transition `json:"transition"`
	Step       stepView            `json:"step"`
	Confirm    *confirmView        `json:"confirm,omitempty"`
}

type confirmView struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Review  string `json:"review"`
	Submit  string `json:"submit"`
}

type analysisView struct {
	services.AnalysisStatus
	StatusLabel  string `json:"status_label,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type recommendationCardView struct {
	services.RecommendationCard
	Title string `json:"title"`
}

type priorityTagView struct {
	services.PriorityTag
	Label string `json:"label"`
}

type resultsView struct {
	Ready           bool                     `json:"ready"`
	Message         string                   `json:"message,omitempty"`
	Score           int                      `json:"score"`
	GeneratedAt     string                   `json:"generated_at,omitempty"`
	Category        string                   `json:"category"`
	Categories      []optionView             `json:"categories"`
	Recommendations []recommendationCardView `json:"recommendations"`
	PriorityAreas   []priorityTagView        `json:"priority_areas"`
	Disclaimer      string                   `json:"disclaimer,omitempty"`
}
