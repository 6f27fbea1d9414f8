// Package questionnaire declares the wellness assessment sections: their
// fields, option sets, required and visibility rules, and the order in which
// the wizard walks through them.
package questionnaire

import (
	"slices"

	"github.com/terraincognita07/wellness/internal/models"
)

type SectionID string

const (
	SectionPersonal     SectionID = "personal"
	SectionFitness      SectionID = "fitness"
	SectionNutrition    SectionID = "nutrition"
	SectionMentalHealth SectionID = "mental_health"
	SectionSleep        SectionID = "sleep"
	SectionLifestyle    SectionID = "lifestyle"
	SectionMedical      SectionID = "medical"
	SectionAdditional   SectionID = "additional"
)

type FieldKind string

const (
	KindText        FieldKind = "text"
	KindChoice      FieldKind = "choice"
	KindMultiChoice FieldKind = "multi_choice"
)

// Predicate is evaluated against the in-progress buffer of a section.
type Predicate func(values models.Answers) bool

type Option struct {
	Value    string `json:"value"`
	LabelKey string `json:"label_key"`
}

type Field struct {
	Name      string
	Kind      FieldKind
	OptionSet string
	Options   []Option
	// DependsOn names the field whose value drives Visible, Required or
	// Restrict.
	DependsOn string
	Required  Predicate
	Visible   Predicate
	// Restrict narrows Options to the subset valid for the current buffer.
	Restrict func(values models.Answers, options []Option) []Option
}

func (field Field) IsVisible(values models.Answers) bool {
	if field.Visible == nil {
		return true
	}
	return field.Visible(values)
}

// IsRequired reports whether the field gates forward navigation. Hidden
// fields are never required.
func (field Field) IsRequired(values models.Answers) bool {
	if field.Required == nil || !field.IsVisible(values) {
		return false
	}
	return field.Required(values)
}

func (field Field) IsMulti() bool {
	return field.Kind == KindMultiChoice
}

func (field Field) HasOptions() bool {
	return field.Kind == KindChoice || field.Kind == KindMultiChoice
}

func (field Field) OptionsFor(values models.Answers) []Option {
	if field.Restrict == nil {
		return slices.Clone(field.Options)
	}
	return field.Restrict(values, field.Options)
}

func (field Field) AllowsOption(values models.Answers, value string) bool {
	for _, option := range field.OptionsFor(values) {
		if option.Value == value {
			return true
		}
	}
	return false
}

func (field Field) Default() models.Answer {
	if field.IsMulti() {
		return models.ChoicesAnswer()
	}
	return models.TextAnswer("")
}

type Section struct {
	ID     SectionID
	Fields []Field
}

func (section Section) Field(name string) (Field, bool) {
	for _, field := range section.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Defaults returns the empty value of every field in the section.
func (section Section) Defaults() models.Answers {
	values := make(models.Answers, len(section.Fields))
	for _, field := range section.Fields {
		values[field.Name] = field.Default()
	}
	return values
}

func (section Section) TitleKey() string {
	return "section." + string(section.ID) + ".title"
}

func (section Section) DescriptionKey() string {
	return "section." + string(section.ID) + ".description"
}

func (section Section) FieldLabelKey(field Field) string {
	return "field." + string(section.ID) + "." + field.Name
}

func Always(models.Answers) bool {
	return true
}

func WhenEquals(field string, value string) Predicate {
	return func(values models.Answers) bool {
		return values.Text(field) == value
	}
}

func WhenMoreThan(field string, count int) Predicate {
	return func(values models.Answers) bool {
		return values[field].Len() > count
	}
}

// RestrictToChosen keeps only the options that were selected in the
// multi-select field named source.
func RestrictToChosen(source string) func(models.Answers, []Option) []Option {
	return func(values models.Answers, options []Option) []Option {
		chosen := values[source]
		restricted := make([]Option, 0, len(options))
		for _, option := range options {
			if chosen.Contains(option.Value) {
				restricted = append(restricted, option)
			}
		}
		return restricted
	}
}
