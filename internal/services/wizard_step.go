package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/wellness/internal/models"
	"github.com/terraincognita07/wellness/internal/questionnaire"
)

var (
	ErrUnknownSection        = errors.New("unknown section")
	ErrUnknownField          = errors.New("unknown field")
	ErrUnknownOption         = errors.New("unknown option")
	ErrFieldKind             = errors.New("edit does not match field kind")
	ErrInvalidEdit           = errors.New("invalid field edit")
	ErrRequiredFieldsMissing = errors.New("required fields missing")
	ErrNotAtTerminalStep     = errors.New("not at terminal step")
	ErrInvalidChoice         = errors.New("invalid confirmation choice")
)

type MissingFieldsError struct {
	Section questionnaire.SectionID
	Fields  []string
}

func (err *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRequiredFieldsMissing, strings.Join(err.Fields, ", "))
}

func (err *MissingFieldsError) Is(target error) bool {
	return target == ErrRequiredFieldsMissing
}

// FieldEdit is one buffer change. Apply runs restricted fields last.
type FieldEdit struct {
	Field  string   `json:"field"`
	Value  *string  `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
	Toggle string   `json:"toggle,omitempty"`
}

type Transition struct {
	From    questionnaire.SectionID `json:"from"`
	To      questionnaire.SectionID `json:"to,omitempty"`
	Confirm bool                    `json:"confirm"`
}

type ConfirmChoice string

const (
	ChoiceReview ConfirmChoice = "review"
	ChoiceSubmit ConfirmChoice = "submit"
)

func ParseConfirmChoice(raw string) (ConfirmChoice, error) {
	switch ConfirmChoice(strings.ToLower(strings.TrimSpace(raw))) {
	case ChoiceReview:
		return ChoiceReview, nil
	case ChoiceSubmit:
		return ChoiceSubmit, nil
	default:
		return "", ErrInvalidChoice
	}
}

type StepController struct {
	aggregator *Aggregator
	section    questionnaire.Section
	flow       questionnaire.Flow
	buffer     models.Answers
}

func NewStepController(aggregator *Aggregator, sectionID questionnaire.SectionID) (*StepController, error) {
	section, ok := aggregator.Catalog().Section(sectionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, sectionID)
	}

	buffer := section.Defaults()
	for field, answer := range aggregator.Get(sectionID) {
		descriptor, known := section.Field(field)
		if known && descriptor.IsMulti() != answer.IsMulti() {
			continue
		}
		buffer[field] = answer
	}

	return &StepController{
		aggregator: aggregator,
		section:    section,
		flow:       aggregator.Catalog().Flow(),
		buffer:     buffer,
	}, nil
}

func (controller *StepController) Section() questionnaire.Section {
	return controller.section
}

func (controller *StepController) Position() int {
	return controller.flow.Position(controller.section.ID)
}

func (controller *StepController) IsTerminal() bool {
	return controller.flow.IsTerminal(controller.section.ID)
}

func (controller *StepController) Buffer() models.Answers {
	return controller.buffer.Clone()
}

func (controller *StepController) Set(name string, value string) error {
	field, err := controller.field(name)
	if err != nil {
		return err
	}
	if field.IsMulti() {
		return fmt.Errorf("%w: %s is multi-select", ErrFieldKind, name)
	}
	if field.Kind == questionnaire.KindChoice && value != "" && !field.AllowsOption(controller.buffer, value) {
		return fmt.Errorf("%w: %s=%q", ErrUnknownOption, name, value)
	}

	controller.buffer[name] = models.TextAnswer(value)
	controller.dropStaleRestrictedValues()
	return nil
}

func (controller *StepController) SetChoices(name string, values []string) error {
	field, err := controller.field(name)
	if err != nil {
		return err
	}
	if !field.IsMulti() {
		return fmt.Errorf("%w: %s is single-valued", ErrFieldKind, name)
	}
	for _, value := range values {
		if !field.AllowsOption(controller.buffer, value) {
			return fmt.Errorf("%w: %s=%q", ErrUnknownOption, name, value)
		}
	}

	controller.buffer[name] = models.ChoicesAnswer(values...)
	controller.dropStaleRestrictedValues()
	return nil
}

func (controller *StepController) Toggle(name string, value string) error {
	field, err := controller.field(name)
	if err != nil {
		return err
	}
	if !field.IsMulti() {
		return fmt.Errorf("%w: %s is single-valued", ErrFieldKind, name)
	}
	if !field.AllowsOption(controller.buffer, value) {
		return fmt.Errorf("%w: %s=%q", ErrUnknownOption, name, value)
	}

	current := controller.buffer[name].Values()
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, existing := range current {
		if existing == value {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	if !removed {
		next = append(next, value)
	}

	controller.buffer[name] = models.ChoicesAnswer(next...)
	controller.dropStaleRestrictedValues()
	return nil
}

func (controller *StepController) Apply(edits []FieldEdit) error {
	ordered := make([]FieldEdit, 0, len(edits))
	restricted := make([]FieldEdit, 0)
	for _, edit := range edits {
		if field, ok := controller.section.Field(edit.Field); ok && field.Restrict != nil {
			restricted = append(restricted, edit)
			continue
		}
		ordered = append(ordered, edit)
	}
	ordered = append(ordered, restricted...)

	for _, edit := range ordered {
		var err error
		switch {
		case edit.Toggle != "":
			err = controller.Toggle(edit.Field, edit.Toggle)
		case edit.Values != nil:
			err = controller.SetChoices(edit.Field, edit.Values)
		case edit.Value != nil:
			err = controller.Set(edit.Field, *edit.Value)
		default:
			err = fmt.Errorf("%w: %s has no value", ErrInvalidEdit, edit.Field)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (controller *StepController) Visible() []questionnaire.Field {
	visible := make([]questionnaire.Field, 0, len(controller.section.Fields))
	for _, field := range controller.section.Fields {
		if field.IsVisible(controller.buffer) {
			visible = append(visible, field)
		}
	}
	return visible
}

func (controller *StepController) Options(name string) ([]questionnaire.Option, error) {
	field, err := controller.field(name)
	if err != nil {
		return nil, err
	}
	return field.OptionsFor(controller.buffer), nil
}

func (controller *StepController) Missing() []string {
	missing := make([]string, 0)
	for _, field := range controller.section.Fields {
		if field.IsRequired(controller.buffer) && controller.buffer[field.Name].IsEmpty() {
			missing = append(missing, field.Name)
		}
	}
	return missing
}

func (controller *StepController) CanAdvance() bool {
	return len(controller.Missing()) == 0
}

// Advance commits nothing while required fields are missing.
func (controller *StepController) Advance() (Transition, error) {
	if missing := controller.Missing(); len(missing) > 0 {
		return Transition{}, &MissingFieldsError{Section: controller.section.ID, Fields: missing}
	}

	controller.aggregator.Update(controller.section.ID, controller.buffer)

	transition := Transition{From: controller.section.ID}
	if next, ok := controller.flow.Next(controller.section.ID); ok {
		transition.To = next
		return transition, nil
	}
	transition.Confirm = true
	return transition, nil
}

func (controller *StepController) Confirm(choice ConfirmChoice) (bool, error) {
	if !controller.IsTerminal() {
		return false, ErrNotAtTerminalStep
	}
	switch choice {
	case ChoiceReview:
		return false, nil
	case ChoiceSubmit:
		return true, nil
	default:
		return false, ErrInvalidChoice
	}
}

func (controller *StepController) field(name string) (questionnaire.Field, error) {
	field, ok := controller.section.Field(name)
	if !ok {
		return questionnaire.Field{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, controller.section.ID, name)
	}
	return field, nil
}

// dropStaleRestrictedValues clears a restricted choice whose value left the
// allowed subset, e.g. a top priority whose goal was deselected.
func (controller *StepController) dropStaleRestrictedValues() {
	for _, field := range controller.section.Fields {
		if field.Restrict == nil || field.IsMulti() {
			continue
		}
		value := controller.buffer.Text(field.Name)
		if value != "" && !field.AllowsOption(controller.buffer, value) {
			controller.buffer[field.Name] = models.TextAnswer("")
		}
	}
}
