package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
)

var errInvalidAnswerJSON = errors.New("answer must be a string or an array of strings")

// Answer holds one questionnaire field value: either a scalar string or a
// set of selected option values.
type Answer struct {
	text   string
	values []string
	multi  bool
}

func TextAnswer(value string) Answer {
	return Answer{text: value}
}

// ChoicesAnswer builds a multi-select answer. Duplicate values are dropped
// and first-seen order is kept.
func ChoicesAnswer(values ...string) Answer {
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if !slices.Contains(unique, value) {
			unique = append(unique, value)
		}
	}
	return Answer{values: unique, multi: true}
}

func (answer Answer) IsMulti() bool {
	return answer.multi
}

func (answer Answer) Text() string {
	return answer.text
}

func (answer Answer) Values() []string {
	if !answer.multi {
		return nil
	}
	return slices.Clone(answer.values)
}

func (answer Answer) Contains(value string) bool {
	return answer.multi && slices.Contains(answer.values, value)
}

func (answer Answer) Len() int {
	return len(answer.values)
}

// IsEmpty reports whether the answer would fail a required-field check:
// blank text for scalars, no elements for sets.
func (answer Answer) IsEmpty() bool {
	if answer.multi {
		return len(answer.values) == 0
	}
	return strings.TrimSpace(answer.text) == ""
}

func (answer Answer) Equal(other Answer) bool {
	if answer.multi != other.multi {
		return false
	}
	if answer.multi {
		return slices.Equal(answer.values, other.values)
	}
	return answer.text == other.text
}

func (answer Answer) Clone() Answer {
	return Answer{text: answer.text, values: slices.Clone(answer.values), multi: answer.multi}
}

func (answer Answer) MarshalJSON() ([]byte, error) {
	if answer.multi {
		values := answer.values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(values)
	}
	return json.Marshal(answer.text)
}

func (answer *Answer) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*answer = Answer{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*answer = TextAnswer(text)
		return nil
	case '[':
		var values []string
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return errInvalidAnswerJSON
		}
		*answer = ChoicesAnswer(values...)
		return nil
	default:
		return errInvalidAnswerJSON
	}
}

// Answers is one section slice: field name to value.
type Answers map[string]Answer

func (answers Answers) Text(field string) string {
	return answers[field].Text()
}

func (answers Answers) Choices(field string) []string {
	return answers[field].Values()
}

func (answers Answers) Clone() Answers {
	cloned := make(Answers, len(answers))
	for field, answer := range answers {
		cloned[field] = answer.Clone()
	}
	return cloned
}
