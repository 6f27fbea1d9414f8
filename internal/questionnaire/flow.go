package questionnaire

import "slices"

// Flow is the fixed linear order of wizard sections.
type Flow struct {
	order []SectionID
}

func NewFlow(sections ...SectionID) Flow {
	return Flow{order: slices.Clone(sections)}
}

func (flow Flow) Sections() []SectionID {
	return slices.Clone(flow.order)
}

func (flow Flow) Len() int {
	return len(flow.order)
}

func (flow Flow) First() SectionID {
	if len(flow.order) == 0 {
		return ""
	}
	return flow.order[0]
}

func (flow Flow) Contains(section SectionID) bool {
	return slices.Contains(flow.order, section)
}

// Position is the 1-based step number of a section, or 0 when the section
// is not part of the flow.
func (flow Flow) Position(section SectionID) int {
	return slices.Index(flow.order, section) + 1
}

func (flow Flow) IsTerminal(section SectionID) bool {
	return len(flow.order) > 0 && flow.order[len(flow.order)-1] == section
}

func (flow Flow) Next(section SectionID) (SectionID, bool) {
	index := slices.Index(flow.order, section)
	if index < 0 || index+1 >= len(flow.order) {
		return "", false
	}
	return flow.order[index+1], true
}

func (flow Flow) Previous(section SectionID) (SectionID, bool) {
	index := slices.Index(flow.order, section)
	if index <= 0 {
		return "", false
	}
	return flow.order[index-1], true
}
