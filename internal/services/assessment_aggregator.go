package services

import (
	"github.com/terraincognita07/wellness/internal/models"
	"github.com/terraincognita07/wellness/internal/questionnaire"
)

// Snapshot is the full set of section slices, keyed by section.
type Snapshot map[questionnaire.SectionID]models.Answers

func (snapshot Snapshot) Clone() Snapshot {
	cloned := make(Snapshot, len(snapshot))
	for section, values := range snapshot {
		cloned[section] = values.Clone()
	}
	return cloned
}

// Aggregator owns every section slice of one in-progress assessment plus
// its results. It performs no validation; a single writer is expected.
type Aggregator struct {
	catalog  *questionnaire.Catalog
	sections Snapshot
	results  models.ResultsInfo
}

func NewAggregator(catalog *questionnaire.Catalog) *Aggregator {
	aggregator := &Aggregator{catalog: catalog}
	aggregator.Reset()
	return aggregator
}

// RestoreAggregator rebuilds an aggregator from stored slices. Stored keys
// are merged over the empty defaults so fields added to a section later
// still have a value.
func RestoreAggregator(catalog *questionnaire.Catalog, sections Snapshot, results models.ResultsInfo) *Aggregator {
	aggregator := NewAggregator(catalog)
	for section, values := range sections {
		aggregator.Update(section, values)
	}
	aggregator.SetResults(results)
	return aggregator
}

func (aggregator *Aggregator) Catalog() *questionnaire.Catalog {
	return aggregator.catalog
}

func (aggregator *Aggregator) Get(section questionnaire.SectionID) models.Answers {
	values, ok := aggregator.sections[section]
	if !ok {
		return models.Answers{}
	}
	return values.Clone()
}

// Update merges partial into the section slice by shallow key overwrite.
// Keys absent from partial keep their current value.
func (aggregator *Aggregator) Update(section questionnaire.SectionID, partial models.Answers) {
	values, ok := aggregator.sections[section]
	if !ok {
		values = models.Answers{}
		aggregator.sections[section] = values
	}
	for field, answer := range partial {
		values[field] = answer.Clone()
	}
}

func (aggregator *Aggregator) SetResults(results models.ResultsInfo) {
	aggregator.results = results.Clone()
}

func (aggregator *Aggregator) Results() models.ResultsInfo {
	return aggregator.results.Clone()
}

func (aggregator *Aggregator) Reset() {
	sections := make(Snapshot)
	for _, section := range aggregator.catalog.Sections() {
		sections[section.ID] = section.Defaults()
	}
	aggregator.sections = sections
	aggregator.results = models.EmptyResults()
}

func (aggregator *Aggregator) Snapshot() Snapshot {
	return aggregator.sections.Clone()
}
