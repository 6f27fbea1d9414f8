package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/wellness/internal/models"
	"github.com/terraincognita07/wellness/internal/questionnaire"
	"gorm.io/datatypes"
)

var (
	ErrSessionNotFound    = errors.New("assessment session not found")
	ErrSessionLoadFailed  = errors.New("load assessment session failed")
	ErrSessionSaveFailed  = errors.New("save assessment session failed")
	ErrAnalysisInProgress = errors.New("analysis in progress")
	ErrNoPreviousStep     = errors.New("no previous step")
	ErrNotConfirming      = errors.New("terminal step not committed")
)

type AssessmentSessionRepository interface {
	Create(session *models.AssessmentSession) error
	FindByID(id string) (models.AssessmentSession, bool, error)
	Save(session *models.AssessmentSession) error
	DeleteIdleBefore(cutoff time.Time) (int64, error)
}

type StepState struct {
	SessionID  string                            `json:"session_id"`
	Section    questionnaire.SectionID           `json:"section"`
	Stage      string                            `json:"stage"`
	Position   int                               `json:"position"`
	Total      int                               `json:"total"`
	Terminal   bool                              `json:"terminal"`
	Values     models.Answers                    `json:"values"`
	Visible    []string                          `json:"visible"`
	Options    map[string][]questionnaire.Option `json:"options"`
	Missing    []string                          `json:"missing"`
	CanAdvance bool                              `json:"can_advance"`
	CanGoBack  bool                              `json:"can_go_back"`
}

type SubmitOutcome struct {
	Submitted bool   `json:"submitted"`
	Stage     string `json:"stage"`
}

type AnalysisStatus struct {
	Stage     string `json:"stage"`
	Percent   int    `json:"percent"`
	StatusKey string `json:"status_key,omitempty"`
	Done      bool   `json:"done"`
	Error     string `json:"error,omitempty"`
}

type AssessmentService struct {
	sessions AssessmentSessionRepository
	catalog  *questionnaire.Catalog
	runner   *AnalysisRunner
	now      func() time.Time
	newID    func() string
	mu       sync.Mutex
}

func NewAssessmentService(sessions AssessmentSessionRepository, catalog *questionnaire.Catalog, runner *AnalysisRunner) *AssessmentService {
	return &AssessmentService{
		sessions: sessions,
		catalog:  catalog,
		runner:   runner,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

func (service *AssessmentService) Catalog() *questionnaire.Catalog {
	return service.catalog
}

func (service *AssessmentService) Create() (StepState, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	aggregator := NewAggregator(service.catalog)
	session := models.AssessmentSession{
		ID:     service.newID(),
		Cursor: string(service.catalog.Flow().First()),
		Stage:  models.StageInProgress,
	}
	if err := storeAggregator(&session, aggregator); err != nil {
		return StepState{}, err
	}
	if err := service.sessions.Create(&session); err != nil {
		return StepState{}, fmt.Errorf("%w: %v", ErrSessionSaveFailed, err)
	}

	return service.stepState(&session, aggregator, nil)
}

func (service *AssessmentService) CurrentStep(sessionID string) (StepState, error) {
	session, aggregator, err := service.load(sessionID)
	if err != nil {
		return StepState{}, err
	}
	return service.stepState(&session, aggregator, nil)
}

func (service *AssessmentService) CheckStep(sessionID string, edits []FieldEdit) (StepState, error) {
	session, aggregator, err := service.load(sessionID)
	if err != nil {
		return StepState{}, err
	}
	if session.Stage == models.StageAnalyzing {
		return StepState{}, ErrAnalysisInProgress
	}

	controller, err := NewStepController(aggregator, questionnaire.SectionID(session.Cursor))
	if err != nil {
		return StepState{}, err
	}
	if err := controller.Apply(edits); err != nil {
		return StepState{}, err
	}
	return service.stepState(&session, aggregator, controller)
}

// AdvanceStep commits the section; a blocked step returns *MissingFieldsError.
func (service *AssessmentService) AdvanceStep(sessionID string, edits []FieldEdit) (Transition, StepState, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, aggregator, err := service.load(sessionID)
	if err != nil {
		return Transition{}, StepState{}, err
	}
	if session.Stage == models.StageAnalyzing {
		return Transition{}, StepState{}, ErrAnalysisInProgress
	}

	controller, err := NewStepController(aggregator, questionnaire.SectionID(session.Cursor))
	if err != nil {
		return Transition{}, StepState{}, err
	}
	if err := controller.Apply(edits); err != nil {
		return Transition{}, StepState{}, err
	}

	transition, err := controller.Advance()
	if err != nil {
		state, stateErr := service.stepState(&session, aggregator, controller)
		if stateErr != nil {
			return Transition{}, StepState{}, stateErr
		}
		return Transition{}, state, err
	}

	if transition.Confirm {
		session.Stage = models.StageConfirming
	} else {
		session.Cursor = string(transition.To)
		session.Stage = models.StageInProgress
	}
	if err := service.save(&session, aggregator); err != nil {
		return Transition{}, StepState{}, err
	}

	state, err := service.stepState(&session, aggregator, nil)
	return transition, state, err
}

func (service *AssessmentService) Back(sessionID string) (StepState, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, aggregator, err := service.load(sessionID)
	if err != nil {
		return StepState{}, err
	}
	if session.Stage == models.StageAnalyzing {
		return StepState{}, ErrAnalysisInProgress
	}

	previous, ok := service.catalog.Flow().Previous(questionnaire.SectionID(session.Cursor))
	if !ok {
		return StepState{}, ErrNoPreviousStep
	}
	session.Cursor = string(previous)
	session.Stage = models.StageInProgress
	if err := service.save(&session, aggregator); err != nil {
		return StepState{}, err
	}
	return service.stepState(&session, aggregator, nil)
}

func (service *AssessmentService) Submit(sessionID string, choice ConfirmChoice) (SubmitOutcome, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, aggregator, err := service.load(sessionID)
	if err != nil {
		return SubmitOutcome{}, err
	}
	if session.Stage == models.StageAnalyzing {
		return SubmitOutcome{}, ErrAnalysisInProgress
	}

	controller, err := NewStepController(aggregator, questionnaire.SectionID(session.Cursor))
	if err != nil {
		return SubmitOutcome{}, err
	}
	submit, err := controller.Confirm(choice)
	if err != nil {
		return SubmitOutcome{}, err
	}
	if session.Stage != models.StageConfirming && session.Stage != models.StageFailed {
		return SubmitOutcome{}, ErrNotConfirming
	}
	if !submit {
		return SubmitOutcome{Submitted: false, Stage: session.Stage}, nil
	}

	startedAt := service.now()
	session.Stage = models.StageAnalyzing
	session.AnalysisStartedAt = &startedAt
	session.AnalysisError = ""
	if err := service.save(&session, aggregator); err != nil {
		return SubmitOutcome{}, err
	}

	service.runner.Start(aggregator.Snapshot(), func(results models.ResultsInfo, runErr error) {
		service.finishAnalysis(sessionID, results, runErr)
	})
	return SubmitOutcome{Submitted: true, Stage: session.Stage}, nil
}

func (service *AssessmentService) finishAnalysis(sessionID string, results models.ResultsInfo, runErr error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, aggregator, err := service.load(sessionID)
	if err != nil {
		log.Printf("analysis: session %s dropped before completion: %v", sessionID, err)
		return
	}
	if session.Stage != models.StageAnalyzing {
		return
	}

	if runErr != nil {
		log.Printf("analysis: session %s failed: %v", sessionID, runErr)
		session.Stage = models.StageFailed
		session.AnalysisError = runErr.Error()
	} else {
		aggregator.SetResults(results)
		session.Stage = models.StageComplete
	}
	if err := service.save(&session, aggregator); err != nil {
		log.Printf("analysis: store results for session %s: %v", sessionID, err)
	}
}

func (service *AssessmentService) AnalysisStatus(sessionID string) (AnalysisStatus, error) {
	session, _, err := service.load(sessionID)
	if err != nil {
		return AnalysisStatus{}, err
	}

	status := AnalysisStatus{Stage: session.Stage}
	switch session.Stage {
	case models.StageAnalyzing:
		startedAt := service.now()
		if session.AnalysisStartedAt != nil {
			startedAt = *session.AnalysisStartedAt
		}
		progress := service.runner.Progress(startedAt, service.now())
		status.Percent = progress.Percent
		status.StatusKey = progress.StatusKey
	case models.StageComplete:
		status.Percent = 100
		status.StatusKey = AnalysisStatusFinalizing
		status.Done = true
	case models.StageFailed:
		status.Done = true
		status.Error = session.AnalysisError
	}
	return status, nil
}

func (service *AssessmentService) Results(sessionID string, category string) (ResultsView, error) {
	_, aggregator, err := service.load(sessionID)
	if err != nil {
		return ResultsView{}, err
	}
	return BuildResultsView(aggregator.Results(), category), nil
}

func (service *AssessmentService) Reset(sessionID string) (StepState, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	session, aggregator, err := service.load(sessionID)
	if err != nil {
		return StepState{}, err
	}
	if session.Stage == models.StageAnalyzing {
		return StepState{}, ErrAnalysisInProgress
	}

	aggregator.Reset()
	session.Cursor = string(service.catalog.Flow().First())
	session.Stage = models.StageInProgress
	session.AnalysisStartedAt = nil
	session.AnalysisError = ""
	if err := service.save(&session, aggregator); err != nil {
		return StepState{}, err
	}
	return service.stepState(&session, aggregator, nil)
}

func (service *AssessmentService) PurgeIdle(maxIdle time.Duration) (int64, error) {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.sessions.DeleteIdleBefore(service.now().Add(-maxIdle))
}

func (service *AssessmentService) load(sessionID string) (models.AssessmentSession, *Aggregator, error) {
	session, found, err := service.sessions.FindByID(sessionID)
	if err != nil {
		return models.AssessmentSession{}, nil, fmt.Errorf("%w: %v", ErrSessionLoadFailed, err)
	}
	if !found {
		return models.AssessmentSession{}, nil, ErrSessionNotFound
	}

	aggregator, err := loadAggregator(service.catalog, session)
	if err != nil {
		return models.AssessmentSession{}, nil, err
	}
	return session, aggregator, nil
}

func (service *AssessmentService) save(session *models.AssessmentSession, aggregator *Aggregator) error {
	if err := storeAggregator(session, aggregator); err != nil {
		return err
	}
	if err := service.sessions.Save(session); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionSaveFailed, err)
	}
	return nil
}

func (service *AssessmentService) stepState(session *models.AssessmentSession, aggregator *Aggregator, controller *StepController) (StepState, error) {
	if controller == nil {
		seeded, err := NewStepController(aggregator, questionnaire.SectionID(session.Cursor))
		if err != nil {
			return StepState{}, err
		}
		controller = seeded
	}

	flow := service.catalog.Flow()
	buffer := controller.Buffer()
	visible := controller.Visible()
	visibleNames := make([]string, 0, len(visible))
	options := make(map[string][]questionnaire.Option)
	for _, field := range visible {
		visibleNames = append(visibleNames, field.Name)
		if field.HasOptions() {
			options[field.Name] = field.OptionsFor(buffer)
		}
	}
	missing := controller.Missing()
	_, hasPrevious := flow.Previous(controller.Section().ID)

	return StepState{
		SessionID:  session.ID,
		Section:    controller.Section().ID,
		Stage:      session.Stage,
		Position:   controller.Position(),
		Total:      flow.Len(),
		Terminal:   controller.IsTerminal(),
		Values:     buffer,
		Visible:    visibleNames,
		Options:    options,
		Missing:    missing,
		CanAdvance: len(missing) == 0,
		CanGoBack:  hasPrevious && session.Stage != models.StageAnalyzing,
	}, nil
}

func loadAggregator(catalog *questionnaire.Catalog, session models.AssessmentSession) (*Aggregator, error) {
	sections := Snapshot{}
	if len(session.Sections) > 0 {
		if err := json.Unmarshal(session.Sections, &sections); err != nil {
			return nil, fmt.Errorf("%w: decode sections: %v", ErrSessionLoadFailed, err)
		}
	}

	results := models.EmptyResults()
	if len(session.Results) > 0 && string(session.Results) != "null" {
		if err := json.Unmarshal(session.Results, &results); err != nil {
			return nil, fmt.Errorf("%w: decode results: %v", ErrSessionLoadFailed, err)
		}
	}

	return RestoreAggregator(catalog, sections, results), nil
}

func storeAggregator(session *models.AssessmentSession, aggregator *Aggregator) error {
	sections, err := json.Marshal(aggregator.Snapshot())
	if err != nil {
		return fmt.Errorf("%w: encode sections: %v", ErrSessionSaveFailed, err)
	}
	results, err := json.Marshal(aggregator.Results())
	if err != nil {
		return fmt.Errorf("%w: encode results: %v", ErrSessionSaveFailed, err)
	}
	session.Sections = datatypes.JSON(sections)
	session.Results = datatypes.JSON(results)
	return nil
}
