package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StageInProgress = "in_progress"
	StageConfirming = "confirming"
	StageAnalyzing  = "analyzing"
	StageComplete   = "complete"
	StageFailed     = "failed"
)

type AssessmentSession struct {
	ID                string         `gorm:"primaryKey;size:36"`
	Cursor            string         `gorm:"not null"`
	Stage             string         `gorm:"not null;default:in_progress"`
	Sections          datatypes.JSON `gorm:"type:json;not null"`
	Results           datatypes.JSON `gorm:"type:json"`
	AnalysisStartedAt *time.Time
	AnalysisError     string
	CreatedAt         time.Time
	UpdatedAt         time.Time `gorm:"index"`
}

func (AssessmentSession) TableName() string {
	return "assessment_sessions"
}
