package db

import (
	"time"

	"github.com/terraincognita07/wellness/internal/models"
	"gorm.io/gorm"
)

type SessionRepository struct {
	database *gorm.DB
}

func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{database: database}
}

func (repo *SessionRepository) Create(session *models.AssessmentSession) error {
	return repo.database.Create(session).Error
}

func (repo *SessionRepository) FindByID(id string) (models.AssessmentSession, bool, error) {
	session := models.AssessmentSession{}
	result := repo.database.
		Where("id = ?", id).
		Limit(1).
		Find(&session)
	if result.Error != nil {
		return models.AssessmentSession{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.AssessmentSession{}, false, nil
	}
	return session, true, nil
}

func (repo *SessionRepository) Save(session *models.AssessmentSession) error {
	return repo.database.Save(session).Error
}

func (repo *SessionRepository) DeleteIdleBefore(cutoff time.Time) (int64, error) {
	result := repo.database.
		Where("updated_at < ?", cutoff).
		Delete(&models.AssessmentSession{})
	return result.RowsAffected, result.Error
}

func (repo *SessionRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.AssessmentSession{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
