package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/models"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionRepository stores both submission kinds; kind picks the table.
type SubmissionRepository interface {
	Create(db *gorm.DB, kind models.SubmissionKind, sub *models.Submission) error
	FindByID(db *gorm.DB, kind models.SubmissionKind, id string) (*models.Submission, error)
	ListByUsername(db *gorm.DB, kind models.SubmissionKind, username string) ([]models.Submission, error)
}

type SubmissionRepositoryImpl struct{}

func NewSubmissionRepository() SubmissionRepository {
	return &SubmissionRepositoryImpl{}
}

func (r *SubmissionRepositoryImpl) Create(db *gorm.DB, kind models.SubmissionKind, sub *models.Submission) error {
	switch kind {
	case models.KindLegalAdvice:
		row := models.LegalAdviceRequest{Submission: *sub}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
		*sub = row.Submission
	case models.KindMiningPlan:
		row := models.MiningPlanQuery{Submission: *sub}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
		*sub = row.Submission
	default:
		return errors.New("unknown submission kind " + string(kind))
	}
	return nil
}

func (r *SubmissionRepositoryImpl) FindByID(db *gorm.DB, kind models.SubmissionKind, id string) (*models.Submission, error) {
	var err error
	var sub models.Submission

	switch kind {
	case models.KindLegalAdvice:
		var row models.LegalAdviceRequest
		err = db.Where("id = ?", id).First(&row).Error
		sub = row.Submission
	case models.KindMiningPlan:
		var row models.MiningPlanQuery
		err = db.Where("id = ?", id).First(&row).Error
		sub = row.Submission
	default:
		return nil, ErrSubmissionNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// ListByUsername returns newest first.
func (r *SubmissionRepositoryImpl) ListByUsername(db *gorm.DB, kind models.SubmissionKind, username string) ([]models.Submission, error) {
	q := db.Where("username = ?", username).Order("created_at DESC")

	switch kind {
	case models.KindLegalAdvice:
		var rows []models.LegalAdviceRequest
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]models.Submission, 0, len(rows))
		for _, row := range rows {
			out = append(out, row.Submission)
		}
		return out, nil
	case models.KindMiningPlan:
		var rows []models.MiningPlanQuery
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]models.Submission, 0, len(rows))
		for _, row := range rows {
			out = append(out, row.Submission)
		}
		return out, nil
	}
	return nil, errors.New("unknown submission kind " + string(kind))
}
