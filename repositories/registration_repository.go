package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendee.link/configs/configsdatabase"
	"attendee.link/configs/configslog"
	"attendee.link/models"
)

// IRegistrationRepository covers event registrations and their submissions.
type IRegistrationRepository interface {
	CreateSubmission(ctx context.Context, submission *models.CustomFormSubmission) error
	Create(ctx context.Context, registration *models.EventRegistration) error
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.EventRegistration, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.EventRegistration, error)
	FindSubmissionsByFormID(ctx context.Context, formID uint) ([]models.CustomFormSubmission, error)
	Save(ctx context.Context, registration *models.EventRegistration) error
}

// RegistrationRepository is the GORM implementation of
// IRegistrationRepository.
type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository() IRegistrationRepository {
	return NewRegistrationRepositoryTx(configsdatabase.GetDB())
}

func NewRegistrationRepositoryTx(tx *gorm.DB) IRegistrationRepository {
	return &RegistrationRepository{db: tx}
}

// CreateSubmission inserts the submission together with its responses.
func (r *RegistrationRepository) CreateSubmission(ctx context.Context, submission *models.CustomFormSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *RegistrationRepository) Create(ctx context.Context, registration *models.EventRegistration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *RegistrationRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.EventRegistration, error) {
	var registration models.EventRegistration
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("RegistrationRepository.FindByEventAndUser: DB error",
			zap.Uint("event_id", eventID), zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &registration, nil
}

// FindByIDWithDetails loads the registration with the event, the user, and
// the submission including responses and the form's field definitions.
func (r *RegistrationRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.EventRegistration, error) {
	var registration models.EventRegistration
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("User").
		Preload("Submission.Responses").
		Preload("Submission.Form.Fields", func(db *gorm.DB) *gorm.DB { return db.Order("custom_form_fields.id ASC") }).
		First(&registration, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("RegistrationRepository.FindByIDWithDetails: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &registration, nil
}

// FindSubmissionsByFormID returns all submissions of a form with responses.
func (r *RegistrationRepository) FindSubmissionsByFormID(ctx context.Context, formID uint) ([]models.CustomFormSubmission, error) {
	var submissions []models.CustomFormSubmission
	err := r.db.WithContext(ctx).
		Preload("Responses").
		Where("form_id = ?", formID).
		Order("id ASC").
		Find(&submissions).Error
	if err != nil {
		configslog.Log.Error("RegistrationRepository.FindSubmissionsByFormID: DB error",
			zap.Uint("form_id", formID), zap.Error(err))
		return nil, err
	}
	return submissions, nil
}

func (r *RegistrationRepository) Save(ctx context.Context, registration *models.EventRegistration) error {
	return r.db.WithContext(ctx).Save(registration).Error
}

var _ IRegistrationRepository = (*RegistrationRepository)(nil)
