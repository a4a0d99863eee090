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

// IEventRepository is the slice of event persistence the registration flow
// needs; the wider event CRUD surface lives elsewhere.
type IEventRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDWithForm(ctx context.Context, id uint) (*models.Event, error)
	Save(ctx context.Context, event *models.Event) error
}

// EventRepository is the GORM implementation of IEventRepository.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository() IEventRepository {
	return NewEventRepositoryTx(configsdatabase.GetDB())
}

func NewEventRepositoryTx(tx *gorm.DB) IEventRepository {
	return &EventRepository{db: tx}
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// FindByIDWithForm loads the event together with its registration form and
// that form's fields.
func (r *EventRepository) FindByIDWithForm(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("RegistrationForm.Fields", func(db *gorm.DB) *gorm.DB { return db.Order("custom_form_fields.id ASC") }).
		Preload("RegistrationForm").
		First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByIDWithForm: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Save(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

var _ IEventRepository = (*EventRepository)(nil)
