package repositories

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendee.link/configs/configsdatabase"
	"attendee.link/configs/configslog"
	"attendee.link/models"
	"attendee.link/pkg/queryparams"
)

// IFormRepository covers the custom-form persistence surface.
type IFormRepository interface {
	Create(ctx context.Context, form *models.CustomForm) error
	FindByID(ctx context.Context, id uint) (*models.CustomForm, error)
	FindByName(ctx context.Context, name string) (*models.CustomForm, error)
	FindByEventID(ctx context.Context, eventID uint) ([]models.CustomForm, error)
	SearchPaginated(ctx context.Context, params queryparams.ListParams) ([]models.CustomForm, int64, error)
	Save(ctx context.Context, form *models.CustomForm) error
	Delete(ctx context.Context, form *models.CustomForm) error
	CreateField(ctx context.Context, field *models.CustomFormField) error
	SaveField(ctx context.Context, field *models.CustomFormField) error
	DeleteFieldsByID(ctx context.Context, formID uint, fieldIDs []uint) error
}

// FormRepository is the GORM implementation of IFormRepository.
type FormRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.CustomForm]
}

// NewFormRepository builds a repository on the shared connection.
func NewFormRepository() IFormRepository {
	return NewFormRepositoryTx(configsdatabase.GetDB())
}

// NewFormRepositoryTx builds a repository bound to tx, for use inside a
// transaction.
func NewFormRepositoryTx(tx *gorm.DB) IFormRepository {
	return &FormRepository{db: tx, base: NewBaseRepository[models.CustomForm](tx)}
}

func (r *FormRepository) Create(ctx context.Context, form *models.CustomForm) error {
	return r.base.Create(ctx, form)
}

// FindByID loads the form with its fields, ordered by field id so the
// definition renders in authoring order.
func (r *FormRepository) FindByID(ctx context.Context, id uint) (*models.CustomForm, error) {
	var form models.CustomForm
	err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("custom_form_fields.id ASC") }).
		First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

func (r *FormRepository) FindByName(ctx context.Context, name string) (*models.CustomForm, error) {
	var form models.CustomForm
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByName: DB error", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

func (r *FormRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.CustomForm, error) {
	var forms []models.CustomForm
	err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("custom_form_fields.id ASC") }).
		Where("event_id = ?", eventID).
		Find(&forms).Error
	if err != nil {
		configslog.Log.Error("FormRepository.FindByEventID: DB error", zap.Uint("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return forms, nil
}

// allowedFormSortColumns whitelists what SortBy may reach the SQL string.
var allowedFormSortColumns = map[string]bool{
	"name":       true,
	"type":       true,
	"created_at": true,
	"start_date": true,
	"end_date":   true,
}

// sortClause builds the ORDER BY fragment from validated params, falling
// back to created_at when the requested column is not whitelisted.
func sortClause(params queryparams.ListParams) string {
	column := params.SortBy
	if !allowedFormSortColumns[column] {
		column = queryparams.DefaultSortBy
	}
	direction := "ASC"
	if params.OrderBy == "desc" {
		direction = "DESC"
	}
	return column + " " + direction
}

// SearchPaginated lists forms with pagination, optionally filtered by a
// case-insensitive name fragment and form type, sorted per params.
func (r *FormRepository) SearchPaginated(ctx context.Context, params queryparams.ListParams) ([]models.CustomForm, int64, error) {
	var forms []models.CustomForm
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CustomForm{})
	if params.Name != "" {
		query = query.Where("name ILIKE ?", "%"+strings.TrimSpace(params.Name)+"%")
	}
	if params.Status != "" {
		query = query.Where("type = ?", string(models.FormType(params.Status).Normalize()))
	}

	if err := query.Count(&total).Error; err != nil {
		configslog.Log.Error("FormRepository.SearchPaginated: count error", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return forms, 0, nil
	}

	err := query.
		Order(sortClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&forms).Error
	if err != nil {
		configslog.Log.Error("FormRepository.SearchPaginated: find error", zap.Error(err))
		return nil, total, err
	}
	return forms, total, nil
}

func (r *FormRepository) Save(ctx context.Context, form *models.CustomForm) error {
	return r.base.Save(ctx, form)
}

// Delete removes the form; its fields cascade at the database level.
func (r *FormRepository) Delete(ctx context.Context, form *models.CustomForm) error {
	return r.base.Delete(ctx, form)
}

func (r *FormRepository) CreateField(ctx context.Context, field *models.CustomFormField) error {
	return r.db.WithContext(ctx).Create(field).Error
}

// fieldUpdateColumns lists the definition columns a field update may touch.
// Identity and bookkeeping columns (id, form_id, created_at) stay out so a
// reconciled field built from client input cannot zero them.
var fieldUpdateColumns = []string{
	"label", "name", "type", "required", "min", "max", "options", "placeholder",
}

func (r *FormRepository) SaveField(ctx context.Context, field *models.CustomFormField) error {
	return r.db.WithContext(ctx).
		Model(&models.CustomFormField{}).
		Where("id = ? AND form_id = ?", field.ID, field.FormID).
		Select(fieldUpdateColumns).
		Updates(field).Error
}

func (r *FormRepository) DeleteFieldsByID(ctx context.Context, formID uint, fieldIDs []uint) error {
	if len(fieldIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("form_id = ? AND id IN ?", formID, fieldIDs).
		Delete(&models.CustomFormField{}).Error
}

var _ IFormRepository = (*FormRepository)(nil)
