package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendee.link/configs/configsdatabase"
	"attendee.link/configs/configslog"
	"attendee.link/models"
	"attendee.link/pkg/queryparams"
	"attendee.link/repositories"
)

// FormServiceError is a typed service error.
type FormServiceError string

func (e FormServiceError) Error() string { return string(e) }

const (
	ErrFormNotFound              FormServiceError = "form not found"
	ErrFormNameTaken             FormServiceError = "a form already exists with this name"
	ErrInvalidFormType           FormServiceError = "invalid form type"
	ErrInvalidFieldType          FormServiceError = "invalid field type"
	ErrFormProtected             FormServiceError = "registration forms cannot be deleted"
	ErrRegistrationFieldsMissing FormServiceError = "registration forms must have 'email' and 'name' fields"
	ErrInvalidDateRange          FormServiceError = "start date must not be after end date"
	ErrFormEventRequired         FormServiceError = "registration forms must reference an event"
	ErrFormEventNotFound         FormServiceError = "event not found"
)

// FormFieldInput is one field definition as received from the client. A nil
// ID means "create"; a set ID means "update in place".
type FormFieldInput struct {
	ID          *uint    `json:"id,omitempty"`
	Label       string   `json:"label"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Min         *int     `json:"min,omitempty"`
	Max         *int     `json:"max,omitempty"`
	Options     []string `json:"options,omitempty"`
	Placeholder string   `json:"placeholder"`
}

// CreateFormInput carries everything needed to create a form.
type CreateFormInput struct {
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Type               string           `json:"type"`
	StartDate          time.Time        `json:"startDate"`
	EndDate            time.Time        `json:"endDate"`
	Fields             []FormFieldInput `json:"fields"`
	EventID            *uint            `json:"eventId,omitempty"`
	IsRegistrationForm bool             `json:"isRegistrationForm"`
}

// UpdateFormInput carries a form update. Nil scalar pointers leave the stored
// value untouched; Fields always replaces the definition via reconciliation.
type UpdateFormInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	StartDate   *time.Time       `json:"startDate,omitempty"`
	EndDate     *time.Time       `json:"endDate,omitempty"`
	Fields      []FormFieldInput `json:"fields"`
}

// FormResponseRecord is one flat submission record keyed by field name.
type FormResponseRecord struct {
	SubmissionID uint              `json:"submissionId"`
	SubmittedAt  time.Time         `json:"submittedAt"`
	Submitter    *models.User      `json:"submitter,omitempty"`
	Values       map[string]string `json:"values"`
}

// IFormService is the form definition engine.
type IFormService interface {
	CreateForm(ctx context.Context, input CreateFormInput) (*models.CustomForm, error)
	UpdateForm(ctx context.Context, id uint, input UpdateFormInput) (*models.CustomForm, error)
	DeleteForm(ctx context.Context, id uint) error
	GetFormByID(ctx context.Context, id uint) (*models.CustomForm, error)
	GetEventForms(ctx context.Context, eventID uint) ([]models.CustomForm, error)
	SearchForms(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetFormResponses(ctx context.Context, formID uint) ([]FormResponseRecord, error)
}

// FormService implements IFormService.
type FormService struct {
	repo             repositories.IFormRepository
	eventRepo        repositories.IEventRepository
	userRepo         repositories.IUserRepository
	registrationRepo repositories.IRegistrationRepository
	db               *gorm.DB
}

// NewFormService wires a FormService on the shared connection.
func NewFormService() IFormService {
	return &FormService{
		repo:             repositories.NewFormRepository(),
		eventRepo:        repositories.NewEventRepository(),
		userRepo:         repositories.NewUserRepository(),
		registrationRepo: repositories.NewRegistrationRepository(),
		db:               configsdatabase.GetDB(),
	}
}

// buildField converts a field input into a model, normalising the type.
func buildField(formID uint, input FormFieldInput) (models.CustomFormField, error) {
	fieldType := models.FieldType(input.Type)
	if !fieldType.Valid() {
		return models.CustomFormField{}, ErrInvalidFieldType
	}
	field := models.CustomFormField{
		FormID:      formID,
		Label:       input.Label,
		Name:        input.Name,
		Type:        fieldType.Normalize(),
		Required:    input.Required,
		Min:         input.Min,
		Max:         input.Max,
		Placeholder: input.Placeholder,
	}
	if input.ID != nil {
		field.ID = *input.ID
	}
	if err := field.SetOptions(input.Options); err != nil {
		return models.CustomFormField{}, err
	}
	return field, nil
}

// hasRegistrationFields checks the email/name invariant, case-insensitively.
func hasRegistrationFields(fields []FormFieldInput) bool {
	var hasEmail, hasName bool
	for _, f := range fields {
		switch strings.ToLower(f.Name) {
		case "email":
			hasEmail = true
		case "name":
			hasName = true
		}
	}
	return hasEmail && hasName
}

// fieldReconciliation is the three-way diff applied by UpdateForm.
type fieldReconciliation struct {
	toCreate []models.CustomFormField
	toUpdate []models.CustomFormField
	toDelete []uint
}

// planFieldReconciliation diffs the incoming definition against the stored
// one, keyed on field id: known ids update in place, new entries create,
// stored ids absent from the input delete.
func planFieldReconciliation(formID uint, existing []models.CustomFormField, incoming []FormFieldInput) (fieldReconciliation, error) {
	var plan fieldReconciliation

	existingByID := make(map[uint]models.CustomFormField, len(existing))
	for _, f := range existing {
		existingByID[f.ID] = f
	}

	seen := make(map[uint]bool, len(incoming))
	for _, input := range incoming {
		field, err := buildField(formID, input)
		if err != nil {
			return fieldReconciliation{}, err
		}
		if input.ID != nil {
			if _, ok := existingByID[*input.ID]; !ok {
				// Unknown id: treat as a new field rather than failing the
				// whole update.
				field.ID = 0
				plan.toCreate = append(plan.toCreate, field)
				continue
			}
			seen[*input.ID] = true
			plan.toUpdate = append(plan.toUpdate, field)
			continue
		}
		plan.toCreate = append(plan.toCreate, field)
	}

	for _, f := range existing {
		if !seen[f.ID] {
			plan.toDelete = append(plan.toDelete, f.ID)
		}
	}
	return plan, nil
}

// CreateForm validates the definition and persists the form with its fields.
// For registration forms the referenced event is pointed at the new form in
// the same transaction.
func (s *FormService) CreateForm(ctx context.Context, input CreateFormInput) (*models.CustomForm, error) {
	formType := models.FormType(input.Type)
	if !formType.Valid() {
		return nil, ErrInvalidFormType
	}
	if input.IsRegistrationForm {
		if input.EventID == nil {
			return nil, ErrFormEventRequired
		}
		if !hasRegistrationFields(input.Fields) {
			return nil, ErrRegistrationFieldsMissing
		}
	}

	if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
		return nil, ErrFormNameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if input.EventID != nil {
		if _, err := s.eventRepo.FindByID(ctx, *input.EventID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrFormEventNotFound
			}
			return nil, err
		}
	}

	fields := make([]models.CustomFormField, 0, len(input.Fields))
	for _, fieldInput := range input.Fields {
		field, err := buildField(0, fieldInput)
		if err != nil {
			return nil, err
		}
		field.ID = 0
		fields = append(fields, field)
	}

	form := models.CustomForm{
		Name:               input.Name,
		Description:        input.Description,
		Type:               formType.Normalize(),
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		IsRegistrationForm: input.IsRegistrationForm,
		EventID:            input.EventID,
		Fields:             fields,
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		formRepoTx := repositories.NewFormRepositoryTx(tx)
		if err := formRepoTx.Create(ctx, &form); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrFormNameTaken
			}
			return err
		}

		if input.IsRegistrationForm {
			eventRepoTx := repositories.NewEventRepositoryTx(tx)
			event, err := eventRepoTx.FindByID(ctx, *input.EventID)
			if err != nil {
				return ErrFormEventNotFound
			}
			event.RegistrationFormID = &form.ID
			if err := eventRepoTx.Save(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("CreateForm transaction failed", zap.String("name", input.Name), zap.Error(txErr))
		return nil, txErr
	}

	configslog.SLog.Infof("form created: id=%d name=%q registration=%t", form.ID, form.Name, form.IsRegistrationForm)
	return &form, nil
}

// UpdateForm applies scalar changes and reconciles the field set under a row
// lock. Registration forms must keep their email and name fields.
func (s *FormService) UpdateForm(ctx context.Context, id uint, input UpdateFormInput) (*models.CustomForm, error) {
	if input.StartDate != nil && input.EndDate != nil && input.StartDate.After(*input.EndDate) {
		return nil, ErrInvalidDateRange
	}

	var updated *models.CustomForm
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var form models.CustomForm
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&form, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFormNotFound
			}
			return err
		}
		if err := tx.WithContext(ctx).
			Order("custom_form_fields.id ASC").
			Where("form_id = ?", id).
			Find(&form.Fields).Error; err != nil {
			return err
		}

		if form.IsRegistrationForm && !hasRegistrationFields(input.Fields) {
			return ErrRegistrationFieldsMissing
		}

		if input.Name != nil {
			form.Name = *input.Name
		}
		if input.Description != nil {
			form.Description = *input.Description
		}
		if input.StartDate != nil {
			form.StartDate = *input.StartDate
		}
		if input.EndDate != nil {
			form.EndDate = *input.EndDate
		}
		if form.StartDate.After(form.EndDate) {
			return ErrInvalidDateRange
		}

		plan, err := planFieldReconciliation(id, form.Fields, input.Fields)
		if err != nil {
			return err
		}

		formRepoTx := repositories.NewFormRepositoryTx(tx)
		form.Fields = nil // avoid GORM upserting associations on Save
		if err := formRepoTx.Save(ctx, &form); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrFormNameTaken
			}
			return err
		}
		for i := range plan.toUpdate {
			if err := formRepoTx.SaveField(ctx, &plan.toUpdate[i]); err != nil {
				return err
			}
		}
		for i := range plan.toCreate {
			if err := formRepoTx.CreateField(ctx, &plan.toCreate[i]); err != nil {
				return err
			}
		}
		if err := formRepoTx.DeleteFieldsByID(ctx, id, plan.toDelete); err != nil {
			return err
		}

		updated, err = formRepoTx.FindByID(ctx, id)
		return err
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrFormNotFound) {
			configslog.Log.Error("UpdateForm transaction failed", zap.Uint("id", id), zap.Error(txErr))
		}
		return nil, txErr
	}

	configslog.SLog.Infof("form updated: id=%d", id)
	return updated, nil
}

// DeleteForm removes a form and its fields. Registration forms are protected.
func (s *FormService) DeleteForm(ctx context.Context, id uint) error {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFormNotFound
		}
		return err
	}
	if form.IsRegistrationForm {
		return ErrFormProtected
	}
	if err := s.repo.Delete(ctx, form); err != nil {
		configslog.Log.Error("DeleteForm failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("form deleted: id=%d name=%q", form.ID, form.Name)
	return nil
}

func (s *FormService) GetFormByID(ctx context.Context, id uint) (*models.CustomForm, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return form, nil
}

func (s *FormService) GetEventForms(ctx context.Context, eventID uint) ([]models.CustomForm, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormEventNotFound
		}
		return nil, err
	}
	return s.repo.FindByEventID(ctx, eventID)
}

// SearchForms lists forms by name fragment with pagination.
func (s *FormService) SearchForms(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	forms, total, err := s.repo.SearchPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: forms,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  queryparams.CalculateTotalPages(total, params.PerPage),
		},
	}, nil
}

// GetFormResponses reshapes stored responses into one flat record per
// submission, keyed by field name, with the resolved submitter.
func (s *FormService) GetFormResponses(ctx context.Context, formID uint) ([]FormResponseRecord, error) {
	form, err := s.GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	nameByFieldID := make(map[uint]string, len(form.Fields))
	for _, field := range form.Fields {
		nameByFieldID[field.ID] = field.Name
	}

	submissions, err := s.registrationRepo.FindSubmissionsByFormID(ctx, formID)
	if err != nil {
		return nil, err
	}

	records := make([]FormResponseRecord, 0, len(submissions))
	for _, submission := range submissions {
		record := FormResponseRecord{
			SubmissionID: submission.ID,
			SubmittedAt:  submission.CreatedAt,
			Values:       make(map[string]string, len(submission.Responses)),
		}
		for _, response := range submission.Responses {
			name, ok := nameByFieldID[response.FieldID]
			if !ok {
				// Field was deleted after this submission was made.
				continue
			}
			record.Values[name] = response.Value
		}
		if submission.UserID != nil {
			if user, err := s.userRepo.FindByID(ctx, *submission.UserID); err == nil {
				record.Submitter = user
			}
		}
		records = append(records, record)
	}
	return records, nil
}

var _ IFormService = (*FormService)(nil)
