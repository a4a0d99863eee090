package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"attendee.link/configs"
	"attendee.link/configs/configsdatabase"
	"attendee.link/configs/configslog"
	"attendee.link/models"
	"attendee.link/pkg/uploader"
	"attendee.link/repositories"
	"attendee.link/utils"
)

// RegistrationServiceError is a typed service error.
type RegistrationServiceError string

func (e RegistrationServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound         RegistrationServiceError = "event not found"
	ErrRegistrationNotFound  RegistrationServiceError = "registration not found"
	ErrNoRegistrationForm    RegistrationServiceError = "event has no registration form"
	ErrEventPrivate          RegistrationServiceError = "this event is only available to members, please login with your member credentials"
	ErrMissingIdentityFields RegistrationServiceError = "missing required fields"
	ErrAlreadyRegistered     RegistrationServiceError = "you have already registered for this event"
	ErrRegistrationNoUser    RegistrationServiceError = "registration has no resolved user"
)

const qrCodeSize = 300

// RegisterInput is one registration attempt.
type RegisterInput struct {
	EventID       uint
	Inputs        []FieldInput
	Files         map[string]*multipart.FileHeader
	Authenticated *models.User
}

// RegistrationFormView is the public shape of an event's registration form.
type RegistrationFormView struct {
	EventID     uint                     `json:"eventId"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	CoverImage  string                   `json:"coverImage"`
	StartDate   time.Time                `json:"startDate"`
	EndDate     time.Time                `json:"endDate"`
	Fields      []models.CustomFormField `json:"fields"`
}

// FieldResponseView is one field definition joined with its submitted value.
type FieldResponseView struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Value    *string  `json:"value"`
}

// ResponseDetails is the admin view of a single registration.
type ResponseDetails struct {
	User      *models.User        `json:"user"`
	Event     map[string]any      `json:"event"`
	Responses []FieldResponseView `json:"responses"`
}

// IRegistrationService drives the registration workflow: pending on
// creation, accepted by an admin, never backwards.
type IRegistrationService interface {
	GetRegistrationForm(ctx context.Context, eventID uint) (*RegistrationFormView, error)
	Register(ctx context.Context, input RegisterInput) (*models.EventRegistration, error)
	Accept(ctx context.Context, registrationID uint) (*models.EventRegistration, error)
	GetResponseDetails(ctx context.Context, registrationID uint) (*ResponseDetails, error)
}

// RegistrationService implements IRegistrationService.
type RegistrationService struct {
	eventRepo        repositories.IEventRepository
	registrationRepo repositories.IRegistrationRepository
	userRepo         repositories.IUserRepository
	identity         IIdentityService
	mail             IMailService
	db               *gorm.DB
}

func NewRegistrationService() IRegistrationService {
	return &RegistrationService{
		eventRepo:        repositories.NewEventRepository(),
		registrationRepo: repositories.NewRegistrationRepository(),
		userRepo:         repositories.NewUserRepository(),
		identity:         NewIdentityService(),
		mail:             NewMailService(),
		db:               configsdatabase.GetDB(),
	}
}

// GetRegistrationForm returns the form shape a client needs to render the
// registration page.
func (s *RegistrationService) GetRegistrationForm(ctx context.Context, eventID uint) (*RegistrationFormView, error) {
	event, err := s.eventRepo.FindByIDWithForm(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.RegistrationForm == nil {
		return nil, ErrNoRegistrationForm
	}
	return &RegistrationFormView{
		EventID:     event.ID,
		Name:        event.RegistrationForm.Name,
		Description: event.RegistrationForm.Description,
		CoverImage:  event.CoverImage,
		StartDate:   event.RegistrationForm.StartDate,
		EndDate:     event.RegistrationForm.EndDate,
		Fields:      event.RegistrationForm.Fields,
	}, nil
}

// extractIdentity pulls the mandatory name and email answers out of the
// validated inputs. Registration forms always require these two regardless
// of the fields' own required flags.
func extractIdentity(normalized []NormalizedInput) (name, email string, err error) {
	nameInput := FindNormalized(normalized, "name")
	emailInput := FindNormalized(normalized, "email")
	if nameInput == nil || emailInput == nil {
		return "", "", ErrMissingIdentityFields
	}
	return nameInput.Value, emailInput.Value, nil
}

// Register validates the submission, resolves the registrant to a user and
// persists submission plus pending registration in one transaction.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (*models.EventRegistration, error) {
	event, err := s.eventRepo.FindByIDWithForm(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	form := event.RegistrationForm
	if form == nil {
		return nil, ErrNoRegistrationForm
	}

	if event.Private && (input.Authenticated == nil || !input.Authenticated.IsMember()) {
		return nil, ErrEventPrivate
	}

	store := func(file *multipart.FileHeader) (string, error) {
		return uploader.Store(file, uploader.Options{
			Folder: "events",
			Entity: event.Name,
			SubDir: "responses",
		})
	}
	normalized, err := ValidateSubmission(form.Fields, input.Inputs, input.Files, store)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return nil, ErrMissingIdentityFields
	}

	name, email, err := extractIdentity(normalized)
	if err != nil {
		return nil, err
	}

	user, err := s.identity.ResolveOrCreate(ctx, name, email, input.Authenticated)
	if err != nil {
		return nil, err
	}

	if _, err := s.registrationRepo.FindByEventAndUser(ctx, event.ID, user.ID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	responses := make([]models.CustomFormResponse, 0, len(normalized))
	for _, entry := range normalized {
		responses = append(responses, models.CustomFormResponse{
			FieldID: entry.FieldID,
			Value:   entry.Value,
		})
	}

	registration := models.EventRegistration{
		EventID: event.ID,
		UserID:  &user.ID,
		Status:  models.RegistrationStatusPending,
	}
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		registrationRepoTx := repositories.NewRegistrationRepositoryTx(tx)

		submission := models.CustomFormSubmission{
			FormID:    form.ID,
			UserID:    &user.ID,
			Responses: responses,
		}
		if err := registrationRepoTx.CreateSubmission(ctx, &submission); err != nil {
			return err
		}

		registration.SubmissionID = submission.ID
		if err := registrationRepoTx.Create(ctx, &registration); err != nil {
			// The (event_id, user_id) unique index turns the concurrent
			// double-registration race into a constraint violation here.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrAlreadyRegistered) {
			configslog.Log.Error("Register transaction failed",
				zap.Uint("event_id", event.ID), zap.Uint("user_id", user.ID), zap.Error(txErr))
		}
		// Identity resolution may have created a user just before the
		// failure; that row is kept for manual reconciliation.
		if input.Authenticated == nil {
			configslog.SLog.Warnw("registration failed after identity resolution; user row kept",
				"user_id", user.ID, "event_id", event.ID)
		}
		return nil, txErr
	}

	configslog.SLog.Infof("registration created: id=%d event=%d user=%d", registration.ID, event.ID, user.ID)
	return &registration, nil
}

// qrCodePath returns the on-disk path and public URL of a user's QR code for
// an event.
func qrCodePath(eventName string, userID uint) (string, string) {
	filename := fmt.Sprintf("qr-%d.png", userID)
	rel := filepath.Join("events", utils.Slugify(eventName), "registration", "qr-codes")
	diskPath := filepath.Join(configs.UploadDir(), rel, filename)
	url := fmt.Sprintf("%s/static/uploads/%s/%s",
		configs.BaseURL(), filepath.ToSlash(rel), filename)
	return diskPath, url
}

// includeLoginBlock decides whether the acceptance mail carries the login
// credentials block. The traced behaviour ("committee") gates it on the user
// belonging to a committee; "attendee" selects the inverse population. Which
// audience is intended is an open product question, so the mode is
// configuration, not code.
func includeLoginBlock(user *models.User, mode string) bool {
	if strings.EqualFold(mode, "attendee") {
		return !user.IsMember()
	}
	return user.IsMember()
}

// Accept moves a pending registration to accepted: renders the QR code,
// resets the user's password, updates both rows in one transaction and then
// mails the confirmation best-effort.
func (s *RegistrationService) Accept(ctx context.Context, registrationID uint) (*models.EventRegistration, error) {
	registration, err := s.registrationRepo.FindByIDWithDetails(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	user := registration.User
	if user == nil {
		return nil, ErrRegistrationNoUser
	}

	diskPath, fileURL := qrCodePath(registration.Event.Name, user.ID)
	if err := os.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
		return nil, err
	}
	if err := qrcode.WriteFile(strconv.FormatUint(uint64(user.ID), 10), qrcode.Medium, qrCodeSize, diskPath); err != nil {
		configslog.Log.Error("QR code generation failed", zap.Uint("registration_id", registrationID), zap.Error(err))
		return nil, err
	}

	password := utils.RandomPassword(generatedPasswordLength)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}

	htmlBody, err := s.mail.Render("eventConfirmation", map[string]any{
		"Name":              user.Name,
		"Date":              registration.Event.StartDate.Format("January 2, 2006"),
		"CheckInTime":       registration.Event.StartDate.Format("15:04"),
		"Location":          registration.Event.Location,
		"Email":             user.PersonalEmail,
		"Password":          password,
		"QRCodeURL":         fileURL,
		"IncludeLoginBlock": includeLoginBlock(user, configs.MailCredentialsMode()),
	})
	if err != nil {
		return nil, err
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		registrationRepoTx := repositories.NewRegistrationRepositoryTx(tx)
		userRepoTx := repositories.NewUserRepositoryTx(tx)

		registration.MarkAccepted(fileURL)
		if err := registrationRepoTx.Save(ctx, registration); err != nil {
			return err
		}
		return userRepoTx.UpdatePassword(ctx, user.ID, string(hashed))
	})
	if txErr != nil {
		configslog.Log.Error("Accept transaction failed", zap.Uint("registration_id", registrationID), zap.Error(txErr))
		return nil, txErr
	}

	// Mail delivery rides outside the transaction: an SMTP outage must not
	// roll an acceptance back.
	s.mail.SendBestEffort(user.PersonalEmail, "Event registration accepted", htmlBody)

	configslog.SLog.Infof("registration accepted: id=%d user=%d", registration.ID, user.ID)
	return registration, nil
}

// GetResponseDetails joins every field definition of the registration's form
// with the submitted value (nil when unanswered).
func (s *RegistrationService) GetResponseDetails(ctx context.Context, registrationID uint) (*ResponseDetails, error) {
	registration, err := s.registrationRepo.FindByIDWithDetails(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	valueByFieldID := make(map[uint]string, len(registration.Submission.Responses))
	for _, response := range registration.Submission.Responses {
		valueByFieldID[response.FieldID] = response.Value
	}

	fields := registration.Submission.Form.Fields
	views := make([]FieldResponseView, 0, len(fields))
	for _, field := range fields {
		view := FieldResponseView{
			ID:       field.ID,
			Name:     field.Name,
			Label:    field.Label,
			Required: field.Required,
			Type:     string(field.Type),
			Options:  field.OptionList(),
		}
		if value, ok := valueByFieldID[field.ID]; ok {
			view.Value = &value
		}
		views = append(views, view)
	}

	return &ResponseDetails{
		User: registration.User,
		Event: map[string]any{
			"id":   registration.Event.ID,
			"name": registration.Event.Name,
		},
		Responses: views,
	}, nil
}

var _ IRegistrationService = (*RegistrationService)(nil)
