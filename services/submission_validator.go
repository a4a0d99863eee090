package services

import (
	"fmt"
	"mime/multipart"
	"strings"

	"attendee.link/models"
)

// FieldInput is one raw answer as submitted by the client, keyed by field id.
type FieldInput struct {
	FieldID uint   `json:"fieldId"`
	Value   string `json:"value"`
}

// NormalizedInput is one validated answer ready to persist. For FILE fields
// Value is the stored blob URL.
type NormalizedInput struct {
	FieldID uint
	Name    string
	Value   string
}

// FileStore persists one uploaded file and returns its public URL. It is a
// parameter so validation stays testable without touching disk.
type FileStore func(file *multipart.FileHeader) (string, error)

// MissingRequiredFieldError reports a required field without a value.
type MissingRequiredFieldError struct {
	Field string
}

func (e MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// InvalidFieldValueError reports a choice-field value outside its options.
type InvalidFieldValueError struct {
	Field string
}

func (e InvalidFieldValueError) Error() string {
	return fmt.Sprintf("incorrect value for %s", e.Field)
}

// FileUploadError wraps a storage failure for a FILE field.
type FileUploadError struct {
	Field string
	Err   error
}

func (e FileUploadError) Error() string {
	return fmt.Sprintf("file upload failed for %s: %v", e.Field, e.Err)
}

func (e FileUploadError) Unwrap() error { return e.Err }

// ValidateSubmission checks raw inputs against the form's field definitions,
// in field order, failing on the first violation. Optional fields without a
// value are skipped and produce no output entry. For FILE fields the upload
// batch is consulted by field name and the stored URL becomes the value.
func ValidateSubmission(
	fields []models.CustomFormField,
	inputs []FieldInput,
	files map[string]*multipart.FileHeader,
	store FileStore,
) ([]NormalizedInput, error) {
	byFieldID := make(map[uint]FieldInput, len(inputs))
	for _, input := range inputs {
		byFieldID[input.FieldID] = input
	}

	normalized := make([]NormalizedInput, 0, len(fields))
	for _, field := range fields {
		if field.Type == models.FieldTypeFile {
			file, ok := files[field.Name]
			if !ok || file == nil {
				if field.Required {
					return nil, MissingRequiredFieldError{Field: field.Name}
				}
				continue
			}
			url, err := store(file)
			if err != nil {
				return nil, FileUploadError{Field: field.Name, Err: err}
			}
			normalized = append(normalized, NormalizedInput{FieldID: field.ID, Name: field.Name, Value: url})
			continue
		}

		input, ok := byFieldID[field.ID]
		if !ok || input.Value == "" {
			if field.Required {
				return nil, MissingRequiredFieldError{Field: field.Name}
			}
			continue
		}

		if field.Type.IsChoice() && !field.HasOption(input.Value) {
			return nil, InvalidFieldValueError{Field: field.Name}
		}

		normalized = append(normalized, NormalizedInput{FieldID: field.ID, Name: field.Name, Value: input.Value})
	}

	return normalized, nil
}

// FindNormalized returns the first entry whose field name matches, or nil.
// The match is case-insensitive, consistent with how field names are checked
// when a form definition is saved.
func FindNormalized(inputs []NormalizedInput, name string) *NormalizedInput {
	for i := range inputs {
		if strings.EqualFold(inputs[i].Name, name) {
			return &inputs[i]
		}
	}
	return nil
}
