package services

import (
	"errors"
	"mime/multipart"
	"testing"

	"attendee.link/models"
)

func makeField(t *testing.T, id uint, name string, fieldType models.FieldType, required bool, options []string) models.CustomFormField {
	t.Helper()
	field := models.CustomFormField{
		Name:     name,
		Type:     fieldType,
		Required: required,
	}
	field.ID = id
	if options != nil {
		if err := field.SetOptions(options); err != nil {
			t.Fatalf("SetOptions(%v): %v", options, err)
		}
	}
	return field
}

func noFiles() map[string]*multipart.FileHeader { return nil }

func failingStore(*multipart.FileHeader) (string, error) {
	return "", errors.New("store should not be called")
}

func TestValidateSubmissionRequiredFieldMissing(t *testing.T) {
	fields := []models.CustomFormField{
		makeField(t, 1, "email", models.FieldTypeEmail, true, nil),
	}

	_, err := ValidateSubmission(fields, nil, noFiles(), failingStore)
	var missing MissingRequiredFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredFieldError, got %v", err)
	}
	if missing.Field != "email" {
		t.Errorf("missing field = %q, want %q", missing.Field, "email")
	}

	// An empty value counts as missing too.
	_, err = ValidateSubmission(fields, []FieldInput{{FieldID: 1, Value: ""}}, noFiles(), failingStore)
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredFieldError for empty value, got %v", err)
	}
}

func TestValidateSubmissionOptionalFieldSkipped(t *testing.T) {
	fields := []models.CustomFormField{
		makeField(t, 1, "name", models.FieldTypeText, true, nil),
		makeField(t, 2, "nickname", models.FieldTypeText, false, nil),
	}
	inputs := []FieldInput{{FieldID: 1, Value: "Ann"}}

	normalized, err := ValidateSubmission(fields, inputs, noFiles(), failingStore)
	if err != nil {
		t.Fatalf("ValidateSubmission: %v", err)
	}
	if len(normalized) != 1 {
		t.Fatalf("got %d entries, want 1 (optional missing field must produce none)", len(normalized))
	}
	if normalized[0].Name != "name" || normalized[0].Value != "Ann" {
		t.Errorf("unexpected entry %+v", normalized[0])
	}
}

func TestValidateSubmissionChoiceField(t *testing.T) {
	fields := []models.CustomFormField{
		makeField(t, 1, "track", models.FieldTypeSelect, true, []string{"A", "B"}),
	}

	for _, value := range []string{"A", "B"} {
		normalized, err := ValidateSubmission(fields, []FieldInput{{FieldID: 1, Value: value}}, noFiles(), failingStore)
		if err != nil {
			t.Fatalf("value %q rejected: %v", value, err)
		}
		if normalized[0].Value != value {
			t.Errorf("value = %q, want %q", normalized[0].Value, value)
		}
	}

	_, err := ValidateSubmission(fields, []FieldInput{{FieldID: 1, Value: "C"}}, noFiles(), failingStore)
	var invalid InvalidFieldValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFieldValueError for %q, got %v", "C", err)
	}
	if invalid.Field != "track" {
		t.Errorf("invalid field = %q, want %q", invalid.Field, "track")
	}
}

func TestValidateSubmissionDropdownAndOptionsAreChoiceTypes(t *testing.T) {
	for _, fieldType := range []models.FieldType{models.FieldTypeDropdown, models.FieldTypeOptions} {
		fields := []models.CustomFormField{
			makeField(t, 1, "pick", fieldType, true, []string{"yes", "no"}),
		}
		_, err := ValidateSubmission(fields, []FieldInput{{FieldID: 1, Value: "maybe"}}, noFiles(), failingStore)
		var invalid InvalidFieldValueError
		if !errors.As(err, &invalid) {
			t.Errorf("%s: expected InvalidFieldValueError, got %v", fieldType, err)
		}
	}
}

func TestValidateSubmissionFileField(t *testing.T) {
	fields := []models.CustomFormField{
		makeField(t, 1, "cv", models.FieldTypeFile, true, nil),
	}
	files := map[string]*multipart.FileHeader{
		"cv": {Filename: "cv.pdf", Size: 1024},
	}
	var stored *multipart.FileHeader
	store := func(file *multipart.FileHeader) (string, error) {
		stored = file
		return "http://localhost:3000/static/uploads/events/demo/responses/cv-abc123.pdf", nil
	}

	normalized, err := ValidateSubmission(fields, nil, files, store)
	if err != nil {
		t.Fatalf("ValidateSubmission: %v", err)
	}
	if stored == nil || stored.Filename != "cv.pdf" {
		t.Fatalf("store not called with the uploaded file")
	}
	if normalized[0].Value != "http://localhost:3000/static/uploads/events/demo/responses/cv-abc123.pdf" {
		t.Errorf("normalized value must be the stored URL, got %q", normalized[0].Value)
	}
}

func TestValidateSubmissionFileFieldMissing(t *testing.T) {
	required := []models.CustomFormField{
		makeField(t, 1, "cv", models.FieldTypeFile, true, nil),
	}
	_, err := ValidateSubmission(required, nil, noFiles(), failingStore)
	var missing MissingRequiredFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredFieldError, got %v", err)
	}

	optional := []models.CustomFormField{
		makeField(t, 1, "cv", models.FieldTypeFile, false, nil),
	}
	normalized, err := ValidateSubmission(optional, nil, noFiles(), failingStore)
	if err != nil {
		t.Fatalf("optional file must be skippable: %v", err)
	}
	if len(normalized) != 0 {
		t.Errorf("got %d entries, want 0", len(normalized))
	}
}

func TestValidateSubmissionFileStoreFailure(t *testing.T) {
	fields := []models.CustomFormField{
		makeField(t, 1, "cv", models.FieldTypeFile, true, nil),
	}
	files := map[string]*multipart.FileHeader{
		"cv": {Filename: "cv.pdf", Size: 1024},
	}
	storeErr := errors.New("disk full")
	store := func(*multipart.FileHeader) (string, error) { return "", storeErr }

	_, err := ValidateSubmission(fields, nil, files, store)
	var uploadErr FileUploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("expected FileUploadError, got %v", err)
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("FileUploadError must wrap the store error")
	}
}

func TestValidateSubmissionFailsFastInFieldOrder(t *testing.T) {
	fields := []models.CustomFormField{
		makeField(t, 1, "first", models.FieldTypeText, true, nil),
		makeField(t, 2, "second", models.FieldTypeSelect, true, []string{"A"}),
	}
	// Both fields violate; only the first may be reported.
	inputs := []FieldInput{{FieldID: 2, Value: "Z"}}

	_, err := ValidateSubmission(fields, inputs, noFiles(), failingStore)
	var missing MissingRequiredFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredFieldError first, got %v", err)
	}
	if missing.Field != "first" {
		t.Errorf("reported field = %q, want %q (field order)", missing.Field, "first")
	}
}

func TestFindNormalized(t *testing.T) {
	entries := []NormalizedInput{
		{FieldID: 1, Name: "email", Value: "a@x.com"},
		{FieldID: 2, Name: "name", Value: "Ann"},
	}
	if got := FindNormalized(entries, "name"); got == nil || got.Value != "Ann" {
		t.Errorf("FindNormalized(name) = %+v", got)
	}
	if got := FindNormalized(entries, "phone"); got != nil {
		t.Errorf("FindNormalized(phone) = %+v, want nil", got)
	}
}
