package services

import (
	"errors"
	"testing"

	"attendee.link/models"
)

func TestBuildFieldRejectsUnknownType(t *testing.T) {
	_, err := buildField(1, FormFieldInput{Name: "x", Type: "CHECKBOX"})
	if !errors.Is(err, ErrInvalidFieldType) {
		t.Fatalf("expected ErrInvalidFieldType, got %v", err)
	}
}

func TestBuildFieldNormalisesType(t *testing.T) {
	field, err := buildField(1, FormFieldInput{Name: "email", Type: "email"})
	if err != nil {
		t.Fatalf("buildField: %v", err)
	}
	if field.Type != models.FieldTypeEmail {
		t.Errorf("type = %q, want %q", field.Type, models.FieldTypeEmail)
	}
	if field.FormID != 1 {
		t.Errorf("formID = %d, want 1", field.FormID)
	}
}

func TestBuildFieldKeepsOptions(t *testing.T) {
	field, err := buildField(1, FormFieldInput{Name: "track", Type: "SELECT", Options: []string{"A", "B"}})
	if err != nil {
		t.Fatalf("buildField: %v", err)
	}
	opts := field.OptionList()
	if len(opts) != 2 || opts[0] != "A" || opts[1] != "B" {
		t.Errorf("options = %v, want [A B]", opts)
	}
}

func TestHasRegistrationFields(t *testing.T) {
	cases := []struct {
		name   string
		fields []FormFieldInput
		want   bool
	}{
		{"both present", []FormFieldInput{{Name: "email"}, {Name: "name"}}, true},
		{"case insensitive", []FormFieldInput{{Name: "Email"}, {Name: "NAME"}}, true},
		{"email only", []FormFieldInput{{Name: "email"}}, false},
		{"name only", []FormFieldInput{{Name: "name"}}, false},
		{"neither", []FormFieldInput{{Name: "phone"}}, false},
		{"empty", nil, false},
	}
	for _, tc := range cases {
		if got := hasRegistrationFields(tc.fields); got != tc.want {
			t.Errorf("%s: hasRegistrationFields = %t, want %t", tc.name, got, tc.want)
		}
	}
}

func existingField(id uint, name string) models.CustomFormField {
	field := models.CustomFormField{Name: name, Type: models.FieldTypeText}
	field.ID = id
	field.FormID = 7
	return field
}

func TestPlanFieldReconciliation(t *testing.T) {
	existing := []models.CustomFormField{
		existingField(1, "email"),
		existingField(2, "name"),
		existingField(3, "obsolete"),
	}
	one := uint(1)
	two := uint(2)
	incoming := []FormFieldInput{
		{ID: &one, Name: "email", Type: "EMAIL"},
		{ID: &two, Name: "name", Type: "TEXT"},
		{Name: "phone", Type: "TEXT"},
	}

	plan, err := planFieldReconciliation(7, existing, incoming)
	if err != nil {
		t.Fatalf("planFieldReconciliation: %v", err)
	}

	if len(plan.toUpdate) != 2 {
		t.Errorf("toUpdate = %d entries, want 2", len(plan.toUpdate))
	}
	if len(plan.toCreate) != 1 || plan.toCreate[0].Name != "phone" {
		t.Errorf("toCreate = %+v, want one 'phone' field", plan.toCreate)
	}
	if len(plan.toDelete) != 1 || plan.toDelete[0] != 3 {
		t.Errorf("toDelete = %v, want [3]", plan.toDelete)
	}
}

func TestPlanFieldReconciliationUnknownIDCreates(t *testing.T) {
	ninetynine := uint(99)
	incoming := []FormFieldInput{{ID: &ninetynine, Name: "ghost", Type: "TEXT"}}

	plan, err := planFieldReconciliation(7, nil, incoming)
	if err != nil {
		t.Fatalf("planFieldReconciliation: %v", err)
	}
	if len(plan.toCreate) != 1 || plan.toCreate[0].ID != 0 {
		t.Errorf("unknown id must create a fresh field, got %+v", plan.toCreate)
	}
	if len(plan.toUpdate) != 0 || len(plan.toDelete) != 0 {
		t.Errorf("unexpected update/delete entries: %+v", plan)
	}
}

func TestPlanFieldReconciliationInvalidTypeFailsWhole(t *testing.T) {
	incoming := []FormFieldInput{
		{Name: "ok", Type: "TEXT"},
		{Name: "bad", Type: "NOPE"},
	}
	_, err := planFieldReconciliation(7, nil, incoming)
	if !errors.Is(err, ErrInvalidFieldType) {
		t.Fatalf("expected ErrInvalidFieldType, got %v", err)
	}
}
