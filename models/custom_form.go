package models

import (
	"strings"
	"time"
)

// FormType classifies what a custom form collects data for.
type FormType string

const (
	FormTypeEvent    FormType = "EVENT"
	FormTypeSurvey   FormType = "SURVEY"
	FormTypeFeedback FormType = "FEEDBACK"
	FormTypePost     FormType = "POST"
	FormTypeAny      FormType = "ANY"
)

// AllowedFormTypes is the accepted form-type vocabulary.
var AllowedFormTypes = []FormType{
	FormTypeEvent, FormTypeSurvey, FormTypeFeedback, FormTypePost, FormTypeAny,
}

// Valid reports whether t is part of the vocabulary. Matching is
// case-insensitive; callers normalise with Normalize before persisting.
func (t FormType) Valid() bool {
	for _, allowed := range AllowedFormTypes {
		if strings.EqualFold(string(t), string(allowed)) {
			return true
		}
	}
	return false
}

// Normalize upper-cases the type to its canonical spelling.
func (t FormType) Normalize() FormType {
	return FormType(strings.ToUpper(string(t)))
}

// CustomForm is a named schema of typed fields. A registration form is bound
// to exactly one event and protected from deletion.
type CustomForm struct {
	BaseModel
	Name               string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description        string    `gorm:"type:text" json:"description"`
	Type               FormType  `gorm:"type:varchar(20);not null;index" json:"type"`
	StartDate          time.Time `gorm:"type:timestamptz" json:"startDate"`
	EndDate            time.Time `gorm:"type:timestamptz" json:"endDate"`
	IsRegistrationForm bool      `gorm:"default:false" json:"isRegistrationForm"`
	EventID            *uint     `gorm:"index" json:"eventId,omitempty"`

	Fields []CustomFormField `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"fields"`
}

// FieldNames returns the lower-cased machine names of all fields.
func (f *CustomForm) FieldNames() []string {
	names := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		names = append(names, strings.ToLower(field.Name))
	}
	return names
}
