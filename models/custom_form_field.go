package models

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

// FieldType is the vocabulary of custom form field kinds.
type FieldType string

const (
	FieldTypeText      FieldType = "TEXT"
	FieldTypeEmail     FieldType = "EMAIL"
	FieldTypeNumber    FieldType = "NUMBER"
	FieldTypeSelect    FieldType = "SELECT"
	FieldTypeDropdown  FieldType = "DROPDOWN"
	FieldTypeOptions   FieldType = "OPTIONS"
	FieldTypeFile      FieldType = "FILE"
	FieldTypeDate      FieldType = "DATE"
	FieldTypeParagraph FieldType = "PARAGRAPH"
)

// AllowedFieldTypes is the accepted field-type vocabulary.
var AllowedFieldTypes = []FieldType{
	FieldTypeText, FieldTypeEmail, FieldTypeNumber, FieldTypeSelect,
	FieldTypeDropdown, FieldTypeOptions, FieldTypeFile, FieldTypeDate,
	FieldTypeParagraph,
}

// Valid reports whether t (case-insensitively) belongs to the vocabulary.
func (t FieldType) Valid() bool {
	for _, allowed := range AllowedFieldTypes {
		if strings.EqualFold(string(t), string(allowed)) {
			return true
		}
	}
	return false
}

// Normalize upper-cases the type to its canonical spelling.
func (t FieldType) Normalize() FieldType {
	return FieldType(strings.ToUpper(string(t)))
}

// IsChoice reports whether values must come from the field's option list.
func (t FieldType) IsChoice() bool {
	switch t {
	case FieldTypeSelect, FieldTypeDropdown, FieldTypeOptions:
		return true
	}
	return false
}

// CustomFormField is one typed slot within a form. Options is a JSON-encoded
// []string, only meaningful for choice fields.
type CustomFormField struct {
	BaseModel
	FormID      uint           `gorm:"not null;index" json:"formId"`
	Label       string         `gorm:"type:varchar(255)" json:"label"`
	Name        string         `gorm:"type:varchar(100);not null;index" json:"name"`
	Type        FieldType      `gorm:"type:varchar(20);not null" json:"type"`
	Required    bool           `gorm:"default:false" json:"required"`
	Min         *int           `json:"min,omitempty"`
	Max         *int           `json:"max,omitempty"`
	Options     datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	Placeholder string         `gorm:"type:varchar(255)" json:"placeholder"`
}

// OptionList decodes the stored option list. A missing or malformed column
// yields an empty list.
func (f *CustomFormField) OptionList() []string {
	if len(f.Options) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(f.Options, &opts); err != nil {
		return nil
	}
	return opts
}

// SetOptions encodes opts into the JSON column. Nil clears the column.
func (f *CustomFormField) SetOptions(opts []string) error {
	if opts == nil {
		f.Options = nil
		return nil
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	f.Options = datatypes.JSON(raw)
	return nil
}

// HasOption reports whether value is a member of the option list.
func (f *CustomFormField) HasOption(value string) bool {
	for _, opt := range f.OptionList() {
		if opt == value {
			return true
		}
	}
	return false
}
