package models

import "time"

// Event is the entity registrations bind to. Only the columns the
// registration flow touches live here; the wider event management surface is
// owned by the back-office CRUD layer.
type Event struct {
	BaseModel
	Name               string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Description        string    `gorm:"type:text" json:"description"`
	CoverImage         string    `gorm:"type:varchar(500)" json:"coverImage"`
	Location           string    `gorm:"type:varchar(255)" json:"location"`
	StartDate          time.Time `gorm:"type:timestamptz" json:"startDate"`
	EndDate            time.Time `gorm:"type:timestamptz" json:"endDate"`
	Private            bool      `gorm:"default:false" json:"private"`
	RegistrationFormID *uint     `gorm:"index" json:"registrationFormId,omitempty"`

	RegistrationForm *CustomForm `gorm:"foreignKey:RegistrationFormID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"registrationForm,omitempty"`
}
