package models

// CustomFormSubmission is one filled-in instance of a form. UserID is nil for
// anonymous submissions.
type CustomFormSubmission struct {
	BaseModel
	FormID uint  `gorm:"not null;index" json:"formId"`
	UserID *uint `gorm:"index" json:"userId,omitempty"`

	Form      CustomForm           `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Responses []CustomFormResponse `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"responses"`
}

// CustomFormResponse is a single answered field. FILE fields store the blob
// URL in Value, never raw bytes.
type CustomFormResponse struct {
	BaseModel
	SubmissionID uint   `gorm:"not null;index" json:"submissionId"`
	FieldID      uint   `gorm:"not null;index" json:"fieldId"`
	Value        string `gorm:"type:text" json:"value"`
}
