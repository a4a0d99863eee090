package models

// RegistrationStatus is the acceptance workflow state of a registration.
type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "pending"
	RegistrationStatusAccepted RegistrationStatus = "accepted"
	// RegistrationStatusRejected is declared but no transition into it is
	// implemented; kept until product decides on a reject flow.
	RegistrationStatusRejected RegistrationStatus = "rejected"
)

// EventRegistration binds a submission to an event and user. The composite
// unique index on (event_id, user_id) makes duplicate registration a
// constraint violation rather than a check-then-act race.
type EventRegistration struct {
	BaseModel
	EventID      uint               `gorm:"not null;index:idx_registration_event_user,unique" json:"eventId"`
	UserID       *uint              `gorm:"index:idx_registration_event_user,unique" json:"userId,omitempty"`
	SubmissionID uint               `gorm:"uniqueIndex;not null" json:"submissionId"`
	Status       RegistrationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	QRCode       *string            `gorm:"type:varchar(500)" json:"qrcode,omitempty"`

	Event      Event                `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	User       *User                `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Submission CustomFormSubmission `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Accepted reports whether the registration reached its terminal state.
func (r *EventRegistration) Accepted() bool {
	return r.Status == RegistrationStatusAccepted
}

// MarkAccepted flips the registration to accepted and attaches its QR code
// URL. The two always change together: an accepted registration carries a QR
// code and a pending one never does.
func (r *EventRegistration) MarkAccepted(qrURL string) {
	r.Status = RegistrationStatusAccepted
	r.QRCode = &qrURL
}
