package models

// User is a login identity. Generated attendees carry a synthetic
// `{handle}@attendee.com` in Email as their login handle while PersonalEmail
// keeps the address they supplied, used for outbound mail.
type User struct {
	BaseModel
	Name          string `gorm:"type:varchar(150);not null" json:"name"`
	Email         string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PersonalEmail string `gorm:"type:varchar(255);index" json:"personalEmail"`
	Password      string `gorm:"type:varchar(255);not null" json:"-"`
	Phone         string `gorm:"type:varchar(30);default:'N/A'" json:"phone"`
	CommitteeID   *uint  `gorm:"index" json:"committeeId,omitempty"`
	IsSystem      bool   `gorm:"default:false" json:"-"`

	SeasonMemberships []SeasonMembership `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"seasonMemberships,omitempty"`
}

// IsMember reports whether the user belongs to an internal committee.
func (u *User) IsMember() bool {
	return u.CommitteeID != nil
}
