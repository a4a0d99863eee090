package models

import "time"

// SeasonalRole is a user's role within one season.
type SeasonalRole string

const (
	SeasonalRoleMember   SeasonalRole = "MEMBER"
	SeasonalRoleExcom    SeasonalRole = "EXCOM"
	SeasonalRoleHead     SeasonalRole = "HEAD"
	SeasonalRoleAttendee SeasonalRole = "ATTENDEE"
)

// Season is one organisational year.
type Season struct {
	BaseModel
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	StartDate time.Time `gorm:"type:timestamptz;not null;index" json:"startDate"`
	EndDate   time.Time `gorm:"type:timestamptz;not null;index" json:"endDate"`
}

// SeasonMembership ties a user to a season with a role. Generated attendees
// get one with role ATTENDEE at creation time.
type SeasonMembership struct {
	BaseModel
	UserID        uint         `gorm:"not null;index:idx_membership_user_season,unique" json:"userId"`
	SeasonID      uint         `gorm:"not null;index:idx_membership_user_season,unique" json:"seasonId"`
	Role          SeasonalRole `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`
	IsBoardMember bool         `gorm:"default:false" json:"isBoardMember"`
	JoinedAt      time.Time    `json:"joinedAt"`

	Season Season `gorm:"foreignKey:SeasonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
