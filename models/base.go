package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel is embedded by every entity: numeric PK, timestamps, soft delete.
type BaseModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
