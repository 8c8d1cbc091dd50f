package models

import "time"

// BaseModel is the common shape for entities that are never soft-deleted.
// Soft-deletable entities embed gorm.Model instead, which adds DeletedAt.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
