package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Username string `gorm:"uniqueIndex;not null"`
	Email    string `gorm:"uniqueIndex;not null"`

	// Relationships
	Auth    *UserAuth    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Details *UserDetails `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Groups  []*Group     `gorm:"many2many:user_groups"`
}

type UserAuth struct {
	gorm.Model

	UserID       uint   `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
}

type UserDetails struct {
	gorm.Model

	UserID      uint           `gorm:"not null;uniqueIndex"`
	DisplayName string         `gorm:"not null"`
	Preferences datatypes.JSON `gorm:"type:jsonb"`
}
