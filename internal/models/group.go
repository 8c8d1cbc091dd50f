package models

import "gorm.io/gorm"

type Group struct {
	gorm.Model

	GroupName   string `gorm:"uniqueIndex;not null"`
	Description string
	RoleID      *uint

	// Relationships
	Role  *Role   `gorm:"foreignKey:RoleID"`
	Users []*User `gorm:"many2many:user_groups"`
}

type Role struct {
	BaseModel

	RoleName    string `gorm:"uniqueIndex;not null"`
	Description string

	Permissions []*Permission `gorm:"many2many:role_permissions"`
}

// ProjectRole is the project-scoped counterpart of Role; the two share the
// Permission vocabulary but are otherwise independent.
type ProjectRole struct {
	BaseModel

	RoleName    string `gorm:"uniqueIndex;not null"`
	Description string

	Permissions []*Permission `gorm:"many2many:project_role_permissions"`
}

type Permission struct {
	BaseModel

	PermissionName string `gorm:"uniqueIndex;not null"`
	Description    string
}
