package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	OwnerID     uint `gorm:"not null;index"`

	// Relationships
	Owner            User              `gorm:"foreignKey:OwnerID"`
	ProjectUsers     []ProjectUser     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectGroups    []ProjectGroup    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectTaskTypes []ProjectTaskType `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// ProjectUser binds a user to a project, optionally under a project role.
// The (ProjectID, UserID) pair is the primary key; there is no surrogate id.
type ProjectUser struct {
	ProjectID     uint `gorm:"primaryKey;autoIncrement:false"`
	UserID        uint `gorm:"primaryKey;autoIncrement:false"`
	ProjectRoleID *uint
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relationships
	Project     Project      `gorm:"foreignKey:ProjectID"`
	User        User         `gorm:"foreignKey:UserID"`
	ProjectRole *ProjectRole `gorm:"foreignKey:ProjectRoleID"`
}

type ProjectGroup struct {
	ProjectID     uint `gorm:"primaryKey;autoIncrement:false"`
	GroupID       uint `gorm:"primaryKey;autoIncrement:false"`
	ProjectRoleID *uint
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relationships
	Project     Project      `gorm:"foreignKey:ProjectID"`
	Group       Group        `gorm:"foreignKey:GroupID"`
	ProjectRole *ProjectRole `gorm:"foreignKey:ProjectRoleID"`
}

// ProjectTaskType assigns the workflow that tasks of a given type follow
// within a project.
type ProjectTaskType struct {
	ProjectID  uint `gorm:"primaryKey;autoIncrement:false"`
	TaskTypeID uint `gorm:"primaryKey;autoIncrement:false"`
	WorkflowID uint `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Relationships
	Project  Project  `gorm:"foreignKey:ProjectID"`
	TaskType TaskType `gorm:"foreignKey:TaskTypeID"`
	Workflow Workflow `gorm:"foreignKey:WorkflowID"`
}
