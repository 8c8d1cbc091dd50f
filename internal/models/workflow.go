package models

import (
	"time"

	"gorm.io/gorm"
)

type Workflow struct {
	gorm.Model

	Name        string `gorm:"uniqueIndex;not null"`
	Description string

	// Soft-deleting a workflow does not touch its steps; tasks keep
	// resolving their status through them.
	Steps []WorkflowStep `gorm:"foreignKey:WorkflowID"`
}

// WorkflowStep places a status at a position within a workflow. Keyed by the
// (WorkflowID, StatusID) pair, so a status appears at most once per workflow;
// the unique index keeps positions distinct within one workflow.
type WorkflowStep struct {
	WorkflowID     uint `gorm:"primaryKey;autoIncrement:false;uniqueIndex:idx_workflow_sequence"`
	StatusID       uint `gorm:"primaryKey;autoIncrement:false"`
	SequenceNumber int  `gorm:"not null;uniqueIndex:idx_workflow_sequence"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Relationships
	Workflow Workflow `gorm:"foreignKey:WorkflowID"`
	Status   Status   `gorm:"foreignKey:StatusID"`
}

// Status is independent of any workflow; the same row may appear as a step
// in many workflows and be referenced by many tasks directly.
type Status struct {
	BaseModel

	StatusName  string `gorm:"uniqueIndex;not null"`
	Description string
}
