package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	DueDate     *datatypes.Date
	CompletedAt *time.Time

	AssigneeID     *uint `gorm:"index"`
	CategoryID     *uint
	TaskPriorityID *uint
	ProjectID      *uint `gorm:"index"`
	StatusID       *uint
	TaskTypeID     *uint

	// Relationships
	Assignee     *User         `gorm:"foreignKey:AssigneeID"`
	Category     *Category     `gorm:"foreignKey:CategoryID"`
	TaskPriority *TaskPriority `gorm:"foreignKey:TaskPriorityID"`
	Project      *Project      `gorm:"foreignKey:ProjectID"`
	Status       *Status       `gorm:"foreignKey:StatusID"`
	TaskType     *TaskType     `gorm:"foreignKey:TaskTypeID"`

	// Precedencies are the tasks this one waits on; Dependents are the
	// tasks waiting on this one. Both are views over task_dependencies.
	Precedencies []TaskDependency `gorm:"foreignKey:TaskID"`
	Dependents   []TaskDependency `gorm:"foreignKey:DependsOnTaskID"`

	Comments []TaskComment `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// TaskDependency is one directed edge of the precedence graph: Task depends
// on DependsOnTask. Keyed by the pair, no surrogate id.
type TaskDependency struct {
	TaskID          uint `gorm:"primaryKey;autoIncrement:false"`
	DependsOnTaskID uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt       time.Time

	// Relationships
	Task          Task `gorm:"foreignKey:TaskID"`
	DependsOnTask Task `gorm:"foreignKey:DependsOnTaskID"`
}

type TaskComment struct {
	gorm.Model

	TaskID   uint   `gorm:"not null;index"`
	AuthorID uint   `gorm:"not null;index"`
	Body     string `gorm:"not null"`

	// Relationships
	Task   Task `gorm:"foreignKey:TaskID"`
	Author User `gorm:"foreignKey:AuthorID"`
}
