package models

// Named lookup entities referenced by Task. Plain CRUD, no lifecycle beyond
// the audit timestamps.

type Category struct {
	BaseModel

	CategoryName string `gorm:"uniqueIndex;not null"`
	Description  string
}

type TaskPriority struct {
	BaseModel

	PriorityName string `gorm:"uniqueIndex;not null"`
	Rank         int    `gorm:"not null"`
}

type TaskType struct {
	BaseModel

	TypeName    string `gorm:"uniqueIndex;not null"`
	Description string
}
