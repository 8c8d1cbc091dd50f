package models

// EntityName feeds the store's not-found messages for the soft-deletable
// entities. Only types embedding gorm.Model carry one.

func (User) EntityName() string        { return "user" }
func (UserAuth) EntityName() string    { return "user auth" }
func (UserDetails) EntityName() string { return "user details" }
func (Group) EntityName() string       { return "group" }
func (Project) EntityName() string     { return "project" }
func (Task) EntityName() string        { return "task" }
func (TaskComment) EntityName() string { return "task comment" }
func (Workflow) EntityName() string    { return "workflow" }
