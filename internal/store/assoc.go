package store

import (
	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

// Composite identities are dedicated immutable key types, used both as the
// lookup parameter and as the persisted primary key. Existence checks are
// keyed lookups on the pair, never scans.

type ProjectUserKey struct {
	ProjectID uint
	UserID    uint
}

type ProjectGroupKey struct {
	ProjectID uint
	GroupID   uint
}

type ProjectTaskTypeKey struct {
	ProjectID  uint
	TaskTypeID uint
}

// AddProjectUser binds a user to a project, optionally under a project role.
func (s *Store) AddProjectUser(key ProjectUserKey, projectRoleID *uint) (*models.ProjectUser, error) {
	row := models.ProjectUser{
		ProjectID:     key.ProjectID,
		UserID:        key.UserID,
		ProjectRoleID: projectRoleID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Project{}, key.ProjectID).Error; err != nil {
			return translateNotFound[models.Project](err)
		}
		if err := tx.First(&models.User{}, key.UserID).Error; err != nil {
			return translateNotFound[models.User](err)
		}

		var count int64
		if err := tx.Model(&models.ProjectUser{}).
			Where("project_id = ? AND user_id = ?", key.ProjectID, key.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.DuplicateAssociation("project user")
		}

		if err := tx.Create(&row).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateAssociation("project user")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) ProjectUser(key ProjectUserKey) (*models.ProjectUser, error) {
	var row models.ProjectUser
	err := s.db.
		Where("project_id = ? AND user_id = ?", key.ProjectID, key.UserID).
		First(&row).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("project user")
		}
		return nil, err
	}
	return &row, nil
}

func (s *Store) ProjectUsersByProject(projectID uint) ([]models.ProjectUser, error) {
	var rows []models.ProjectUser
	err := s.db.Where("project_id = ?", projectID).Find(&rows).Error
	return rows, err
}

func (s *Store) ProjectUsersByUser(userID uint) ([]models.ProjectUser, error) {
	var rows []models.ProjectUser
	err := s.db.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (s *Store) RemoveProjectUser(key ProjectUserKey) error {
	res := s.db.
		Where("project_id = ? AND user_id = ?", key.ProjectID, key.UserID).
		Delete(&models.ProjectUser{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("project user")
	}
	return nil
}

// RemoveProjectUsersByProject clears every user binding of a project, used
// when the project itself is decommissioned or reset.
func (s *Store) RemoveProjectUsersByProject(projectID uint) error {
	return s.db.Where("project_id = ?", projectID).Delete(&models.ProjectUser{}).Error
}

func (s *Store) RemoveProjectUsersByUser(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.ProjectUser{}).Error
}

func (s *Store) AddProjectGroup(key ProjectGroupKey, projectRoleID *uint) (*models.ProjectGroup, error) {
	row := models.ProjectGroup{
		ProjectID:     key.ProjectID,
		GroupID:       key.GroupID,
		ProjectRoleID: projectRoleID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Project{}, key.ProjectID).Error; err != nil {
			return translateNotFound[models.Project](err)
		}
		if err := tx.First(&models.Group{}, key.GroupID).Error; err != nil {
			return translateNotFound[models.Group](err)
		}

		var count int64
		if err := tx.Model(&models.ProjectGroup{}).
			Where("project_id = ? AND group_id = ?", key.ProjectID, key.GroupID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.DuplicateAssociation("project group")
		}

		if err := tx.Create(&row).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateAssociation("project group")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) ProjectGroup(key ProjectGroupKey) (*models.ProjectGroup, error) {
	var row models.ProjectGroup
	err := s.db.
		Where("project_id = ? AND group_id = ?", key.ProjectID, key.GroupID).
		First(&row).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("project group")
		}
		return nil, err
	}
	return &row, nil
}

func (s *Store) ProjectGroupsByProject(projectID uint) ([]models.ProjectGroup, error) {
	var rows []models.ProjectGroup
	err := s.db.Where("project_id = ?", projectID).Find(&rows).Error
	return rows, err
}

func (s *Store) ProjectGroupsByGroup(groupID uint) ([]models.ProjectGroup, error) {
	var rows []models.ProjectGroup
	err := s.db.Where("group_id = ?", groupID).Find(&rows).Error
	return rows, err
}

func (s *Store) RemoveProjectGroup(key ProjectGroupKey) error {
	res := s.db.
		Where("project_id = ? AND group_id = ?", key.ProjectID, key.GroupID).
		Delete(&models.ProjectGroup{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("project group")
	}
	return nil
}

func (s *Store) RemoveProjectGroupsByProject(projectID uint) error {
	return s.db.Where("project_id = ?", projectID).Delete(&models.ProjectGroup{}).Error
}

func (s *Store) RemoveProjectGroupsByGroup(groupID uint) error {
	return s.db.Where("group_id = ?", groupID).Delete(&models.ProjectGroup{}).Error
}

// AssignWorkflow maps a (project, task type) pair to the workflow its tasks
// follow. A workflow with no steps is accepted; callers that care should
// consult HasAtLeastOneStep first.
func (s *Store) AssignWorkflow(key ProjectTaskTypeKey, workflowID uint) (*models.ProjectTaskType, error) {
	row := models.ProjectTaskType{
		ProjectID:  key.ProjectID,
		TaskTypeID: key.TaskTypeID,
		WorkflowID: workflowID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Project{}, key.ProjectID).Error; err != nil {
			return translateNotFound[models.Project](err)
		}
		if err := tx.First(&models.TaskType{}, key.TaskTypeID).Error; err != nil {
			if isRecordNotFound(err) {
				return apperr.NotFound("task type")
			}
			return err
		}
		if err := tx.First(&models.Workflow{}, workflowID).Error; err != nil {
			return translateNotFound[models.Workflow](err)
		}

		var count int64
		if err := tx.Model(&models.ProjectTaskType{}).
			Where("project_id = ? AND task_type_id = ?", key.ProjectID, key.TaskTypeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.DuplicateAssociation("project task type")
		}

		if err := tx.Create(&row).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateAssociation("project task type")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ReassignWorkflow swaps the workflow payload of an existing mapping.
func (s *Store) ReassignWorkflow(key ProjectTaskTypeKey, workflowID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Workflow{}, workflowID).Error; err != nil {
			return translateNotFound[models.Workflow](err)
		}
		res := tx.Model(&models.ProjectTaskType{}).
			Where("project_id = ? AND task_type_id = ?", key.ProjectID, key.TaskTypeID).
			Update("workflow_id", workflowID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("project task type")
		}
		return nil
	})
}

func (s *Store) ProjectTaskType(key ProjectTaskTypeKey) (*models.ProjectTaskType, error) {
	var row models.ProjectTaskType
	err := s.db.
		Where("project_id = ? AND task_type_id = ?", key.ProjectID, key.TaskTypeID).
		First(&row).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("project task type")
		}
		return nil, err
	}
	return &row, nil
}

func (s *Store) ProjectTaskTypesByProject(projectID uint) ([]models.ProjectTaskType, error) {
	var rows []models.ProjectTaskType
	err := s.db.Where("project_id = ?", projectID).Find(&rows).Error
	return rows, err
}

func (s *Store) RemoveProjectTaskType(key ProjectTaskTypeKey) error {
	res := s.db.
		Where("project_id = ? AND task_type_id = ?", key.ProjectID, key.TaskTypeID).
		Delete(&models.ProjectTaskType{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("project task type")
	}
	return nil
}

func (s *Store) RemoveProjectTaskTypesByProject(projectID uint) error {
	return s.db.Where("project_id = ?", projectID).Delete(&models.ProjectTaskType{}).Error
}

// ProjectReachableUsers computes the users reachable from a project, both
// directly through ProjectUser rows and through ProjectGroup rows via group
// membership. The projection is recomputed from the association rows on
// every call and is never persisted.
func (s *Store) ProjectReachableUsers(projectID uint) ([]models.User, error) {
	var direct []models.User
	err := s.db.Model(&models.User{}).
		Joins("JOIN project_users ON project_users.user_id = users.id").
		Where("project_users.project_id = ?", projectID).
		Find(&direct).Error
	if err != nil {
		return nil, err
	}

	var viaGroups []models.User
	err = s.db.Model(&models.User{}).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins("JOIN project_groups ON project_groups.group_id = user_groups.group_id").
		Where("project_groups.project_id = ?", projectID).
		Find(&viaGroups).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(direct))
	out := make([]models.User, 0, len(direct)+len(viaGroups))
	for _, u := range direct {
		if !seen[u.ID] {
			seen[u.ID] = true
			out = append(out, u)
		}
	}
	for _, u := range viaGroups {
		if !seen[u.ID] {
			seen[u.ID] = true
			out = append(out, u)
		}
	}
	return out, nil
}
