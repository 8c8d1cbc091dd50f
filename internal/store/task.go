package store

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

type TaskDependencyKey struct {
	TaskID          uint
	DependsOnTaskID uint
}

func (s *Store) CreateTask(task *models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return apperr.Validation("task title must not be blank")
	}
	return s.db.Create(task).Error
}

// UpdateTask saves the task. A status carried on the update is held to the
// same workflow conformance as SetStatus, so a general edit cannot slip a
// task into a status its governing workflow never declared.
func (s *Store) UpdateTask(task *models.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return apperr.Validation("task title must not be blank")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if task.StatusID != nil {
			if err := statusConforms(tx, task, *task.StatusID); err != nil {
				return err
			}
		}
		return tx.Save(task).Error
	})
}

// SetStatus moves a task to a new status. When the task's (project, task
// type) pair has a workflow assigned, the status must be one of that
// workflow's steps; without such a mapping there is no declared progression
// to conform to and the update is unchecked.
func (s *Store) SetStatus(taskID, statusID uint) (*models.Task, error) {
	var task models.Task

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, taskID).Error; err != nil {
			return translateNotFound[models.Task](err)
		}
		if err := tx.First(&models.Status{}, statusID).Error; err != nil {
			if isRecordNotFound(err) {
				return apperr.NotFound("status")
			}
			return err
		}

		if err := statusConforms(tx, &task, statusID); err != nil {
			return err
		}

		task.StatusID = &statusID
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// statusConforms checks the status against the workflow assigned to the
// task's (project, task type) pair. Without such a mapping there is no
// declared progression to conform to and any status passes.
func statusConforms(tx *gorm.DB, task *models.Task, statusID uint) error {
	if task.ProjectID == nil || task.TaskTypeID == nil {
		return nil
	}

	var mapping models.ProjectTaskType
	err := tx.Where("project_id = ? AND task_type_id = ?", *task.ProjectID, *task.TaskTypeID).
		First(&mapping).Error
	if isRecordNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var count int64
	if err := tx.Model(&models.WorkflowStep{}).
		Where("workflow_id = ? AND status_id = ?", mapping.WorkflowID, statusID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.Validation("status is not a step of the workflow governing this task")
	}
	return nil
}

// Complete stamps the completion timestamp. Completing an already-completed
// task leaves the original timestamp in place.
func (s *Store) Complete(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		return nil, translateNotFound[models.Task](err)
	}

	if task.CompletedAt == nil {
		now := time.Now()
		task.CompletedAt = &now
		if err := s.db.Save(&task).Error; err != nil {
			return nil, err
		}
	}
	return &task, nil
}

// AddDependency records that task waits on dependsOn. Self-loops and edges
// that would close a cycle are rejected before anything is written.
func (s *Store) AddDependency(taskID, dependsOnTaskID uint) error {
	if taskID == dependsOnTaskID {
		return apperr.Validation("a task cannot depend on itself")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Task{}, taskID).Error; err != nil {
			return translateNotFound[models.Task](err)
		}
		if err := tx.First(&models.Task{}, dependsOnTaskID).Error; err != nil {
			return translateNotFound[models.Task](err)
		}

		var count int64
		if err := tx.Model(&models.TaskDependency{}).
			Where("task_id = ? AND depends_on_task_id = ?", taskID, dependsOnTaskID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.DuplicateAssociation("task dependency")
		}

		reachable, err := dependsOnReaches(tx, dependsOnTaskID, taskID)
		if err != nil {
			return err
		}
		if reachable {
			return apperr.Validation("dependency would create a cycle")
		}

		edge := models.TaskDependency{TaskID: taskID, DependsOnTaskID: dependsOnTaskID}
		if err := tx.Create(&edge).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateAssociation("task dependency")
			}
			return err
		}
		return nil
	})
}

// dependsOnReaches walks the precedence graph depth-first from start and
// reports whether target is transitively among its prerequisites.
func dependsOnReaches(tx *gorm.DB, start, target uint) (bool, error) {
	visited := map[uint]bool{start: true}
	stack := []uint{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var next []uint
		if err := tx.Model(&models.TaskDependency{}).
			Where("task_id = ?", current).
			Pluck("depends_on_task_id", &next).Error; err != nil {
			return false, err
		}

		for _, id := range next {
			if id == target {
				return true, nil
			}
			if !visited[id] {
				visited[id] = true
				stack = append(stack, id)
			}
		}
	}
	return false, nil
}

func (s *Store) RemoveDependency(key TaskDependencyKey) error {
	res := s.db.
		Where("task_id = ? AND depends_on_task_id = ?", key.TaskID, key.DependsOnTaskID).
		Delete(&models.TaskDependency{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("task dependency")
	}
	return nil
}

// DirectDependencies lists the tasks this one waits on, one hop only.
func (s *Store) DirectDependencies(taskID uint) ([]models.Task, error) {
	if err := s.db.First(&models.Task{}, taskID).Error; err != nil {
		return nil, translateNotFound[models.Task](err)
	}

	var tasks []models.Task
	err := s.db.Model(&models.Task{}).
		Joins("JOIN task_dependencies ON task_dependencies.depends_on_task_id = tasks.id").
		Where("task_dependencies.task_id = ?", taskID).
		Find(&tasks).Error
	return tasks, err
}

// DirectDependents lists the tasks waiting on this one, one hop only.
func (s *Store) DirectDependents(taskID uint) ([]models.Task, error) {
	if err := s.db.First(&models.Task{}, taskID).Error; err != nil {
		return nil, translateNotFound[models.Task](err)
	}

	var tasks []models.Task
	err := s.db.Model(&models.Task{}).
		Joins("JOIN task_dependencies ON task_dependencies.task_id = tasks.id").
		Where("task_dependencies.depends_on_task_id = ?", taskID).
		Find(&tasks).Error
	return tasks, err
}

func (s *Store) AddComment(taskID, authorID uint, body string) (*models.TaskComment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperr.Validation("comment body must not be blank")
	}

	comment := models.TaskComment{TaskID: taskID, AuthorID: authorID, Body: body}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Task{}, taskID).Error; err != nil {
			return translateNotFound[models.Task](err)
		}
		if err := tx.First(&models.User{}, authorID).Error; err != nil {
			return translateNotFound[models.User](err)
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *Store) CommentsByTask(taskID uint) ([]models.TaskComment, error) {
	if err := s.db.First(&models.Task{}, taskID).Error; err != nil {
		return nil, translateNotFound[models.Task](err)
	}

	var comments []models.TaskComment
	err := s.db.Where("task_id = ?", taskID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}
