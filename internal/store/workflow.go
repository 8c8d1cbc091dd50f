package store

import (
	"strings"

	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

type WorkflowStepKey struct {
	WorkflowID uint
	StatusID   uint
}

func (s *Store) CreateWorkflow(name, description string) (*models.Workflow, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("workflow name must not be blank")
	}

	workflow := models.Workflow{Name: name, Description: description}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Workflow{}, "name", name)
		if err != nil {
			return err
		}
		if taken {
			return apperr.DuplicateName("workflow", name)
		}

		if err := tx.Create(&workflow).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateName("workflow", name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &workflow, nil
}

func (s *Store) RenameWorkflow(id uint, name, description string) (*models.Workflow, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("workflow name must not be blank")
	}

	var workflow models.Workflow

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&workflow, id).Error; err != nil {
			return translateNotFound[models.Workflow](err)
		}

		if name != workflow.Name {
			taken, err := nameTaken(tx, &models.Workflow{}, "name", name)
			if err != nil {
				return err
			}
			if taken {
				return apperr.DuplicateName("workflow", name)
			}
		}

		workflow.Name = name
		workflow.Description = description

		if err := tx.Save(&workflow).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateName("workflow", name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &workflow, nil
}

// AddStep places a status at a position within a workflow. The (workflow,
// status) pair and the (workflow, sequence) position must both be free; a
// violation raced past the checks surfaces from the constraints as the same
// duplicate-association kind.
func (s *Store) AddStep(workflowID, statusID uint, sequenceNumber int) (*models.WorkflowStep, error) {
	step := models.WorkflowStep{
		WorkflowID:     workflowID,
		StatusID:       statusID,
		SequenceNumber: sequenceNumber,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Workflow{}, workflowID).Error; err != nil {
			return translateNotFound[models.Workflow](err)
		}
		if err := tx.First(&models.Status{}, statusID).Error; err != nil {
			if isRecordNotFound(err) {
				return apperr.NotFound("status")
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.WorkflowStep{}).
			Where("workflow_id = ? AND status_id = ?", workflowID, statusID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.DuplicateAssociation("workflow step")
		}

		if err := tx.Model(&models.WorkflowStep{}).
			Where("workflow_id = ? AND sequence_number = ?", workflowID, sequenceNumber).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.DuplicateAssociation("workflow step sequence number")
		}

		if err := tx.Create(&step).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateAssociation("workflow step")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &step, nil
}

func (s *Store) RemoveStep(key WorkflowStepKey) error {
	res := s.db.
		Where("workflow_id = ? AND status_id = ?", key.WorkflowID, key.StatusID).
		Delete(&models.WorkflowStep{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("workflow step")
	}
	return nil
}

// StepsInOrder is the sole authority for a workflow's progression: steps
// ascending by sequence number, statuses preloaded. The workflow is resolved
// regardless of deletion state so tasks on a retired workflow still render.
func (s *Store) StepsInOrder(workflowID uint) ([]models.WorkflowStep, error) {
	if err := s.db.Unscoped().First(&models.Workflow{}, workflowID).Error; err != nil {
		return nil, translateNotFound[models.Workflow](err)
	}

	var steps []models.WorkflowStep
	err := s.db.Preload("Status").
		Where("workflow_id = ?", workflowID).
		Order("sequence_number ASC").
		Find(&steps).Error
	return steps, err
}

// HasAtLeastOneStep reports whether a workflow is complete enough to govern
// tasks. Advisory: nothing forces callers to check.
func (s *Store) HasAtLeastOneStep(workflowID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.WorkflowStep{}).
		Where("workflow_id = ?", workflowID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) CreateStatus(name, description string) (*models.Status, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("status name must not be blank")
	}

	status := models.Status{StatusName: name, Description: description}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Status{}, "status_name", name)
		if err != nil {
			return err
		}
		if taken {
			return apperr.DuplicateName("status", name)
		}

		if err := tx.Create(&status).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateName("status", name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *Store) StatusByID(id uint) (*models.Status, error) {
	var status models.Status
	if err := s.db.First(&status, id).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("status")
		}
		return nil, err
	}
	return &status, nil
}

func (s *Store) Statuses() ([]models.Status, error) {
	var statuses []models.Status
	err := s.db.Order("status_name ASC").Find(&statuses).Error
	return statuses, err
}

// nameTaken checks a unique name column across live and soft-deleted rows;
// the underlying unique index spans both, so the check must too.
func nameTaken(tx *gorm.DB, model any, column, name string) (bool, error) {
	var count int64
	err := tx.Model(model).Unscoped().
		Where(column+" = ?", name).
		Count(&count).Error
	return count > 0, err
}
