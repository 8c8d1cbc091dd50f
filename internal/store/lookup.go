package store

import (
	"strings"

	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

// The lookup entities (Category, TaskPriority, TaskType) are plain named
// rows: unique name, no soft delete, delete is permanent.

func (s *Store) CreateCategory(name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("category name must not be blank")
	}

	category := models.Category{CategoryName: name, Description: description}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Category{}, "category_name", name)
		if err != nil {
			return err
		}
		if taken {
			return apperr.DuplicateName("category", name)
		}
		if err := tx.Create(&category).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateName("category", name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Store) Categories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("category_name ASC").Find(&categories).Error
	return categories, err
}

func (s *Store) DeleteCategory(id uint) error {
	res := s.db.Delete(&models.Category{}, id)
	if res.Error != nil {
		if foreignKeyViolated(res.Error) {
			return apperr.ReferentialIntegrity("category")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("category")
	}
	return nil
}

func (s *Store) CreateTaskPriority(name string, rank int) (*models.TaskPriority, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("task priority name must not be blank")
	}

	priority := models.TaskPriority{PriorityName: name, Rank: rank}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.TaskPriority{}, "priority_name", name)
		if err != nil {
			return err
		}
		if taken {
			return apperr.DuplicateName("task priority", name)
		}
		if err := tx.Create(&priority).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateName("task priority", name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &priority, nil
}

func (s *Store) TaskPriorities() ([]models.TaskPriority, error) {
	var priorities []models.TaskPriority
	err := s.db.Order("rank ASC").Find(&priorities).Error
	return priorities, err
}

func (s *Store) DeleteTaskPriority(id uint) error {
	res := s.db.Delete(&models.TaskPriority{}, id)
	if res.Error != nil {
		if foreignKeyViolated(res.Error) {
			return apperr.ReferentialIntegrity("task priority")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("task priority")
	}
	return nil
}

func (s *Store) CreateTaskType(name, description string) (*models.TaskType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("task type name must not be blank")
	}

	taskType := models.TaskType{TypeName: name, Description: description}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.TaskType{}, "type_name", name)
		if err != nil {
			return err
		}
		if taken {
			return apperr.DuplicateName("task type", name)
		}
		if err := tx.Create(&taskType).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateName("task type", name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &taskType, nil
}

func (s *Store) TaskTypes() ([]models.TaskType, error) {
	var taskTypes []models.TaskType
	err := s.db.Order("type_name ASC").Find(&taskTypes).Error
	return taskTypes, err
}

func (s *Store) DeleteTaskType(id uint) error {
	res := s.db.Delete(&models.TaskType{}, id)
	if res.Error != nil {
		if foreignKeyViolated(res.Error) {
			return apperr.ReferentialIntegrity("task type")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("task type")
	}
	return nil
}
