package store

import (
	"strings"

	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

func (s *Store) CreateProject(name, description string, ownerID uint) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("project name must not be blank")
	}

	if err := s.db.First(&models.User{}, ownerID).Error; err != nil {
		return nil, translateNotFound[models.User](err)
	}

	project := models.Project{Name: name, Description: description, OwnerID: ownerID}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Store) UpdateProject(id uint, name, description string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("project name must not be blank")
	}

	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, translateNotFound[models.Project](err)
	}

	project.Name = name
	project.Description = description
	if err := s.db.Save(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Store) ProjectsByOwner(ownerID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Where("owner_id = ?", ownerID).Find(&projects).Error
	return projects, err
}

func (s *Store) TasksByProject(projectID uint) ([]models.Task, error) {
	if err := s.db.First(&models.Project{}, projectID).Error; err != nil {
		return nil, translateNotFound[models.Project](err)
	}

	var tasks []models.Task
	err := s.db.Where("project_id = ?", projectID).Find(&tasks).Error
	return tasks, err
}
