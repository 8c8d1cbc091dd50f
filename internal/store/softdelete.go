package store

import (
	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

// Deletable covers the entities that carry a nullable deletion timestamp.
// Default finders exclude soft-deleted rows uniformly; the AnyState and
// Deleted variants are the explicit escape hatches for audit views and for
// by-id resolution of records still referenced by live data.
type Deletable interface {
	models.User | models.UserAuth | models.UserDetails | models.Group |
		models.Project | models.Task | models.TaskComment | models.Workflow

	EntityName() string
}

func entityName[T Deletable]() string {
	var zero T
	return zero.EntityName()
}

// FindByID resolves a live entity by id.
func FindByID[T Deletable](s *Store, id uint) (*T, error) {
	var out T
	if err := s.db.First(&out, id).Error; err != nil {
		return nil, translateNotFound[T](err)
	}
	return &out, nil
}

// FindByIDAnyState resolves an entity by id regardless of deletion state.
func FindByIDAnyState[T Deletable](s *Store, id uint) (*T, error) {
	var out T
	if err := s.db.Unscoped().First(&out, id).Error; err != nil {
		return nil, translateNotFound[T](err)
	}
	return &out, nil
}

// FindAll lists live entities.
func FindAll[T Deletable](s *Store) ([]T, error) {
	var out []T
	if err := s.db.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindAllAnyState lists every row, live and soft-deleted.
func FindAllAnyState[T Deletable](s *Store) ([]T, error) {
	var out []T
	if err := s.db.Unscoped().Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindAllDeleted lists only soft-deleted rows.
func FindAllDeleted[T Deletable](s *Store) ([]T, error) {
	var out []T
	if err := s.db.Unscoped().Where("deleted_at IS NOT NULL").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SoftDelete stamps deleted_at in place; the row stays joinable and is
// excluded from default reads from then on.
func SoftDelete[T Deletable](s *Store, id uint) error {
	var zero T
	res := s.db.Delete(&zero, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entityName[T]())
	}
	return nil
}

// HardDelete removes the row permanently, soft-deleted or not. A row still
// required by a foreign key elsewhere is reported, never cascaded away.
func HardDelete[T Deletable](s *Store, id uint) error {
	var zero T
	res := s.db.Unscoped().Delete(&zero, id)
	if res.Error != nil {
		if foreignKeyViolated(res.Error) {
			return apperr.ReferentialIntegrity(entityName[T]())
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entityName[T]())
	}
	return nil
}

func translateNotFound[T Deletable](err error) error {
	if err == nil {
		return nil
	}
	if isRecordNotFound(err) {
		return apperr.NotFound(entityName[T]())
	}
	return err
}
