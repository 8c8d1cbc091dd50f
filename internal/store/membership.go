package store

import (
	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

// Group membership is one join table (user_groups) read from either side.
// Both directions of the relation are views over that table, so they cannot
// disagree. Add and remove resolve every id up front: the operations are
// all-or-nothing, never partial.

func (s *Store) AddMembers(groupID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return apperr.Validation("no users given")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, groupID).Error; err != nil {
			return translateNotFound[models.Group](err)
		}

		users, err := resolveUsers(tx, userIDs)
		if err != nil {
			return err
		}

		return tx.Model(&group).Association("Users").Append(users)
	})
}

func (s *Store) RemoveMembers(groupID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return apperr.Validation("no users given")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, groupID).Error; err != nil {
			return translateNotFound[models.Group](err)
		}

		users, err := resolveUsers(tx, userIDs)
		if err != nil {
			return err
		}

		return tx.Model(&group).Association("Users").Delete(users)
	})
}

// resolveUsers loads every listed user and fails if any id is missing.
func resolveUsers(tx *gorm.DB, userIDs []uint) ([]*models.User, error) {
	var users []*models.User
	if err := tx.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}

	if len(users) != len(set(userIDs)) {
		return nil, apperr.NotFound("one or more users")
	}
	return users, nil
}

func set(ids []uint) map[uint]bool {
	m := make(map[uint]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// MembersOf lists the live users of a group.
func (s *Store) MembersOf(groupID uint) ([]models.User, error) {
	if err := s.db.First(&models.Group{}, groupID).Error; err != nil {
		return nil, translateNotFound[models.Group](err)
	}

	var users []models.User
	err := s.db.Model(&models.User{}).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Where("user_groups.group_id = ?", groupID).
		Find(&users).Error
	return users, err
}

// GroupsOf lists the live groups a user belongs to.
func (s *Store) GroupsOf(userID uint) ([]models.Group, error) {
	if err := s.db.First(&models.User{}, userID).Error; err != nil {
		return nil, translateNotFound[models.User](err)
	}

	var groups []models.Group
	err := s.db.Model(&models.Group{}).
		Joins("JOIN user_groups ON user_groups.group_id = groups.id").
		Where("user_groups.user_id = ?", userID).
		Find(&groups).Error
	return groups, err
}
