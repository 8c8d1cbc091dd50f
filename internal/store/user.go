package store

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

// RegisterUser creates the user together with its auth and details rows in
// one transaction.
func (s *Store) RegisterUser(username, email, passwordHash, displayName string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, apperr.Validation("username must not be blank")
	}
	if email == "" {
		return nil, apperr.Validation("email must not be blank")
	}

	user := models.User{Username: username, Email: email}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.User{}, "username", username)
		if err != nil {
			return err
		}
		if taken {
			return apperr.DuplicateName("user", username)
		}

		taken, err = nameTaken(tx, &models.User{}, "email", email)
		if err != nil {
			return err
		}
		if taken {
			return apperr.DuplicateName("user", email)
		}

		if err := tx.Create(&user).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateName("user", username)
			}
			return err
		}

		auth := models.UserAuth{UserID: user.ID, PasswordHash: passwordHash}
		if err := tx.Create(&auth).Error; err != nil {
			return err
		}

		details := models.UserDetails{
			UserID:      user.ID,
			DisplayName: displayName,
			Preferences: datatypes.JSON([]byte(`{}`)),
		}
		if err := tx.Create(&details).Error; err != nil {
			return err
		}

		user.Auth = &auth
		user.Details = &details
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.Preload("Auth").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translateNotFound[models.User](err)
	}
	return &user, nil
}

func (s *Store) UpdateUserDetails(userID uint, displayName string, preferences datatypes.JSON) (*models.UserDetails, error) {
	var details models.UserDetails
	err := s.db.Where("user_id = ?", userID).First(&details).Error
	if err != nil {
		return nil, translateNotFound[models.UserDetails](err)
	}

	if displayName != "" {
		details.DisplayName = displayName
	}
	if preferences != nil {
		details.Preferences = preferences
	}

	if err := s.db.Save(&details).Error; err != nil {
		return nil, err
	}
	return &details, nil
}

// PurgeUser permanently removes a user and its auth and details rows. This
// is the PII escape hatch; everything else goes through SoftDelete.
func (s *Store) PurgeUser(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Unscoped().First(&user, userID).Error; err != nil {
			return translateNotFound[models.User](err)
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.UserAuth{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.UserDetails{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Association("Groups").Clear(); err != nil {
			return err
		}

		if err := tx.Unscoped().Delete(&user).Error; err != nil {
			if foreignKeyViolated(err) {
				return apperr.ReferentialIntegrity("user")
			}
			return err
		}
		return nil
	})
}
