package store

import (
	"strings"

	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

func (s *Store) CreateGroup(name, description string, roleID *uint) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("group name must not be blank")
	}

	group := models.Group{GroupName: name, Description: description, RoleID: roleID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if roleID != nil {
			if err := tx.First(&models.Role{}, *roleID).Error; err != nil {
				if isRecordNotFound(err) {
					return apperr.NotFound("role")
				}
				return err
			}
		}

		taken, err := nameTaken(tx, &models.Group{}, "group_name", name)
		if err != nil {
			return err
		}
		if taken {
			return apperr.DuplicateName("group", name)
		}

		if err := tx.Create(&group).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateName("group", name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Store) SetGroupRole(groupID uint, roleID *uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, groupID).Error; err != nil {
			return translateNotFound[models.Group](err)
		}
		if roleID != nil {
			if err := tx.First(&models.Role{}, *roleID).Error; err != nil {
				if isRecordNotFound(err) {
					return apperr.NotFound("role")
				}
				return err
			}
		}
		return tx.Model(&group).Update("role_id", roleID).Error
	})
}

func (s *Store) CreateRole(name, description string) (*models.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("role name must not be blank")
	}

	role := models.Role{RoleName: name, Description: description}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Role{}, "role_name", name)
		if err != nil {
			return err
		}
		if taken {
			return apperr.DuplicateName("role", name)
		}
		if err := tx.Create(&role).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateName("role", name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *Store) CreateProjectRole(name, description string) (*models.ProjectRole, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("project role name must not be blank")
	}

	role := models.ProjectRole{RoleName: name, Description: description}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.ProjectRole{}, "role_name", name)
		if err != nil {
			return err
		}
		if taken {
			return apperr.DuplicateName("project role", name)
		}
		if err := tx.Create(&role).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateName("project role", name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *Store) CreatePermission(name, description string) (*models.Permission, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("permission name must not be blank")
	}

	permission := models.Permission{PermissionName: name, Description: description}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Permission{}, "permission_name", name)
		if err != nil {
			return err
		}
		if taken {
			return apperr.DuplicateName("permission", name)
		}
		if err := tx.Create(&permission).Error; err != nil {
			if duplicateKey(err) {
				return apperr.DuplicateName("permission", name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

func (s *Store) AttachPermissionToRole(roleID, permissionID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			if isRecordNotFound(err) {
				return apperr.NotFound("role")
			}
			return err
		}
		var permission models.Permission
		if err := tx.First(&permission, permissionID).Error; err != nil {
			if isRecordNotFound(err) {
				return apperr.NotFound("permission")
			}
			return err
		}
		return tx.Model(&role).Association("Permissions").Append(&permission)
	})
}

func (s *Store) DetachPermissionFromRole(roleID, permissionID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			if isRecordNotFound(err) {
				return apperr.NotFound("role")
			}
			return err
		}
		var permission models.Permission
		if err := tx.First(&permission, permissionID).Error; err != nil {
			if isRecordNotFound(err) {
				return apperr.NotFound("permission")
			}
			return err
		}
		return tx.Model(&role).Association("Permissions").Delete(&permission)
	})
}

func (s *Store) PermissionsOfRole(roleID uint) ([]models.Permission, error) {
	var role models.Role
	if err := s.db.Preload("Permissions").First(&role, roleID).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("role")
		}
		return nil, err
	}

	out := make([]models.Permission, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		out = append(out, *p)
	}
	return out, nil
}

func (s *Store) AttachPermissionToProjectRole(projectRoleID, permissionID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var role models.ProjectRole
		if err := tx.First(&role, projectRoleID).Error; err != nil {
			if isRecordNotFound(err) {
				return apperr.NotFound("project role")
			}
			return err
		}
		var permission models.Permission
		if err := tx.First(&permission, permissionID).Error; err != nil {
			if isRecordNotFound(err) {
				return apperr.NotFound("permission")
			}
			return err
		}
		return tx.Model(&role).Association("Permissions").Append(&permission)
	})
}

func (s *Store) Roles() ([]models.Role, error) {
	var roles []models.Role
	err := s.db.Order("role_name ASC").Find(&roles).Error
	return roles, err
}

func (s *Store) ProjectRoles() ([]models.ProjectRole, error) {
	var roles []models.ProjectRole
	err := s.db.Order("role_name ASC").Find(&roles).Error
	return roles, err
}

func (s *Store) Permissions() ([]models.Permission, error) {
	var permissions []models.Permission
	err := s.db.Order("permission_name ASC").Find(&permissions).Error
	return permissions, err
}
