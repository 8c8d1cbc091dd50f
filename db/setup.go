package db

import (
	"github.com/taskhive-dev/taskhive/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// TranslateError folds driver constraint violations into gorm's
	// ErrDuplicatedKey/ErrForeignKeyViolated, which the store layer relies
	// on as the backstop behind its explicit checks.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.UserAuth{},
		&models.UserDetails{},
		&models.Group{},
		&models.Role{},
		&models.ProjectRole{},
		&models.Permission{},
		&models.Project{},
		&models.ProjectUser{},
		&models.ProjectGroup{},
		&models.ProjectTaskType{},
		&models.Category{},
		&models.TaskPriority{},
		&models.TaskType{},
		&models.Status{},
		&models.Workflow{},
		&models.WorkflowStep{},
		&models.Task{},
		&models.TaskDependency{},
		&models.TaskComment{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
