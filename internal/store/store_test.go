package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskhive-dev/taskhive/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	// sqlite ships with foreign keys off; enable them so the FK backstop
	// behind HardDelete behaves as it does against postgres.
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	// A :memory: database exists per connection; keep the pool at one so
	// every query sees the same database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
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
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return New(db)
}

func seedUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	user, err := s.RegisterUser(username, username+"@example.com", "x", username)
	if err != nil {
		t.Fatalf("seeding user %s: %v", username, err)
	}
	return user
}

func seedProject(t *testing.T, s *Store, name string, ownerID uint) *models.Project {
	t.Helper()
	project, err := s.CreateProject(name, "", ownerID)
	if err != nil {
		t.Fatalf("seeding project %s: %v", name, err)
	}
	return project
}

func seedStatus(t *testing.T, s *Store, name string) *models.Status {
	t.Helper()
	status, err := s.CreateStatus(name, "")
	if err != nil {
		t.Fatalf("seeding status %s: %v", name, err)
	}
	return status
}

func seedWorkflow(t *testing.T, s *Store, name string) *models.Workflow {
	t.Helper()
	workflow, err := s.CreateWorkflow(name, "")
	if err != nil {
		t.Fatalf("seeding workflow %s: %v", name, err)
	}
	return workflow
}

func seedTask(t *testing.T, s *Store, title string) *models.Task {
	t.Helper()
	task := &models.Task{Title: title}
	if err := s.CreateTask(task); err != nil {
		t.Fatalf("seeding task %s: %v", title, err)
	}
	return task
}
