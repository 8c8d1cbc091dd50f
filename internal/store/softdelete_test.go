package store

import (
	"testing"

	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

func projectIDs(projects []models.Project) map[uint]bool {
	ids := make(map[uint]bool, len(projects))
	for _, p := range projects {
		ids[p.ID] = true
	}
	return ids
}

func TestSoftDelete_ExcludedFromDefaultReads_VisibleToEscapeHatches(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner")
	project := seedProject(t, s, "Apollo", owner.ID)
	other := seedProject(t, s, "Borealis", owner.ID)

	if err := SoftDelete[models.Project](s, project.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	live, err := FindAll[models.Project](s)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if ids := projectIDs(live); ids[project.ID] || !ids[other.ID] {
		t.Fatalf("default read returned wrong rows: %v", ids)
	}

	deleted, err := FindAllDeleted[models.Project](s)
	if err != nil {
		t.Fatalf("find deleted: %v", err)
	}
	if len(deleted) != 1 || deleted[0].ID != project.ID {
		t.Fatalf("expected exactly the deleted project, got %d rows", len(deleted))
	}
	if !deleted[0].DeletedAt.Valid {
		t.Fatalf("deleted row has no deletion timestamp")
	}

	if _, err := FindByID[models.Project](s, project.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found through the default reader, got %v", err)
	}

	resolved, err := FindByIDAnyState[models.Project](s, project.ID)
	if err != nil {
		t.Fatalf("any-state lookup: %v", err)
	}
	if resolved.ID != project.ID {
		t.Fatalf("any-state lookup resolved wrong row")
	}
}

func TestHardDelete_RemovesFromEveryView(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner")
	project := seedProject(t, s, "Apollo", owner.ID)

	if err := SoftDelete[models.Project](s, project.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if err := HardDelete[models.Project](s, project.ID); err != nil {
		t.Fatalf("hard delete: %v", err)
	}

	if _, err := FindByIDAnyState[models.Project](s, project.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected the row to be unrecoverable, got %v", err)
	}

	all, err := FindAllAnyState[models.Project](s)
	if err != nil {
		t.Fatalf("find any state: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no rows, got %d", len(all))
	}
}

func TestHardDelete_ReferencedRow_ReportsReferentialIntegrity(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner")
	project := seedProject(t, s, "Apollo", owner.ID)

	// The owner is still referenced by the project; the row must survive
	// and the caller learns why.
	if err := HardDelete[models.User](s, owner.ID); !apperr.IsReferentialIntegrity(err) {
		t.Fatalf("expected referential integrity failure, got %v", err)
	}

	if _, err := FindByID[models.User](s, owner.ID); err != nil {
		t.Fatalf("referenced owner should still resolve, got %v", err)
	}

	// With the referencing project gone the same delete goes through.
	if err := HardDelete[models.Project](s, project.ID); err != nil {
		t.Fatalf("hard delete project: %v", err)
	}
	if err := HardDelete[models.User](s, owner.ID); err != nil {
		t.Fatalf("hard delete unreferenced owner: %v", err)
	}
}

func TestDeletes_OnMissingID_ReportNotFound(t *testing.T) {
	s := newTestStore(t)

	if err := SoftDelete[models.Project](s, 404); !apperr.IsNotFound(err) {
		t.Fatalf("soft delete: expected not found, got %v", err)
	}
	if err := HardDelete[models.Project](s, 404); !apperr.IsNotFound(err) {
		t.Fatalf("hard delete: expected not found, got %v", err)
	}
}

func TestSoftDelete_Workflow_StepsStayAddressable(t *testing.T) {
	s := newTestStore(t)
	workflow := seedWorkflow(t, s, "Dev Process")
	todo := seedStatus(t, s, "To Do")

	if _, err := s.AddStep(workflow.ID, todo.ID, 1); err != nil {
		t.Fatalf("add step: %v", err)
	}
	if err := SoftDelete[models.Workflow](s, workflow.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	// Deletion does not cascade: tasks on this workflow still resolve
	// their progression.
	steps, err := s.StepsInOrder(workflow.ID)
	if err != nil {
		t.Fatalf("steps in order after soft delete: %v", err)
	}
	if len(steps) != 1 || steps[0].StatusID != todo.ID {
		t.Fatalf("expected the surviving step, got %+v", steps)
	}
}
