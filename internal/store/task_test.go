package store

import (
	"testing"

	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

func TestAddDependency_EdgeVisibleFromBothEndpoints(t *testing.T) {
	s := newTestStore(t)
	taskA := seedTask(t, s, "A")
	taskB := seedTask(t, s, "B")

	if err := s.AddDependency(taskA.ID, taskB.ID); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	if err := s.AddDependency(taskA.ID, taskB.ID); !apperr.IsDuplicateAssociation(err) {
		t.Fatalf("expected duplicate edge, got %v", err)
	}

	deps, err := s.DirectDependencies(taskA.ID)
	if err != nil {
		t.Fatalf("direct dependencies: %v", err)
	}
	if len(deps) != 1 || deps[0].ID != taskB.ID {
		t.Fatalf("expected [B], got %+v", deps)
	}

	dependents, err := s.DirectDependents(taskB.ID)
	if err != nil {
		t.Fatalf("direct dependents: %v", err)
	}
	if len(dependents) != 1 || dependents[0].ID != taskA.ID {
		t.Fatalf("expected [A], got %+v", dependents)
	}
}

func TestRemoveDependency_ClearsBothViews(t *testing.T) {
	s := newTestStore(t)
	taskA := seedTask(t, s, "A")
	taskB := seedTask(t, s, "B")

	if err := s.AddDependency(taskA.ID, taskB.ID); err != nil {
		t.Fatalf("add: %v", err)
	}

	key := TaskDependencyKey{TaskID: taskA.ID, DependsOnTaskID: taskB.ID}
	if err := s.RemoveDependency(key); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.RemoveDependency(key); !apperr.IsNotFound(err) {
		t.Fatalf("second remove: expected not found, got %v", err)
	}

	deps, err := s.DirectDependencies(taskA.ID)
	if err != nil {
		t.Fatalf("direct dependencies: %v", err)
	}
	if len(deps) != 0 {
		t.Fatalf("expected no dependencies, got %+v", deps)
	}

	dependents, err := s.DirectDependents(taskB.ID)
	if err != nil {
		t.Fatalf("direct dependents: %v", err)
	}
	if len(dependents) != 0 {
		t.Fatalf("expected no dependents, got %+v", dependents)
	}
}

func TestAddDependency_RejectsSelfLoop(t *testing.T) {
	s := newTestStore(t)
	taskA := seedTask(t, s, "A")

	if err := s.AddDependency(taskA.ID, taskA.ID); !apperr.IsValidation(err) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestAddDependency_RejectsCycles(t *testing.T) {
	s := newTestStore(t)
	taskA := seedTask(t, s, "A")
	taskB := seedTask(t, s, "B")
	taskC := seedTask(t, s, "C")

	// A -> B -> C
	if err := s.AddDependency(taskA.ID, taskB.ID); err != nil {
		t.Fatalf("A->B: %v", err)
	}
	if err := s.AddDependency(taskB.ID, taskC.ID); err != nil {
		t.Fatalf("B->C: %v", err)
	}

	// C -> A would close the loop.
	if err := s.AddDependency(taskC.ID, taskA.ID); !apperr.IsValidation(err) {
		t.Fatalf("expected cycle rejection, got %v", err)
	}

	// The sibling edge C -> B's dependent is fine; only true cycles are blocked.
	taskD := seedTask(t, s, "D")
	if err := s.AddDependency(taskC.ID, taskD.ID); err != nil {
		t.Fatalf("C->D: %v", err)
	}
}

func TestAddDependency_MissingEndpoints(t *testing.T) {
	s := newTestStore(t)
	taskA := seedTask(t, s, "A")

	if err := s.AddDependency(taskA.ID, 404); !apperr.IsNotFound(err) {
		t.Fatalf("missing prerequisite: expected not found, got %v", err)
	}
	if err := s.AddDependency(404, taskA.ID); !apperr.IsNotFound(err) {
		t.Fatalf("missing task: expected not found, got %v", err)
	}
}

func TestSetStatus_ValidatedAgainstGoverningWorkflow(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner")
	project := seedProject(t, s, "Apollo", owner.ID)

	bug, err := s.CreateTaskType("Bug", "")
	if err != nil {
		t.Fatalf("create task type: %v", err)
	}

	workflow := seedWorkflow(t, s, "Dev Process")
	todo := seedStatus(t, s, "To Do")
	done := seedStatus(t, s, "Done")
	escape := seedStatus(t, s, "Escalated")

	if _, err := s.AddStep(workflow.ID, todo.ID, 1); err != nil {
		t.Fatalf("add step: %v", err)
	}
	if _, err := s.AddStep(workflow.ID, done.ID, 2); err != nil {
		t.Fatalf("add step: %v", err)
	}

	key := ProjectTaskTypeKey{ProjectID: project.ID, TaskTypeID: bug.ID}
	if _, err := s.AssignWorkflow(key, workflow.ID); err != nil {
		t.Fatalf("assign workflow: %v", err)
	}

	task := seedTask(t, s, "crash on save")
	task.ProjectID = &project.ID
	task.TaskTypeID = &bug.ID
	if err := s.UpdateTask(task); err != nil {
		t.Fatalf("update task: %v", err)
	}

	updated, err := s.SetStatus(task.ID, todo.ID)
	if err != nil {
		t.Fatalf("set in-workflow status: %v", err)
	}
	if updated.StatusID == nil || *updated.StatusID != todo.ID {
		t.Fatalf("status not applied")
	}

	if _, err := s.SetStatus(task.ID, escape.ID); !apperr.IsValidation(err) {
		t.Fatalf("out-of-workflow status: expected validation failure, got %v", err)
	}
}

func TestUpdateTask_StatusHeldToGoverningWorkflow(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner")
	project := seedProject(t, s, "Apollo", owner.ID)

	bug, err := s.CreateTaskType("Bug", "")
	if err != nil {
		t.Fatalf("create task type: %v", err)
	}

	workflow := seedWorkflow(t, s, "Dev Process")
	todo := seedStatus(t, s, "To Do")
	escape := seedStatus(t, s, "Escalated")

	if _, err := s.AddStep(workflow.ID, todo.ID, 1); err != nil {
		t.Fatalf("add step: %v", err)
	}

	key := ProjectTaskTypeKey{ProjectID: project.ID, TaskTypeID: bug.ID}
	if _, err := s.AssignWorkflow(key, workflow.ID); err != nil {
		t.Fatalf("assign workflow: %v", err)
	}

	task := seedTask(t, s, "crash on save")
	task.ProjectID = &project.ID
	task.TaskTypeID = &bug.ID
	task.StatusID = &todo.ID
	if err := s.UpdateTask(task); err != nil {
		t.Fatalf("update with in-workflow status: %v", err)
	}

	// A general edit is no side door: the workflow check applies to the
	// status carried on the update exactly as it does to SetStatus.
	task.StatusID = &escape.ID
	if err := s.UpdateTask(task); !apperr.IsValidation(err) {
		t.Fatalf("update with out-of-workflow status: expected validation failure, got %v", err)
	}
}

func TestSetStatus_UncheckedWithoutGoverningWorkflow(t *testing.T) {
	s := newTestStore(t)
	anything := seedStatus(t, s, "Anything")
	task := seedTask(t, s, "loose task")

	updated, err := s.SetStatus(task.ID, anything.ID)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.StatusID == nil || *updated.StatusID != anything.ID {
		t.Fatalf("status not applied")
	}
}

func TestSetStatus_MissingIDs(t *testing.T) {
	s := newTestStore(t)
	task := seedTask(t, s, "A")
	status := seedStatus(t, s, "To Do")

	if _, err := s.SetStatus(404, status.ID); !apperr.IsNotFound(err) {
		t.Fatalf("missing task: expected not found, got %v", err)
	}
	if _, err := s.SetStatus(task.ID, 404); !apperr.IsNotFound(err) {
		t.Fatalf("missing status: expected not found, got %v", err)
	}
}

func TestComplete_StampsOnce(t *testing.T) {
	s := newTestStore(t)
	task := seedTask(t, s, "A")

	first, err := s.Complete(task.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if first.CompletedAt == nil {
		t.Fatalf("completion timestamp missing")
	}

	second, err := s.Complete(task.ID)
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if !second.CompletedAt.Equal(*first.CompletedAt) {
		t.Fatalf("completion timestamp moved on repeat call")
	}
}

func TestCreateTask_BlankTitle(t *testing.T) {
	s := newTestStore(t)

	err := s.CreateTask(&models.Task{Title: "   "})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}
