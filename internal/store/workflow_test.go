package store

import (
	"reflect"
	"testing"

	"github.com/taskhive-dev/taskhive/internal/apperr"
)

func TestCreateWorkflow_DuplicateAndBlankNames(t *testing.T) {
	s := newTestStore(t)
	seedWorkflow(t, s, "Dev Process")

	if _, err := s.CreateWorkflow("Dev Process", ""); !apperr.IsDuplicateName(err) {
		t.Fatalf("expected duplicate name, got %v", err)
	}
	if _, err := s.CreateWorkflow("   ", ""); !apperr.IsValidation(err) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestCreateStatus_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	seedStatus(t, s, "To Do")

	if _, err := s.CreateStatus("To Do", ""); !apperr.IsDuplicateName(err) {
		t.Fatalf("expected duplicate name, got %v", err)
	}
}

func TestStepsInOrder_ReturnsProgression(t *testing.T) {
	s := newTestStore(t)
	workflow := seedWorkflow(t, s, "Dev Process")
	todo := seedStatus(t, s, "To Do")
	inProgress := seedStatus(t, s, "In Progress")
	done := seedStatus(t, s, "Done")

	// Insert out of order; the sequence number decides.
	for _, step := range []struct {
		statusID uint
		seq      int
	}{
		{done.ID, 3},
		{todo.ID, 1},
		{inProgress.ID, 2},
	} {
		if _, err := s.AddStep(workflow.ID, step.statusID, step.seq); err != nil {
			t.Fatalf("add step seq %d: %v", step.seq, err)
		}
	}

	steps, err := s.StepsInOrder(workflow.ID)
	if err != nil {
		t.Fatalf("steps in order: %v", err)
	}

	var names []string
	var seqs []int
	for _, step := range steps {
		names = append(names, step.Status.StatusName)
		seqs = append(seqs, step.SequenceNumber)
	}
	if !reflect.DeepEqual(names, []string{"To Do", "In Progress", "Done"}) {
		t.Fatalf("wrong order: %v", names)
	}
	if !reflect.DeepEqual(seqs, []int{1, 2, 3}) {
		t.Fatalf("wrong sequence numbers: %v", seqs)
	}

	// A read without intervening writes returns identical output.
	again, err := s.StepsInOrder(workflow.ID)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(again) != len(steps) {
		t.Fatalf("second read differs: %d vs %d steps", len(again), len(steps))
	}
	for i := range steps {
		if again[i].StatusID != steps[i].StatusID || again[i].SequenceNumber != steps[i].SequenceNumber {
			t.Fatalf("second read differs at %d", i)
		}
	}
}

func TestAddStep_DuplicateStatusInWorkflow(t *testing.T) {
	s := newTestStore(t)
	workflow := seedWorkflow(t, s, "Dev Process")
	todo := seedStatus(t, s, "To Do")

	if _, err := s.AddStep(workflow.ID, todo.ID, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := s.AddStep(workflow.ID, todo.ID, 2); !apperr.IsDuplicateAssociation(err) {
		t.Fatalf("expected duplicate association, got %v", err)
	}

	steps, err := s.StepsInOrder(workflow.ID)
	if err != nil {
		t.Fatalf("steps in order: %v", err)
	}
	if len(steps) != 1 {
		t.Fatalf("workflow should still have exactly one step, has %d", len(steps))
	}
}

func TestAddStep_DuplicateSequenceNumber(t *testing.T) {
	s := newTestStore(t)
	workflow := seedWorkflow(t, s, "Dev Process")
	todo := seedStatus(t, s, "To Do")
	done := seedStatus(t, s, "Done")

	if _, err := s.AddStep(workflow.ID, todo.ID, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := s.AddStep(workflow.ID, done.ID, 1); !apperr.IsDuplicateAssociation(err) {
		t.Fatalf("expected duplicate association, got %v", err)
	}

	steps, err := s.StepsInOrder(workflow.ID)
	if err != nil {
		t.Fatalf("steps in order: %v", err)
	}
	if len(steps) != 1 || steps[0].StatusID != todo.ID {
		t.Fatalf("existing step should be unchanged, got %+v", steps)
	}
}

func TestAddStep_SameStatusAcrossWorkflows(t *testing.T) {
	s := newTestStore(t)
	dev := seedWorkflow(t, s, "Dev Process")
	support := seedWorkflow(t, s, "Support Process")
	todo := seedStatus(t, s, "To Do")

	if _, err := s.AddStep(dev.ID, todo.ID, 1); err != nil {
		t.Fatalf("dev add: %v", err)
	}
	// Statuses are independent of workflows; reuse is expected.
	if _, err := s.AddStep(support.ID, todo.ID, 5); err != nil {
		t.Fatalf("support add: %v", err)
	}
}

func TestAddStep_UnresolvableIDs(t *testing.T) {
	s := newTestStore(t)
	workflow := seedWorkflow(t, s, "Dev Process")
	todo := seedStatus(t, s, "To Do")

	if _, err := s.AddStep(404, todo.ID, 1); !apperr.IsNotFound(err) {
		t.Fatalf("missing workflow: expected not found, got %v", err)
	}
	if _, err := s.AddStep(workflow.ID, 404, 1); !apperr.IsNotFound(err) {
		t.Fatalf("missing status: expected not found, got %v", err)
	}
}

func TestRemoveStep_ByCompositeKey(t *testing.T) {
	s := newTestStore(t)
	workflow := seedWorkflow(t, s, "Dev Process")
	todo := seedStatus(t, s, "To Do")

	if _, err := s.AddStep(workflow.ID, todo.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	key := WorkflowStepKey{WorkflowID: workflow.ID, StatusID: todo.ID}
	if err := s.RemoveStep(key); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.RemoveStep(key); !apperr.IsNotFound(err) {
		t.Fatalf("second remove: expected not found, got %v", err)
	}
}

func TestHasAtLeastOneStep(t *testing.T) {
	s := newTestStore(t)
	workflow := seedWorkflow(t, s, "Dev Process")

	ok, err := s.HasAtLeastOneStep(workflow.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ok {
		t.Fatalf("empty workflow reported as having steps")
	}

	todo := seedStatus(t, s, "To Do")
	if _, err := s.AddStep(workflow.ID, todo.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	ok, err = s.HasAtLeastOneStep(workflow.ID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !ok {
		t.Fatalf("workflow with a step reported as empty")
	}
}
