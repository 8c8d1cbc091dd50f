package store

import (
	"testing"

	"github.com/taskhive-dev/taskhive/internal/apperr"
)

func TestProjectUser_CreateFindDelete(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner")
	member := seedUser(t, s, "member")
	project := seedProject(t, s, "Apollo", owner.ID)

	key := ProjectUserKey{ProjectID: project.ID, UserID: member.ID}

	if _, err := s.AddProjectUser(key, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddProjectUser(key, nil); !apperr.IsDuplicateAssociation(err) {
		t.Fatalf("expected duplicate association, got %v", err)
	}

	row, err := s.ProjectUser(key)
	if err != nil {
		t.Fatalf("find exact: %v", err)
	}
	if row.ProjectID != project.ID || row.UserID != member.ID {
		t.Fatalf("wrong row: %+v", row)
	}
	if row.CreatedAt.IsZero() {
		t.Fatalf("association row missing audit timestamp")
	}

	byProject, err := s.ProjectUsersByProject(project.ID)
	if err != nil {
		t.Fatalf("by project: %v", err)
	}
	if len(byProject) != 1 {
		t.Fatalf("expected one row by project, got %d", len(byProject))
	}

	byUser, err := s.ProjectUsersByUser(member.ID)
	if err != nil {
		t.Fatalf("by user: %v", err)
	}
	if len(byUser) != 1 {
		t.Fatalf("expected one row by user, got %d", len(byUser))
	}

	if err := s.RemoveProjectUser(key); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.ProjectUser(key); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found after remove, got %v", err)
	}
}

func TestProjectUser_MissingEndpoints(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner")
	project := seedProject(t, s, "Apollo", owner.ID)

	if _, err := s.AddProjectUser(ProjectUserKey{ProjectID: 404, UserID: owner.ID}, nil); !apperr.IsNotFound(err) {
		t.Fatalf("missing project: expected not found, got %v", err)
	}
	if _, err := s.AddProjectUser(ProjectUserKey{ProjectID: project.ID, UserID: 404}, nil); !apperr.IsNotFound(err) {
		t.Fatalf("missing user: expected not found, got %v", err)
	}
}

func TestProjectUsers_BulkRemovalByEndpoint(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner")
	member1 := seedUser(t, s, "member1")
	member2 := seedUser(t, s, "member2")
	project := seedProject(t, s, "Apollo", owner.ID)

	for _, id := range []uint{member1.ID, member2.ID} {
		if _, err := s.AddProjectUser(ProjectUserKey{ProjectID: project.ID, UserID: id}, nil); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}

	if err := s.RemoveProjectUsersByProject(project.ID); err != nil {
		t.Fatalf("bulk remove: %v", err)
	}

	rows, err := s.ProjectUsersByProject(project.ID)
	if err != nil {
		t.Fatalf("by project: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows after bulk removal, got %d", len(rows))
	}
}

func TestAssignWorkflow_DuplicateAndReassign(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner")
	project := seedProject(t, s, "Apollo", owner.ID)
	bug, err := s.CreateTaskType("Bug", "")
	if err != nil {
		t.Fatalf("create task type: %v", err)
	}
	dev := seedWorkflow(t, s, "Dev Process")
	support := seedWorkflow(t, s, "Support Process")

	key := ProjectTaskTypeKey{ProjectID: project.ID, TaskTypeID: bug.ID}

	if _, err := s.AssignWorkflow(key, dev.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := s.AssignWorkflow(key, support.ID); !apperr.IsDuplicateAssociation(err) {
		t.Fatalf("expected duplicate association, got %v", err)
	}

	if err := s.ReassignWorkflow(key, support.ID); err != nil {
		t.Fatalf("reassign: %v", err)
	}
	row, err := s.ProjectTaskType(key)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if row.WorkflowID != support.ID {
		t.Fatalf("workflow payload not updated: %+v", row)
	}

	if err := s.ReassignWorkflow(ProjectTaskTypeKey{ProjectID: 404, TaskTypeID: bug.ID}, dev.ID); !apperr.IsNotFound(err) {
		t.Fatalf("reassign missing mapping: expected not found, got %v", err)
	}
}

func TestProjectReachableUsers_ReflectsAssociationRows(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner")
	direct := seedUser(t, s, "direct")
	grouped := seedUser(t, s, "grouped")
	both := seedUser(t, s, "both")
	outsider := seedUser(t, s, "outsider")
	project := seedProject(t, s, "Apollo", owner.ID)

	qa, err := s.CreateGroup("QA", "", nil)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if err := s.AddMembers(qa.ID, []uint{grouped.ID, both.ID}); err != nil {
		t.Fatalf("add members: %v", err)
	}

	if _, err := s.AddProjectUser(ProjectUserKey{ProjectID: project.ID, UserID: direct.ID}, nil); err != nil {
		t.Fatalf("add project user: %v", err)
	}
	if _, err := s.AddProjectUser(ProjectUserKey{ProjectID: project.ID, UserID: both.ID}, nil); err != nil {
		t.Fatalf("add project user: %v", err)
	}
	if _, err := s.AddProjectGroup(ProjectGroupKey{ProjectID: project.ID, GroupID: qa.ID}, nil); err != nil {
		t.Fatalf("add project group: %v", err)
	}

	users, err := s.ProjectReachableUsers(project.ID)
	if err != nil {
		t.Fatalf("reachable users: %v", err)
	}

	got := make(map[uint]int)
	for _, u := range users {
		got[u.ID]++
	}
	for _, want := range []uint{direct.ID, grouped.ID, both.ID} {
		if got[want] != 1 {
			t.Fatalf("user %d should appear exactly once, got %d", want, got[want])
		}
	}
	if got[outsider.ID] != 0 {
		t.Fatalf("outsider should not be reachable")
	}

	// The projection is derived, never stored: dropping the group binding
	// must drop its members from the view.
	if err := s.RemoveProjectGroup(ProjectGroupKey{ProjectID: project.ID, GroupID: qa.ID}); err != nil {
		t.Fatalf("remove project group: %v", err)
	}
	users, err = s.ProjectReachableUsers(project.ID)
	if err != nil {
		t.Fatalf("reachable users: %v", err)
	}
	for _, u := range users {
		if u.ID == grouped.ID {
			t.Fatalf("group member still reachable after the binding was removed")
		}
	}
}
