package store

import (
	"testing"

	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/models"
)

func memberIDs(t *testing.T, s *Store, groupID uint) map[uint]bool {
	t.Helper()
	members, err := s.MembersOf(groupID)
	if err != nil {
		t.Fatalf("members of %d: %v", groupID, err)
	}
	ids := make(map[uint]bool, len(members))
	for _, m := range members {
		ids[m.ID] = true
	}
	return ids
}

func groupIDs(t *testing.T, s *Store, userID uint) map[uint]bool {
	t.Helper()
	groups, err := s.GroupsOf(userID)
	if err != nil {
		t.Fatalf("groups of %d: %v", userID, err)
	}
	ids := make(map[uint]bool, len(groups))
	for _, g := range groups {
		ids[g.ID] = true
	}
	return ids
}

func TestMembership_AddThenRemove_StaysSymmetric(t *testing.T) {
	s := newTestStore(t)
	qa, err := s.CreateGroup("QA", "", nil)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	user1 := seedUser(t, s, "user1")
	user2 := seedUser(t, s, "user2")

	if err := s.AddMembers(qa.ID, []uint{user1.ID, user2.ID}); err != nil {
		t.Fatalf("add members: %v", err)
	}

	members := memberIDs(t, s, qa.ID)
	if !members[user1.ID] || !members[user2.ID] {
		t.Fatalf("both users should be members: %v", members)
	}
	if !groupIDs(t, s, user1.ID)[qa.ID] || !groupIDs(t, s, user2.ID)[qa.ID] {
		t.Fatalf("both users should see the group")
	}

	if err := s.RemoveMembers(qa.ID, []uint{user1.ID}); err != nil {
		t.Fatalf("remove members: %v", err)
	}

	members = memberIDs(t, s, qa.ID)
	if members[user1.ID] {
		t.Fatalf("user1 should have been removed")
	}
	if !members[user2.ID] {
		t.Fatalf("user2 should still be a member")
	}
	if groupIDs(t, s, user1.ID)[qa.ID] {
		t.Fatalf("user1 should no longer see the group")
	}
	if !groupIDs(t, s, user2.ID)[qa.ID] {
		t.Fatalf("user2 should still see the group")
	}
}

func TestMembership_AddIsAllOrNothing(t *testing.T) {
	s := newTestStore(t)
	qa, err := s.CreateGroup("QA", "", nil)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	user1 := seedUser(t, s, "user1")

	err = s.AddMembers(qa.ID, []uint{user1.ID, 404})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	// The resolvable user must not have been added either.
	if len(memberIDs(t, s, qa.ID)) != 0 {
		t.Fatalf("partial add leaked through")
	}
}

func TestMembership_MissingGroup(t *testing.T) {
	s := newTestStore(t)
	user1 := seedUser(t, s, "user1")

	if err := s.AddMembers(404, []uint{user1.ID}); !apperr.IsNotFound(err) {
		t.Fatalf("add: expected not found, got %v", err)
	}
	if err := s.RemoveMembers(404, []uint{user1.ID}); !apperr.IsNotFound(err) {
		t.Fatalf("remove: expected not found, got %v", err)
	}
}

func TestMembership_SoftDeletedUserLeavesDefaultViews(t *testing.T) {
	s := newTestStore(t)
	qa, err := s.CreateGroup("QA", "", nil)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	user1 := seedUser(t, s, "user1")

	if err := s.AddMembers(qa.ID, []uint{user1.ID}); err != nil {
		t.Fatalf("add members: %v", err)
	}
	if err := SoftDelete[models.User](s, user1.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if len(memberIDs(t, s, qa.ID)) != 0 {
		t.Fatalf("soft-deleted user still listed as member")
	}
}
