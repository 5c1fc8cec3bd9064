package database

import (
	"testing"
	"time"

	"github.com/newsdeck/newsdeck/internal/models"
)

func TestCreateUserAndLookup(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "alice")

	if u.ID == "" {
		t.Fatal("CreateUser did not assign an ID")
	}

	byName, err := db.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if byName.ID != u.ID || !byName.IsActive {
		t.Errorf("GetUserByUsername = %+v", byName)
	}

	byEmail, err := db.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("GetUserByEmail = %+v", byEmail)
	}

	count, err := db.UserCount()
	if err != nil {
		t.Fatalf("UserCount: %v", err)
	}
	if count != 1 {
		t.Errorf("UserCount = %d, want 1", count)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	db := testDB(t)
	testUser(t, db, "alice")

	dup := &models.User{Email: "other@example.com", Username: "alice", PasswordHash: "hash"}
	if err := db.CreateUser(dup); err == nil {
		t.Error("CreateUser accepted a duplicate username")
	}

	dup = &models.User{Email: "alice@example.com", Username: "other", PasswordHash: "hash"}
	if err := db.CreateUser(dup); err == nil {
		t.Error("CreateUser accepted a duplicate email")
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "alice")

	sess := &models.Session{
		Token:     "token-1",
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := db.CreateSession(sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := db.GetSession("token-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.UserID != u.ID {
		t.Errorf("GetSession user = %q, want %q", got.UserID, u.ID)
	}

	if err := db.DeleteSession("token-1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := db.GetSession("token-1"); err == nil {
		t.Error("GetSession succeeded after deletion")
	}
}

func TestGetSessionExpired(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db, "alice")

	sess := &models.Session{
		Token:     "stale",
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := db.CreateSession(sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if _, err := db.GetSession("stale"); err == nil {
		t.Error("GetSession returned an expired session")
	}

	deleted, err := db.DeleteExpiredSessions()
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if deleted != 1 {
		t.Errorf("DeleteExpiredSessions = %d, want 1", deleted)
	}
}
