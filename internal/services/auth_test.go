package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/fenceplan/fenceplan/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())

	user, session, err := svc.Register(&RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("expected user id")
	}
	if session == nil || session.ID == "" {
		t.Fatal("expected session")
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Error("session already expired")
	}

	loginUser, loginSession, err := svc.Login(&LoginRequest{
		Email:    "new@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loginUser.ID != user.ID {
		t.Errorf("login resolved wrong user: %s vs %s", loginUser.ID, user.ID)
	}
	if loginSession.ID == session.ID {
		t.Error("login should open a fresh session")
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())

	user, _, err := svc.Register(&RegisterRequest{
		Email:    "  Mixed@Example.COM  ",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Email != "mixed@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}

	if _, _, err := svc.Login(&LoginRequest{
		Email:    "mixed@example.com",
		Password: "password123",
	}); err != nil {
		t.Errorf("login with normalized email failed: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())

	if _, _, err := svc.Register(&RegisterRequest{
		Email:    "taken@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, _, err := svc.Register(&RegisterRequest{
		Email:    "TAKEN@example.com",
		Password: "different456",
	})
	appErr := assertAppError(t, err, http.StatusBadRequest)
	if appErr.Message != "Email already registered" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestLoginUniformFailureMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())

	if _, _, err := svc.Register(&RegisterRequest{
		Email:    "real@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, wrongPass := svc.Login(&LoginRequest{
		Email:    "real@example.com",
		Password: "wrongpassword",
	})
	_, _, unknownEmail := svc.Login(&LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})

	passErr := assertAppError(t, wrongPass, http.StatusBadRequest)
	emailErr := assertAppError(t, unknownEmail, http.StatusBadRequest)
	if passErr.Message != emailErr.Message {
		t.Errorf("failure messages differ: %q vs %q", passErr.Message, emailErr.Message)
	}
	if passErr.Message != "Invalid credentials" {
		t.Errorf("unexpected message %q", passErr.Message)
	}
}

func TestRegisterClaimsPendingProject(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())
	project := createTestProject(t, db, "Guest Draft", nil)

	user, _, err := svc.Register(&RegisterRequest{
		Email:     "guest@example.com",
		Password:  "password123",
		ProjectID: &project.ID,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	var reloaded models.Project
	if err := db.First(&reloaded, project.ID).Error; err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if reloaded.UserID == nil || *reloaded.UserID != user.ID {
		t.Errorf("expected claimed project, got owner %v", reloaded.UserID)
	}
}

func TestRegisterSkipsAlreadyClaimedProject(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())
	owner := createTestUser(t, db, "owner@example.com")
	project := createTestProject(t, db, "Owned", &owner.ID)

	// Registration still succeeds; the claim is silently skipped.
	user, _, err := svc.Register(&RegisterRequest{
		Email:     "late@example.com",
		Password:  "password123",
		ProjectID: &project.ID,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user == nil {
		t.Fatal("expected user despite skipped claim")
	}

	var reloaded models.Project
	if err := db.First(&reloaded, project.ID).Error; err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if reloaded.UserID == nil || *reloaded.UserID != owner.ID {
		t.Errorf("project owner changed: %v", reloaded.UserID)
	}
}

func TestValidateSession(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())
	user := createTestUser(t, db, "user@example.com")

	session, err := svc.CreateSession(user.ID)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	got, err := svc.ValidateSession(session.ID)
	if err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	if got == nil || got.UserID != user.ID {
		t.Fatalf("expected session for %s, got %+v", user.ID, got)
	}
}

func TestValidateSessionUnknownOrEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())

	if got, err := svc.ValidateSession("no-such-session"); err != nil || got != nil {
		t.Errorf("expected nil, nil for unknown id, got %+v, %v", got, err)
	}
	if got, err := svc.ValidateSession(""); err != nil || got != nil {
		t.Errorf("expected nil, nil for empty id, got %+v, %v", got, err)
	}
}

func TestValidateSessionExpired(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())
	user := createTestUser(t, db, "user@example.com")

	expired := models.Session{
		ID:        "expired-session",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	got, err := svc.ValidateSession(expired.ID)
	if err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	if got != nil {
		t.Error("expired session validated")
	}
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())
	user := createTestUser(t, db, "user@example.com")

	session, err := svc.CreateSession(user.ID)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if err := svc.Logout(session.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if got, _ := svc.ValidateSession(session.ID); got != nil {
		t.Error("session survived logout")
	}

	// Unknown and empty ids are no-ops.
	if err := svc.Logout("no-such-session"); err != nil {
		t.Errorf("Logout(unknown) error = %v", err)
	}
	if err := svc.Logout(""); err != nil {
		t.Errorf("Logout(empty) error = %v", err)
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())
	user := createTestUser(t, db, "user@example.com")

	live, err := svc.CreateSession(user.ID)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	expired := models.Session{
		ID:        "stale-session",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	deleted, err := svc.PurgeExpiredSessions()
	if err != nil {
		t.Fatalf("PurgeExpiredSessions() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 purged session, got %d", deleted)
	}
	if got, _ := svc.ValidateSession(live.ID); got == nil {
		t.Error("live session was purged")
	}
}

func TestGetUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSessionConfig())
	user := createTestUser(t, db, "user@example.com")

	got, err := svc.GetUser(user.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Email != user.Email {
		t.Errorf("expected %q, got %q", user.Email, got.Email)
	}

	_, err = svc.GetUser("missing-user")
	assertAppError(t, err, http.StatusNotFound)
}
