package services

import (
	"errors"
	"strings"
	"time"

	"github.com/fenceplan/fenceplan/internal/config"
	"github.com/fenceplan/fenceplan/internal/models"
	"github.com/fenceplan/fenceplan/internal/utils"
	"github.com/fenceplan/fenceplan/pkg/logger"
	"github.com/fenceplan/fenceplan/pkg/response"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService struct {
	db         *gorm.DB
	projects   *ProjectService
	sessionTTL time.Duration
}

func NewAuthService(db *gorm.DB, sessionCfg *config.SessionConfig) *AuthService {
	return &AuthService{
		db:         db,
		projects:   NewProjectService(db),
		sessionTTL: time.Duration(sessionCfg.TTLHours) * time.Hour,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	// ProjectID carries a pending guest project to claim at registration.
	ProjectID *uint `json:"projectId"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account, claims a pending guest project when one is
// supplied, and opens a session. User creation and claim run in a single
// transaction so the guest's work cannot be orphaned between the two.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, *models.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, nil, response.NewConflict("Email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := models.User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hashed,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if req.ProjectID != nil {
			claimed, err := s.projects.ClaimPending(tx, *req.ProjectID, user.ID)
			if err != nil {
				return err
			}
			if !claimed {
				// Stale or already-claimed id; registration proceeds anyway.
				logger.Warn().
					Uint("project_id", *req.ProjectID).
					Str("user_id", user.ID).
					Msg("pending project claim skipped")
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	session, err := s.CreateSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, session, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(req *LoginRequest) (*models.User, *models.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewAuthError()
		}
		return nil, nil, err
	}

	if !utils.CheckPassword(req.Password, user.HashedPassword) {
		return nil, nil, response.NewAuthError()
	}

	session, err := s.CreateSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, session, nil
}

// CreateSession opens a fresh session for the user.
func (s *AuthService) CreateSession(userID string) (*models.Session, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// ValidateSession resolves a cookie-delivered session id to a live session.
// Expired or unknown ids return nil without error.
func (s *AuthService) ValidateSession(id string) (*models.Session, error) {
	if id == "" {
		return nil, nil
	}
	var session models.Session
	err := s.db.Where("id = ? AND expires_at > ?", id, time.Now()).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Logout destroys the server-side session. Unknown ids are a no-op.
func (s *AuthService) Logout(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.db.Where("id = ?", sessionID).Delete(&models.Session{}).Error
}

// GetUser returns the account behind a session's user id.
func (s *AuthService) GetUser(userID string) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// PurgeExpiredSessions deletes every expired session row and returns the
// number removed. Called from the cleanup scheduler.
func (s *AuthService) PurgeExpiredSessions() (int64, error) {
	result := s.db.Where("expires_at <= ?", time.Now()).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
