package services

import (
	"github.com/fenceplan/fenceplan/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SessionCleanupService purges expired sessions on a schedule so the
// sessions table does not accumulate dead rows.
type SessionCleanupService struct {
	auth          *AuthService
	cronScheduler *cron.Cron
}

func NewSessionCleanupService(auth *AuthService) *SessionCleanupService {
	return &SessionCleanupService{auth: auth}
}

// StartScheduler runs an hourly purge, plus one immediately at startup.
func (s *SessionCleanupService) StartScheduler() {
	s.runPurge()

	s.cronScheduler = cron.New()
	if _, err := s.cronScheduler.AddFunc("@hourly", s.runPurge); err != nil {
		logger.Error().Err(err).Msg("failed to schedule session cleanup")
		return
	}
	s.cronScheduler.Start()
	logger.Info().Msg("session cleanup scheduler started")
}

// StopScheduler stops the purge schedule.
func (s *SessionCleanupService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

func (s *SessionCleanupService) runPurge() {
	deleted, err := s.auth.PurgeExpiredSessions()
	if err != nil {
		logger.Error().Err(err).Msg("failed to purge expired sessions")
		return
	}
	if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Msg("purged expired sessions")
	}
}
