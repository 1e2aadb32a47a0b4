package sanitation

import (
	"time"

	"fedvlm/api/models"
	"fedvlm/api/services/sessions"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	SanitationService struct {
		Initialized bool
		Sessions    *sessions.SessionService
		Config      *models.Config

		logger    *zap.SugaredLogger
		scheduler *gocron.Scheduler
	}
)

func NewSanitationService(ss *sessions.SessionService, cfg *models.Config, logger *zap.SugaredLogger) *SanitationService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &SanitationService{
		Initialized: false,
		Sessions:    ss,
		Config:      cfg,
		logger:      logger,
	}

	s.Init()

	return s
}

func (s *SanitationService) Init() {
	if s.Initialized {
		return
	}

	// periodically drop render sessions nobody has touched for a while,
	// along with any fetch they still have in flight
	s.scheduler = gocron.NewScheduler(time.UTC)
	if _, err := s.scheduler.Every(s.Config.Sessions.SweepInterval).Do(func() {
		s.Sweep(time.Now())
	}); err != nil {
		s.logger.Errorw("unable to schedule session sweep", "interval", s.Config.Sessions.SweepInterval, "error", err)
		return
	}
	s.scheduler.StartAsync()

	s.Initialized = true
	s.logger.Infow("sanitation service initialized", "sweepInterval", s.Config.Sessions.SweepInterval, "idleTimeout", s.Config.Sessions.IdleTimeout)
}

func (s *SanitationService) Sweep(now time.Time) []uuid.UUID {
	expired := s.Sessions.Expire(s.Config.Sessions.IdleTimeout, now)
	if len(expired) > 0 {
		s.logger.Infow("expired idle sessions", "count", len(expired), "remaining", s.Sessions.Len())
	}
	return expired
}

func (s *SanitationService) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.Initialized = false
}
