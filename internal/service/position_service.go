package service

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"camPark/internal/core"
	"camPark/internal/domain"
)

type session struct {
	throttler *core.Throttler
	lastSeen  time.Time
}

// positionService keeps one throttler per browsing session so prompt
// cooldowns are session-scoped and vanish when the session goes idle.
type positionService struct {
	sync.RWMutex
	registry *core.Registry
	notifier PromptNotifier
	logger   *slog.Logger

	sessions map[string]*session
	cooldown time.Duration
	ttl      time.Duration
}

func NewPositionService(
	registry *core.Registry,
	notifier PromptNotifier,
	logger *slog.Logger,
	cooldown time.Duration,
	sessionTTL time.Duration,
) PositionService {
	s := &positionService{
		registry: registry,
		notifier: notifier,
		logger:   logger,
		sessions: make(map[string]*session),
		cooldown: cooldown,
		ttl:      sessionTTL,
	}

	// Idle sessions are evicted the same way the rate limiter drops stale
	// visitors.
	go s.cleanupSessions()

	return s
}

func (s *positionService) UpdatePosition(ctx context.Context, req domain.PositionUpdateRequest) (domain.PositionUpdateResponse, error) {
	th := s.getSession(req.SessionID)

	prompts, err := th.OnPositionUpdate(req.Lat, req.Lng)
	if err != nil {
		s.logger.Warn("position update rejected",
			slog.String("session_id", req.SessionID),
			slog.Float64("lat", req.Lat),
			slog.Float64("lng", req.Lng),
			slog.Any("error", err),
		)
		return domain.PositionUpdateResponse{}, err
	}

	now := time.Now().UTC()
	for _, code := range prompts {
		s.logger.Info("report prompt",
			slog.String("session_id", req.SessionID),
			slog.String("zone_code", code),
		)
		if s.notifier != nil {
			s.notifier.NotifyPrompt(domain.PromptEvent{
				SessionID:  req.SessionID,
				ZoneCode:   code,
				PromptedAt: now,
			})
		}
	}

	if prompts == nil {
		prompts = []string{}
	}
	return domain.PositionUpdateResponse{Prompts: prompts}, nil
}

// getSession holds the write lock for the whole lookup-or-create so two
// concurrent first requests cannot mint separate throttlers for one
// session, and lastSeen is never touched outside the lock.
func (s *positionService) getSession(id string) *core.Throttler {
	s.Lock()
	defer s.Unlock()

	sess, exists := s.sessions[id]
	if !exists {
		sess = &session{
			throttler: core.NewThrottler(s.registry, core.ThrottlerConfig{CooldownWindow: s.cooldown}),
		}
		s.sessions[id] = sess
	}
	sess.lastSeen = time.Now()
	return sess.throttler
}

func (s *positionService) cleanupSessions() {
	for {
		time.Sleep(time.Minute)
		s.Lock()
		for id, sess := range s.sessions {
			if time.Since(sess.lastSeen) > s.ttl {
				delete(s.sessions, id)
			}
		}
		s.Unlock()
	}
}
