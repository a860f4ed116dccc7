package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/internal/config"
)

// TokenRefresher é implementado pelo metaclient.TokenManager
type TokenRefresher interface {
	RefreshToken(ctx context.Context) error
}

// TokenRefreshService renova periodicamente o token de longa duração do modo direto
type TokenRefreshService struct {
	scheduler *gocron.Scheduler
	config    config.TokenRefresh
	tokens    TokenRefresher

	mu            sync.Mutex
	running       bool
	lastRefreshAt time.Time
	lastErr       error
}

func NewTokenRefreshService(tokens TokenRefresher, cfg config.TokenRefresh) *TokenRefreshService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": cfg.CronSchedule,
		"enabled":       cfg.Enabled,
	}).Info("scheduler: token refresh configuration loaded")

	return &TokenRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    cfg,
		tokens:    tokens,
	}
}

// Start agenda a renovação e para o agendador quando ctx é cancelado
func (s *TokenRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduler: token refresh disabled by configuration")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule token refresh: %w", err)
	}

	s.scheduler.StartAsync()
	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: token refresh started")

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping token refresh")
		s.scheduler.Stop()
	}()

	return nil
}

// refresh ignora a execução quando a anterior ainda não terminou
func (s *TokenRefreshService) refresh(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("scheduler: token refresh already running, skipping")
		return
	}
	s.running = true
	s.mu.Unlock()

	startTime := time.Now()
	err := s.tokens.RefreshToken(ctx)

	s.mu.Lock()
	s.running = false
	s.lastRefreshAt = startTime
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		logrus.WithError(err).Error("scheduler: token refresh failed")
		return
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("scheduler: token refresh finished")
}

// Status devolve o horário e o erro da última renovação
func (s *TokenRefreshService) Status() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRefreshAt, s.lastErr
}
