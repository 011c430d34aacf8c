package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/soloauth/soloauth/pkg/jwtx"
)

// DefaultRotationInterval is how often the signing secret is replaced when no
// interval is configured.
const DefaultRotationInterval = 24 * time.Hour

// SecretRotationService periodically replaces the bearer-credential signing
// secret. It runs on its own schedule, decoupled from request handling:
// rotation is a single atomic store, so it neither blocks nor is blocked by
// in-flight requests.
//
// Start rotates once immediately before arming the timer, so a fresh process
// signs with its second generated secret rather than the construction seed.
type SecretRotationService struct {
	secrets  *jwtx.SigningSecret
	logger   *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	stopped chan struct{}
}

func NewSecretRotationService(
	secrets *jwtx.SigningSecret,
	logger *slog.Logger,
	interval time.Duration,
) *SecretRotationService {
	if interval <= 0 {
		interval = DefaultRotationInterval
	}
	return &SecretRotationService{
		secrets:  secrets,
		logger:   logger,
		interval: interval,
	}
}

// Start performs the initial rotation and launches the background loop.
// Calling Start on a running service is a no-op.
func (s *SecretRotationService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.stopped = make(chan struct{})

	s.rotate()

	go s.run(s.stop, s.stopped)
}

// Stop terminates the background loop and waits for it to exit. Safe to call
// on a service that was never started.
func (s *SecretRotationService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.stopped
	s.stop = nil
	s.stopped = nil
}

func (s *SecretRotationService) run(stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.rotate()
		case <-stop:
			return
		}
	}
}

func (s *SecretRotationService) rotate() {
	if _, err := s.secrets.Rotate(); err != nil {
		// Keep signing with the previous secret; outstanding credentials
		// stay valid until the next attempt succeeds.
		s.logger.Error("signing secret rotation failed", "error", err)
		return
	}
	s.logger.Info("signing secret rotated", "interval", s.interval.String())
}
