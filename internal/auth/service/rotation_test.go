package service_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/soloauth/soloauth/internal/auth/service"
	"github.com/soloauth/soloauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestRotationServiceRotatesImmediatelyOnStart(t *testing.T) {
	t.Parallel()

	secrets := jwtx.NewSigningSecret()
	seed := secrets.Current()

	rot := service.NewSecretRotationService(secrets, slog.Default(), time.Hour)
	rot.Start()
	t.Cleanup(rot.Stop)

	// A fresh process never signs with the construction seed.
	require.NotEqual(t, seed, secrets.Current())
}

func TestRotationServicePeriodicRotation(t *testing.T) {
	t.Parallel()

	secrets := jwtx.NewSigningSecret()

	rot := service.NewSecretRotationService(secrets, slog.Default(), 25*time.Millisecond)
	rot.Start()
	t.Cleanup(rot.Stop)

	initial := secrets.Current()
	require.Eventually(t, func() bool {
		return secrets.Current() != initial
	}, time.Second, 5*time.Millisecond)
}

func TestRotationServiceStopIsSafe(t *testing.T) {
	t.Parallel()

	secrets := jwtx.NewSigningSecret()
	rot := service.NewSecretRotationService(secrets, slog.Default(), time.Hour)

	// Stop before Start is a no-op.
	rot.Stop()

	rot.Start()
	rot.Stop()

	// Stopped service no longer rotates.
	after := secrets.Current()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, after, secrets.Current())

	// Restart works.
	rot.Start()
	require.NotEqual(t, after, secrets.Current())
	rot.Stop()
}
