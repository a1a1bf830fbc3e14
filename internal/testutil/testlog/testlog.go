package testlog

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/logging"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/observability"
)

// Start configures the test log profile and returns a logger writing through t.
func Start(t *testing.T) zerolog.Logger {
	t.Helper()
	cfg := logging.ConfigureTests()
	cfg.NoColor = true
	logger := observability.NewLogger(zerolog.NewTestWriter(t), "test", cfg)
	logger.Info().Str("test", t.Name()).Msg("start")
	return logger
}
