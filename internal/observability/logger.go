package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/logging"
)

// InitLogger builds the process console logger on stderr and installs it as
// the zerolog global logger. Stdout stays free for decoded routes.
func InitLogger(app string, cfg logging.Config) zerolog.Logger {
	logger := NewLogger(os.Stderr, app, cfg)
	log.Logger = logger
	return logger
}

func NewLogger(w io.Writer, app string, cfg logging.Config) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.NoColor,
	}
	ctx := zerolog.New(output).Level(cfg.Level).With().Str("app", app)
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}
