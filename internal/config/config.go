package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/logging"
)

// Input formats accepted by the scanner.
const (
	FormatRaw = "raw"
	FormatHex = "hex"
)

// Config drives fpmdump.
type Config struct {
	InputFormat     string `toml:"input_format"`
	AlignAttributes bool   `toml:"align_attributes"`
	SkipNonRoute    bool   `toml:"skip_non_route"`
	LogLevel        string `toml:"log_level"`
	MetricsFile     string `toml:"metrics_file"`
}

func Default() Config {
	return Config{
		InputFormat:  FormatRaw,
		SkipNonRoute: true,
		LogLevel:     "info",
	}
}

// Load reads path and applies the keys it defines on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("input_format") {
		cfg.InputFormat = strings.ToLower(strings.TrimSpace(cfg.InputFormat))
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(cfg.LogLevel)
	}
	if meta.IsDefined("metrics_file") {
		cfg.MetricsFile = strings.TrimSpace(cfg.MetricsFile)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	switch cfg.InputFormat {
	case FormatRaw, FormatHex:
	default:
		return fmt.Errorf("config input_format must be %q or %q, got %q", FormatRaw, FormatHex, cfg.InputFormat)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("config log_level %q is not a known level", cfg.LogLevel)
	}
	return nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config encode failed: %w", err)
	}
	_, err = w.Write(data)
	return err
}
