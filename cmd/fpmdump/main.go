package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/config"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/logging"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/observability"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/pipeline"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol/rtnetlink"
	"github.com/Yi-Tseng/Ryu-vRouter/internal/stream"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	format := flag.String("format", "", "input format: raw|hex (overrides config)")
	align := flag.Bool("align", false, "route attributes are padded to 4 bytes (overrides config)")
	all := flag.Bool("all", false, "keep netlink messages that are not route messages")
	initPath := flag.String("init", "", "write a config template to this path and exit")
	force := flag.Bool("force", false, "overwrite an existing file with -init")
	printConfig := flag.Bool("print-config", false, "print the effective config and exit")
	metricsFile := flag.String("metrics", "", "write prometheus counters to this file after the run (overrides config)")
	flag.Parse()

	if *initPath != "" {
		if err := config.WriteTemplate(*initPath, *force); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.InputFormat = *format
		case "align":
			cfg.AlignAttributes = *align
		case "all":
			cfg.SkipNonRoute = !*all
		case "metrics":
			cfg.MetricsFile = *metricsFile
		}
	})
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *printConfig {
		if err := config.Encode(os.Stdout, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logCfg := logging.ConfigureRuntime()
	if os.Getenv(logging.EnvLogLevel) == "" {
		logCfg.Level, _ = logging.ParseLevel(cfg.LogLevel)
		zerolog.SetGlobalLevel(logCfg.Level)
	}
	logger := observability.InitLogger("fpmdump", logCfg)

	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	out := bufio.NewWriter(os.Stdout)
	err := run(out, inputs, cfg, logger)
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		os.Exit(1)
	}
}

// run dumps every input and then writes the metrics file when one is
// configured. The metrics file is written even when an input failed.
func run(w io.Writer, inputs []string, cfg config.Config, logger zerolog.Logger) error {
	var failed error
	for _, path := range inputs {
		if err := dumpFile(w, path, cfg, logger); err != nil {
			logger.Error().Err(err).Str("input", path).Msg("dump failed")
			if failed == nil {
				failed = err
			}
		}
	}
	if cfg.MetricsFile != "" {
		if err := observability.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error().Err(err).Msg("metrics export failed")
			if failed == nil {
				failed = err
			}
		} else {
			logger.Debug().Str("path", cfg.MetricsFile).Msg("metrics written")
		}
	}
	return failed
}

func dumpFile(w io.Writer, path string, cfg config.Config, logger zerolog.Logger) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	data, err := stream.ReadInput(r, cfg.InputFormat)
	if err != nil {
		return err
	}
	return dump(w, data, cfg, logger.With().Str("input", path).Logger())
}

// dump prints every route frame in data. Undecodable frames are logged by the
// scanner; only a stream whose framing breaks is an error.
func dump(w io.Writer, data []byte, cfg config.Config, logger zerolog.Logger) error {
	s := stream.NewScanner(data, stream.Options{
		Decoder:      pipeline.Decoder{RtNetlink: rtnetlink.Decoder{Align: cfg.AlignAttributes}},
		SkipNonRoute: cfg.SkipNonRoute,
		Logger:       logger,
	})
	for s.Scan() {
		if _, err := fmt.Fprintln(w, formatRoute(s.Frame().Route)); err != nil {
			return err
		}
	}
	st := s.Stats()
	logger.Info().
		Int("frames", st.Frames).
		Int("routes", st.Routes).
		Int("not_applicable", st.NotApplicable).
		Int("filtered", st.Filtered).
		Int("errors", st.Errors).
		Int("truncated", st.Truncated).
		Msg("scan complete")
	return s.Err()
}
