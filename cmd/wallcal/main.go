package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"wallcal/internal/compose"
	"wallcal/internal/config"
	"wallcal/internal/driver"
	"wallcal/internal/export"
	"wallcal/internal/index"
	appLog "wallcal/internal/log"
	"wallcal/internal/model"
	"wallcal/internal/source"
)

// flagConfig holds CLI flag values; non-empty values override the config file.
type flagConfig struct {
	configPath string
	year       int
	data       string
	outDir     string
	modes      string
	logLevel   string
	dump       bool
	icsPath    string
	sample     bool
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	applyFlags(conf, flags)

	if lvl, ok := appLog.ParseLevel(conf.LogLevel); ok {
		appLog.SetLevel(lvl)
	}

	year := flags.year
	if year == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "wallcal: -year is required when stdin is not a terminal")
			os.Exit(2)
		}
		year, err = promptYear(os.Stdin, os.Stdout)
		if err != nil {
			appLog.Error("no calendar year", err)
			os.Exit(2)
		}
	}

	modes, err := parseModes(conf.Modes)
	if err != nil {
		appLog.Error("invalid page size mode", err, "modes", strings.Join(conf.Modes, ","))
		os.Exit(2)
	}

	appLog.Info("effective config",
		"year", year,
		"data", conf.Data,
		"output_dir", conf.OutputDir,
		"modes", strings.Join(conf.Modes, ","),
		"font", conf.FontFamily,
		"feeds", len(conf.Feeds),
		"dump", flags.dump,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, stopping", "signal", sig.String())
		cancel()
	}()

	if flags.sample {
		if err := source.WriteSample(conf.Data, year); err != nil {
			appLog.Error("failed to write sample dataset", err, "path", conf.Data)
			os.Exit(1)
		}
		appLog.Info("sample dataset written", "path", conf.Data)
	}

	idx := index.Load(ctx, buildSource(conf))

	if flags.dump {
		if err := driver.Dump(os.Stdout, year, idx); err != nil {
			appLog.Error("dump failed", err)
			os.Exit(1)
		}
	}

	if flags.icsPath != "" {
		if err := writeICS(flags.icsPath, year, idx); err != nil {
			appLog.Error("ics export failed", err, "path", flags.icsPath)
			os.Exit(1)
		}
		appLog.Info("ics written", "path", flags.icsPath)
	}

	style := compose.DefaultStyle()
	style.FontFamily = conf.FontFamily
	style.WeekendShade = model.Color(conf.WeekendColor)
	style.BandAlpha = conf.BandAlpha

	wrap := make(map[compose.Mode]int, len(conf.WrapWidth))
	for k, w := range conf.WrapWidth {
		if m, err := compose.ParseMode(k); err == nil {
			wrap[m] = w
		}
	}

	paths, err := driver.Run(ctx, driver.Options{
		Year:       year,
		Modes:      modes,
		OutDir:     conf.OutputDir,
		Style:      style,
		WrapWidths: wrap,
	}, idx)
	if err != nil {
		appLog.Error("calendar generation failed", err, "year", year)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "wallcal.yaml", "Path to config file")
	flag.IntVar(&cfg.year, "year", 0, "Calendar year (prompted for when omitted on a terminal)")
	flag.StringVar(&cfg.data, "data", "", "Event dataset YAML (overrides config if set)")
	flag.StringVar(&cfg.outDir, "out", "", "Output directory (overrides config if set)")
	flag.StringVar(&cfg.modes, "mode", "", "Comma-separated page sizes: A4, A0 (overrides config if set)")
	flag.StringVar(&cfg.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.BoolVar(&cfg.dump, "dump", false, "Print the year's events as a table")
	flag.StringVar(&cfg.icsPath, "ics", "", "Also export the year's events to this .ics file")
	flag.BoolVar(&cfg.sample, "sample", false, "Write the sample dataset to the data path first")

	flag.Parse()

	return cfg
}

func applyFlags(conf *config.Config, f flagConfig) {
	if f.data != "" {
		conf.Data = f.data
	}
	if f.outDir != "" {
		conf.OutputDir = f.outDir
	}
	if f.modes != "" {
		conf.Modes = strings.Split(f.modes, ",")
	}
	if f.logLevel != "" {
		conf.LogLevel = f.logLevel
	}
}

func parseModes(names []string) ([]compose.Mode, error) {
	modes := make([]compose.Mode, 0, len(names))
	for _, n := range names {
		m, err := compose.ParseMode(n)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// buildSource merges the YAML dataset with the configured ICS feeds. A
// missing dataset is logged and treated as empty.
func buildSource(conf *config.Config) source.Tables {
	var srcs []source.Tables

	f, err := source.ReadFile(conf.Data)
	switch {
	case err == nil:
		srcs = append(srcs, f)
	case errors.Is(err, source.ErrUnavailable):
		appLog.Warn("event data unavailable, continuing without it", "path", conf.Data, "err", err.Error())
	default:
		appLog.Error("failed to read event data", err, "path", conf.Data)
	}

	if len(conf.Feeds) > 0 {
		feeds := make([]source.Feed, 0, len(conf.Feeds))
		for _, fc := range conf.Feeds {
			feeds = append(feeds, source.Feed{
				ID:        fc.ID,
				Table:     fc.Table,
				URL:       fc.URL,
				Path:      fc.Path,
				GridColor: fc.GridColor,
				TextColor: fc.TextColor,
			})
		}
		srcs = append(srcs, source.NewFeeds(feeds, source.NewFetcher(conf.CacheDir)))
	}

	if len(srcs) == 0 {
		return source.Empty{}
	}
	return source.Merge(srcs...)
}

func writeICS(path string, year int, idx *index.Index) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteICS(out, year, idx, time.Now()); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
