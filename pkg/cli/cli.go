// Package cli parses the runner's command line, environment and optional
// YAML configuration file into a Config.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of one run.
type Config struct {
	GamePath   string        // YAML game data file
	ConfigFile string        // optional YAML settings file
	Timeout    time.Duration // 0 means no limit
	LogLevel   string        // debug, info, warn, error
	Headless   bool
	ShowHelp   bool
	Dump       bool // dump the instance list when the run ends

	UninitFieldsAreZero bool
	UninitArgsAreZero   bool
	SpoofTime           time.Time // zero means use the wall clock
	MaxSteps            int       // 0 means no limit
}

// fileConfig is the layout of the --config file. Pointers tell unset keys
// apart from zero values.
type fileConfig struct {
	LogLevel            *string `yaml:"log_level"`
	Headless            *bool   `yaml:"headless"`
	Timeout             *int    `yaml:"timeout"`
	UninitFieldsAreZero *bool   `yaml:"uninit_fields_are_zero"`
	UninitArgsAreZero   *bool   `yaml:"uninit_args_are_zero"`
	SpoofTime           *string `yaml:"spoof_time"`
	MaxSteps            *int    `yaml:"max_steps"`
}

var boolFlags = map[string]bool{
	"h": true, "help": true, "headless": true, "dump": true,
	"uninit-zero": true, "lenient-args": true,
}

// ParseArgs builds a Config. Explicit flags win over environment variables,
// which win over the config file, which wins over defaults.
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("gm8run", flag.ContinueOnError)

	config := &Config{}
	var (
		timeoutSec int
		spoof      string
	)
	fs.IntVar(&timeoutSec, "timeout", 0, "stop after this many seconds")
	fs.IntVar(&timeoutSec, "t", 0, "stop after this many seconds (shorthand)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML settings file")
	fs.StringVar(&config.ConfigFile, "c", "", "YAML settings file (shorthand)")
	fs.BoolVar(&config.Headless, "headless", false, "run without a window")
	fs.BoolVar(&config.Dump, "dump", false, "dump instances on exit")
	fs.BoolVar(&config.UninitFieldsAreZero, "uninit-zero", false, "read uninitialized fields as 0")
	fs.BoolVar(&config.UninitArgsAreZero, "lenient-args", false, "read missing arguments as 0")
	fs.StringVar(&spoof, "spoof-time", "", "fixed start time (RFC3339) for deterministic runs")
	fs.IntVar(&config.MaxSteps, "max-steps", 0, "stop after this many frames")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	explicit := func(names ...string) bool {
		for _, n := range names {
			if set[n] {
				return true
			}
		}
		return false
	}

	if config.ConfigFile != "" {
		fc, err := readConfigFile(config.ConfigFile)
		if err != nil {
			return nil, err
		}
		if fc.LogLevel != nil && !explicit("log-level", "l") {
			config.LogLevel = *fc.LogLevel
		}
		if fc.Headless != nil && !explicit("headless") {
			config.Headless = *fc.Headless
		}
		if fc.Timeout != nil && !explicit("timeout", "t") {
			timeoutSec = *fc.Timeout
		}
		if fc.UninitFieldsAreZero != nil && !explicit("uninit-zero") {
			config.UninitFieldsAreZero = *fc.UninitFieldsAreZero
		}
		if fc.UninitArgsAreZero != nil && !explicit("lenient-args") {
			config.UninitArgsAreZero = *fc.UninitArgsAreZero
		}
		if fc.SpoofTime != nil && !explicit("spoof-time") {
			spoof = *fc.SpoofTime
		}
		if fc.MaxSteps != nil && !explicit("max-steps") {
			config.MaxSteps = *fc.MaxSteps
		}
	}

	if v := os.Getenv("HEADLESS"); v != "" && !explicit("headless") {
		config.Headless = v == "1" || strings.ToLower(v) == "true"
	}
	if v := os.Getenv("TIMEOUT"); v != "" && !explicit("timeout", "t") {
		if t, err := strconv.Atoi(v); err == nil && t > 0 {
			timeoutSec = t
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" && !explicit("log-level", "l") {
		config.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("GM8_UNINIT_ZERO"); v != "" && !explicit("uninit-zero") {
		config.UninitFieldsAreZero = v == "1" || strings.ToLower(v) == "true"
	}

	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	if config.MaxSteps < 0 {
		return nil, fmt.Errorf("max-steps must be non-negative, got %d", config.MaxSteps)
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if spoof != "" {
		t, err := time.Parse(time.RFC3339, spoof)
		if err != nil {
			return nil, fmt.Errorf("invalid spoof time %q: %w", spoof, err)
		}
		config.SpoofTime = t
	}

	if fs.NArg() > 0 {
		config.GamePath = fs.Arg(0)
	}
	return config, nil
}

func readConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &fc, nil
}

// reorderArgs moves flags ahead of positional arguments so the game path
// may appear anywhere.
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) == 0 || arg[0] != '-' {
			positional = append(positional, arg)
			continue
		}
		flags = append(flags, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") || boolFlags[name] {
			continue
		}
		if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
			i++
			flags = append(flags, args[i])
		}
	}
	return append(flags, positional...)
}

// PrintHelp writes the usage text to stdout.
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `gm8run - GameMaker 8 game runner

Usage:
  gm8run [options] <game.yaml>

Options:
  -t, --timeout <seconds>     stop after the given number of seconds (default: no limit)
  -l, --log-level <level>     debug, info, warn, error (default: info)
  -c, --config <file>         YAML settings file
  --headless                  run without a window
  --max-steps <n>             stop after n frames
  --spoof-time <rfc3339>      start the game clock at a fixed time
  --uninit-zero               read uninitialized fields as 0
  --lenient-args              read missing script arguments as 0
  --dump                      dump the instance list on exit
  -h, --help                  show this help

Environment Variables:
  HEADLESS=1                  run without a window
  TIMEOUT=<seconds>           timeout in seconds
  LOG_LEVEL=<level>           log level
  GM8_UNINIT_ZERO=1           read uninitialized fields as 0

Examples:
  gm8run game.yaml
  gm8run --headless --max-steps 300 --spoof-time 2009-01-01T00:00:00Z game.yaml
`)
}
