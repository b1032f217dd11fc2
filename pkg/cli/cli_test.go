package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HEADLESS", "TIMEOUT", "LOG_LEVEL", "GM8_UNINIT_ZERO"} {
		t.Setenv(k, "")
	}
}

func TestParseArgs_ValidArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name:     "defaults",
			args:     []string{},
			expected: Config{LogLevel: "info"},
		},
		{
			name:     "game path",
			args:     []string{"game.yaml"},
			expected: Config{GamePath: "game.yaml", LogLevel: "info"},
		},
		{
			name:     "timeout shorthand",
			args:     []string{"-t", "5"},
			expected: Config{Timeout: 5 * time.Second, LogLevel: "info"},
		},
		{
			name:     "log level",
			args:     []string{"--log-level", "debug"},
			expected: Config{LogLevel: "debug"},
		},
		{
			name:     "help",
			args:     []string{"-h"},
			expected: Config{LogLevel: "info", ShowHelp: true},
		},
		{
			name: "flags after the game path",
			args: []string{"game.yaml", "--headless", "--max-steps", "300", "--dump"},
			expected: Config{
				GamePath: "game.yaml", LogLevel: "info", Headless: true, MaxSteps: 300, Dump: true,
			},
		},
		{
			name: "policies",
			args: []string{"--uninit-zero", "--lenient-args", "game.yaml"},
			expected: Config{
				GamePath: "game.yaml", LogLevel: "info", UninitFieldsAreZero: true, UninitArgsAreZero: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			config, err := ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *config != tt.expected {
				t.Errorf("ParseArgs(%v) = %+v, want %+v", tt.args, *config, tt.expected)
			}
		})
	}
}

func TestParseArgs_SpoofTime(t *testing.T) {
	clearEnv(t)
	config, err := ParseArgs([]string{"--spoof-time", "2009-01-01T00:00:00Z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC)
	if !config.SpoofTime.Equal(want) {
		t.Errorf("SpoofTime = %v, want %v", config.SpoofTime, want)
	}
}

func TestParseArgs_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative timeout", []string{"--timeout", "-10"}},
		{"invalid log level", []string{"--log-level", "invalid"}},
		{"invalid log level shorthand", []string{"-l", "trace"}},
		{"negative max steps", []string{"--max-steps", "-1"}},
		{"bad spoof time", []string{"--spoof-time", "yesterday"}},
		{"missing config file", []string{"--config", "/nonexistent/settings.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := ParseArgs(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseArgs_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HEADLESS", "true")
	t.Setenv("TIMEOUT", "7")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("GM8_UNINIT_ZERO", "1")

	config, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !config.Headless || config.Timeout != 7*time.Second || config.LogLevel != "warn" || !config.UninitFieldsAreZero {
		t.Errorf("environment not applied: %+v", *config)
	}

	t.Run("flags win", func(t *testing.T) {
		config, err := ParseArgs([]string{"-l", "error", "-t", "2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.LogLevel != "error" || config.Timeout != 2*time.Second {
			t.Errorf("flags overridden by environment: %+v", *config)
		}
	})
}

func TestParseArgs_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := "log_level: debug\nheadless: true\ntimeout: 3\nuninit_args_are_zero: true\nmax_steps: 60\nspoof_time: 2010-05-06T07:08:09Z\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := ParseArgs([]string{"--config", path, "--max-steps", "10", "game.yaml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.LogLevel != "debug" || !config.Headless || config.Timeout != 3*time.Second || !config.UninitArgsAreZero {
		t.Errorf("config file not applied: %+v", *config)
	}
	if config.MaxSteps != 10 {
		t.Errorf("MaxSteps = %d, want the flag value 10", config.MaxSteps)
	}
	if config.SpoofTime.Year() != 2010 {
		t.Errorf("SpoofTime = %v", config.SpoofTime)
	}

	t.Run("environment beats file", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "error")
		config, err := ParseArgs([]string{"-c", path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.LogLevel != "error" {
			t.Errorf("LogLevel = %q, want error", config.LogLevel)
		}
	})
}

func TestReorderArgs(t *testing.T) {
	got := reorderArgs([]string{"game.yaml", "--headless", "-t", "5", "--log-level=debug"})
	want := []string{"--headless", "-t", "5", "--log-level=debug", "game.yaml"}
	if len(got) != len(want) {
		t.Fatalf("reorderArgs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reorderArgs = %v, want %v", got, want)
		}
	}
}
