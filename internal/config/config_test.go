package config

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STARTPAGE_REDIS_ADDR", "")
	t.Setenv("STARTPAGE_LOG_LEVEL", "")
	t.Setenv("STARTPAGE_WATCH_CONFIG", "")

	cfg := Load()

	if cfg.UseRedis() {
		t.Error("UseRedis() = true without STARTPAGE_REDIS_ADDR")
	}
	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.ConfigFile != "./data/page-config.json" {
		t.Errorf("ConfigFile = %q", cfg.ConfigFile)
	}
	if !cfg.WatchConfigFile {
		t.Error("WatchConfigFile = false, want true by default")
	}
	if cfg.ClockInterval != 200*time.Millisecond {
		t.Errorf("ClockInterval = %v, want 200ms", cfg.ClockInterval)
	}
	if cfg.WeatherTimeout != 10*time.Second {
		t.Errorf("WeatherTimeout = %v, want 10s", cfg.WeatherTimeout)
	}
	if cfg.AllowedHosts != nil || cfg.AllowedCIDRS != nil {
		t.Errorf("access lists = %v / %v, want none", cfg.AllowedHosts, cfg.AllowedCIDRS)
	}
}

func TestLoadRedisBackend(t *testing.T) {
	t.Setenv("STARTPAGE_REDIS_ADDR", "localhost:6379")
	t.Setenv("STARTPAGE_REDIS_DB", "2")
	t.Setenv("STARTPAGE_REDIS_PASSWORD_REQUIRED", "true")
	t.Setenv("STARTPAGE_REDIS_PASSWORD", "s3cret")
	t.Setenv("STARTPAGE_ALLOWED_HOSTS", "start.home.lan, 'localhost:8080'")

	cfg := Load()

	if !cfg.UseRedis() || cfg.RedisDB != 2 || cfg.RedisPassword != "s3cret" {
		t.Errorf("redis settings = addr %q db %d", cfg.RedisAddr, cfg.RedisDB)
	}
	if diff := cmp.Diff([]string{"start.home.lan", "localhost:8080"}, cfg.AllowedHosts); diff != "" {
		t.Errorf("AllowedHosts mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRedisPanics(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing db",
			env:  map[string]string{"STARTPAGE_REDIS_ADDR": "localhost:6379", "STARTPAGE_REDIS_DB": ""},
		},
		{
			name: "missing required password",
			env: map[string]string{
				"STARTPAGE_REDIS_ADDR":              "localhost:6379",
				"STARTPAGE_REDIS_DB":                "0",
				"STARTPAGE_REDIS_PASSWORD_REQUIRED": "true",
				"STARTPAGE_REDIS_PASSWORD":          "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			defer func() {
				if r := recover(); r == nil {
					t.Error("Load() should have panicked")
				}
			}()
			Load()
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{RedisUser: "default", RedisPassword: "s3cret", RedisAddr: "localhost:6379"}
	out := cfg.Redacted()

	if strings.Contains(out.RedisPassword, "s3cret") || out.RedisUser == "default" {
		t.Errorf("Redacted() leaked credentials: %+v", out)
	}
	if cfg.RedisPassword != "s3cret" {
		t.Error("Redacted() modified the original")
	}
}

func TestRequireEnvInt(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  int
		wantPanic bool
	}{
		{name: "valid integer", value: "42", expected: 42},
		{name: "invalid integer", value: "not_a_number", wantPanic: true},
		{name: "missing variable", value: "", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnvInt() should have panicked")
					}
				}()
			}

			if got := requireEnvInt("TEST_INT"); !tt.wantPanic && got != tt.expected {
				t.Errorf("requireEnvInt() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "250ms", def: time.Second, expected: 250 * time.Millisecond},
		{name: "invalid duration uses default", value: "soon", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 15 * time.Second, expected: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := mustDuration("TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "0", def: true, expected: false},
		{name: "invalid value uses default", value: "maybe", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := mustBool("TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("TEST_GETENV_INT", "12")
	if got := getenvInt("TEST_GETENV_INT", 3); got != 12 {
		t.Errorf("getenvInt() = %d, want 12", got)
	}
	t.Setenv("TEST_GETENV_INT", "twelve")
	if got := getenvInt("TEST_GETENV_INT", 3); got != 3 {
		t.Errorf("getenvInt() = %d, want default 3", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "a", want: []string{"a"}},
		{in: ` a , "b",, 'c' `, want: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitAndTrim(tt.in)); diff != "" {
			t.Errorf("splitAndTrim(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
