package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Krishiv14/EarningsAgent/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logFormat string
		wantLevel zerolog.Level
	}{
		{"debug level json", "debug", "json", zerolog.DebugLevel},
		{"info level json", "info", "json", zerolog.InfoLevel},
		{"warn level console", "warn", "console", zerolog.WarnLevel},
		{"error level pretty", "error", "pretty", zerolog.ErrorLevel},
		{"unknown level defaults to info", "verbose", "json", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Env:       "test",
				LogLevel:  tt.logLevel,
				LogFormat: tt.logFormat,
			}
			log := New(cfg)
			if log == nil {
				t.Fatal("New() returned nil")
			}
			if got := zerolog.GlobalLevel(); got != tt.wantLevel {
				t.Errorf("global level = %v, want %v", got, tt.wantLevel)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// testLogger builds a Logger writing into buf for output assertions
func testLogger(buf *bytes.Buffer) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zlog := zerolog.New(buf).With().Timestamp().Logger()
	return &Logger{zlog: zlog}
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	log := testLogger(&buf)

	tests := []struct {
		name     string
		logFunc  func(string)
		message  string
		wantLvl  string
	}{
		{"debug", log.Debug, "delta computed", "debug"},
		{"info", log.Info, "snapshot stored", "info"},
		{"warn", log.Warn, "stale data", "warn"},
		{"error", log.Error, "extraction failed", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc(tt.message)

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("invalid JSON output: %v", err)
			}
			if entry["level"] != tt.wantLvl {
				t.Errorf("level = %v, want %v", entry["level"], tt.wantLvl)
			}
			if entry["message"] != tt.message {
				t.Errorf("message = %v, want %v", entry["message"], tt.message)
			}
		})
	}
}

func TestLoggerFormattedMethods(t *testing.T) {
	var buf bytes.Buffer
	log := testLogger(&buf)

	log.Infof("analyzed %s in %dms", "TCS", 12)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if entry["message"] != "analyzed TCS in 12ms" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	log := testLogger(&buf)

	log.WithField("ticker", "RELIANCE").Info("verdict ready")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if entry["ticker"] != "RELIANCE" {
		t.Errorf("ticker = %v, want RELIANCE", entry["ticker"])
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := testLogger(&buf)

	log.WithFields(map[string]interface{}{
		"ticker":   "INFY",
		"severity": "high",
	}).Warn("divergence detected")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if entry["ticker"] != "INFY" {
		t.Errorf("ticker = %v, want INFY", entry["ticker"])
	}
	if entry["severity"] != "high" {
		t.Errorf("severity = %v, want high", entry["severity"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := testLogger(&buf)

	log.WithError(errors.New("connection refused")).Error("db unavailable")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if entry["error"] != "connection refused" {
		t.Errorf("error = %v, want connection refused", entry["error"])
	}
}

func TestZerologAccessor(t *testing.T) {
	var buf bytes.Buffer
	log := testLogger(&buf)

	zl := log.Zerolog()
	zl.Info().Str("component", "delta").Msg("direct")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if entry["component"] != "delta" {
		t.Errorf("component = %v, want delta", entry["component"])
	}
}
