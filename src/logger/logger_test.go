package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := baseLogger
	savedLevel := GetLogLevel()
	SetOutput(&buf)
	SetLogLevel(level)
	t.Cleanup(func() {
		baseLogger = saved
		SetLogLevel(savedLevel.String())
	})
	return &buf
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := captureLogs(t, "info")

	Infof("row \"Load\" at 100.0% of range")

	out := buf.String()
	if !strings.Contains(out, "100.0% of range") {
		t.Fatalf("log output missing percent segment: %s", out)
	}
	if strings.Contains(out, "MISSING") {
		t.Fatalf("log output shows fmt artifact: %s", out)
	}
	if !strings.HasPrefix(out, "[INFO] ") {
		t.Fatalf("expected [INFO] prefix, got %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t, "warn")

	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("messages below warn leaked: %s", out)
	}
	if !strings.Contains(out, "[WARN] warn 3") || !strings.Contains(out, "[ERROR] error 4") {
		t.Fatalf("expected warn and error lines, got: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"Error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestSetLogLevel_IgnoresUnknown(t *testing.T) {
	captureLogs(t, "error")
	SetLogLevel("loud")
	if GetLogLevel() != LevelError {
		t.Fatalf("unknown level changed state to %v", GetLogLevel())
	}
}

func TestTimeTrack_DebugOnly(t *testing.T) {
	buf := captureLogs(t, "debug")
	TimeTrack(time.Now(), "draw")
	if !strings.Contains(buf.String(), "draw took") {
		t.Fatalf("expected timing line, got %q", buf.String())
	}
}
