package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"ERROR":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	l, err := New("warn")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error should be enabled at warn level")
	}
}

func TestGetInitialisesOnce(t *testing.T) {
	first := Get()
	if first == nil {
		t.Fatalf("Get returned nil")
	}
	if err := Init("debug"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Get() != first {
		t.Fatalf("Init after first use replaced the global logger")
	}
}

func TestNamedKeepsGlobalLevel(t *testing.T) {
	l := Named("store")
	if l == nil {
		t.Fatalf("Named returned nil")
	}
	if l.Core().Enabled(zapcore.DebugLevel) != Get().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("Named logger level differs from the global logger")
	}
}
