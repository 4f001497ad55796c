package logger

import (
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := []struct {
		in   zerolog.Level
		want tracelog.LogLevel
	}{
		{zerolog.TraceLevel, tracelog.LogLevelTrace},
		{zerolog.DebugLevel, tracelog.LogLevelDebug},
		{zerolog.InfoLevel, tracelog.LogLevelInfo},
		{zerolog.WarnLevel, tracelog.LogLevelWarn},
		{zerolog.ErrorLevel, tracelog.LogLevelError},
		{zerolog.Disabled, tracelog.LogLevelNone},
	}

	for _, tt := range tests {
		if got := GetPgxTraceLogLevel(tt.in); got != tt.want {
			t.Errorf("GetPgxTraceLogLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	l := NewLogger("warn", false)
	if l.GetLevel() != zerolog.WarnLevel {
		t.Errorf("level = %v, want warn", l.GetLevel())
	}

	l = NewLogger("bogus", true)
	if l.GetLevel() != zerolog.InfoLevel {
		t.Errorf("unknown level should fall back to info, got %v", l.GetLevel())
	}
}

func TestLoggerServiceWithoutNewRelic(t *testing.T) {
	var ls *LoggerService
	if ls.GetApplication() != nil {
		t.Error("nil service should report no application")
	}

	l := zerolog.Nop()
	if got := WithTraceContext(l, nil); got.GetLevel() != l.GetLevel() {
		t.Error("WithTraceContext(nil) should return the logger unchanged")
	}
}
