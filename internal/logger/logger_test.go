package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name  string
		json  bool
		debug bool
		level zapcore.Level
	}{
		{name: "console info", level: zapcore.InfoLevel},
		{name: "json debug", json: true, debug: true, level: zapcore.DebugLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := New(tc.json, tc.debug)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !log.Core().Enabled(tc.level) {
				t.Fatalf("expected %s level to be enabled", tc.level)
			}
			if tc.level == zapcore.InfoLevel && log.Core().Enabled(zapcore.DebugLevel) {
				t.Fatalf("debug must stay disabled without the flag")
			}
		})
	}
}
