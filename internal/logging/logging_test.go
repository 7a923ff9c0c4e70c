package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		development bool
		verbose     bool
		wantLevel   zapcore.Level
		wantErr     bool
	}{
		{"info production", "info", false, false, zapcore.InfoLevel, false},
		{"verbose overrides", "warn", false, true, zapcore.DebugLevel, false},
		{"development", "error", true, false, zapcore.ErrorLevel, false},
		{"bad level", "loud", false, false, zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.development, tt.verbose)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !logger.Core().Enabled(tt.wantLevel) {
				t.Errorf("level %v not enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("level below %v unexpectedly enabled", tt.wantLevel)
			}
		})
	}
}
