// Package logging provides the observability sink for the service.
package logging

import "go.uber.org/zap"

// NewLogger builds the process logger for the given level.
func NewLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Recorder is a fire-and-forget sink for error/info/warning records.
// Calls never fail and never block the caller meaningfully.
type Recorder struct {
	logger *zap.Logger
}

// NewRecorder wraps a zap logger. A nil logger yields a no-op recorder.
func NewRecorder(logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{logger: logger}
}

// Error records an error with context.
func (r *Recorder) Error(msg string, fields ...zap.Field) {
	r.logger.Error(msg, fields...)
}

// Info records an informational message with context.
func (r *Recorder) Info(msg string, fields ...zap.Field) {
	r.logger.Info(msg, fields...)
}

// Warn records a warning with context.
func (r *Recorder) Warn(msg string, fields ...zap.Field) {
	r.logger.Warn(msg, fields...)
}
