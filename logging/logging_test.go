package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	warnings []string
}

func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(msg string, args ...any) {
	r.warnings = append(r.warnings, msg)
}
func (r *recordingLogger) Error(string, ...any) {}

func TestOrDefaultReturnsNoOpForNil(t *testing.T) {
	l := OrDefault(nil)
	assert.Equal(t, NoOp, l)
	assert.NotPanics(t, func() {
		l.Warn("ignored", "k", "v")
	})
}

func TestOrDefaultPassesThroughNonNilLogger(t *testing.T) {
	rec := &recordingLogger{}
	l := OrDefault(rec)
	l.Warn("candidate failed", "fold", 1)
	assert.Equal(t, []string{"candidate failed"}, rec.warnings)
}
