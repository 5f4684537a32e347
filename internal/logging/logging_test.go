package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("garbage"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestNewReturnsUsableLogger(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		log := New(format, "debug")
		assert.NotNil(t, log, format)
		log.Debugw("logger smoke test", "format", format)
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotNil(t, log)
	log.Errorw("discarded")
}
