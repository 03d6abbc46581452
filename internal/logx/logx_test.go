package logx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerDisabledIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	l := New(false, &buf)
	l.Debugf("hello %s", "world")
	assert.Empty(t, buf.String())
}

func TestLoggerEnabledWritesDebugLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(true, &buf)
	l.Debugf("hello %s", "world")
	assert.Equal(t, "[DEBUG] hello world\n", buf.String())
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Debugf("noop")
}
