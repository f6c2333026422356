package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWritesPrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.InfoLevel, "floorplan")

	l.Info("committed", "table", "t1")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "floorplan")
	assert.Contains(t, out, "committed")
	assert.Contains(t, out, "table=t1")
	assert.NotContains(t, out, "hidden")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, log.InfoLevel, ParseLevel("chatty"))
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.InfoLevel, "")
	ctx := WithLogger(context.Background(), l)

	assert.Same(t, l, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}
