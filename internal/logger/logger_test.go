package logger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/codeflash/internal/logger"
)

func newBufferLogger(level logger.Level) (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(level),
		logger.WithColors(false),
	)
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel("error"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(logger.WARN)

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN ")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_PrefixAndSortedFields(t *testing.T) {
	l, buf := newBufferLogger(logger.DEBUG)

	l.WithPrefix("card_repo").
		WithFields(map[string]any{"quality": 2, "card_id": 7}).
		WithError(errors.New("version conflict")).
		Info("review applied")

	line := buf.String()
	assert.Contains(t, line, "[card_repo]")
	assert.Contains(t, line, "review applied")
	assert.Less(t, strings.Index(line, "card_id=7"), strings.Index(line, "quality=2"))
	assert.Contains(t, line, `error="version conflict"`)
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(logger.INFO)

	_ = parent.WithField("deck_id", 3)
	parent.Info("plain")

	assert.NotContains(t, buf.String(), "deck_id")
}

func TestContextRoundTrip(t *testing.T) {
	l, _ := newBufferLogger(logger.INFO)
	ctx := logger.NewContext(context.Background(), l)

	assert.Same(t, l, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
