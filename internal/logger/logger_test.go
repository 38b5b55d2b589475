package logger_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lribeiro/flashdeck/internal/logger"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Debug("dropped")
	log.Info("dropped too")
	log.Warn("kept")
	log.Error("also kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "ERROR")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("gibberish"), "unknown levels default to INFO")
}

func TestDerivedLoggersDoNotShareFields(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.WithOutput(&buf), logger.WithColors(false))

	a := base.WithField("request_id", "aaa")
	b := base.WithField("request_id", "bbb")
	a.Info("first")
	b.Info("second")

	out := buf.String()
	assert.Contains(t, out, "request_id=aaa")
	assert.Contains(t, out, "request_id=bbb")

	buf.Reset()
	base.Info("plain")
	assert.NotContains(t, buf.String(), "request_id", "base logger stays untouched")
}

func TestFieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).WithFields(map[string]any{
		"method": "GET",
		"path":   "/decks",
		"status": 200,
	})

	log.Info("request completed")

	assert.Contains(t, buf.String(), "method=GET path=/decks status=200")
}

func TestPrefixAppearsInOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).WithPrefix("deck_repo")

	log.Info("deck saved")

	assert.Contains(t, buf.String(), "[deck_repo]")
}

func TestFromContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false))

	ctx := logger.NewContext(context.Background(), log)
	assert.Same(t, log, logger.FromContext(ctx))
	assert.NotNil(t, logger.FromContext(context.Background()), "falls back to the default logger")
}
