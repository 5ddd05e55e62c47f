package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captured returns an adapter writing JSON lines into the returned buffer.
func captured(level logrus.Level) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(level)
	l.SetFormatter(&logrus.JSONFormatter{})
	return NewLogrusAdapterFromLogger(l), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNewLogrusAdapter_LevelAndFormat(t *testing.T) {
	tests := []struct {
		level, format string
		wantLevel     logrus.Level
		wantJSON      bool
	}{
		{"debug", "text", logrus.DebugLevel, false},
		{"WARN", "json", logrus.WarnLevel, true},
		{"error", "JSON", logrus.ErrorLevel, true},
		{"chatty", "", logrus.InfoLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			adapter, ok := NewLogrusAdapter(tt.level, tt.format).(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.wantLevel, adapter.logger.Level)
			_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestLogrusAdapter_WritesFinsightFields(t *testing.T) {
	logger, buf := captured(logrus.DebugLevel)

	logger.Debug("Budget evaluated",
		F(FieldUserID, "alice"),
		F(FieldCategoryID, "c1"),
		F(FieldTier, "warning"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "Budget evaluated", lines[0]["msg"])
	assert.Equal(t, "alice", lines[0][FieldUserID])
	assert.Equal(t, "c1", lines[0][FieldCategoryID])
	assert.Equal(t, "warning", lines[0][FieldTier])
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := captured(logrus.WarnLevel)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept", F(FieldReason, "fit_failed"))
	logger.Error("kept too")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "warning", lines[0]["level"])
	assert.Equal(t, "fit_failed", lines[0][FieldReason])
	assert.Equal(t, "error", lines[1]["level"])
}

func TestLogrusAdapter_DerivedLoggersDoNotLeak(t *testing.T) {
	logger, buf := captured(logrus.InfoLevel)

	component := logger.WithField(FieldComponent, "ReportGenerator")
	failing := component.WithError(errors.New("disk full")).WithFields(F(FieldFile, "budgets.yaml"))

	failing.Error("Failed to save")
	component.Info("Rendered")
	logger.Info("Plain")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 3)

	assert.Equal(t, "ReportGenerator", lines[0][FieldComponent])
	assert.Equal(t, "disk full", lines[0]["error"])
	assert.Equal(t, "budgets.yaml", lines[0][FieldFile])

	assert.Equal(t, "ReportGenerator", lines[1][FieldComponent])
	assert.NotContains(t, lines[1], "error")
	assert.NotContains(t, lines[1], FieldFile)

	assert.NotContains(t, lines[2], FieldComponent)
}

func TestNewDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)

	assert.NotPanics(t, func() {
		logger.Debug("x", F(FieldCount, 1))
		logger.WithError(errors.New("e")).Error("y")
		logger.WithField(FieldUserID, "u").Warn("z")
	})
	assert.Equal(t, logrus.PanicLevel, adapter.logger.Level)
}

func TestOrDiscard(t *testing.T) {
	mock := NewMockLogger()
	assert.Same(t, mock, OrDiscard(mock))

	fallback := OrDiscard(nil)
	require.NotNil(t, fallback)
	assert.IsType(t, &LogrusAdapter{}, fallback)
}

func TestF(t *testing.T) {
	f := F(FieldDays, 42)
	assert.Equal(t, Field{Key: "history_days", Value: 42}, f)
}
