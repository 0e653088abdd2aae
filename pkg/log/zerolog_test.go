package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZerologLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(Options{Level: "debug", Format: FormatJSON, Out: &buf})

	logger.Info("row sent",
		String("address", "a@x.com"),
		Int("row", 2),
		Bool("ok", true),
		Err(errors.New("boom")),
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "row sent", entry["message"])
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "a@x.com", entry["address"])
	require.EqualValues(t, 2, entry["row"])
	require.Equal(t, true, entry["ok"])
	require.Equal(t, "boom", entry["error"])
}

func TestZerologLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(Options{Level: "warn", Format: FormatJSON, Out: &buf})

	logger.Debug("hidden")
	logger.Info("hidden")
	require.Zero(t, buf.Len())

	logger.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestZerologLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(Options{Level: "chatty", Format: FormatJSON, Out: &buf})

	logger.Debug("hidden")
	require.Zero(t, buf.Len())
	logger.Info("shown")
	require.Contains(t, buf.String(), "shown")
}
