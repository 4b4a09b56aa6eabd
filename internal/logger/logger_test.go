package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlog_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newSlog(SlogConfig{Level: "info", Format: "json"}, &buf)

	log.Info("movie created", "id", 7)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "movie created", record["msg"])
	assert.Equal(t, float64(7), record["id"])
	assert.NotEmpty(t, record["time"])
}

func TestNewSlog_LevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	log := newSlog(SlogConfig{Level: "warn", Format: "text"}, &buf)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
