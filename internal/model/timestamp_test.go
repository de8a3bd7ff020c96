package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2026-10-01T10:00:00Z",
		"2026-10-01T12:00:00+02:00",
		"2026-10-01T10:00:00",
		"2026-10-01T10:00:00.000000",
		"2026-10-01 10:00:00",
	} {
		assert.True(t, want.Equal(ParseTimestamp(in)), in)
	}
	assert.True(t, ParseTimestamp("2026-10-01").Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, ParseTimestamp("yesterday").IsZero())
}

func TestContentItemPublishedAt(t *testing.T) {
	var it ContentItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","published_at":"2026-10-01T10:00:00.123456"}`), &it))
	assert.Equal(t, 2026, it.PublishedAt.Year())
	assert.Equal(t, 123456000, it.PublishedAt.Nanosecond())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"c2","published_at":null}`), &it))
	assert.True(t, it.PublishedAt.IsZero())

	b, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
