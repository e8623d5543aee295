package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoostLiveAt(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	b := Boost{StartAt: start, EndAt: start.Add(10 * time.Hour), Status: StatusActive}

	assert.True(t, b.LiveAt(start))
	assert.True(t, b.LiveAt(b.EndAt.Add(-time.Nanosecond)))
	assert.False(t, b.LiveAt(b.EndAt), "end is exclusive")
	assert.False(t, b.LiveAt(b.EndAt.Add(time.Second)))

	b.Status = StatusCancelled
	assert.False(t, b.LiveAt(start))
}

func TestBoostProgress(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	b := Boost{StartAt: start, EndAt: start.Add(10 * time.Hour), Status: StatusActive}

	assert.Equal(t, 0.0, b.Progress(start.Add(-time.Hour)))
	assert.InDelta(t, 25.0, b.Progress(start.Add(150*time.Minute)), 1e-9)
	assert.Equal(t, 100.0, b.Progress(start.Add(11*time.Hour)))
	assert.Equal(t, 2*time.Hour, b.Remaining(start.Add(8*time.Hour)))
	assert.Zero(t, b.Remaining(start.Add(11*time.Hour)))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusActive.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusExpired.Terminal())
}

func TestErrorCodeRoundTrip(t *testing.T) {
	for _, err := range []error{
		&IneligibleError{Reason: ReasonBoostActive},
		ErrInsufficientBalance,
		ErrConcurrentPurchaseConflict,
		ErrPackageNotFound,
		ErrProfileNotFound,
	} {
		code, reason, ok := ErrorCode(err)
		require.True(t, ok, err.Error())
		assert.Equal(t, err.Error(), ErrorFromCode(code, reason).Error())
	}

	for _, err := range []error{ErrTimeout, assert.AnError, &IneligibleError{Reason: ReasonBoostEnding}} {
		_, _, ok := ErrorCode(err)
		assert.False(t, ok, "%v must not be recorded", err)
	}
}

func TestPackageJSON(t *testing.T) {
	raw, err := json.Marshal(Package{ID: "boost-24h", Duration: 24 * time.Hour, BasePrice: 5000})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 86400.0, got["duration_seconds"])
	assert.Equal(t, "boost-24h", got["id"])
}
