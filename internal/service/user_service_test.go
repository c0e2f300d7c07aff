package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextStreakSameDayNoChange(t *testing.T) {
	now := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)
	last := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	next, changed := nextStreak(5, last, now)
	assert.False(t, changed)
	assert.Equal(t, 5, next)
}

func TestNextStreakConsecutiveDayIncrements(t *testing.T) {
	now := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	last := time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC)

	next, changed := nextStreak(5, last, now)
	assert.True(t, changed)
	assert.Equal(t, 6, next)
}

func TestNextStreakGapResets(t *testing.T) {
	now := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	last := time.Date(2026, 8, 26, 8, 0, 0, 0, time.UTC)

	next, changed := nextStreak(12, last, now)
	assert.True(t, changed)
	assert.Equal(t, 1, next)
}

func TestNextStreakFirstActivityStartsAtOne(t *testing.T) {
	now := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)

	next, changed := nextStreak(0, time.Time{}, now)
	assert.True(t, changed)
	assert.Equal(t, 1, next)
}
