package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOf_Zero(t *testing.T) {
	info := LevelOf(0)
	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 0, info.CurrentLevelFloorXP)
	assert.Equal(t, 100, info.NextLevelXP)
	assert.Equal(t, 0, info.CurrentXPWithinLevel)
	assert.Equal(t, 100, info.NeededXPForNextLevel)
}

func TestLevelOf_ExactThresholdRoundsUp(t *testing.T) {
	info := LevelOf(100)
	assert.Equal(t, 2, info.Level)
	assert.Equal(t, 100, info.CurrentLevelFloorXP)
	assert.Equal(t, 250, info.NextLevelXP)
	assert.Equal(t, 0, info.CurrentXPWithinLevel)
	assert.Equal(t, 150, info.NeededXPForNextLevel)
}

func TestLevelOf_WithinLevel(t *testing.T) {
	info := LevelOf(300)
	assert.Equal(t, 3, info.Level)
	assert.Equal(t, 250, info.CurrentLevelFloorXP)
	assert.Equal(t, 500, info.NextLevelXP)
	assert.Equal(t, 50, info.CurrentXPWithinLevel)
	assert.Equal(t, 250, info.NeededXPForNextLevel)
}

func TestLevelOf_TopOfTable(t *testing.T) {
	info := LevelOf(30000)
	assert.Equal(t, 10, info.Level)
	assert.Equal(t, 30000, info.CurrentLevelFloorXP)
	// synthesized: last threshold doubled
	assert.Equal(t, 60000, info.NextLevelXP)
}

func TestLevelOf_BeyondTableKeepsDoubling(t *testing.T) {
	info := LevelOf(130000)
	assert.Equal(t, 12, info.Level)
	assert.Equal(t, 120000, info.CurrentLevelFloorXP)
	assert.Equal(t, 240000, info.NextLevelXP)
	assert.Equal(t, 10000, info.CurrentXPWithinLevel)
}

func TestLevelOf_NegativeClampedToZero(t *testing.T) {
	assert.Equal(t, LevelOf(0), LevelOf(-5))
}

func TestLevelOf_NonNegativeOutputs(t *testing.T) {
	for _, xp := range []int{0, 1, 99, 100, 249, 4000, 29999, 30000, 31337} {
		info := LevelOf(xp)
		assert.GreaterOrEqual(t, info.CurrentXPWithinLevel, 0, "xp=%d", xp)
		assert.Greater(t, info.NeededXPForNextLevel, 0, "xp=%d", xp)
	}
}

func TestLevelOfWithThresholds_CustomTable(t *testing.T) {
	table := []int{0, 10, 30}
	info := LevelOfWithThresholds(25, table)
	assert.Equal(t, 2, info.Level)
	assert.Equal(t, 10, info.CurrentLevelFloorXP)
	assert.Equal(t, 30, info.NextLevelXP)
}

func TestLevelOfWithThresholds_TableNotStartingAtZero(t *testing.T) {
	table := []int{10, 20}

	info := LevelOfWithThresholds(5, table)
	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 0, info.CurrentLevelFloorXP)
	assert.Equal(t, 10, info.NextLevelXP)
	assert.Equal(t, 5, info.CurrentXPWithinLevel)

	info = LevelOfWithThresholds(15, table)
	assert.Equal(t, 2, info.Level)
	assert.Equal(t, 10, info.CurrentLevelFloorXP)
	assert.Equal(t, 5, info.CurrentXPWithinLevel)
}
