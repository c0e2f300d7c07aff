package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_UnionOfChaptersAndPassedQuizzes(t *testing.T) {
	summary := Aggregate(ProgressRecord{
		CompletedChapterIDs: []string{"ch-1", "ch-2"},
		QuizResults: []QuizOutcome{
			{QuizID: "qz-1", Passed: true},
			{QuizID: "qz-2", Passed: false},
		},
		TotalItems: 6,
	})

	assert.Equal(t, 3, summary.Completed)
	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 50, summary.Percentage)
	assert.Contains(t, summary.CompletedIDs, "qz-1")
	assert.NotContains(t, summary.CompletedIDs, "qz-2")
}

func TestAggregate_FailedRetakeNeverRegresses(t *testing.T) {
	// one pass followed by failed retakes: the quiz stays completed
	summary := Aggregate(ProgressRecord{
		QuizResults: []QuizOutcome{
			{QuizID: "qz-1", Passed: true},
			{QuizID: "qz-1", Passed: false},
			{QuizID: "qz-1", Passed: false},
		},
		TotalItems: 1,
	})

	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 100, summary.Percentage)
}

func TestAggregate_DuplicateCompletionsCountOnce(t *testing.T) {
	summary := Aggregate(ProgressRecord{
		CompletedChapterIDs: []string{"ch-1", "ch-1"},
		TotalItems:          2,
	})
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 50, summary.Percentage)
}

func TestAggregate_ZeroTotalIsZeroPercent(t *testing.T) {
	summary := Aggregate(ProgressRecord{TotalItems: 0})
	assert.Equal(t, 0, summary.Completed)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.Percentage)
}

func TestAggregate_RoundsPercentage(t *testing.T) {
	summary := Aggregate(ProgressRecord{
		CompletedChapterIDs: []string{"ch-1"},
		TotalItems:          3,
	})
	assert.Equal(t, 33, summary.Percentage)

	summary = Aggregate(ProgressRecord{
		CompletedChapterIDs: []string{"ch-1", "ch-2"},
		TotalItems:          3,
	})
	assert.Equal(t, 67, summary.Percentage)
}

func TestGuestProgress_AlwaysZeroed(t *testing.T) {
	summary := GuestProgress(7)
	assert.Equal(t, 0, summary.Completed)
	assert.Equal(t, 7, summary.Total)
	assert.Equal(t, 0, summary.Percentage)
	assert.Empty(t, summary.CompletedIDs)
}
