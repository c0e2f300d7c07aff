package learning

import "math"

// QuizOutcome is one recorded quiz attempt, reduced to what completion
// bookkeeping needs.
type QuizOutcome struct {
	QuizID string `json:"quizId"`
	Passed bool   `json:"passed"`
}

// ProgressRecord 每个 (user, course) 的进度原始数据，由存储层装配。
type ProgressRecord struct {
	CompletedChapterIDs []string      `json:"completedChapterIds"`
	QuizResults         []QuizOutcome `json:"quizResults"`
	// TotalItems 服务端维护的章节+测验总数，聚合时不重新计算。
	TotalItems int `json:"totalItems"`
}

// ProgressSummary is the merged completion view consumed by course pages.
type ProgressSummary struct {
	CompletedIDs map[string]struct{} `json:"-"`
	Completed    int                 `json:"completed"`
	Total        int                 `json:"total"`
	Percentage   int                 `json:"percentage"`
}

// Aggregate 将已完成章节与已通过测验合并为单一完成集合。
// 一个测验只要有任意一次通过即视为完成；后续失败的尝试不会回退完成度。
// Total 为 0 时百分比为 0，绝不向上层传播 NaN。
func Aggregate(rec ProgressRecord) ProgressSummary {
	completed := make(map[string]struct{}, len(rec.CompletedChapterIDs))
	for _, id := range rec.CompletedChapterIDs {
		if id == "" {
			continue
		}
		completed[id] = struct{}{}
	}
	for _, qr := range rec.QuizResults {
		if !qr.Passed || qr.QuizID == "" {
			continue
		}
		completed[qr.QuizID] = struct{}{}
	}

	summary := ProgressSummary{
		CompletedIDs: completed,
		Completed:    len(completed),
		Total:        rec.TotalItems,
	}
	if summary.Total > 0 {
		summary.Percentage = int(math.Round(float64(summary.Completed) / float64(summary.Total) * 100))
	}
	return summary
}

// GuestProgress 游客进度恒为零完成：游客数据从不落库。
func GuestProgress(totalItems int) ProgressSummary {
	return ProgressSummary{
		CompletedIDs: map[string]struct{}{},
		Completed:    0,
		Total:        totalItems,
		Percentage:   0,
	}
}
