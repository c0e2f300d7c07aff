package learning

import (
	"sort"

	"codelearn_backend/internal/model"
)

// EntryItemID 从路径项中提取被引用内容的 id。引用可能是预加载的完整对象，
// 也可能只是裸 id；两种形态统一在这里归一化，调用方不做特判。
func EntryItemID(e *model.LearningPathEntry) string {
	switch e.ItemType {
	case model.ItemTypeChapter:
		if e.Chapter != nil {
			return e.Chapter.ID
		}
		if e.ChapterID != nil {
			return *e.ChapterID
		}
	case model.ItemTypeQuiz:
		if e.Quiz != nil {
			return e.Quiz.ID
		}
		if e.QuizID != nil {
			return *e.QuizID
		}
	}
	return ""
}

// Location is the result of resolving a learner's position in a path.
// Index is -1 when the current item is not part of the path; callers treat
// that as "no navigation available", not an error.
type Location struct {
	Index int                      `json:"index"`
	Prev  *model.LearningPathEntry `json:"prev,omitempty"`
	Next  *model.LearningPathEntry `json:"next,omitempty"`
}

// Locate 在有序学习路径中定位当前项，返回前后相邻项。
// 引用已被删除内容的路径项整体跳过：不计数、不返回。
func Locate(entries []model.LearningPathEntry, currentItemID string) Location {
	resolved := make([]*model.LearningPathEntry, 0, len(entries))
	for i := range entries {
		if EntryItemID(&entries[i]) == "" {
			continue
		}
		resolved = append(resolved, &entries[i])
	}

	loc := Location{Index: -1}
	if currentItemID == "" {
		return loc
	}
	for i, e := range resolved {
		if EntryItemID(e) != currentItemID {
			continue
		}
		loc.Index = i
		if i > 0 {
			loc.Prev = resolved[i-1]
		}
		if i+1 < len(resolved) {
			loc.Next = resolved[i+1]
		}
		break
	}
	return loc
}

// PrunePath 过滤掉引用已删除内容的路径项。只适用于存储层预加载后的
// 路径：加载层总是填充 Chapter/Quiz 指针，裸 id 仍在而指针缺失即说明
// 被引用的内容已被删除。被过滤的项不计入总数也不参与导航。
func PrunePath(entries []model.LearningPathEntry) []model.LearningPathEntry {
	kept := make([]model.LearningPathEntry, 0, len(entries))
	for _, e := range entries {
		switch e.ItemType {
		case model.ItemTypeChapter:
			if e.ChapterID != nil && e.Chapter == nil {
				continue
			}
		case model.ItemTypeQuiz:
			if e.QuizID != nil && e.Quiz == nil {
				continue
			}
		}
		kept = append(kept, e)
	}
	return kept
}

// ChapterFallbackPath 为没有结构化路径的老课程构造回退路径：
// 章节按 order 升序；测验在回退模式下不可排序，因此不包含。
func ChapterFallbackPath(chapters []model.Chapter) []model.LearningPathEntry {
	sorted := make([]model.Chapter, len(chapters))
	copy(sorted, chapters)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	entries := make([]model.LearningPathEntry, len(sorted))
	for i := range sorted {
		entries[i] = model.LearningPathEntry{
			CourseID: sorted[i].CourseID,
			Position: i,
			ItemType: model.ItemTypeChapter,
			Chapter:  &sorted[i],
		}
	}
	return entries
}
