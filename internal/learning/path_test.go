package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codelearn_backend/internal/model"
)

func strptr(s string) *string { return &s }

func chapterEntry(id string, pos int) model.LearningPathEntry {
	return model.LearningPathEntry{
		Position:  pos,
		ItemType:  model.ItemTypeChapter,
		ChapterID: strptr(id),
	}
}

func quizEntry(id string, pos int) model.LearningPathEntry {
	return model.LearningPathEntry{
		Position: pos,
		ItemType: model.ItemTypeQuiz,
		QuizID:   strptr(id),
	}
}

func TestEntryItemID_BareAndPopulated(t *testing.T) {
	bare := chapterEntry("ch-1", 0)
	assert.Equal(t, "ch-1", EntryItemID(&bare))

	populated := model.LearningPathEntry{
		ItemType: model.ItemTypeChapter,
		Chapter:  &model.Chapter{UUIDBase: model.UUIDBase{ID: "ch-2"}},
	}
	assert.Equal(t, "ch-2", EntryItemID(&populated))

	quiz := model.LearningPathEntry{
		ItemType: model.ItemTypeQuiz,
		Quiz:     &model.Quiz{UUIDBase: model.UUIDBase{ID: "qz-1"}},
	}
	assert.Equal(t, "qz-1", EntryItemID(&quiz))
}

func TestEntryItemID_MissingReference(t *testing.T) {
	dangling := model.LearningPathEntry{ItemType: model.ItemTypeChapter}
	assert.Equal(t, "", EntryItemID(&dangling))

	unknownType := model.LearningPathEntry{ItemType: "video", ChapterID: strptr("x")}
	assert.Equal(t, "", EntryItemID(&unknownType))
}

func TestLocate_MiddleOfPath(t *testing.T) {
	path := []model.LearningPathEntry{
		chapterEntry("ch-1", 0),
		quizEntry("qz-1", 1),
		chapterEntry("ch-2", 2),
	}

	loc := Locate(path, "qz-1")
	require.Equal(t, 1, loc.Index)
	require.NotNil(t, loc.Prev)
	require.NotNil(t, loc.Next)
	assert.Equal(t, "ch-1", EntryItemID(loc.Prev))
	assert.Equal(t, "ch-2", EntryItemID(loc.Next))
}

func TestLocate_Boundaries(t *testing.T) {
	path := []model.LearningPathEntry{
		chapterEntry("ch-1", 0),
		chapterEntry("ch-2", 1),
	}

	first := Locate(path, "ch-1")
	assert.Equal(t, 0, first.Index)
	assert.Nil(t, first.Prev)
	require.NotNil(t, first.Next)
	assert.Equal(t, "ch-2", EntryItemID(first.Next))

	last := Locate(path, "ch-2")
	assert.Equal(t, 1, last.Index)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Prev)
	assert.Equal(t, "ch-1", EntryItemID(last.Prev))
}

func TestLocate_NotFound(t *testing.T) {
	path := []model.LearningPathEntry{chapterEntry("ch-1", 0)}

	loc := Locate(path, "nope")
	assert.Equal(t, -1, loc.Index)
	assert.Nil(t, loc.Prev)
	assert.Nil(t, loc.Next)
}

func TestLocate_EmptyPath(t *testing.T) {
	loc := Locate(nil, "ch-1")
	assert.Equal(t, -1, loc.Index)
	assert.Nil(t, loc.Prev)
	assert.Nil(t, loc.Next)
}

func TestLocate_SkipsMissingReferences(t *testing.T) {
	path := []model.LearningPathEntry{
		chapterEntry("ch-1", 0),
		{Position: 1, ItemType: model.ItemTypeChapter}, // deleted content
		chapterEntry("ch-2", 2),
	}

	loc := Locate(path, "ch-2")
	// The dangling entry is not counted, so ch-2 sits at index 1 and its
	// previous neighbour is ch-1, not the hole.
	require.Equal(t, 1, loc.Index)
	require.NotNil(t, loc.Prev)
	assert.Equal(t, "ch-1", EntryItemID(loc.Prev))
	assert.Nil(t, loc.Next)
}

// 预加载后的路径形态：指针已填充，裸 id 同时保留。
func loadedChapterEntry(id string, pos int) model.LearningPathEntry {
	return model.LearningPathEntry{
		Position:  pos,
		ItemType:  model.ItemTypeChapter,
		ChapterID: strptr(id),
		Chapter:   &model.Chapter{UUIDBase: model.UUIDBase{ID: id}},
	}
}

func TestPrunePath_DropsDeletedContent(t *testing.T) {
	path := []model.LearningPathEntry{
		loadedChapterEntry("ch-1", 0),
		// 章节行已删除：预加载指针为空，裸 id 残留
		{Position: 1, ItemType: model.ItemTypeChapter, ChapterID: strptr("ch-deleted")},
		loadedChapterEntry("ch-2", 2),
		// 测验行已删除
		{Position: 3, ItemType: model.ItemTypeQuiz, QuizID: strptr("qz-deleted")},
	}

	pruned := PrunePath(path)
	require.Len(t, pruned, 2)
	assert.Equal(t, "ch-1", EntryItemID(&pruned[0]))
	assert.Equal(t, "ch-2", EntryItemID(&pruned[1]))

	// 剔除后导航不会落在已删除的项上
	loc := Locate(pruned, "ch-2")
	require.Equal(t, 1, loc.Index)
	require.NotNil(t, loc.Prev)
	assert.Equal(t, "ch-1", EntryItemID(loc.Prev))
	assert.Nil(t, loc.Next)
}

func TestChapterFallbackPath_SortsByOrder(t *testing.T) {
	chapters := []model.Chapter{
		{UUIDBase: model.UUIDBase{ID: "c"}, Order: 3},
		{UUIDBase: model.UUIDBase{ID: "a"}, Order: 1},
		{UUIDBase: model.UUIDBase{ID: "b"}, Order: 2},
	}

	entries := ChapterFallbackPath(chapters)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", EntryItemID(&entries[0]))
	assert.Equal(t, "b", EntryItemID(&entries[1]))
	assert.Equal(t, "c", EntryItemID(&entries[2]))

	loc := Locate(entries, "b")
	assert.Equal(t, 1, loc.Index)
	assert.Equal(t, "a", EntryItemID(loc.Prev))
	assert.Equal(t, "c", EntryItemID(loc.Next))
}
