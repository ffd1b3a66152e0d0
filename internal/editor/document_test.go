package editor_test

import (
	"testing"

	"storyweaver-server/internal/editor"
	"storyweaver-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func storyWithSlides(ids ...string) models.Story {
	s := models.NewDraftStory()
	for _, id := range ids {
		s.Slides = append(s.Slides, models.Slide{ID: id, StoryText: "text-" + id})
	}
	return s
}

func slideIDs(s models.Story) []string {
	ids := make([]string, len(s.Slides))
	for i, sl := range s.Slides {
		ids[i] = sl.ID
	}
	return ids
}

func TestUpdateTitlePage(t *testing.T) {
	s := models.NewDraftStory()

	t.Run("merges only provided fields", func(t *testing.T) {
		out := editor.UpdateTitlePage(s, editor.TitlePageUpdate{Title: strPtr("Dragons")})
		assert.Equal(t, "Dragons", out.TitlePage.Title)
		assert.Equal(t, s.TitlePage.Authors, out.TitlePage.Authors)
		assert.Equal(t, s.TitlePage.Description, out.TitlePage.Description)
	})

	t.Run("empty strings are allowed", func(t *testing.T) {
		out := editor.UpdateTitlePage(s, editor.TitlePageUpdate{Authors: strPtr("")})
		assert.Equal(t, "", out.TitlePage.Authors)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := s.TitlePage.Title
		_ = editor.UpdateTitlePage(s, editor.TitlePageUpdate{Title: strPtr("changed")})
		assert.Equal(t, before, s.TitlePage.Title)
	})
}

func TestUpdateSlide(t *testing.T) {
	s := storyWithSlides("a", "b")

	t.Run("merges partial into matching slide", func(t *testing.T) {
		out, ok := editor.UpdateSlide(s, "b", editor.SlideUpdate{StoryText: strPtr("new text")})
		require.True(t, ok)
		assert.Equal(t, "new text", out.Slides[1].StoryText)
		assert.Equal(t, "text-a", out.Slides[0].StoryText)
	})

	t.Run("unknown id is a structural no-op", func(t *testing.T) {
		out, ok := editor.UpdateSlide(s, "missing", editor.SlideUpdate{StoryText: strPtr("x")})
		assert.False(t, ok)
		assert.Equal(t, s, out)
	})

	t.Run("generation flag toggles", func(t *testing.T) {
		on := true
		out, ok := editor.UpdateSlide(s, "a", editor.SlideUpdate{IsGeneratingStory: &on})
		require.True(t, ok)
		assert.True(t, out.Slides[0].IsGeneratingStory)
		assert.False(t, s.Slides[0].IsGeneratingStory)
	})
}

func TestUpdateTags(t *testing.T) {
	s := storyWithSlides("a")
	out := editor.UpdateTags(s, []string{"fantasy", "dragons"})
	assert.Equal(t, []string{"fantasy", "dragons"}, out.Tags)
	assert.Empty(t, s.Tags)
}

func TestAddSlide(t *testing.T) {
	s := models.NewDraftStory()

	out, cursor := editor.AddSlide(s)
	require.Len(t, out.Slides, 1)
	assert.Equal(t, 1, cursor, "new slide becomes the displayed page")
	assert.NotEmpty(t, out.Slides[0].ID)
	assert.Equal(t, models.DefaultSlideText, out.Slides[0].StoryText)
	assert.Nil(t, out.Slides[0].ImageURL)
	assert.False(t, out.Slides[0].IsGeneratingStory)

	out2, cursor2 := editor.AddSlide(out)
	require.Len(t, out2.Slides, 2)
	assert.Equal(t, 2, cursor2)
	assert.NotEqual(t, out2.Slides[0].ID, out2.Slides[1].ID)
}

func TestRemoveSlideAt(t *testing.T) {
	s := storyWithSlides("a", "b", "c")

	t.Run("title page cannot be removed", func(t *testing.T) {
		out, cursor, ok := editor.RemoveSlideAt(s, 0)
		assert.False(t, ok)
		assert.Equal(t, 0, cursor)
		assert.Equal(t, []string{"a", "b", "c"}, slideIDs(out))
	})

	t.Run("removes displayed slide, cursor steps back", func(t *testing.T) {
		out, cursor, ok := editor.RemoveSlideAt(s, 2)
		require.True(t, ok)
		assert.Equal(t, []string{"a", "c"}, slideIDs(out))
		assert.Equal(t, 1, cursor)
	})

	t.Run("add then remove is an inverse pair", func(t *testing.T) {
		added, cursor := editor.AddSlide(s)
		back, cursor2, ok := editor.RemoveSlideAt(added, cursor)
		require.True(t, ok)
		assert.Equal(t, slideIDs(s), slideIDs(back))
		assert.Equal(t, len(s.Slides), cursor2)
	})
}

func TestReorderSlide(t *testing.T) {
	s := storyWithSlides("a", "b", "c")

	t.Run("swaps with left neighbour, cursor follows", func(t *testing.T) {
		out, cursor, ok := editor.ReorderSlide(s, 2, editor.Left)
		require.True(t, ok)
		assert.Equal(t, []string{"b", "a", "c"}, slideIDs(out))
		assert.Equal(t, 1, cursor)
	})

	t.Run("swaps with right neighbour", func(t *testing.T) {
		out, cursor, ok := editor.ReorderSlide(s, 2, editor.Right)
		require.True(t, ok)
		assert.Equal(t, []string{"a", "c", "b"}, slideIDs(out))
		assert.Equal(t, 3, cursor)
	})

	t.Run("no-op on title page and at the edges", func(t *testing.T) {
		_, _, ok := editor.ReorderSlide(s, 0, editor.Left)
		assert.False(t, ok)
		_, cursor, ok := editor.ReorderSlide(s, 1, editor.Left)
		assert.False(t, ok)
		assert.Equal(t, 1, cursor)
		_, _, ok = editor.ReorderSlide(s, 3, editor.Right)
		assert.False(t, ok)
	})

	t.Run("left then right is its own inverse", func(t *testing.T) {
		moved, cursor, ok := editor.ReorderSlide(s, 2, editor.Left)
		require.True(t, ok)
		back, cursor2, ok := editor.ReorderSlide(moved, cursor, editor.Right)
		require.True(t, ok)
		assert.Equal(t, slideIDs(s), slideIDs(back))
		assert.Equal(t, 2, cursor2)
	})
}

// The end-to-end scenario from the authoring flow: empty story, two adds, a
// left reorder, then a removal.
func TestEditingScenario(t *testing.T) {
	s := models.NewDraftStory()

	s, cursor := editor.AddSlide(s)
	require.Len(t, s.Slides, 1)
	require.Equal(t, 1, cursor)
	first := s.Slides[0].ID

	s, cursor = editor.AddSlide(s)
	require.Len(t, s.Slides, 2)
	require.Equal(t, 2, cursor)
	second := s.Slides[1].ID

	s, cursor, ok := editor.ReorderSlide(s, cursor, editor.Left)
	require.True(t, ok)
	assert.Equal(t, []string{second, first}, slideIDs(s))
	assert.Equal(t, 1, cursor)

	s, cursor, ok = editor.RemoveSlideAt(s, cursor)
	require.True(t, ok)
	assert.Equal(t, []string{first}, slideIDs(s))
	assert.Equal(t, 0, cursor)
}
