package editor_test

import (
	"testing"

	"storyweaver-server/internal/editor"
	"storyweaver-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterLibrary(t *testing.T) {
	fox := models.Rendition{Prompt: "a clockwork fox", ImageURL: "https://img.test/fox.png"}
	owl := models.Rendition{Prompt: "a paper owl", ImageURL: "https://img.test/owl.png"}

	t.Run("promote assigns a fresh identity", func(t *testing.T) {
		sess := editor.NewSession()
		a := sess.PromoteRendition(fox)
		b := sess.PromoteRendition(fox)
		assert.NotEmpty(t, a.ID)
		assert.NotEqual(t, a.ID, b.ID, "each promotion is its own character")
		assert.Equal(t, fox.Prompt, a.Prompt)
		assert.Equal(t, fox.ImageURL, a.ImageURL)
	})

	t.Run("characters keep promotion order", func(t *testing.T) {
		sess := editor.NewSession()
		a := sess.PromoteRendition(fox)
		b := sess.PromoteRendition(owl)
		chars := sess.Characters()
		require.Len(t, chars, 2)
		assert.Equal(t, []string{a.ID, b.ID}, []string{chars[0].ID, chars[1].ID})
	})

	t.Run("remove drops only the named character", func(t *testing.T) {
		sess := editor.NewSession()
		a := sess.PromoteRendition(fox)
		b := sess.PromoteRendition(owl)
		sess.RemoveCharacter(a.ID)
		chars := sess.Characters()
		require.Len(t, chars, 1)
		assert.Equal(t, b.ID, chars[0].ID)
		assert.Equal(t, 0, sess.NoopCount())

		sess.RemoveCharacter(a.ID) // already gone
		assert.Equal(t, 1, sess.NoopCount())
	})

	t.Run("apply stamps the slide with the character art", func(t *testing.T) {
		sess := editor.NewSession()
		sl := sess.AddSlide()
		ch := sess.PromoteRendition(fox)
		sess.ApplyCharacter(sl.ID, ch.ID)
		got := sess.CurrentSlide()
		require.NotNil(t, got)
		require.NotNil(t, got.ImageURL)
		require.NotNil(t, got.ImagePrompt)
		assert.Equal(t, fox.ImageURL, *got.ImageURL)
		assert.Equal(t, fox.Prompt, *got.ImagePrompt)
	})

	t.Run("apply with unknown ids is an absorbed no-op", func(t *testing.T) {
		sess := editor.NewSession()
		sl := sess.AddSlide()
		ch := sess.PromoteRendition(fox)
		sess.ApplyCharacter(sl.ID, "ghost")
		sess.ApplyCharacter("ghost", ch.ID)
		assert.Equal(t, 2, sess.NoopCount())
		assert.Nil(t, sess.CurrentSlide().ImageURL)
	})

	t.Run("reset clears the library", func(t *testing.T) {
		sess := editor.NewSession()
		sess.PromoteRendition(fox)
		sess.Reset()
		assert.Empty(t, sess.Characters())
	})
}
