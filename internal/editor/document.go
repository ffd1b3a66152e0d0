// Package editor implements the client-side story authoring model: pure,
// immutable transformations over a story document plus the page cursor that
// tracks which page is displayed. No operation here performs I/O or mutates
// its input; every transformation returns a fresh Story value.
package editor

import (
	"storyweaver-server/internal/models"

	"github.com/google/uuid"
)

// Direction selects which neighbour a slide is reordered against.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// TitlePageUpdate carries a partial title-page edit. Nil fields keep the
// prior value.
type TitlePageUpdate struct {
	Title            *string
	Authors          *string
	Description      *string
	CoverImageURL    *string
	CoverImagePrompt *string
}

// SlideUpdate carries a partial slide edit. Nil fields keep the prior value.
type SlideUpdate struct {
	ImageURL          *string
	ImagePrompt       *string
	StoryText         *string
	IsGeneratingStory *bool
}

// cloneStory copies the story deeply enough that mutating the result's
// slices never aliases the input. Slide and tag values are copied by value;
// pointer fields are only ever replaced, never written through.
func cloneStory(s models.Story) models.Story {
	out := s
	out.Slides = make([]models.Slide, len(s.Slides))
	copy(out.Slides, s.Slides)
	if s.Tags != nil {
		out.Tags = make([]string, len(s.Tags))
		copy(out.Tags, s.Tags)
	}
	return out
}

// UpdateTitlePage merges the given fields into the title page.
func UpdateTitlePage(s models.Story, u TitlePageUpdate) models.Story {
	out := cloneStory(s)
	tp := &out.TitlePage
	if u.Title != nil {
		tp.Title = *u.Title
	}
	if u.Authors != nil {
		tp.Authors = *u.Authors
	}
	if u.Description != nil {
		tp.Description = *u.Description
	}
	if u.CoverImageURL != nil {
		tp.CoverImageURL = u.CoverImageURL
	}
	if u.CoverImagePrompt != nil {
		tp.CoverImagePrompt = u.CoverImagePrompt
	}
	return out
}

// UpdateSlide merges the given fields into the slide with the matching id.
// An unknown id is absorbed as a no-op: the slide may have just been removed
// by a concurrent action, and a stale edit must not break the session. The
// second return reports whether a slide was actually updated.
func UpdateSlide(s models.Story, slideID string, u SlideUpdate) (models.Story, bool) {
	out := cloneStory(s)
	for i := range out.Slides {
		if out.Slides[i].ID != slideID {
			continue
		}
		sl := &out.Slides[i]
		if u.ImageURL != nil {
			sl.ImageURL = u.ImageURL
		}
		if u.ImagePrompt != nil {
			sl.ImagePrompt = u.ImagePrompt
		}
		if u.StoryText != nil {
			sl.StoryText = *u.StoryText
		}
		if u.IsGeneratingStory != nil {
			sl.IsGeneratingStory = *u.IsGeneratingStory
		}
		return out, true
	}
	return out, false
}

// UpdateTags replaces the tag list wholesale. Callers normalize and
// de-duplicate before calling; the model does not enforce uniqueness.
func UpdateTags(s models.Story, tags []string) models.Story {
	out := cloneStory(s)
	out.Tags = make([]string, len(tags))
	copy(out.Tags, tags)
	return out
}

// AddSlide appends a fresh slide with a generated id and placeholder text.
// Returns the updated story and the cursor of the new slide, which becomes
// the displayed page.
func AddSlide(s models.Story) (models.Story, int) {
	out := cloneStory(s)
	out.Slides = append(out.Slides, models.Slide{
		ID:        uuid.NewString(),
		StoryText: models.DefaultSlideText,
	})
	return out, len(out.Slides)
}

// RemoveSlideAt removes the slide displayed at the given cursor. Cursor 0 is
// the title page and cannot be removed; such calls are no-ops. Returns the
// updated story, the re-clamped cursor and whether a slide was removed.
func RemoveSlideAt(s models.Story, cursor int) (models.Story, int, bool) {
	if cursor <= 0 || cursor > len(s.Slides) {
		return cloneStory(s), cursor, false
	}
	out := cloneStory(s)
	idx := cursor - 1
	out.Slides = append(out.Slides[:idx], out.Slides[idx+1:]...)
	next := cursor - 1
	if next < 0 {
		next = 0
	}
	return out, next, true
}

// ReorderSlide swaps the slide at the given cursor with its left or right
// neighbour. This is a swap, not a remove-and-reinsert: the displaced slide
// moves exactly one position the other way. The cursor follows the moved
// slide. Out-of-range moves and cursor 0 are no-ops.
func ReorderSlide(s models.Story, cursor int, dir Direction) (models.Story, int, bool) {
	if cursor <= 0 || cursor > len(s.Slides) {
		return cloneStory(s), cursor, false
	}
	from := cursor - 1
	to := from + 1
	if dir == Left {
		to = from - 1
	}
	if to < 0 || to >= len(s.Slides) {
		return cloneStory(s), cursor, false
	}
	out := cloneStory(s)
	out.Slides[from], out.Slides[to] = out.Slides[to], out.Slides[from]
	return out, to + 1, true
}
