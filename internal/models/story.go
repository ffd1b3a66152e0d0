package models

import "time"

// DefaultSlideText is the placeholder body of a freshly added slide.
const DefaultSlideText = "Add an image or write your next chapter..."

// TitlePage is the cover page of a story. It is always present, even on a
// brand-new draft, seeded with defaults by NewDraftStory.
type TitlePage struct {
	Title            string  `json:"title"`
	Authors          string  `json:"authors"`
	Description      string  `json:"description"`
	CoverImageURL    *string `json:"coverImageUrl"`
	CoverImagePrompt *string `json:"coverImagePrompt"`
}

// Slide is one page of a story after the title page. The ID is generated on
// the client at creation time and never reassigned; ordering is positional,
// there is no separate rank field.
type Slide struct {
	ID                string  `json:"id"`
	ImageURL          *string `json:"imageUrl"`
	ImagePrompt       *string `json:"imagePrompt"`
	StoryText         string  `json:"storyText"`
	IsGeneratingStory bool    `json:"isGeneratingStory"`
}

// UserRef is the populated owner/author reference embedded in API responses.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Comment is a reader comment on a public story.
type Comment struct {
	ID        string    `json:"id"`
	Author    UserRef   `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Story is the full story document. ID is empty exactly while the story is a
// never-persisted draft; the server assigns it on first save and it is stable
// afterwards. Likes holds liker user ids; Comments are populated on reads.
type Story struct {
	ID        string     `json:"id,omitempty"`
	Owner     *UserRef   `json:"owner,omitempty"`
	TitlePage TitlePage  `json:"titlePage"`
	Slides    []Slide    `json:"slides"`
	Tags      []string   `json:"tags"`
	IsPublic  bool       `json:"isPublic"`
	Likes     []string   `json:"likes,omitempty"`
	Comments  []Comment  `json:"comments,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Persisted reports whether the story has been saved at least once.
func (s *Story) Persisted() bool { return s.ID != "" }

// NewDraftStory returns an unpersisted story with the default title page and
// no slides.
func NewDraftStory() Story {
	return Story{
		TitlePage: TitlePage{
			Title:       "My AI Story",
			Authors:     "A Creative Human",
			Description: "An adventure woven with words and pixels.",
		},
		Slides: []Slide{},
		Tags:   []string{},
	}
}
