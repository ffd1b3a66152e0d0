package editor

import "storyweaver-server/internal/models"

// Session binds one story document to its page cursor for the lifetime of an
// authoring session. All mutations go through the pure document operations,
// applied against the session's current snapshot, so a handler that suspends
// on a network call and resumes later still merges into the latest state
// instead of clobbering it with a stale copy.
//
// Session is not safe for concurrent use; it models the single-threaded,
// event-driven client.
type Session struct {
	story   models.Story
	cursor  Cursor
	library Library
	noops   int
}

// NewSession starts a session on a fresh unpersisted draft.
func NewSession() *Session {
	return &Session{story: models.NewDraftStory()}
}

// NewSessionWith starts a session on an existing story, e.g. one loaded from
// the server for further editing.
func NewSessionWith(s models.Story) *Session {
	sess := &Session{story: cloneStory(s)}
	sess.cursor = sess.cursor.Clamp(len(s.Slides))
	return sess
}

// Story returns a snapshot of the current document.
func (s *Session) Story() models.Story { return cloneStory(s.story) }

// Cursor returns the displayed-page index.
func (s *Session) Cursor() int { return int(s.cursor) }

// NoopCount reports how many silent no-op edits (stale slide ids,
// out-of-range removals or reorders) the session has absorbed. Diagnostic
// only; no-ops are intentional behavior, not errors.
func (s *Session) NoopCount() int { return s.noops }

// Reset discards the document and cursor, returning the session to a fresh
// draft. Called on logout.
func (s *Session) Reset() {
	s.story = models.NewDraftStory()
	s.cursor = 0
	s.library = Library{}
	s.noops = 0
}

// Replace swaps in a server-canonical story, e.g. the copy returned by a
// save, keeping the cursor clamped to the new slide count.
func (s *Session) Replace(st models.Story) {
	s.story = cloneStory(st)
	s.cursor = s.cursor.Clamp(len(st.Slides))
}

// UpdateTitlePage merges a partial title-page edit.
func (s *Session) UpdateTitlePage(u TitlePageUpdate) {
	s.story = UpdateTitlePage(s.story, u)
}

// UpdateSlide merges a partial edit into the identified slide.
func (s *Session) UpdateSlide(slideID string, u SlideUpdate) {
	st, ok := UpdateSlide(s.story, slideID, u)
	if !ok {
		s.noops++
	}
	s.story = st
}

// UpdateTags replaces the tag list.
func (s *Session) UpdateTags(tags []string) {
	s.story = UpdateTags(s.story, tags)
}

// AddSlide appends a slide and moves the cursor onto it. Returns the new
// slide.
func (s *Session) AddSlide() models.Slide {
	st, cur := AddSlide(s.story)
	s.story = st
	s.cursor = Cursor(cur)
	return st.Slides[len(st.Slides)-1]
}

// RemoveSlide removes the currently displayed slide. Removing the title page
// is a no-op.
func (s *Session) RemoveSlide() {
	st, cur, ok := RemoveSlideAt(s.story, int(s.cursor))
	if !ok {
		s.noops++
		return
	}
	s.story = st
	s.cursor = Cursor(cur)
}

// Reorder swaps the displayed slide with its neighbour, cursor following.
func (s *Session) Reorder(dir Direction) {
	st, cur, ok := ReorderSlide(s.story, int(s.cursor), dir)
	if !ok {
		s.noops++
		return
	}
	s.story = st
	s.cursor = Cursor(cur)
}

// PromoteRendition keeps a generation candidate in the character library.
func (s *Session) PromoteRendition(r models.Rendition) models.Character {
	return s.library.Promote(r)
}

// Characters returns the session's character library.
func (s *Session) Characters() []models.Character {
	return s.library.Characters()
}

// RemoveCharacter drops a character from the library.
func (s *Session) RemoveCharacter(id string) {
	if !s.library.Remove(id) {
		s.noops++
	}
}

// ApplyCharacter stamps a library character's art onto the identified slide.
// Unknown character or slide identities are silent no-ops.
func (s *Session) ApplyCharacter(slideID, characterID string) {
	ch, ok := s.library.Get(characterID)
	if !ok {
		s.noops++
		return
	}
	imageURL, prompt := ch.ImageURL, ch.Prompt
	s.UpdateSlide(slideID, SlideUpdate{ImageURL: &imageURL, ImagePrompt: &prompt})
}

// CurrentSlide returns the displayed slide, or nil on the title page.
func (s *Session) CurrentSlide() *models.Slide {
	if s.cursor.OnTitlePage() || int(s.cursor) > len(s.story.Slides) {
		return nil
	}
	sl := s.story.Slides[int(s.cursor)-1]
	return &sl
}

// Next moves forward one page.
func (s *Session) Next() { s.cursor = s.cursor.Next(len(s.story.Slides)) }

// Prev moves back one page.
func (s *Session) Prev() { s.cursor = s.cursor.Prev() }

// CanGoPrev reports whether a previous page exists.
func (s *Session) CanGoPrev() bool { return s.cursor.CanGoPrev() }

// CanGoNext reports whether a next page exists.
func (s *Session) CanGoNext() bool { return s.cursor.CanGoNext(len(s.story.Slides)) }
