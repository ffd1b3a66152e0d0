package editor

// Cursor is the displayed-page index over [0, slideCount]: 0 is the title
// page, i>0 is slide i-1. It must be re-clamped whenever the slide count
// shrinks; the document operations that change slide count return the
// correct next cursor so the two cannot drift apart.
type Cursor int

// Clamp forces the cursor back into [0, slideCount].
func (c Cursor) Clamp(slideCount int) Cursor {
	if c < 0 {
		return 0
	}
	if int(c) > slideCount {
		return Cursor(slideCount)
	}
	return c
}

// Next advances one page, saturating at the last slide.
func (c Cursor) Next(slideCount int) Cursor {
	if int(c) >= slideCount {
		return Cursor(slideCount)
	}
	return c + 1
}

// Prev steps back one page, saturating at the title page.
func (c Cursor) Prev() Cursor {
	if c <= 0 {
		return 0
	}
	return c - 1
}

// OnTitlePage reports whether the title page is displayed.
func (c Cursor) OnTitlePage() bool { return c == 0 }

// CanGoPrev reports whether Prev would move.
func (c Cursor) CanGoPrev() bool { return c > 0 }

// CanGoNext reports whether Next would move.
func (c Cursor) CanGoNext(slideCount int) bool { return int(c) < slideCount }
