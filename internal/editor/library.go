package editor

import (
	"storyweaver-server/internal/models"

	"github.com/google/uuid"
)

// Library is the session's character asset collection. Renditions coming back
// from the generation endpoints are ephemeral; promoting one assigns it an
// identity and keeps it for reuse across slides.
type Library struct {
	characters []models.Character
}

// Promote turns a generation candidate into a library character with a fresh
// identity and returns it.
func (l *Library) Promote(r models.Rendition) models.Character {
	ch := models.Character{
		ID:       uuid.NewString(),
		Prompt:   r.Prompt,
		ImageURL: r.ImageURL,
	}
	l.characters = append(l.characters, ch)
	return ch
}

// Characters returns a copy of the library in promotion order.
func (l *Library) Characters() []models.Character {
	out := make([]models.Character, len(l.characters))
	copy(out, l.characters)
	return out
}

// Get returns the character with the given identity.
func (l *Library) Get(id string) (models.Character, bool) {
	for _, ch := range l.characters {
		if ch.ID == id {
			return ch, true
		}
	}
	return models.Character{}, false
}

// Remove deletes a character from the library. Removing an unknown identity
// reports false.
func (l *Library) Remove(id string) bool {
	for i, ch := range l.characters {
		if ch.ID == id {
			l.characters = append(l.characters[:i], l.characters[i+1:]...)
			return true
		}
	}
	return false
}
