package social

import (
	"context"
	"sync"

	"storyweaver-server/internal/models"
)

// CommentPoster creates a comment on the server and returns the persisted,
// author-populated comment.
type CommentPoster interface {
	PostComment(ctx context.Context, storyID, text string) (models.Comment, error)
}

// Thread holds the local comment list for one story card. Unlike likes there
// is no optimistic insert: a comment appears only after the server confirms
// it, and a failed post leaves the list unchanged.
type Thread struct {
	mu       sync.Mutex
	storyID  string
	comments []models.Comment
}

// NewThread seeds the thread from the comments loaded with the story.
func NewThread(storyID string, comments []models.Comment) *Thread {
	out := make([]models.Comment, len(comments))
	copy(out, comments)
	return &Thread{storyID: storyID, comments: out}
}

// Comments returns a snapshot of the local list.
func (t *Thread) Comments() []models.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// Post submits the comment and appends the server's persisted copy on
// success.
func (t *Thread) Post(ctx context.Context, poster CommentPoster, text string) (models.Comment, error) {
	c, err := poster.PostComment(ctx, t.storyID, text)
	if err != nil {
		return models.Comment{}, err
	}
	t.mu.Lock()
	t.comments = append(t.comments, c)
	t.mu.Unlock()
	return c, nil
}
