// Package social implements the per-story-card interaction state: the
// optimistic like toggle with server reconciliation and rollback, and the
// confirm-before-append comment thread.
package social

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrAuthRequired is returned by ToggleLike when no user is signed in.
	// No network call is made.
	ErrAuthRequired = errors.New("authentication required to like a story")
	// ErrToggleInFlight is returned when a toggle is already outstanding for
	// this card. The call is ignored; state is untouched.
	ErrToggleInFlight = errors.New("like toggle already in flight")
)

// LikeToggler flips the current user's membership in a story's like set on
// the server and returns the canonical resulting set of liker user ids.
type LikeToggler interface {
	ToggleLike(ctx context.Context, storyID string) ([]string, error)
}

// ToggleOutcome classifies how a toggle attempt resolved.
type ToggleOutcome int

const (
	// Committed means the server confirmed and local state was reconciled
	// from the canonical like set.
	Committed ToggleOutcome = iota
	// RolledBack means the server call failed and local state was restored
	// to the value captured before the optimistic flip.
	RolledBack
)

// ToggleResult reports the resolution of one toggle attempt.
type ToggleResult struct {
	Outcome    ToggleOutcome
	LikeCount  int
	Liked      bool
	PriorCount int
	PriorLiked bool
	// Err is the server error when Outcome is RolledBack.
	Err error
}

// CardState tracks like state for one story card. At most one toggle may be
// outstanding at a time; rapid repeated calls while one is in flight are
// ignored rather than queued.
type CardState struct {
	mu       sync.Mutex
	storyID  string
	userID   string // empty when unauthenticated
	count    int
	liked    bool
	inFlight bool
}

// NewCardState derives the initial state from the persisted like set and the
// current user (empty userID for an unauthenticated viewer).
func NewCardState(storyID string, likes []string, userID string) *CardState {
	liked := false
	if userID != "" {
		for _, id := range likes {
			if id == userID {
				liked = true
				break
			}
		}
	}
	return &CardState{
		storyID: storyID,
		userID:  userID,
		count:   len(likes),
		liked:   liked,
	}
}

// Snapshot returns the observable (likeCount, likedByCurrentUser) pair.
func (c *CardState) Snapshot() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count, c.liked
}

// InFlight reports whether a toggle is currently outstanding.
func (c *CardState) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// ToggleLike runs the optimistic toggle protocol:
//
//  1. fail fast with ErrAuthRequired when unauthenticated, no network call;
//  2. ignore the call with ErrToggleInFlight when one is outstanding;
//  3. flip liked and adjust the count optimistically, capturing the prior
//     pair for rollback;
//  4. issue the server toggle;
//  5. on success reconcile from the canonical returned set; the server is
//     authoritative even when it disagrees with the optimistic guess;
//  6. on failure restore the captured prior pair;
//  7. release the in-flight flag on every exit path.
func (c *CardState) ToggleLike(ctx context.Context, toggler LikeToggler) (ToggleResult, error) {
	c.mu.Lock()
	if c.userID == "" {
		c.mu.Unlock()
		return ToggleResult{}, ErrAuthRequired
	}
	if c.inFlight {
		c.mu.Unlock()
		return ToggleResult{}, ErrToggleInFlight
	}
	c.inFlight = true

	priorCount, priorLiked := c.count, c.liked
	c.liked = !priorLiked
	if c.liked {
		c.count = priorCount + 1
	} else {
		c.count = priorCount - 1
	}
	c.mu.Unlock()

	likes, err := toggler.ToggleLike(ctx, c.storyID)

	c.mu.Lock()
	defer func() {
		c.inFlight = false
		c.mu.Unlock()
	}()

	if err != nil {
		c.count, c.liked = priorCount, priorLiked
		return ToggleResult{
			Outcome:    RolledBack,
			LikeCount:  c.count,
			Liked:      c.liked,
			PriorCount: priorCount,
			PriorLiked: priorLiked,
			Err:        err,
		}, nil
	}

	c.count = len(likes)
	c.liked = false
	for _, id := range likes {
		if id == c.userID {
			c.liked = true
			break
		}
	}
	return ToggleResult{
		Outcome:    Committed,
		LikeCount:  c.count,
		Liked:      c.liked,
		PriorCount: priorCount,
		PriorLiked: priorLiked,
	}, nil
}
