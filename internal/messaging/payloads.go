package messaging

import "time"

// StoryEventType identifies the kind of social event on a story.
type StoryEventType string

const (
	StoryEventShared    StoryEventType = "story_shared"
	StoryEventLiked     StoryEventType = "story_liked"
	StoryEventUnliked   StoryEventType = "story_unliked"
	StoryEventCommented StoryEventType = "story_commented"
)

// StoryEvent is published to the story events exchange whenever a story is
// shared, liked, or commented on. OwnerID targets the websocket notification
// to the story's author.
type StoryEvent struct {
	EventType  StoryEventType `json:"event_type"`
	StoryID    string         `json:"story_id"`
	StoryTitle string         `json:"story_title"`
	OwnerID    string         `json:"owner_id"`
	ActorID    string         `json:"actor_id"`
	Actor      string         `json:"actor"`
	CommentID  string         `json:"comment_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
