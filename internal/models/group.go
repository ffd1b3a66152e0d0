package models

import "time"

// Group is a user-created story-sharing circle. The owner is always the first
// member; private groups cannot be joined through the public join endpoint.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPrivate   bool      `json:"isPrivate"`
	Owner       UserRef   `json:"owner"`
	Members     []string  `json:"members"`
	Stories     []string  `json:"stories"`
	CreatedAt   time.Time `json:"createdAt"`
}
