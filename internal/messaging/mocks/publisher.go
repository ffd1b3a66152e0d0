// Package mocks contains testify mocks for the messaging interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storyweaver-server/internal/messaging"
)

// StoryEventPublisher is a mock of messaging.StoryEventPublisher.
type StoryEventPublisher struct {
	mock.Mock
}

func (m *StoryEventPublisher) PublishStoryEvent(ctx context.Context, event messaging.StoryEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
