package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyweaver_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	refreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyweaver_token_refreshes_total",
		Help: "Total number of successful token refreshes.",
	})

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyweaver_token_verifications_total",
			Help: "Total number of token verification attempts by type and status.",
		},
		[]string{"type", "status"},
	)

	storiesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyweaver_stories_created_total",
		Help: "Total number of stories created.",
	})

	storiesSharedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyweaver_stories_shared_total",
		Help: "Total number of stories made public.",
	})

	likeTogglesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyweaver_like_toggles_total",
		Help: "Total number of like toggles on stories.",
	})

	commentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyweaver_comments_total",
		Help: "Total number of comments posted.",
	})

	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyweaver_generations_total",
			Help: "Total number of AI generation requests by kind and status.",
		},
		[]string{"kind", "status"},
	)
)
