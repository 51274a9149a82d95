// Package app lists the feature modules the server runs.
package app

import (
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/modules/dashboard"
	"github.com/nfrund/learnhub/internal/modules/leaderboard"
	"github.com/nfrund/learnhub/internal/modules/lessons"
	"github.com/nfrund/learnhub/internal/modules/quizzes"
	"github.com/nfrund/learnhub/internal/pubsub"
	"github.com/nfrund/learnhub/internal/storage"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the main application entrypoint to wire up the modules.
type Dependencies struct {
	Store      domain.Store
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Assets     storage.Store
}

// leaderboardDeps creates the dependency struct for the leaderboard module.
func leaderboardDeps(deps Dependencies) leaderboard.Dependencies {
	return leaderboard.Dependencies{
		Progress:   deps.Store,
		Subscriber: deps.Subscriber,
	}
}

// quizzesDeps creates the dependency struct for the quizzes module.
func quizzesDeps(deps Dependencies) quizzes.Dependencies {
	return quizzes.Dependencies{
		Quizzes:   deps.Store,
		Publisher: deps.Publisher,
	}
}

// lessonsDeps creates the dependency struct for the lessons module.
func lessonsDeps(deps Dependencies) lessons.Dependencies {
	return lessons.Dependencies{
		Lessons: deps.Store,
		Assets:  deps.Assets,
	}
}

// dashboardDeps creates the dependency struct for the dashboard module.
func dashboardDeps(deps Dependencies) dashboard.Dependencies {
	return dashboard.Dependencies{Source: deps.Store}
}
