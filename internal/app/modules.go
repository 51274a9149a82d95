package app

import (
	"github.com/nfrund/learnhub/internal/module"
	"github.com/nfrund/learnhub/internal/modules/dashboard"
	"github.com/nfrund/learnhub/internal/modules/leaderboard"
	"github.com/nfrund/learnhub/internal/modules/lessons"
	"github.com/nfrund/learnhub/internal/modules/quizzes"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
// quizzes comes before lessons, which looks up the quiz service at boot.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		// Add new application modules here.
		leaderboard.New(leaderboardDeps(deps)),
		quizzes.New(quizzesDeps(deps)),
		lessons.New(lessonsDeps(deps)),
		dashboard.New(dashboardDeps(deps)),
	}
}
