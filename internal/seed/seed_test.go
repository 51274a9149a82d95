package seed

import (
	"context"
	"testing"

	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/storage"
	"github.com/nfrund/learnhub/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewStore(t)
	fs := afero.NewMemMapFs()
	assets := storage.NewAferoStore(fs)

	c, created, err := Seed(ctx, store, assets)
	require.NoError(t, err)
	assert.True(t, created)

	tree, err := store.CourseTree(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, tree.Modules, 8)
	assert.Len(t, tree.Modules[0].Topics, 3)

	first := tree.Modules[0].Topics[0]
	require.NotNil(t, first.Quiz)
	quiz, err := store.FindQuiz(ctx, first.Quiz.ID)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 3)
	assert.True(t, quiz.Questions[0].Answers[1].Correct)

	ok, err := afero.DirExists(fs, first.Lesson.VideoDir())
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = afero.DirExists(fs, domain.TextbookDir(c.ID))
	require.NoError(t, err)
	assert.True(t, ok)

	again, created, err := Seed(ctx, store, assets)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, c.ID, again.ID)

	courses, err := store.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}
