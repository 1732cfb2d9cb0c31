package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gittutor/internal/logging"
	"github.com/kurobon/gittutor/internal/persist"
)

func newTestApp(t *testing.T) (*App, *persist.Store) {
	t.Helper()
	store, err := persist.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, logging.NewNop()), store
}

func TestOpenSessionStartsFirstLesson(t *testing.T) {
	a, _ := newTestApp(t)
	s, err := a.OpenSession("u1")
	require.NoError(t, err)
	assert.Equal(t, "first-steps", s.State.ActiveLessonID)
	require.Contains(t, s.State.Lessons, "first-steps")
	assert.NotNil(t, s.State.Lessons["first-steps"].Checkpoints[0])
	assert.Contains(t, s.State.Badges, "first-commit")
}

func TestExecutePipeline(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	out, err := a.Execute(ctx, "u1", "git init")
	require.NoError(t, err)
	assert.True(t, out.Result.Ok)
	assert.True(t, out.Snapshot.Initialized)
	require.NotEmpty(t, out.Progress)
	assert.Contains(t, out.Progress[0], "Step 1 complete")

	_, err = a.Execute(ctx, "u1", `echo "# My Project" > README.md`)
	require.NoError(t, err)
	_, err = a.Execute(ctx, "u1", "git add README.md")
	require.NoError(t, err)
	out, err = a.Execute(ctx, "u1", `git commit -m "Add README"`)
	require.NoError(t, err)
	assert.Contains(t, out.BadgesEarned, "first-commit")

	out, err = a.Execute(ctx, "u1", "git log --oneline")
	require.NoError(t, err)
	assert.Contains(t, out.BadgesEarned, "lesson-first-steps")
}

func TestExecuteFailureIsLocal(t *testing.T) {
	a, _ := newTestApp(t)
	out, err := a.Execute(context.Background(), "u1", "definitely-not-a-command")
	require.NoError(t, err)
	assert.False(t, out.Result.Ok)
	assert.Equal(t, 127, out.Result.ExitCode)

	// The session keeps working afterwards.
	out, err = a.Execute(context.Background(), "u1", "git init")
	require.NoError(t, err)
	assert.True(t, out.Result.Ok)
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	store, err := persist.Open("")
	require.NoError(t, err)
	defer store.Close()

	a := New(store, logging.NewNop())
	_, err = a.Execute(context.Background(), "u1", "git init")
	require.NoError(t, err)

	// A new controller over the same store restores the session.
	b := New(store, logging.NewNop())
	s, err := b.OpenSession("u1")
	require.NoError(t, err)
	assert.True(t, s.Git.Repo.Initialized)
	assert.Equal(t, 1, s.State.Lessons["first-steps"].StepIndex)
}

func TestApplyEdit(t *testing.T) {
	a, _ := newTestApp(t)
	_, err := a.Execute(context.Background(), "u1", "git init")
	require.NoError(t, err)

	out, err := a.ApplyEdit("u1", "notes.txt", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Snapshot.WorkingFiles["/notes.txt"])
	assert.Equal(t, "fs_edit", out.Snapshot.LastEvent)
}

func TestActivateAndResetLesson(t *testing.T) {
	a, _ := newTestApp(t)
	_, err := a.OpenSession("u1")
	require.NoError(t, err)

	require.NoError(t, a.ActivateLesson("u1", "conflict-club"))
	snap, err := a.Snapshot("u1")
	require.NoError(t, err)
	assert.True(t, snap.Initialized)
	assert.Contains(t, snap.Branches, "feature")

	_, err = a.Execute(context.Background(), "u1", `echo "scribble" > junk.txt`)
	require.NoError(t, err)
	require.NoError(t, a.ResetLesson("u1"))
	snap, err = a.Snapshot("u1")
	require.NoError(t, err)
	assert.NotContains(t, snap.WorkingFiles, "/junk.txt")

	// Switching back to the first lesson restores its own repo.
	require.NoError(t, a.ActivateLesson("u1", "first-steps"))
	snap, err = a.Snapshot("u1")
	require.NoError(t, err)
	assert.False(t, snap.Initialized)
}

func TestQuizThroughApp(t *testing.T) {
	a, _ := newTestApp(t)
	_, err := a.OpenSession("u1")
	require.NoError(t, err)

	passed, err := a.SubmitQuiz("u1", "first-steps", []int{1, 2})
	require.NoError(t, err)
	assert.True(t, passed)
}

func TestExportImportRoundTrip(t *testing.T) {
	a, _ := newTestApp(t)
	_, err := a.Execute(context.Background(), "u1", "git init")
	require.NoError(t, err)

	blob, err := a.Export("u1")
	require.NoError(t, err)

	b, _ := newTestApp(t)
	require.NoError(t, b.Import("u2", blob))
	snap, err := b.Snapshot("u2")
	require.NoError(t, err)
	assert.True(t, snap.Initialized)
}
