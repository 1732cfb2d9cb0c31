package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gittutor/internal/lesson"
	"github.com/kurobon/gittutor/internal/logging"
	"github.com/kurobon/gittutor/internal/state"
)

func newTestEngine() (*Engine, []*lesson.Lesson) {
	catalog := lesson.Catalog()
	return NewEngine(Definitions(catalog), logging.NewNop()), catalog
}

func TestAwardIsIdempotent(t *testing.T) {
	e, _ := newTestEngine()
	states := make(map[string]*State)
	e.MergeDefaults(states)

	assert.True(t, e.Award(states, "first-commit"))
	first := states["first-commit"].EarnedAt
	assert.False(t, e.Award(states, "first-commit"))
	assert.Equal(t, first, states["first-commit"].EarnedAt)
}

func TestAwardUnknownBadgeIgnored(t *testing.T) {
	e, _ := newTestEngine()
	states := make(map[string]*State)
	assert.False(t, e.Award(states, "no-such-badge"))
	assert.Empty(t, states)
}

func TestObserveEvents(t *testing.T) {
	e, _ := newTestEngine()
	states := make(map[string]*State)
	e.MergeDefaults(states)

	earned := e.ObserveEvent(states, state.CommitEvent{Hash: "abc1234", Message: "x"})
	assert.Equal(t, []string{"first-commit"}, earned)

	earned = e.ObserveEvent(states, state.CommitEvent{Merge: true, ResolvedConflicts: true})
	assert.ElementsMatch(t, []string{"merge-master", "conflict-resolver"}, earned)

	assert.Equal(t, []string{"branch-builder"}, e.ObserveEvent(states, state.BranchEvent{Name: "dev"}))
	assert.Equal(t, []string{"stash-stacker"}, e.ObserveEvent(states, state.StashEvent{}))
	assert.Equal(t, []string{"time-traveler"}, e.ObserveEvent(states, state.ResetEvent{Target: "HEAD~1"}))
	assert.Equal(t, []string{"fresh-start"}, e.ObserveEvent(states, state.RevertEvent{Hash: "abc"}))
	assert.Equal(t, []string{"clone-ranger"}, e.ObserveEvent(states, state.CloneEvent{URL: "u"}))
	assert.Equal(t, []string{"remote-runner"}, e.ObserveEvent(states, state.PushEvent{Remote: "origin"}))

	// Replays award nothing new.
	assert.Empty(t, e.ObserveEvent(states, state.StashEvent{}))
}

func TestFsEventsAwardNothing(t *testing.T) {
	e, _ := newTestEngine()
	states := make(map[string]*State)
	e.MergeDefaults(states)
	assert.Empty(t, e.ObserveEvent(states, state.FsEvent{Op: "write", Path: "/f"}))
}

func TestSyncProgress(t *testing.T) {
	e, catalog := newTestEngine()
	states := make(map[string]*State)
	e.MergeDefaults(states)

	lessons := make(map[string]*lesson.State)
	assert.Empty(t, e.SyncProgress(states, lessons, catalog))

	for _, l := range catalog {
		lessons[l.ID] = &lesson.State{LessonID: l.ID, Completed: true, QuizPassed: true}
	}
	earned := e.SyncProgress(states, lessons, catalog)
	assert.Contains(t, earned, "graduate")
	assert.Contains(t, earned, "quiz-whiz")
	for _, l := range catalog {
		assert.Contains(t, earned, "lesson-"+l.ID)
	}

	assert.Empty(t, e.SyncProgress(states, lessons, catalog))
}

func TestMergeDefaultsAddsNewBadges(t *testing.T) {
	e, _ := newTestEngine()
	states := map[string]*State{"first-commit": {Earned: true}}
	e.MergeDefaults(states)

	require.Contains(t, states, "graduate")
	assert.True(t, states["first-commit"].Earned)
	assert.False(t, states["graduate"].Earned)
}
