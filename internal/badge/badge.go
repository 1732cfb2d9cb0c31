// Package badge implements event-driven achievements with idempotent
// awards.
package badge

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kurobon/gittutor/internal/lesson"
	"github.com/kurobon/gittutor/internal/state"
)

// Definition is a static badge description.
type Definition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// State is the per-badge progress.
type State struct {
	Earned   bool      `json:"earned"`
	EarnedAt time.Time `json:"earnedAt,omitempty"`
}

// Definitions lists every badge. Saves from older versions are merged
// against this list so new badges appear for existing users.
func Definitions(lessons []*lesson.Lesson) []Definition {
	defs := []Definition{
		{ID: "first-commit", Title: "First Commit", Description: "Record your first commit."},
		{ID: "branch-builder", Title: "Branch Builder", Description: "Create a branch."},
		{ID: "merge-master", Title: "Merge Master", Description: "Produce a true merge commit."},
		{ID: "conflict-resolver", Title: "Conflict Resolver", Description: "Resolve a merge conflict and commit the result."},
		{ID: "stash-stacker", Title: "Stash Stacker", Description: "Stash your work in progress."},
		{ID: "time-traveler", Title: "Time Traveler", Description: "Rewind history with reset --hard."},
		{ID: "fresh-start", Title: "Fresh Start", Description: "Undo a commit with revert."},
		{ID: "clone-ranger", Title: "Clone Ranger", Description: "Clone a remote repository."},
		{ID: "remote-runner", Title: "Remote Runner", Description: "Push commits to a remote."},
		{ID: "graduate", Title: "Graduate", Description: "Complete every lesson."},
		{ID: "quiz-whiz", Title: "Quiz Whiz", Description: "Pass every quiz."},
	}
	for _, l := range lessons {
		defs = append(defs, Definition{
			ID:          "lesson-" + l.ID,
			Title:       l.Title,
			Description: "Complete the lesson: " + l.Title + ".",
		})
	}
	return defs
}

// Engine awards badges. States are owned by the caller and persisted
// with the rest of the app state.
type Engine struct {
	defs map[string]Definition
	log  *zap.Logger
	now  func() time.Time
}

// NewEngine builds an engine over the definition list.
func NewEngine(defs []Definition, log *zap.Logger) *Engine {
	m := make(map[string]Definition, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return &Engine{defs: m, log: log, now: time.Now}
}

// MergeDefaults adds zero states for any badge missing from a loaded
// save.
func (e *Engine) MergeDefaults(states map[string]*State) {
	for id := range e.defs {
		if _, ok := states[id]; !ok {
			states[id] = &State{}
		}
	}
}

// Award sets a badge earned. Re-awarding is a no-op. Returns true when
// the badge was newly earned.
func (e *Engine) Award(states map[string]*State, id string) bool {
	st, ok := states[id]
	if !ok {
		if _, known := e.defs[id]; !known {
			return false
		}
		st = &State{}
		states[id] = st
	}
	if st.Earned {
		return false
	}
	st.Earned = true
	st.EarnedAt = e.now()
	e.log.Info("badge earned", zap.String("badge", id))
	return true
}

// ObserveEvent inspects the repo's last event after a command and
// returns the IDs of newly earned badges.
func (e *Engine) ObserveEvent(states map[string]*State, ev state.Event) []string {
	var earned []string
	award := func(id string) {
		if e.Award(states, id) {
			earned = append(earned, id)
		}
	}

	switch ev := ev.(type) {
	case state.CommitEvent:
		award("first-commit")
		if ev.Merge {
			award("merge-master")
		}
		if ev.ResolvedConflicts {
			award("conflict-resolver")
		}
	case state.BranchEvent:
		award("branch-builder")
	case state.CheckoutEvent:
		if ev.Created {
			award("branch-builder")
		}
	case state.MergeEvent:
		if !ev.FastForward && ev.Conflicts == 0 {
			award("merge-master")
		}
	case state.StashEvent:
		award("stash-stacker")
	case state.ResetEvent:
		award("time-traveler")
	case state.RevertEvent:
		award("fresh-start")
	case state.CloneEvent:
		award("clone-ranger")
	case state.PushEvent:
		award("remote-runner")
	}
	return earned
}

// SyncProgress awards the lesson, graduate and quiz badges from lesson
// states. Called after every command; awards stay idempotent.
func (e *Engine) SyncProgress(states map[string]*State, lessons map[string]*lesson.State, catalog []*lesson.Lesson) []string {
	var earned []string
	award := func(id string) {
		if e.Award(states, id) {
			earned = append(earned, id)
		}
	}

	allDone := true
	allQuizzes := true
	for _, l := range catalog {
		st := lessons[l.ID]
		if st != nil && st.Completed {
			award("lesson-" + l.ID)
		} else {
			allDone = false
		}
		if l.Quiz != nil && (st == nil || !st.QuizPassed) {
			allQuizzes = false
		}
	}
	if allDone {
		award("graduate")
	}
	if allQuizzes {
		award("quiz-whiz")
	}
	return earned
}

// IDs returns all badge IDs, sorted.
func (e *Engine) IDs() []string {
	out := make([]string, 0, len(e.defs))
	for id := range e.defs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Definition returns a badge definition by ID.
func (e *Engine) Definition(id string) (Definition, bool) {
	d, ok := e.defs[id]
	return d, ok
}
