// Package app is the single-owner controller: it routes each command
// through the dispatcher, then the lesson engine, then the achievement
// engine, and snapshots everything into the store.
package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kurobon/gittutor/internal/badge"
	"github.com/kurobon/gittutor/internal/git"
	_ "github.com/kurobon/gittutor/internal/git/commands" // register commands
	"github.com/kurobon/gittutor/internal/lesson"
	"github.com/kurobon/gittutor/internal/persist"
	"github.com/kurobon/gittutor/internal/pathutil"
	"github.com/kurobon/gittutor/internal/state"
)

// App owns the lesson catalog, badge definitions, the store and every
// live session. Commands execute one at a time.
type App struct {
	log     *zap.Logger
	store   *persist.Store
	lessons *lesson.Engine
	badges  *badge.Engine

	mu       sync.Mutex
	sessions map[string]*Session
}

// Session pairs a live git session with its persisted state.
type Session struct {
	Git   *git.Session
	State *persist.State
}

// New builds the controller.
func New(store *persist.Store, log *zap.Logger) *App {
	catalog := lesson.Catalog()
	return &App{
		log:      log,
		store:    store,
		lessons:  lesson.NewEngine(catalog, log),
		badges:   badge.NewEngine(badge.Definitions(catalog), log),
		sessions: make(map[string]*Session),
	}
}

// Lessons exposes the lesson engine (catalog reads).
func (a *App) Lessons() *lesson.Engine { return a.lessons }

// Badges exposes the badge engine (definition reads).
func (a *App) Badges() *badge.Engine { return a.badges }

// OpenSession returns the session for id, restoring it from the store or
// creating it fresh with a seeded remote store and the first lesson
// active.
func (a *App) OpenSession(id string) (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.openLocked(id)
}

func (a *App) openLocked(id string) (*Session, error) {
	if s, ok := a.sessions[id]; ok {
		return s, nil
	}

	st, found, err := a.store.Load(id)
	if err != nil {
		return nil, err
	}
	if !found {
		st = persist.NewState()
		st.RemoteStore = state.NewSeededRemoteStore()
	}
	st.Normalize()
	a.badges.MergeDefaults(st.Badges)

	gs := git.NewSession(id, st.RemoteStore)
	s := &Session{Git: gs, State: st}
	a.sessions[id] = s

	if st.ActiveLessonID == "" {
		first := a.lessons.Catalog()[0]
		if err := a.activate(s, first.ID); err != nil {
			return nil, err
		}
	} else if ls := st.Lessons[st.ActiveLessonID]; ls != nil && ls.Repo != nil {
		gs.Repo.Restore(ls.Repo)
	}

	if err := a.saveLocked(s); err != nil {
		return nil, err
	}
	a.log.Info("session opened", zap.String("session", id), zap.Bool("restored", found))
	return s, nil
}

func (a *App) activate(s *Session, lessonID string) error {
	ls, ok := s.State.Lessons[lessonID]
	if !ok {
		ls = &lesson.State{LessonID: lessonID}
		s.State.Lessons[lessonID] = ls
	}
	if err := a.lessons.Activate(s.Git, ls, lessonID); err != nil {
		return err
	}
	s.State.ActiveLessonID = lessonID
	return nil
}

// CommandOutput is the envelope returned for every executed command.
type CommandOutput struct {
	Result   *git.Result     `json:"result"`
	Snapshot *state.Snapshot `json:"snapshot"`
	// Progress carries step/lesson completion lines for the terminal.
	Progress []string `json:"progress,omitempty"`
	// BadgesEarned lists badge IDs newly earned by this command.
	BadgesEarned []string `json:"badgesEarned,omitempty"`
}

// Execute runs one command line for the session and drives the
// post-command pipeline: lesson validation, badge awards, persistence.
func (a *App) Execute(ctx context.Context, sessionID, line string) (*CommandOutput, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.openLocked(sessionID)
	if err != nil {
		return nil, err
	}

	result := git.Dispatch(ctx, s.Git, line)
	out := a.afterCommand(s, line, result)

	a.log.Info("command executed",
		zap.String("session", sessionID),
		zap.String("command", line),
		zap.Int("exit", result.ExitCode))

	if err := a.saveLocked(s); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyEdit is the external editor's write path: it replaces one
// working-tree file and runs the same post-command pipeline as a typed
// command.
func (a *App) ApplyEdit(sessionID, path, content string) (*CommandOutput, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.openLocked(sessionID)
	if err != nil {
		return nil, err
	}

	abs := pathutil.Join(s.Git.Repo.Cwd(), path)
	s.Git.Repo.ClearLastEvent()
	if err := s.Git.Repo.WriteWorkingFile(abs, content); err != nil {
		return nil, err
	}
	s.Git.Repo.Record(state.FsEvent{Op: "edit", Path: abs})

	result := git.OK()
	out := a.afterCommand(s, "edit "+path, result)
	if err := a.saveLocked(s); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *App) afterCommand(s *Session, line string, result *git.Result) *CommandOutput {
	out := &CommandOutput{Result: result}

	if ls := s.State.Lessons[s.State.ActiveLessonID]; ls != nil {
		out.Progress = a.lessons.Observe(s.Git, ls, line, result)
	}

	if ev := s.Git.Repo.LastEvent(); ev != nil {
		out.BadgesEarned = append(out.BadgesEarned, a.badges.ObserveEvent(s.State.Badges, ev)...)
	}
	out.BadgesEarned = append(out.BadgesEarned,
		a.badges.SyncProgress(s.State.Badges, s.State.Lessons, a.lessons.Catalog())...)

	out.Snapshot = s.Git.Repo.Render()
	return out
}

// saveLocked snapshots the live repo into the active lesson state and
// writes everything through the store.
func (a *App) saveLocked(s *Session) error {
	if ls := s.State.Lessons[s.State.ActiveLessonID]; ls != nil {
		ls.Repo = s.Git.Repo.Save()
	}
	return a.store.Save(s.Git.ID, s.State)
}

// ActivateLesson switches the session to the named lesson.
func (a *App) ActivateLesson(sessionID, lessonID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.openLocked(sessionID)
	if err != nil {
		return err
	}
	if err := a.activate(s, lessonID); err != nil {
		return err
	}
	return a.saveLocked(s)
}

// ResetLesson restores the checkpoint for the current step.
func (a *App) ResetLesson(sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.openLocked(sessionID)
	if err != nil {
		return err
	}
	ls := s.State.Lessons[s.State.ActiveLessonID]
	if ls == nil {
		return fmt.Errorf("no active lesson")
	}
	if err := a.lessons.ResetStep(s.Git, ls); err != nil {
		return err
	}
	return a.saveLocked(s)
}

// SubmitQuiz grades the active lesson's quiz.
func (a *App) SubmitQuiz(sessionID, lessonID string, answers []int) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.openLocked(sessionID)
	if err != nil {
		return false, err
	}
	ls, ok := s.State.Lessons[lessonID]
	if !ok {
		return false, fmt.Errorf("lesson %q not started", lessonID)
	}
	passed, err := a.lessons.SubmitQuiz(ls, answers)
	if err != nil {
		return false, err
	}
	a.badges.SyncProgress(s.State.Badges, s.State.Lessons, a.lessons.Catalog())
	return passed, a.saveLocked(s)
}

// Snapshot returns the render snapshot without executing anything.
func (a *App) Snapshot(sessionID string) (*state.Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.openLocked(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Git.Repo.Render(), nil
}

// SessionState returns the persisted state for API reads.
func (a *App) SessionState(sessionID string) (*persist.State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.openLocked(sessionID)
	if err != nil {
		return nil, err
	}
	return s.State, nil
}

// Export serializes a session's full state as a gzip blob.
func (a *App) Export(sessionID string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.openLocked(sessionID)
	if err != nil {
		return nil, err
	}
	if err := a.saveLocked(s); err != nil {
		return nil, err
	}
	return persist.Export(s.State)
}

// Import replaces a session's full state from a gzip blob.
func (a *App) Import(sessionID string, blob []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	st, err := persist.Import(blob)
	if err != nil {
		return err
	}
	a.badges.MergeDefaults(st.Badges)

	gs := git.NewSession(sessionID, st.RemoteStore)
	if ls := st.Lessons[st.ActiveLessonID]; ls != nil && ls.Repo != nil {
		gs.Repo.Restore(ls.Repo)
	}
	s := &Session{Git: gs, State: st}
	a.sessions[sessionID] = s
	return a.saveLocked(s)
}
