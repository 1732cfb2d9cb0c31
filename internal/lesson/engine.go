package lesson

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/state"
)

// Engine owns the lesson catalog and drives step progression for one
// session at a time.
type Engine struct {
	order   []string
	lessons map[string]*Lesson
	log     *zap.Logger
}

// NewEngine builds an engine over the given catalog, preserving order.
func NewEngine(catalog []*Lesson, log *zap.Logger) *Engine {
	e := &Engine{lessons: make(map[string]*Lesson, len(catalog)), log: log}
	for _, l := range catalog {
		e.order = append(e.order, l.ID)
		e.lessons[l.ID] = l
	}
	return e
}

// Catalog returns the lessons in teaching order.
func (e *Engine) Catalog() []*Lesson {
	out := make([]*Lesson, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.lessons[id])
	}
	return out
}

// Get looks a lesson up by ID.
func (e *Engine) Get(id string) (*Lesson, bool) {
	l, ok := e.lessons[id]
	return l, ok
}

// Activate makes a lesson current for the session. First activation runs
// the one-shot setup and captures checkpoint 0; later activations
// restore the lesson's saved repo.
func (e *Engine) Activate(s *git.Session, st *State, id string) error {
	l, ok := e.lessons[id]
	if !ok {
		return fmt.Errorf("unknown lesson %q", id)
	}
	if st.Checkpoints == nil {
		st.Checkpoints = make(map[int]*state.RepoState)
	}
	st.LessonID = id

	if st.Repo == nil {
		s.Repo = state.NewRepo()
		if l.Setup != nil {
			l.Setup(s)
		}
		st.StepIndex = 0
		st.Repo = s.Repo.Save()
		st.Checkpoints[0] = s.Repo.Save()
		e.log.Info("lesson started", zap.String("lesson", id))
		return nil
	}

	s.Repo.Restore(st.Repo)
	return nil
}

// Observe runs after every command: it re-validates the current step in
// a loop, advancing, checkpointing and collecting completion lines. The
// lesson is marked completed once every step passes.
func (e *Engine) Observe(s *git.Session, st *State, command string, result *git.Result) []string {
	l, ok := e.lessons[st.LessonID]
	if !ok || st.Completed {
		return nil
	}

	var lines []string
	for st.StepIndex < len(l.Steps) {
		step := l.Steps[st.StepIndex]
		ctx := Context{
			Command:     command,
			Repo:        s.Repo,
			Result:      result,
			Checkpoints: st.Checkpoints,
		}
		if step.Validate == nil || !step.Validate(ctx) {
			break
		}
		done := st.StepIndex
		st.StepIndex++
		st.Checkpoints[st.StepIndex] = s.Repo.Save()
		lines = append(lines, fmt.Sprintf("✔ Step %d complete: %s", done+1, step.Title))
		if l.OnStepComplete != nil {
			l.OnStepComplete(done, s)
		}
		e.log.Info("step complete",
			zap.String("lesson", l.ID), zap.Int("step", done))
	}

	if st.StepIndex >= len(l.Steps) && !st.Completed {
		st.Completed = true
		lines = append(lines, fmt.Sprintf("★ Lesson complete: %s", l.Title))
		e.log.Info("lesson complete", zap.String("lesson", l.ID))
	}
	return lines
}

// ResetStep restores the checkpoint captured when the current step
// became active.
func (e *Engine) ResetStep(s *git.Session, st *State) error {
	cp, ok := st.Checkpoints[st.StepIndex]
	if !ok {
		return fmt.Errorf("no checkpoint for step %d", st.StepIndex)
	}
	s.Repo.Restore(cp)
	return nil
}

// SubmitQuiz grades an answer sheet. Passing requires every question
// correct; the score is the number of correct answers.
func (e *Engine) SubmitQuiz(st *State, answers []int) (bool, error) {
	l, ok := e.lessons[st.LessonID]
	if !ok || l.Quiz == nil {
		return false, fmt.Errorf("lesson %q has no quiz", st.LessonID)
	}
	if len(answers) != len(l.Quiz.Questions) {
		return false, fmt.Errorf("expected %d answers, got %d", len(l.Quiz.Questions), len(answers))
	}
	score := 0
	for i, q := range l.Quiz.Questions {
		if answers[i] == q.Answer {
			score++
		}
	}
	st.QuizScore = score
	if score == len(l.Quiz.Questions) {
		st.QuizPassed = true
	}
	return st.QuizPassed, nil
}
