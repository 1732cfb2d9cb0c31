// Package lesson implements the tutorial progression: ordered lessons
// made of validated steps, optional quizzes, and per-step repo
// checkpoints used for "reset repo".
package lesson

import (
	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/state"
)

// Context is everything a step validator may inspect. Validators are
// pure predicates; no hidden closures over the controller.
type Context struct {
	// Command is the raw line the user entered.
	Command string
	// Repo is the live repo after the command ran.
	Repo *state.Repo
	// Result is the structured command outcome.
	Result *git.Result
	// Checkpoints maps step index → repo state captured when that step
	// became current.
	Checkpoints map[int]*state.RepoState
}

// Validator decides whether the current step is complete.
type Validator func(Context) bool

// Step is one checkpointed task inside a lesson.
type Step struct {
	Title    string    `json:"title"`
	Prompt   string    `json:"prompt"`
	Hint     string    `json:"hint"`
	Validate Validator `json:"-"`
}

// Question is one multiple-choice quiz entry.
type Question struct {
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices"`
	// Answer indexes Choices. Not serialized to clients.
	Answer int `json:"-"`
}

// Quiz is an optional knowledge check at the end of a lesson.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Lesson is an identifier, ordered steps, an optional quiz, a one-shot
// setup and an optional per-step completion hook.
type Lesson struct {
	ID          string
	Title       string
	Description string
	Steps       []Step
	Quiz        *Quiz
	// Setup prepares the session repo once, when the lesson is first
	// activated.
	Setup func(s *git.Session)
	// OnStepComplete runs after a step validates, once the step index has
	// advanced and the next step's checkpoint has been captured, and
	// before the next step is validated.
	OnStepComplete func(step int, s *git.Session)
}

// State is the serializable per-lesson progress.
type State struct {
	LessonID    string                   `json:"lessonId"`
	StepIndex   int                      `json:"stepIndex"`
	Completed   bool                     `json:"completed"`
	QuizPassed  bool                     `json:"quizPassed"`
	QuizScore   int                      `json:"quizScore"`
	Repo        *state.RepoState         `json:"repo"`
	Checkpoints map[int]*state.RepoState `json:"checkpoints"`
}
