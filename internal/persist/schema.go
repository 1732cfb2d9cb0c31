// Package persist defines the versioned save format and the durable
// store behind it.
package persist

import (
	"encoding/json"
	"fmt"

	"github.com/kurobon/gittutor/internal/badge"
	"github.com/kurobon/gittutor/internal/lesson"
	"github.com/kurobon/gittutor/internal/state"
)

// Version is the only schema version this build reads and writes.
const Version = 1

// State is the full serialized app state for one session. Unknown
// fields in stored JSON are ignored; missing fields default safely.
type State struct {
	Version        int                      `json:"version"`
	ActiveLessonID string                   `json:"activeLessonId"`
	Lessons        map[string]*lesson.State `json:"lessons"`
	Badges         map[string]*badge.State  `json:"badges"`
	RemoteStore    *state.RemoteStore       `json:"remoteStore"`
}

// NewState returns an empty versioned state.
func NewState() *State {
	return &State{
		Version: Version,
		Lessons: make(map[string]*lesson.State),
		Badges:  make(map[string]*badge.State),
	}
}

// Normalize fills nil maps after a load so callers never branch on
// presence.
func (s *State) Normalize() {
	if s.Lessons == nil {
		s.Lessons = make(map[string]*lesson.State)
	}
	if s.Badges == nil {
		s.Badges = make(map[string]*badge.State)
	}
	if s.RemoteStore == nil {
		s.RemoteStore = state.NewRemoteStore()
	}
	if s.RemoteStore.Repos == nil {
		s.RemoteStore.Repos = make(map[string]*state.RemoteRepo)
	}
}

// Marshal encodes the state as JSON.
func (s *State) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes and validates a stored state. Only Version==1 is
// accepted.
func Unmarshal(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("unsupported state version %d", s.Version)
	}
	s.Normalize()
	return &s, nil
}
