package git

import (
	"time"

	"github.com/google/uuid"

	"github.com/kurobon/gittutor/internal/state"
)

// Session bundles the repo and the process-wide remote store a command
// executes against. It is owned by a single app controller; commands run
// one at a time.
type Session struct {
	ID        string
	Repo      *state.Repo
	Remotes   *state.RemoteStore
	CreatedAt time.Time
}

// NewSession creates a session around a fresh repo and the given remote
// store. An empty id gets a generated one.
func NewSession(id string, remotes *state.RemoteStore) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		ID:        id,
		Repo:      state.NewRepo(),
		Remotes:   remotes,
		CreatedAt: time.Now(),
	}
}
