package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterGit("stash", func() git.Command { return &StashCommand{} })
}

type StashCommand struct{}

var _ git.Command = (*StashCommand)(nil)

func (c *StashCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}

	switch {
	case len(args) == 1:
		entry, err := repo.StashPush()
		if errors.Is(err, state.ErrNothingToStash) {
			return git.Errf(1, "No local changes to save")
		}
		if err != nil {
			return git.Errf(1, "error: %v", err)
		}
		return git.OK(fmt.Sprintf("Saved working directory and index state %s", entry.Message))
	case len(args) == 2 && args[1] == "pop":
		_, err := repo.StashPop()
		if errors.Is(err, state.ErrEmptyStash) {
			return git.Errf(1, "No stash entries found.")
		}
		if err != nil {
			return git.Errf(1, "error: %v", err)
		}
		return git.OK("Dropped stash@{0} (simulated)")
	case len(args) == 2 && args[1] == "list":
		res := git.OK()
		for i, entry := range repo.Stash {
			res.Out(fmt.Sprintf("stash@{%d}: %s", i, entry.Message))
		}
		return res
	default:
		return git.Usagef("git stash [pop|list]")
	}
}

func (c *StashCommand) Help() string {
	return `git stash [pop|list]

Shelve the dirty working tree and index, resetting both to HEAD. "pop"
restores the newest entry and drops it from the stack.`
}
