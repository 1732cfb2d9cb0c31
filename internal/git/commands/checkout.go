package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterGit("checkout", func() git.Command { return &CheckoutCommand{} })
}

type CheckoutCommand struct{}

var _ git.Command = (*CheckoutCommand)(nil)

func (c *CheckoutCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}

	create := false
	var name string
	switch {
	case len(args) == 2:
		name = args[1]
	case len(args) == 3 && args[1] == "-b":
		create = true
		name = args[2]
	default:
		return git.Usagef("git checkout [-b] <branch>")
	}

	err := repo.Checkout(name, create)
	switch {
	case errors.Is(err, state.ErrDirtyWorktree):
		return git.Errf(1, "error: your local changes would be overwritten by checkout. Commit or stash them first. (simulated)")
	case err != nil:
		return git.Errf(1, "error: %v", err)
	}

	if create {
		return git.OK(fmt.Sprintf("Switched to a new branch '%s'", name))
	}
	return git.OK(fmt.Sprintf("Switched to branch '%s'", name))
}

func (c *CheckoutCommand) Help() string {
	return `git checkout [-b] <branch>

Switch branches, replacing the working tree with the target head's
snapshot. -b creates the branch first. Refuses while anything is
staged, modified, untracked or conflicted.`
}
