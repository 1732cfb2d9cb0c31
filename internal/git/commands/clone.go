package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gittutor/internal/git"
)

func init() {
	git.RegisterGit("clone", func() git.Command { return &CloneCommand{} })
}

type CloneCommand struct{}

var _ git.Command = (*CloneCommand)(nil)

// Clone does not require init: it resets the session repo wholesale.
func (c *CloneCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	if len(args) != 2 {
		return git.Usagef("git clone <url>")
	}
	url := args[1]
	if err := s.Repo.CloneFrom(url, s.Remotes); err != nil {
		return git.Errf(1, "fatal: %v", err)
	}
	return git.OK(
		fmt.Sprintf("Cloning into '%s'... (simulated)", url),
		fmt.Sprintf("Receiving objects: done, %d commits.", len(s.Repo.CommitOrder)),
	)
}

func (c *CloneCommand) Help() string {
	return `git clone <url>

Replace the current repo with a copy of the remote at <url>: commits,
branches, an 'origin' remote and an upstream for main. The working tree
is set to the head snapshot.`
}
