package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterGit("revert", func() git.Command { return &RevertCommand{} })
}

type RevertCommand struct{}

var _ git.Command = (*RevertCommand)(nil)

func (c *RevertCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}
	if len(args) != 2 {
		return git.Usagef("git revert <commit>")
	}

	commit, err := repo.Revert(args[1])
	if err != nil {
		return git.Errf(1, "fatal: %v", err)
	}
	return git.OK(fmt.Sprintf("[%s %s] %s", repo.CurrentBranch, state.ShortHash(commit.Hash), commit.Message))
}

func (c *RevertCommand) Help() string {
	return `git revert <commit>

Create a new commit applying the inverse of <commit>'s patch against
its first parent. History is untouched; the undo is itself a commit.`
}
