package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterGit("reset", func() git.Command { return &ResetCommand{} })
}

type ResetCommand struct{}

var _ git.Command = (*ResetCommand)(nil)

func (c *ResetCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}
	if len(args) < 2 || args[1] != "--hard" {
		return git.Usagef("git reset --hard [<target>]")
	}
	target := ""
	if len(args) == 3 {
		target = args[2]
	} else if len(args) > 3 {
		return git.Usagef("git reset --hard [<target>]")
	}

	hash, err := repo.ResetHard(target)
	if err != nil {
		return git.Errf(1, "fatal: %v", err)
	}
	commit := repo.Commits[hash]
	return git.OK(fmt.Sprintf("HEAD is now at %s %s", state.ShortHash(hash), commit.Message))
}

func (c *ResetCommand) Help() string {
	return `git reset --hard [<target>]

Move the current branch to <target> (HEAD, HEAD~1 or an unambiguous
hash prefix), rewrite the working tree from its snapshot and clear the
index. Commits left behind stay in storage but become unreachable.`
}
