package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gittutor/internal/git"
)

func init() {
	git.RegisterGit("branch", func() git.Command { return &BranchCommand{} })
}

type BranchCommand struct{}

var _ git.Command = (*BranchCommand)(nil)

func (c *BranchCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}

	switch len(args) {
	case 1:
		res := git.OK()
		for _, name := range repo.BranchNames() {
			if name == repo.CurrentBranch {
				res.Out(fmt.Sprintf("* %s", name))
			} else {
				res.Out(fmt.Sprintf("  %s", name))
			}
		}
		return res
	case 2:
		if err := repo.CreateBranch(args[1]); err != nil {
			return git.Errf(1, "fatal: %v", err)
		}
		return git.OK()
	default:
		return git.Usagef("git branch [<name>]")
	}
}

func (c *BranchCommand) Help() string {
	return `git branch [<name>]

List branches (current marked with *), or create <name> pointing at the
current HEAD.`
}
