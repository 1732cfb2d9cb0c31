package commands

import (
	"context"

	"github.com/kurobon/gittutor/internal/git"
)

func init() {
	git.RegisterGit("init", func() git.Command { return &InitCommand{} })
}

type InitCommand struct{}

var _ git.Command = (*InitCommand)(nil)

func (c *InitCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	if reinit := s.Repo.Init(); reinit {
		return git.OK("Reinitialized existing Git repository (simulated)")
	}
	return git.OK("Initialized empty Git repository (simulated)")
}

func (c *InitCommand) Help() string {
	return `git init

Create an empty repository: an unborn 'main' branch, an empty index and
nothing in the commit graph. Running it again is harmless.`
}
