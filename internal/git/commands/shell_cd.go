package commands

import (
	"context"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/pathutil"
)

func init() {
	git.RegisterShell("cd", func() git.Command { return &CdCommand{} })
}

type CdCommand struct{}

var _ git.Command = (*CdCommand)(nil)

func (c *CdCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	target := "/"
	if len(args) > 1 {
		target = pathutil.Join(repo.Cwd(), args[1])
	}
	if !repo.HasDir(target) {
		return git.Errf(1, "cd: %s: No such file or directory", args[1])
	}
	repo.SetCwd(target)
	return git.OK()
}

func (c *CdCommand) Help() string {
	return "cd [path]\n\nChange the current directory. Without an argument, go to /."
}
