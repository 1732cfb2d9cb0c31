package commands

import (
	"context"

	"github.com/kurobon/gittutor/internal/git"
)

func init() {
	git.RegisterShell("pwd", func() git.Command { return &PwdCommand{} })
}

type PwdCommand struct{}

var _ git.Command = (*PwdCommand)(nil)

func (c *PwdCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	return git.OK(s.Repo.Cwd())
}

func (c *PwdCommand) Help() string {
	return "pwd\n\nPrint the current directory."
}
