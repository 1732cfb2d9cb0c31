package commands

import (
	"context"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/pathutil"
)

func init() {
	git.RegisterShell("ls", func() git.Command { return &LsCommand{} })
}

type LsCommand struct{}

var _ git.Command = (*LsCommand)(nil)

func (c *LsCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	target := repo.Cwd()
	if len(args) > 1 {
		target = pathutil.Join(repo.Cwd(), args[1])
	}
	if !repo.HasDir(target) {
		return git.Errf(1, "ls: cannot access '%s': No such file or directory", pathutil.Display(target))
	}

	dirs, files := repo.ListDir(target)
	res := git.OK()
	for _, d := range dirs {
		res.Out(d + "/")
	}
	for _, f := range files {
		res.Out(f)
	}
	return res
}

func (c *LsCommand) Help() string {
	return "ls [path]\n\nList the immediate children of a directory, directories first."
}
