package commands

import (
	"context"
	"strings"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/pathutil"
)

func init() {
	git.RegisterShell("cat", func() git.Command { return &CatCommand{} })
}

type CatCommand struct{}

var _ git.Command = (*CatCommand)(nil)

func (c *CatCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	if len(args) != 2 {
		return git.Usagef("cat <path>")
	}
	path := pathutil.Join(s.Repo.Cwd(), args[1])
	content, ok := s.Repo.ReadWorkingFile(path)
	if !ok {
		return git.Errf(1, "cat: %s: No such file or directory", args[1])
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	return git.OK(lines...)
}

func (c *CatCommand) Help() string {
	return "cat <path>\n\nPrint a file's content."
}
