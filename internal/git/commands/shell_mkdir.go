package commands

import (
	"context"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/pathutil"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterShell("mkdir", func() git.Command { return &MkdirCommand{} })
}

type MkdirCommand struct{}

var _ git.Command = (*MkdirCommand)(nil)

// mkdir records the directory; it does not error when it already exists.
func (c *MkdirCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	if len(args) < 2 {
		return git.Usagef("mkdir <path>")
	}
	for _, arg := range args[1:] {
		path := pathutil.Join(s.Repo.Cwd(), arg)
		s.Repo.AddDir(path)
		s.Repo.Record(state.FsEvent{Op: "mkdir", Path: path})
	}
	return git.OK()
}

func (c *MkdirCommand) Help() string {
	return "mkdir <path>\n\nRecord a directory in the virtual filesystem."
}
