package commands

import (
	"context"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/pathutil"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterShell("rm", func() git.Command { return &RmCommand{} })
}

type RmCommand struct{}

var _ git.Command = (*RmCommand)(nil)

// rm removes from the working tree only; it does not stage the deletion.
func (c *RmCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	if len(args) < 2 {
		return git.Usagef("rm <path>")
	}
	for _, arg := range args[1:] {
		path := pathutil.Join(s.Repo.Cwd(), arg)
		if !s.Repo.RemoveWorkingFile(path) {
			return git.Errf(1, "rm: cannot remove '%s': No such file or directory", arg)
		}
		s.Repo.Record(state.FsEvent{Op: "rm", Path: path})
	}
	return git.OK()
}

func (c *RmCommand) Help() string {
	return "rm <path>\n\nRemove a file from the working tree."
}
