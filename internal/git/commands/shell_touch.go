package commands

import (
	"context"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/pathutil"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterShell("touch", func() git.Command { return &TouchCommand{} })
}

type TouchCommand struct{}

var _ git.Command = (*TouchCommand)(nil)

// touch ensures an empty file exists; existing content is never
// overwritten.
func (c *TouchCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	if len(args) < 2 {
		return git.Usagef("touch <path>")
	}
	for _, arg := range args[1:] {
		path := pathutil.Join(s.Repo.Cwd(), arg)
		if s.Repo.HasWorkingFile(path) {
			continue
		}
		if err := s.Repo.WriteWorkingFile(path, ""); err != nil {
			return git.Errf(1, "touch: cannot touch '%s': %v", arg, err)
		}
		s.Repo.Record(state.FsEvent{Op: "touch", Path: path})
	}
	return git.OK()
}

func (c *TouchCommand) Help() string {
	return "touch <path>\n\nCreate an empty file if it does not exist."
}
