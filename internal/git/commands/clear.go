package commands

import (
	"context"

	"github.com/kurobon/gittutor/internal/git"
)

func init() {
	git.RegisterShell("clear", func() git.Command { return &ClearCommand{} })
}

// ClearCommand exists so the terminal UI can detect it and wipe its
// scrollback; the engine itself has nothing to clear.
type ClearCommand struct{}

var _ git.Command = (*ClearCommand)(nil)

func (c *ClearCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	return git.OK()
}

func (c *ClearCommand) Help() string {
	return "clear\n\nClear the terminal."
}
