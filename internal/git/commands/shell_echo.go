package commands

import (
	"context"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/pathutil"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterShell("echo", func() git.Command { return &EchoCommand{} })
	git.SetRedirectHandler(execEchoRedirect)
}

type EchoCommand struct{}

var _ git.Command = (*EchoCommand)(nil)

// Plain echo without redirection just prints its arguments. The `echo
// "text" > file` form is detected by the dispatcher's pre-pass and lands
// in execEchoRedirect instead.
func (c *EchoCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	if len(args) == 1 {
		return git.OK("")
	}
	line := ""
	for i, a := range args[1:] {
		if i > 0 {
			line += " "
		}
		line += a
	}
	return git.OK(line)
}

func execEchoRedirect(s *git.Session, rd *git.Redirect) *git.Result {
	path := pathutil.Join(s.Repo.Cwd(), rd.Target)
	if err := s.Repo.WriteWorkingFile(path, rd.Text); err != nil {
		return git.Errf(1, "echo: cannot write '%s': %v", rd.Target, err)
	}
	s.Repo.Record(state.FsEvent{Op: "write", Path: path})
	return git.OK()
}

func (c *EchoCommand) Help() string {
	return `echo "text" > <file>

Write text to a file, creating parent directories implicitly. A literal
\n in the text becomes a newline. Without a redirection, echo prints
its arguments.`
}
