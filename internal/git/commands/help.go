package commands

import (
	"context"
	"strings"

	"github.com/kurobon/gittutor/internal/git"
)

func init() {
	git.RegisterShell("help", func() git.Command { return &HelpCommand{} })
	git.SetHelpHandler(func() *git.Result {
		return (&HelpCommand{}).Execute(context.Background(), nil, []string{"help"})
	})
}

type HelpCommand struct{}

var _ git.Command = (*HelpCommand)(nil)

func (c *HelpCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	if len(args) > 1 {
		name := strings.TrimPrefix(strings.Join(args[1:], " "), "git ")
		if text, ok := git.CommandHelp(name); ok {
			return git.OK(strings.Split(text, "\n")...)
		}
		return git.Errf(1, "help: no help for '%s'", strings.Join(args[1:], " "))
	}

	names := git.SupportedCommands()
	res := git.OK("Available commands:")
	for _, n := range names {
		res.Out("  " + n)
	}
	res.Out("", "Run 'help <command>' for details.")
	return res
}

func (c *HelpCommand) Help() string {
	return "help [command]\n\nList available commands or show one command's help."
}
