package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterGit("log", func() git.Command { return &LogCommand{} })
}

type LogCommand struct{}

var _ git.Command = (*LogCommand)(nil)

func (c *LogCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}

	oneline := false
	for _, arg := range args[1:] {
		switch arg {
		case "--oneline":
			oneline = true
		default:
			return git.Errf(1, "error: unknown option '%s' (simulated)", arg)
		}
	}

	commits := repo.Log()
	if len(commits) == 0 {
		return git.Errf(1, "fatal: your current branch '%s' does not have any commits yet", repo.CurrentBranch)
	}

	res := git.OK()
	for i, commit := range commits {
		if oneline {
			res.Out(fmt.Sprintf("%s %s", state.ShortHash(commit.Hash), commit.Message))
			continue
		}
		res.Out(fmt.Sprintf("commit %s", commit.Hash))
		res.Out(fmt.Sprintf("Date:   %s", commit.Timestamp.Format("Mon Jan 2 15:04:05 2006")))
		res.Out("", fmt.Sprintf("    %s", commit.Message))
		if i < len(commits)-1 {
			res.Out("")
		}
	}
	return res
}

func (c *LogCommand) Help() string {
	return `git log [--oneline]

Walk the first-parent chain from HEAD, newest first. --oneline prints
"<hash> <message>" per commit.`
}
