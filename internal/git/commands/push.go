package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterGit("push", func() git.Command { return &PushCommand{} })
}

type PushCommand struct{}

var _ git.Command = (*PushCommand)(nil)

func (c *PushCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}

	setUpstream := false
	var positional []string
	for _, arg := range args[1:] {
		switch arg {
		case "-u", "--set-upstream":
			setUpstream = true
		default:
			positional = append(positional, arg)
		}
	}
	var remoteArg, branchArg string
	switch len(positional) {
	case 0:
	case 2:
		remoteArg, branchArg = positional[0], positional[1]
	default:
		return git.Usagef("git push [-u] [<remote> <branch>]")
	}

	pr, err := repo.Push(remoteArg, branchArg, setUpstream, s.Remotes)
	if err != nil {
		return git.Errf(1, "error: %v", err)
	}

	if pr.UpToDate {
		return git.OK("Everything up-to-date")
	}
	res := git.OK(fmt.Sprintf("To %s", repo.Remotes[pr.Remote]))
	res.Out(fmt.Sprintf("   %s..%s  %s -> %s",
		refDisplay(pr.OldHash), state.ShortHash(pr.NewHash), pr.Branch, pr.Branch))
	if setUpstream {
		res.Out(fmt.Sprintf("branch '%s' set up to track '%s/%s'.", pr.Branch, pr.Remote, pr.Branch))
	}
	return res
}

func refDisplay(hash string) string {
	if hash == "" {
		return "new"
	}
	return state.ShortHash(hash)
}

func (c *PushCommand) Help() string {
	return `git push [-u] [<remote> <branch>]

Copy missing commits to the remote and advance its branch ref. Defaults
come from the branch upstream, then "origin". -u records the upstream
for later bare pushes and pulls.`
}
