package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/pathutil"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterGit("pull", func() git.Command { return &PullCommand{} })
}

type PullCommand struct{}

var _ git.Command = (*PullCommand)(nil)

func (c *PullCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}

	var remoteArg, branchArg string
	switch len(args) {
	case 1:
	case 3:
		remoteArg, branchArg = args[1], args[2]
	default:
		return git.Usagef("git pull [<remote> <branch>]")
	}

	pr, err := repo.Pull(remoteArg, branchArg, s.Remotes)
	switch {
	case errors.Is(err, state.ErrDirtyWorktree):
		return git.Errf(1, "error: your local changes would be overwritten by pull. Commit or stash them first. (simulated)")
	case err != nil:
		return git.Errf(1, "error: %v", err)
	}

	switch pr.Kind {
	case state.PullUpToDate:
		return git.OK("Already up to date.")
	case state.PullFastForward:
		return git.OK(
			fmt.Sprintf("Updating to %s", state.ShortHash(repo.HeadHash())),
			"Fast-forward",
		)
	case state.PullMerged:
		return git.OK(fmt.Sprintf("Merge made by the 'recursive' strategy. [%s]", state.ShortHash(pr.Commit.Hash)))
	default:
		res := git.Errf(1, "Automatic merge failed; fix conflicts and then commit the result.")
		for _, p := range pr.Conflicts {
			res.Stdout = append(res.Stdout, fmt.Sprintf("CONFLICT (content): Merge conflict in %s", pathutil.Display(p)))
		}
		return res
	}
}

func (c *PullCommand) Help() string {
	return `git pull [<remote> <branch>]

Import missing commits from the remote, then fast-forward or merge the
remote branch head into the current branch. Diverged histories merge
exactly like 'git merge'; conflicts are resolved the same way.`
}
