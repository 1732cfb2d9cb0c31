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
	git.RegisterGit("merge", func() git.Command { return &MergeCommand{} })
}

type MergeCommand struct{}

var _ git.Command = (*MergeCommand)(nil)

func (c *MergeCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}
	if len(args) != 2 {
		return git.Usagef("git merge <branch>")
	}
	name := args[1]

	outcome, err := repo.MergeBranch(name)
	switch {
	case errors.Is(err, state.ErrDirtyWorktree):
		return git.Errf(1, "error: your local changes would be overwritten by merge. Commit or stash them first. (simulated)")
	case err != nil:
		return git.Errf(1, "%v", err)
	}

	switch outcome.Kind {
	case state.MergeUpToDate:
		return git.OK("Already up to date.")
	case state.MergeFastForward:
		return git.OK("Fast-forward", fmt.Sprintf("Updated to %s", state.ShortHash(repo.HeadHash())))
	case state.MergeCommitted:
		return git.OK(fmt.Sprintf("Merge made by the 'recursive' strategy. [%s]", state.ShortHash(outcome.Commit.Hash)))
	default:
		res := git.Errf(1, "Automatic merge failed; fix conflicts and then commit the result.")
		for _, p := range outcome.Conflicts {
			res.Stdout = append(res.Stdout, fmt.Sprintf("CONFLICT (content): Merge conflict in %s", pathutil.Display(p)))
		}
		return res
	}
}

func (c *MergeCommand) Help() string {
	return `git merge <branch>

Merge the named branch into the current one. Fast-forwards when the
histories have not diverged; otherwise performs a three-way merge
against the common ancestor. Conflicting paths get standard markers in
the working tree and must be resolved with edit + add + commit.`
}
