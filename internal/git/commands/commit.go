package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/state"
)

func init() {
	git.RegisterGit("commit", func() git.Command { return &CommitCommand{} })
}

type CommitCommand struct{}

var _ git.Command = (*CommitCommand)(nil)

type commitOptions struct {
	Message string
}

func (c *CommitCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}

	opts, errRes := c.parseArgs(args)
	if errRes != nil {
		return errRes
	}

	concludedMerge := repo.Merge != nil
	commit, err := repo.CreateCommit(opts.Message)
	switch {
	case errors.Is(err, state.ErrNothingToCommit):
		return git.Errf(1, "nothing to commit, working tree clean")
	case errors.Is(err, state.ErrUnresolvedMerge):
		return git.Errf(1, "error: committing is not possible because you have unmerged files. (simulated)")
	case err != nil:
		return git.Errf(1, "fatal: %v", err)
	}

	head := fmt.Sprintf("[%s %s] %s", repo.CurrentBranch, state.ShortHash(commit.Hash), commit.Message)
	res := git.OK(head)
	if concludedMerge {
		res.Out(fmt.Sprintf("Merge made with %d parents", len(commit.Parents)))
	}
	return res
}

func (c *CommitCommand) parseArgs(args []string) (*commitOptions, *git.Result) {
	opts := &commitOptions{}
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-m":
			if i+1 >= len(args) {
				return nil, git.Usagef("git commit -m <message>")
			}
			opts.Message = args[i+1]
			i++
		default:
			return nil, git.Errf(1, "error: unknown option '%s'. Did you mean -m? (simulated)", args[i])
		}
	}
	return opts, nil
}

func (c *CommitCommand) Help() string {
	return `git commit -m <message>

Record the staged changes as a new commit on the current branch. A
commit concluding a merge gets the incoming head as a second parent.
Without -m the message defaults to "Commit" (or "Merge branch '<x>'").`
}
