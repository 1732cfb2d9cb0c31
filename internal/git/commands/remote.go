package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/kurobon/gittutor/internal/git"
)

func init() {
	git.RegisterGit("remote", func() git.Command { return &RemoteCommand{} })
}

type RemoteCommand struct{}

var _ git.Command = (*RemoteCommand)(nil)

func (c *RemoteCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}

	names := make([]string, 0, len(repo.Remotes))
	for n := range repo.Remotes {
		names = append(names, n)
	}
	sort.Strings(names)

	switch {
	case len(args) == 1:
		return git.OK(names...)
	case len(args) == 2 && args[1] == "-v":
		res := git.OK()
		for _, n := range names {
			res.Out(fmt.Sprintf("%s\t%s (fetch)", n, repo.Remotes[n]))
			res.Out(fmt.Sprintf("%s\t%s (push)", n, repo.Remotes[n]))
		}
		return res
	case len(args) == 4 && args[1] == "add":
		if err := repo.AddRemote(args[2], args[3], s.Remotes); err != nil {
			return git.Errf(1, "error: %v", err)
		}
		return git.OK()
	default:
		return git.Usagef("git remote [-v] | git remote add <name> <url>")
	}
}

func (c *RemoteCommand) Help() string {
	return `git remote [-v]
git remote add <name> <url>

Manage the named remotes. Adding a remote also makes sure its repository
exists in the shared remote store.`
}
