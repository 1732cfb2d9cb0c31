package commands

import (
	"context"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/pathutil"
)

func init() {
	git.RegisterGit("add", func() git.Command { return &AddCommand{} })
}

type AddCommand struct{}

var _ git.Command = (*AddCommand)(nil)

func (c *AddCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}
	if len(args) < 2 {
		return git.Usagef("git add <pathspec>...")
	}

	for _, arg := range args[1:] {
		if arg == "." || arg == "-A" || arg == "--all" {
			repo.AddAll()
			continue
		}
		path := pathutil.Join(repo.Cwd(), arg)
		if err := repo.AddPath(path); err != nil {
			return git.Errf(1, "fatal: %v", err)
		}
	}
	return git.OK()
}

func (c *AddCommand) Help() string {
	return `git add <pathspec>...

Stage file contents into the index. "." or "-A" stages every change,
including deletions of tracked files. Staging a conflicted path marks
its conflict as resolved.`
}
