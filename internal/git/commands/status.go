package commands

import (
	"context"
	"fmt"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/pathutil"
)

func init() {
	git.RegisterGit("status", func() git.Command { return &StatusCommand{} })
}

type StatusCommand struct{}

var _ git.Command = (*StatusCommand)(nil)

func (c *StatusCommand) Execute(ctx context.Context, s *git.Session, args []string) *git.Result {
	repo := s.Repo
	if !repo.Initialized {
		return git.NotARepo()
	}

	st := repo.ComputeStatus()
	res := git.OK(fmt.Sprintf("On branch %s", repo.CurrentBranch))
	if repo.HeadHash() == "" {
		res.Out("", "No commits yet")
	}

	if len(st.Conflicts) > 0 {
		res.Out("", "You have unmerged paths.", "  (fix conflicts and run \"git commit\")", "")
		res.Out("Unmerged paths:")
		for _, p := range st.Conflicts {
			res.Out(fmt.Sprintf("\tboth modified:   %s", pathutil.Display(p)))
		}
	}

	if len(st.Staged) > 0 {
		res.Out("", "Changes to be committed:")
		for _, e := range st.Staged {
			res.Out(fmt.Sprintf("\t%s   %s", statusLabel(e.State), pathutil.Display(e.Path)))
		}
	}
	if len(st.Unstaged) > 0 {
		res.Out("", "Changes not staged for commit:", "  (use \"git add <file>...\" to update what will be committed)")
		for _, e := range st.Unstaged {
			res.Out(fmt.Sprintf("\t%s   %s", statusLabel(e.State), pathutil.Display(e.Path)))
		}
	}
	if len(st.Untracked) > 0 {
		res.Out("", "Untracked files:", "  (use \"git add <file>...\" to include in what will be committed)")
		for _, p := range st.Untracked {
			res.Out(fmt.Sprintf("\t%s", pathutil.Display(p)))
		}
	}
	if st.Clean() {
		res.Out("nothing to commit, working tree clean")
	}
	return res
}

func statusLabel(state string) string {
	switch state {
	case "new":
		return "new file:"
	case "deleted":
		return "deleted: "
	default:
		return "modified:"
	}
}

func (c *StatusCommand) Help() string {
	return `git status

Show staged, unstaged and untracked changes. Conflicted paths from an
in-progress merge are listed separately. When stuck, start here.`
}
