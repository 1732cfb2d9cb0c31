package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/state"
)

func newSession() *git.Session {
	return git.NewSession("test-session", state.NewSeededRemoteStore())
}

func run(t *testing.T, s *git.Session, line string) *git.Result {
	t.Helper()
	return git.Dispatch(context.Background(), s, line)
}

func runOK(t *testing.T, s *git.Session, line string) *git.Result {
	t.Helper()
	res := run(t, s, line)
	require.True(t, res.Ok, "command %q failed: %v", line, res.Stderr)
	return res
}

func TestUnknownCommandExit127(t *testing.T) {
	s := newSession()
	res := run(t, s, "frobnicate now")
	assert.False(t, res.Ok)
	assert.Equal(t, 127, res.ExitCode)
}

func TestUnknownGitSubcommand(t *testing.T) {
	s := newSession()
	runOK(t, s, "git init")
	res := run(t, s, "git rebase main")
	assert.False(t, res.Ok)
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr[0], "not implemented in this tutorial")
}

func TestGitOpsRequireInit(t *testing.T) {
	s := newSession()
	for _, line := range []string{"git status", "git add .", "git commit -m x", "git log", "git branch", "git merge x", "git push", "git pull", "git stash", "git reset --hard", "git revert abc"} {
		res := run(t, s, line)
		assert.False(t, res.Ok, "%q should fail before init", line)
		assert.Contains(t, res.Stderr[0], "not a git repository", "line %q", line)
	}
}

func TestFirstCommitScenario(t *testing.T) {
	s := newSession()
	runOK(t, s, "git init")
	runOK(t, s, `echo "# X" > R`)
	runOK(t, s, "git add R")
	runOK(t, s, `git commit -m "a"`)

	require.Len(t, s.Repo.Commits, 1)
	head := s.Repo.Commits[s.Repo.HeadHash()]
	assert.Equal(t, map[string]string{"/R": "# X"}, head.Files)

	res := runOK(t, s, "git log --oneline")
	require.Len(t, res.Stdout, 1)
	assert.True(t, strings.HasSuffix(res.Stdout[0], " a"), "got %q", res.Stdout[0])
}

func TestStatusOutput(t *testing.T) {
	s := newSession()
	runOK(t, s, "git init")
	res := runOK(t, s, "git status")
	assert.Equal(t, "On branch main", res.Stdout[0])
	assert.Contains(t, res.Stdout, "No commits yet")

	runOK(t, s, `echo "x" > f.txt`)
	res = runOK(t, s, "git status")
	joined := strings.Join(res.Stdout, "\n")
	assert.Contains(t, joined, "Untracked files:")
	assert.Contains(t, joined, "f.txt")

	runOK(t, s, "git add f.txt")
	res = runOK(t, s, "git status")
	joined = strings.Join(res.Stdout, "\n")
	assert.Contains(t, joined, "Changes to be committed:")
	assert.Contains(t, joined, "new file:")

	runOK(t, s, `git commit -m "add f"`)
	res = runOK(t, s, "git status")
	assert.Contains(t, strings.Join(res.Stdout, "\n"), "working tree clean")
}

func TestBranchListingAndCreation(t *testing.T) {
	s := newSession()
	runOK(t, s, "git init")
	runOK(t, s, `echo "1" > f`)
	runOK(t, s, "git add .")
	runOK(t, s, `git commit -m "base"`)
	runOK(t, s, "git branch dev")

	res := run(t, s, "git branch dev")
	assert.False(t, res.Ok)

	res = runOK(t, s, "git branch")
	assert.Equal(t, []string{"  dev", "* main"}, res.Stdout)
}

func TestMergeConflictScenario(t *testing.T) {
	s := newSession()
	runOK(t, s, "git init")
	runOK(t, s, `echo "blue" > config`)
	runOK(t, s, "git add .")
	runOK(t, s, `git commit -m "base"`)
	runOK(t, s, "git checkout -b feat")
	runOK(t, s, `echo "green" > config`)
	runOK(t, s, "git add .")
	runOK(t, s, `git commit -m "green"`)
	runOK(t, s, "git checkout main")
	runOK(t, s, `echo "red" > config`)
	runOK(t, s, "git add .")
	runOK(t, s, `git commit -m "red"`)

	res := run(t, s, "git merge feat")
	assert.False(t, res.Ok)
	assert.Equal(t, 1, res.ExitCode)
	require.NotNil(t, s.Repo.Merge)
	assert.Equal(t, []string{"/config"}, s.Repo.Merge.Conflicts)

	buf, _ := s.Repo.ReadWorkingFile("/config")
	assert.Contains(t, buf, "<<<<<<< HEAD")
	assert.Contains(t, buf, ">>>>>>> feat")

	runOK(t, s, `echo "purple" > config`)
	runOK(t, s, "git add config")
	runOK(t, s, `git commit -m "m"`)

	head := s.Repo.Commits[s.Repo.HeadHash()]
	assert.Len(t, head.Parents, 2)
	assert.Nil(t, s.Repo.Merge)
}

func TestCheckoutDirtyHint(t *testing.T) {
	s := newSession()
	runOK(t, s, "git init")
	runOK(t, s, `echo "1" > f`)
	runOK(t, s, "git add .")
	runOK(t, s, `git commit -m "base"`)
	runOK(t, s, "git branch dev")
	runOK(t, s, `echo "2" > f`)

	res := run(t, s, "git checkout dev")
	assert.False(t, res.Ok)
	assert.Contains(t, res.Stderr[0], "stash")
}

func TestStashCommands(t *testing.T) {
	s := newSession()
	runOK(t, s, "git init")
	runOK(t, s, `echo "1" > f`)
	runOK(t, s, "git add .")
	runOK(t, s, `git commit -m "base"`)

	res := run(t, s, "git stash")
	assert.False(t, res.Ok) // clean tree

	runOK(t, s, `echo "wip" > n`)
	runOK(t, s, "git stash")
	assert.Len(t, s.Repo.Stash, 1)

	res = runOK(t, s, "git stash list")
	assert.Contains(t, res.Stdout[0], "stash@{0}")

	runOK(t, s, "git stash pop")
	assert.Empty(t, s.Repo.Stash)
	assert.True(t, s.Repo.HasWorkingFile("/n"))
}

func TestResetHardCommand(t *testing.T) {
	s := newSession()
	runOK(t, s, "git init")
	runOK(t, s, `echo "1" > f`)
	runOK(t, s, "git add .")
	runOK(t, s, `git commit -m "one"`)
	runOK(t, s, `echo "2" > f`)
	runOK(t, s, "git add .")
	runOK(t, s, `git commit -m "two"`)

	res := runOK(t, s, "git reset --hard HEAD~1")
	assert.Contains(t, res.Stdout[0], "HEAD is now at")
	content, _ := s.Repo.ReadWorkingFile("/f")
	assert.Equal(t, "1", content)
	assert.Len(t, s.Repo.Commits, 2)
}

func TestPushPullScenario(t *testing.T) {
	s := newSession()
	runOK(t, s, "git clone "+state.SeedRemoteURL)
	require.Len(t, s.Repo.CommitOrder, 2)

	runOK(t, s, `echo "three" > third.txt`)
	runOK(t, s, "git add .")
	runOK(t, s, `git commit -m "third"`)
	res := runOK(t, s, "git push -u origin main")
	assert.Contains(t, strings.Join(res.Stdout, "\n"), "main -> main")

	remote, ok := s.Remotes.GetRepo(state.SeedRemoteURL)
	require.True(t, ok)
	assert.Equal(t, s.Repo.HeadHash(), remote.Branches["main"])

	// Teammate commit, then pull fast-forwards.
	remote.AddCommit("main", "Teammate", map[string]string{"/team.txt": "t"})
	res = runOK(t, s, "git pull")
	assert.Contains(t, strings.Join(res.Stdout, "\n"), "Fast-forward")
	assert.Len(t, s.Repo.CommitOrder, 4)
	assert.True(t, s.Repo.HasWorkingFile("/team.txt"))
}

func TestRemoteCommands(t *testing.T) {
	s := newSession()
	runOK(t, s, "git init")
	runOK(t, s, "git remote add origin https://tutor.example/me/repo.git")

	res := runOK(t, s, "git remote")
	assert.Equal(t, []string{"origin"}, res.Stdout)

	res = runOK(t, s, "git remote -v")
	assert.Contains(t, res.Stdout[0], "(fetch)")

	_, ok := s.Remotes.GetRepo("https://tutor.example/me/repo.git")
	assert.True(t, ok)

	res = run(t, s, "git remote add origin https://elsewhere.example/x.git")
	assert.False(t, res.Ok)
}

func TestShellCommands(t *testing.T) {
	s := newSession()

	res := runOK(t, s, "pwd")
	assert.Equal(t, []string{"/"}, res.Stdout)

	runOK(t, s, "mkdir docs")
	runOK(t, s, "cd docs")
	res = runOK(t, s, "pwd")
	assert.Equal(t, []string{"/docs"}, res.Stdout)

	runOK(t, s, "touch guide.md")
	res = runOK(t, s, "cat guide.md")
	assert.Equal(t, []string{""}, res.Stdout)

	runOK(t, s, `echo "hello\nworld" > guide.md`)
	res = runOK(t, s, "cat guide.md")
	assert.Equal(t, []string{"hello", "world"}, res.Stdout)

	runOK(t, s, "cd ..")
	res = runOK(t, s, "ls")
	assert.Equal(t, []string{"docs/"}, res.Stdout)

	res = run(t, s, "cd nowhere")
	assert.False(t, res.Ok)

	res = run(t, s, "cat missing")
	assert.False(t, res.Ok)

	runOK(t, s, "rm docs/guide.md")
	res = run(t, s, "rm docs/guide.md")
	assert.False(t, res.Ok)
}

func TestTouchNeverOverwrites(t *testing.T) {
	s := newSession()
	runOK(t, s, `echo "content" > keep.txt`)
	runOK(t, s, "touch keep.txt")
	content, _ := s.Repo.ReadWorkingFile("/keep.txt")
	assert.Equal(t, "content", content)
}

func TestHelpListsCommands(t *testing.T) {
	s := newSession()
	res := runOK(t, s, "help")
	joined := strings.Join(res.Stdout, "\n")
	assert.Contains(t, joined, "git commit")
	assert.Contains(t, joined, "pwd")

	res = runOK(t, s, "help git merge")
	assert.Contains(t, strings.Join(res.Stdout, "\n"), "three-way")
}
