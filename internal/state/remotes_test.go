package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRemote(t *testing.T) {
	rs := NewSeededRemoteStore()
	rr, ok := rs.GetRepo(SeedRemoteURL)
	require.True(t, ok)
	require.Len(t, rr.CommitOrder, 2)
	assert.Equal(t, "Initial commit", rr.Commits[rr.CommitOrder[0]].Message)
	assert.Equal(t, "Add contributing guide", rr.Commits[rr.CommitOrder[1]].Message)
	head := rr.Commits[rr.Branches["main"]]
	assert.Contains(t, head.Files, "/README.md")
	assert.Contains(t, head.Files, "/CONTRIBUTING.md")
}

func TestEnsureRepoCreatesEmptyRemote(t *testing.T) {
	rs := NewRemoteStore()
	rr := rs.EnsureRepo("https://x.example/a.git")
	assert.Equal(t, "", rr.Branches["main"])
	assert.Same(t, rr, rs.EnsureRepo("https://x.example/a.git"))
}

func TestClone(t *testing.T) {
	rs := NewSeededRemoteStore()
	r := NewRepo()
	require.NoError(t, r.CloneFrom(SeedRemoteURL, rs))

	assert.True(t, r.Initialized)
	assert.Equal(t, SeedRemoteURL, r.Remotes["origin"])
	assert.Equal(t, Upstream{Remote: "origin", Branch: "main"}, r.Upstreams["main"])

	remote, _ := rs.GetRepo(SeedRemoteURL)
	assert.Equal(t, remote.Branches["main"], r.HeadHash())
	assert.Equal(t, len(remote.CommitOrder), len(r.CommitOrder))
	assert.Equal(t, r.HeadSnapshot(), r.WorkingFiles())

	// Cloned commits are deep copies, not aliases into the store.
	r.Commits[r.HeadHash()].Files["/README.md"] = "tampered"
	assert.NotEqual(t, "tampered", remote.Commits[remote.Branches["main"]].Files["/README.md"])
}

func TestPushTransfersCommits(t *testing.T) {
	rs := NewSeededRemoteStore()
	r := NewRepo()
	require.NoError(t, r.CloneFrom(SeedRemoteURL, rs))
	local := commitFile(t, r, "/feature.txt", "new", "Local work")

	pr, err := r.Push("", "", true, rs)
	require.NoError(t, err)
	assert.Equal(t, "origin", pr.Remote)
	assert.Equal(t, "main", pr.Branch)
	assert.Equal(t, 1, pr.NewCount)

	remote, _ := rs.GetRepo(SeedRemoteURL)
	assert.Equal(t, local.Hash, remote.Branches["main"])
	for _, h := range r.CommitOrder {
		_, ok := remote.Commits[h]
		assert.True(t, ok, "commit %s missing on remote", h)
	}
}

func TestPushRequiresKnownRemote(t *testing.T) {
	r := NewRepo()
	r.Init()
	commitFile(t, r, "/f", "1", "one")
	_, err := r.Push("", "", false, NewRemoteStore())
	assert.Error(t, err)
}

func TestPullFastForward(t *testing.T) {
	rs := NewSeededRemoteStore()
	r := NewRepo()
	require.NoError(t, r.CloneFrom(SeedRemoteURL, rs))
	commitFile(t, r, "/local.txt", "3", "Third")
	_, err := r.Push("", "", true, rs)
	require.NoError(t, err)

	// A teammate lands a commit on the remote.
	remote, _ := rs.GetRepo(SeedRemoteURL)
	remote.AddCommit("main", "Teammate change", map[string]string{"/team.txt": "hi"})

	pr, err := r.Pull("", "", rs)
	require.NoError(t, err)
	assert.Equal(t, PullFastForward, pr.Kind)
	assert.Len(t, r.CommitOrder, 4)
	assert.Equal(t, remote.Branches["main"], r.HeadHash())
	content, ok := r.ReadWorkingFile("/team.txt")
	require.True(t, ok)
	assert.Equal(t, "hi", content)
}

func TestPullUpToDate(t *testing.T) {
	rs := NewSeededRemoteStore()
	r := NewRepo()
	require.NoError(t, r.CloneFrom(SeedRemoteURL, rs))

	pr, err := r.Pull("", "", rs)
	require.NoError(t, err)
	assert.Equal(t, PullUpToDate, pr.Kind)

	// Ahead of the remote is also "up to date".
	commitFile(t, r, "/x", "1", "ahead")
	pr, err = r.Pull("", "", rs)
	require.NoError(t, err)
	assert.Equal(t, PullUpToDate, pr.Kind)
}

func TestPullDivergedMerges(t *testing.T) {
	rs := NewSeededRemoteStore()
	r := NewRepo()
	require.NoError(t, r.CloneFrom(SeedRemoteURL, rs))
	commitFile(t, r, "/mine.txt", "me", "Mine")

	remote, _ := rs.GetRepo(SeedRemoteURL)
	remote.AddCommit("main", "Theirs", map[string]string{"/theirs.txt": "them"})

	pr, err := r.Pull("", "", rs)
	require.NoError(t, err)
	assert.Equal(t, PullMerged, pr.Kind)
	require.NotNil(t, pr.Commit)
	assert.Len(t, pr.Commit.Parents, 2)
	assert.True(t, r.HasWorkingFile("/mine.txt"))
	assert.True(t, r.HasWorkingFile("/theirs.txt"))

	// The temporary tracking name is gone again.
	_, exists := r.Branches["origin/main"]
	assert.False(t, exists)
}

func TestPullDivergedConflicts(t *testing.T) {
	rs := NewSeededRemoteStore()
	r := NewRepo()
	require.NoError(t, r.CloneFrom(SeedRemoteURL, rs))
	commitFile(t, r, "/README.md", "mine", "Mine")

	remote, _ := rs.GetRepo(SeedRemoteURL)
	remote.AddCommit("main", "Theirs", map[string]string{"/README.md": "theirs"})

	pr, err := r.Pull("", "", rs)
	require.NoError(t, err)
	assert.Equal(t, PullConflicted, pr.Kind)
	assert.Equal(t, []string{"/README.md"}, pr.Conflicts)
	require.NotNil(t, r.Merge)
	assert.Equal(t, "origin/main", r.Merge.Branch)
}

func TestPullRefusesDirty(t *testing.T) {
	rs := NewSeededRemoteStore()
	r := NewRepo()
	require.NoError(t, r.CloneFrom(SeedRemoteURL, rs))
	require.NoError(t, r.WriteWorkingFile("/wip", "x"))

	_, err := r.Pull("", "", rs)
	assert.ErrorIs(t, err, ErrDirtyWorktree)
}
