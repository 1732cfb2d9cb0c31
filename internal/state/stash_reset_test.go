package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStashRoundTrip(t *testing.T) {
	r := NewRepo()
	r.Init()
	commitFile(t, r, "/base", "b", "base")
	require.NoError(t, r.WriteWorkingFile("/N", "note"))

	_, err := r.StashPush()
	require.NoError(t, err)
	assert.False(t, r.IsDirty())
	assert.Len(t, r.Stash, 1)
	assert.False(t, r.HasWorkingFile("/N"))

	_, err = r.StashPop()
	require.NoError(t, err)
	assert.Empty(t, r.Stash)
	content, ok := r.ReadWorkingFile("/N")
	require.True(t, ok)
	assert.Equal(t, "note", content)
}

func TestStashRefusesClean(t *testing.T) {
	r := NewRepo()
	r.Init()
	commitFile(t, r, "/f", "1", "one")
	_, err := r.StashPush()
	assert.ErrorIs(t, err, ErrNothingToStash)
}

func TestStashNewestFirst(t *testing.T) {
	r := NewRepo()
	r.Init()
	commitFile(t, r, "/f", "0", "base")

	require.NoError(t, r.WriteWorkingFile("/f", "1"))
	_, err := r.StashPush()
	require.NoError(t, err)
	require.NoError(t, r.WriteWorkingFile("/f", "2"))
	_, err = r.StashPush()
	require.NoError(t, err)

	require.Len(t, r.Stash, 2)
	_, err = r.StashPop()
	require.NoError(t, err)
	content, _ := r.ReadWorkingFile("/f")
	assert.Equal(t, "2", content)
}

func TestStashPopEmpty(t *testing.T) {
	r := NewRepo()
	r.Init()
	_, err := r.StashPop()
	assert.ErrorIs(t, err, ErrEmptyStash)
}

func TestResetHard(t *testing.T) {
	r := NewRepo()
	r.Init()
	first := commitFile(t, r, "/f", "1", "one")
	second := commitFile(t, r, "/f", "2", "two")

	got, err := r.ResetHard("HEAD~1")
	require.NoError(t, err)
	assert.Equal(t, first.Hash, got)
	assert.Equal(t, first.Hash, r.HeadHash())
	assert.Equal(t, first.Files, r.WorkingFiles())
	assert.Empty(t, r.Index)

	// The abandoned commit stays in storage, unreachable from the branch.
	_, stored := r.Commits[second.Hash]
	assert.True(t, stored)
	assert.False(t, r.IsAncestor(second.Hash, r.HeadHash()))
}

func TestResetHardByPrefix(t *testing.T) {
	r := NewRepo()
	r.Init()
	first := commitFile(t, r, "/f", "1", "one")
	commitFile(t, r, "/f", "2", "two")

	_, err := r.ResetHard(first.Hash[:4])
	require.NoError(t, err)
	assert.Equal(t, first.Hash, r.HeadHash())
}

func TestRevert(t *testing.T) {
	r := NewRepo()
	r.Init()
	commitFile(t, r, "/keep", "k", "keep")
	victim := commitFile(t, r, "/extra", "x", "Add extra")

	c, err := r.Revert(victim.Hash)
	require.NoError(t, err)
	assert.Equal(t, `Revert "Add extra"`, c.Message)
	_, kept := c.Files["/extra"]
	assert.False(t, kept)
	assert.Equal(t, "k", c.Files["/keep"])
	assert.False(t, r.HasWorkingFile("/extra"))
	assert.Len(t, r.CommitOrder, 3)
}

func TestRevertModification(t *testing.T) {
	r := NewRepo()
	r.Init()
	commitFile(t, r, "/f", "old", "one")
	victim := commitFile(t, r, "/f", "new", "two")

	c, err := r.Revert(victim.Hash)
	require.NoError(t, err)
	assert.Equal(t, "old", c.Files["/f"])
	content, _ := r.ReadWorkingFile("/f")
	assert.Equal(t, "old", content)
}

func TestRevertRestoresDeletion(t *testing.T) {
	r := NewRepo()
	r.Init()
	commitFile(t, r, "/doomed", "d", "add")
	r.RemoveWorkingFile("/doomed")
	require.NoError(t, r.AddPath("/doomed"))
	victim, err := r.CreateCommit("drop doomed")
	require.NoError(t, err)

	c, err := r.Revert(victim.Hash)
	require.NoError(t, err)
	assert.Equal(t, "d", c.Files["/doomed"])
	assert.True(t, r.HasWorkingFile("/doomed"))
}
