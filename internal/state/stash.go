package state

import (
	"errors"
	"fmt"
)

// ErrNothingToStash is returned when the working tree is already clean.
var ErrNothingToStash = errors.New("no local changes to save")

// ErrEmptyStash is returned by pop when the stack is empty.
var ErrEmptyStash = errors.New("no stash entries found")

// StashPush snapshots the working tree and index, then resets both to
// HEAD. Newest entries sit at the front of the stack.
func (r *Repo) StashPush() (*StashEntry, error) {
	if !r.IsDirty() {
		return nil, ErrNothingToStash
	}
	entry := StashEntry{
		WorkingFiles: r.WorkingFiles(),
		StagedFiles:  copyIndex(r.Index),
		Message:      fmt.Sprintf("WIP on %s: %s", r.CurrentBranch, ShortHash(r.HeadHash())),
		Timestamp:    r.now(),
	}
	r.Stash = append([]StashEntry{entry}, r.Stash...)
	r.SetWorkingFiles(r.HeadSnapshot())
	r.Index = make(map[string]IndexEntry)
	r.Record(StashEvent{})
	return &entry, nil
}

// StashPop restores the newest entry into the working tree and index and
// drops it from the stack.
func (r *Repo) StashPop() (*StashEntry, error) {
	if len(r.Stash) == 0 {
		return nil, ErrEmptyStash
	}
	entry := r.Stash[0]
	r.Stash = r.Stash[1:]
	r.SetWorkingFiles(entry.WorkingFiles)
	r.Index = copyIndex(entry.StagedFiles)
	r.Record(StashPopEvent{})
	return &entry, nil
}
