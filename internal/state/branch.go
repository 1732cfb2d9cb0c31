package state

import (
	"errors"
	"fmt"
)

// ErrDirtyWorktree blocks checkout, merge and pull. The check is
// deliberately coarse: any staged, unstaged, untracked or conflicted path
// refuses the operation even when the dirty set would not collide with
// the target snapshot.
var ErrDirtyWorktree = errors.New("local changes present")

// CreateBranch points a new branch at the current HEAD.
func (r *Repo) CreateBranch(name string) error {
	if _, exists := r.Branches[name]; exists {
		return fmt.Errorf("a branch named '%s' already exists", name)
	}
	r.Branches[name] = r.HeadHash()
	r.ensureBranchMeta(name)
	r.Record(BranchEvent{Name: name})
	return nil
}

// DeleteBranch removes a branch ref. Only used for the temporary names
// installed during merge-style pulls.
func (r *Repo) DeleteBranch(name string) {
	delete(r.Branches, name)
}

// Checkout switches to the named branch, optionally creating it first.
// Refuses on a dirty working tree. Switching replaces the working tree
// with the target head's snapshot and clears the index and merge state.
func (r *Repo) Checkout(name string, create bool) error {
	if r.IsDirty() {
		return ErrDirtyWorktree
	}
	if create {
		if err := r.CreateBranch(name); err != nil {
			return err
		}
	} else if _, ok := r.Branches[name]; !ok {
		return fmt.Errorf("pathspec '%s' did not match any branch", name)
	}
	r.CurrentBranch = name
	r.SetWorkingFiles(r.SnapshotOf(r.Branches[name]))
	r.Index = make(map[string]IndexEntry)
	r.Merge = nil
	r.Record(CheckoutEvent{Branch: name, Created: create})
	return nil
}
