package state

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToCommit is returned when the index is empty.
	ErrNothingToCommit = errors.New("nothing to commit")
	// ErrUnresolvedMerge is returned while merge conflicts remain.
	ErrUnresolvedMerge = errors.New("unresolved merge conflicts")
)

// CreateCommit produces a new commit from HEAD overlaid with the index.
// An empty message defaults to "Commit", or "Merge branch 'X'" when a
// merge is concluding. On success the index and merge state are cleared
// and the working tree is synced for the staged paths.
func (r *Repo) CreateCommit(message string) (*Commit, error) {
	if r.Merge != nil && len(r.Merge.Conflicts) > 0 {
		return nil, ErrUnresolvedMerge
	}
	if len(r.Index) == 0 {
		return nil, ErrNothingToCommit
	}

	concluding := r.Merge
	if message == "" {
		if concluding != nil {
			message = fmt.Sprintf("Merge branch '%s'", concluding.Branch)
		} else {
			message = "Commit"
		}
	}

	files := r.HeadSnapshot()
	for p, e := range r.Index {
		if e.Deleted {
			delete(files, p)
		} else {
			files[p] = e.Content
		}
	}

	var parents []string
	if head := r.HeadHash(); head != "" {
		parents = append(parents, head)
	}
	if concluding != nil && concluding.TheirsHash != "" {
		parents = append(parents, concluding.TheirsHash)
	}

	c := &Commit{
		Hash:      r.newHash(),
		Message:   message,
		Parents:   parents,
		Timestamp: r.now(),
		Files:     files,
		Lane:      r.ensureBranchMeta(r.CurrentBranch).Lane,
		Branch:    r.CurrentBranch,
	}
	r.addCommit(c)
	r.Branches[r.CurrentBranch] = c.Hash

	// Sync the working tree for staged paths so it matches the new HEAD.
	for p, e := range r.Index {
		if e.Deleted {
			r.RemoveWorkingFile(p)
		} else {
			_ = r.WriteWorkingFile(p, e.Content)
		}
	}

	r.Index = make(map[string]IndexEntry)
	r.Merge = nil
	r.Record(CommitEvent{
		Hash:              c.Hash,
		Message:           message,
		Merge:             concluding != nil,
		ResolvedConflicts: concluding != nil && concluding.HadConflicts,
	})
	return c, nil
}

// Log walks the first-parent chain from HEAD, newest first. The walk
// stops on a null parent or a cycle.
func (r *Repo) Log() []*Commit {
	var out []*Commit
	seen := make(map[string]bool)
	for hash := r.HeadHash(); hash != "" && !seen[hash]; {
		c, ok := r.Commits[hash]
		if !ok {
			break
		}
		seen[hash] = true
		out = append(out, c)
		if len(c.Parents) == 0 {
			break
		}
		hash = c.Parents[0]
	}
	return out
}
