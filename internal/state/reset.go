package state

import "fmt"

// ResolveTarget resolves a reset target: "HEAD", "HEAD~1" or an
// unambiguous hash prefix.
func (r *Repo) ResolveTarget(target string) (string, error) {
	switch target {
	case "", "HEAD":
		if h := r.HeadHash(); h != "" {
			return h, nil
		}
		return "", fmt.Errorf("HEAD does not point at a commit")
	case "HEAD~1":
		h := r.HeadHash()
		if h == "" {
			return "", fmt.Errorf("HEAD does not point at a commit")
		}
		c := r.Commits[h]
		if c == nil || len(c.Parents) == 0 {
			return "", fmt.Errorf("HEAD~1 does not point at a commit")
		}
		return c.Parents[0], nil
	default:
		return r.ResolveHash(target)
	}
}

// ResetHard moves the current branch to target, rewrites the working
// tree from its snapshot and clears the index and merge state. Commits
// left behind become unreachable but stay in storage.
func (r *Repo) ResetHard(target string) (string, error) {
	hash, err := r.ResolveTarget(target)
	if err != nil {
		return "", err
	}
	r.Branches[r.CurrentBranch] = hash
	r.SetWorkingFiles(r.SnapshotOf(hash))
	r.Index = make(map[string]IndexEntry)
	r.Merge = nil
	r.Record(ResetEvent{Target: target, Hash: hash})
	return hash, nil
}

// Revert computes the inverse patch of the target commit against its
// first parent, applies it to HEAD's snapshot, stages the whole result
// (no-op deltas included when unrelated paths diverged earlier) and
// commits it.
func (r *Repo) Revert(target string) (*Commit, error) {
	hash, err := r.ResolveHash(target)
	if err != nil {
		return nil, err
	}
	victim := r.Commits[hash]
	var parentSnap map[string]string
	if len(victim.Parents) > 0 {
		parentSnap = r.SnapshotOf(victim.Parents[0])
	} else {
		parentSnap = map[string]string{}
	}

	result := r.HeadSnapshot()
	// Paths the commit introduced or changed go back to the parent's
	// version; paths it added disappear; paths it deleted come back.
	for p, after := range victim.Files {
		before, existed := parentSnap[p]
		if !existed {
			delete(result, p)
			continue
		}
		if before != after {
			result[p] = before
		}
	}
	for p, before := range parentSnap {
		if _, kept := victim.Files[p]; !kept {
			result[p] = before
		}
	}

	head := r.HeadSnapshot()
	for p, content := range result {
		r.Index[p] = IndexEntry{Content: content}
	}
	for p := range head {
		if _, kept := result[p]; !kept {
			r.Index[p] = IndexEntry{Deleted: true}
		}
	}

	c, err := r.CreateCommit(fmt.Sprintf("Revert %q", victim.Message))
	if err != nil {
		return nil, err
	}
	r.Record(RevertEvent{Hash: hash})
	return c, nil
}
