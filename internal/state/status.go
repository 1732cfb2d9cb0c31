package state

import "sort"

// ComputeStatus derives the staged, unstaged and untracked change sets
// from HEAD, index and working tree. A path changed again after staging
// is reported in both the staged and the unstaged (or untracked) set.
// Paths conflicting in the current merge are reported separately and
// excluded from the other sets.
func (r *Repo) ComputeStatus() *Status {
	head := r.HeadSnapshot()
	working := r.WorkingFiles()
	conflicts := make(map[string]bool)
	st := &Status{}
	if r.Merge != nil {
		for _, p := range r.Merge.Conflicts {
			conflicts[p] = true
			st.Conflicts = append(st.Conflicts, p)
		}
		sort.Strings(st.Conflicts)
	}

	// Staged: index differs from HEAD.
	stagedPaths := make([]string, 0, len(r.Index))
	for p := range r.Index {
		stagedPaths = append(stagedPaths, p)
	}
	sort.Strings(stagedPaths)
	for _, p := range stagedPaths {
		if conflicts[p] {
			continue
		}
		entry := r.Index[p]
		headContent, tracked := head[p]
		switch {
		case entry.Deleted:
			if tracked {
				st.Staged = append(st.Staged, StatusEntry{Path: p, State: "deleted"})
			}
		case !tracked:
			st.Staged = append(st.Staged, StatusEntry{Path: p, State: "new"})
		case entry.Content != headContent:
			st.Staged = append(st.Staged, StatusEntry{Path: p, State: "modified"})
		}
	}

	// Unstaged: working tree differs from its baseline (index content when
	// staged, else HEAD content). Untracked: in working tree only.
	workingPaths := make([]string, 0, len(working))
	for p := range working {
		workingPaths = append(workingPaths, p)
	}
	sort.Strings(workingPaths)
	for _, p := range workingPaths {
		if conflicts[p] {
			continue
		}
		baseline, tracked := r.baseline(p, head)
		if !tracked {
			st.Untracked = append(st.Untracked, p)
			continue
		}
		if working[p] != baseline {
			st.Unstaged = append(st.Unstaged, StatusEntry{Path: p, State: "modified"})
		}
	}

	// Tracked paths missing from the working tree are unstaged deletions.
	trackedPaths := make(map[string]bool, len(head)+len(r.Index))
	for p := range head {
		trackedPaths[p] = true
	}
	for p, e := range r.Index {
		if e.Deleted {
			delete(trackedPaths, p)
		} else {
			trackedPaths[p] = true
		}
	}
	var missing []string
	for p := range trackedPaths {
		if _, ok := working[p]; !ok && !conflicts[p] {
			missing = append(missing, p)
		}
	}
	sort.Strings(missing)
	for _, p := range missing {
		st.Unstaged = append(st.Unstaged, StatusEntry{Path: p, State: "deleted"})
	}
	sort.Slice(st.Unstaged, func(i, j int) bool { return st.Unstaged[i].Path < st.Unstaged[j].Path })

	return st
}

// baseline returns the content the working tree is compared against for
// path, and whether the path is tracked at all.
func (r *Repo) baseline(path string, head map[string]string) (string, bool) {
	if e, ok := r.Index[path]; ok {
		if e.Deleted {
			return "", false
		}
		return e.Content, true
	}
	content, ok := head[path]
	return content, ok
}

// IsDirty reports whether anything is staged, modified, untracked or
// conflicted. Checkout, merge and pull refuse to run on a dirty tree.
func (r *Repo) IsDirty() bool {
	return !r.ComputeStatus().Clean()
}
