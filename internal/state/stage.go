package state

import (
	"fmt"
	"sort"
)

// AddAll stages every path in the union of HEAD and the working tree.
// Implements `git add .` and `git add -A`.
func (r *Repo) AddAll() []string {
	seen := make(map[string]bool)
	for p := range r.HeadSnapshot() {
		seen[p] = true
	}
	for p := range r.WorkingFiles() {
		seen[p] = true
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		// Union members always stage cleanly.
		_ = r.AddPath(p)
	}
	return paths
}

// AddPath stages one absolute path: working content when the file exists,
// a deletion marker when it is tracked but gone. Staging a conflicted
// path marks its conflict resolved.
func (r *Repo) AddPath(path string) error {
	if content, ok := r.ReadWorkingFile(path); ok {
		r.Index[path] = IndexEntry{Content: content}
	} else if _, tracked := r.HeadSnapshot()[path]; tracked {
		r.Index[path] = IndexEntry{Deleted: true}
	} else {
		return fmt.Errorf("pathspec '%s' did not match any files", path)
	}
	r.resolveConflict(path)
	return nil
}

func (r *Repo) resolveConflict(path string) {
	if r.Merge == nil {
		return
	}
	kept := r.Merge.Conflicts[:0]
	for _, p := range r.Merge.Conflicts {
		if p != path {
			kept = append(kept, p)
		}
	}
	r.Merge.Conflicts = kept
}
