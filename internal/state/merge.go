package state

import (
	"fmt"
	"sort"
	"strings"
)

// IsAncestor reports whether ancestor is reachable from descendant by
// following parent edges. Reflexive: a commit is its own ancestor.
func (r *Repo) IsAncestor(ancestor, descendant string) bool {
	if ancestor == "" || descendant == "" {
		return false
	}
	queue := []string{descendant}
	seen := map[string]bool{descendant: true}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if h == ancestor {
			return true
		}
		c, ok := r.Commits[h]
		if !ok {
			continue
		}
		for _, p := range c.Parents {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return false
}

// MergeBase picks the common ancestor of a and b minimizing the summed
// BFS distance to both heads. Ties resolve to the candidate discovered
// first in the BFS from a.
func (r *Repo) MergeBase(a, b string) string {
	distA, orderA := r.bfsDistances(a)
	distB, _ := r.bfsDistances(b)

	best := ""
	bestCost := -1
	for _, h := range orderA {
		db, ok := distB[h]
		if !ok {
			continue
		}
		cost := distA[h] + db
		if bestCost == -1 || cost < bestCost {
			best = h
			bestCost = cost
		}
	}
	return best
}

// bfsDistances walks all parent edges from start, returning hash →
// distance plus the discovery order.
func (r *Repo) bfsDistances(start string) (map[string]int, []string) {
	dist := make(map[string]int)
	var order []string
	if start == "" {
		return dist, order
	}
	dist[start] = 0
	order = append(order, start)
	queue := []string{start}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		c, ok := r.Commits[h]
		if !ok {
			continue
		}
		for _, p := range c.Parents {
			if _, seen := dist[p]; seen {
				continue
			}
			dist[p] = dist[h] + 1
			order = append(order, p)
			queue = append(queue, p)
		}
	}
	return dist, order
}

// MergeFiles is the outcome of a pure three-way snapshot merge.
type MergeFiles struct {
	// Files is the merged snapshot. Conflicting paths hold a
	// marker-filled buffer.
	Files map[string]string
	// Conflicts lists the conflicting paths, sorted.
	Conflicts []string
}

// Merge3 merges ours and theirs against base per path. For each path in
// the union: identical sides win, a side equal to base yields to the
// other, anything else is a conflict rendered with standard markers.
// Pure function; the repo mutation in MergeBranch is a thin wrapper over
// it.
func Merge3(base, ours, theirs map[string]string, theirsName string) *MergeFiles {
	paths := make(map[string]bool)
	for p := range base {
		paths[p] = true
	}
	for p := range ours {
		paths[p] = true
	}
	for p := range theirs {
		paths[p] = true
	}

	out := &MergeFiles{Files: make(map[string]string)}
	for p := range paths {
		b, inBase := base[p]
		o, inOurs := ours[p]
		t, inTheirs := theirs[p]
		switch {
		case inOurs == inTheirs && o == t:
			// Same on both sides, including deleted on both.
			if inOurs {
				out.Files[p] = o
			}
		case inOurs == inBase && o == b:
			// Ours untouched: take theirs (content or deletion).
			if inTheirs {
				out.Files[p] = t
			}
		case inTheirs == inBase && t == b:
			// Theirs untouched: keep ours.
			if inOurs {
				out.Files[p] = o
			}
		default:
			out.Files[p] = conflictBuffer(o, t, theirsName)
			out.Conflicts = append(out.Conflicts, p)
		}
	}
	sort.Strings(out.Conflicts)
	return out
}

func conflictBuffer(ours, theirs, theirsName string) string {
	var sb strings.Builder
	sb.WriteString("<<<<<<< HEAD\n")
	sb.WriteString(ours)
	if ours != "" && !strings.HasSuffix(ours, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("=======\n")
	sb.WriteString(theirs)
	if theirs != "" && !strings.HasSuffix(theirs, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf(">>>>>>> %s\n", theirsName))
	return sb.String()
}

// MergeKind classifies what MergeBranch did.
type MergeKind int

const (
	MergeUpToDate MergeKind = iota
	MergeFastForward
	MergeCommitted
	MergeConflicted
)

// MergeOutcome reports the result of MergeBranch for display.
type MergeOutcome struct {
	Kind      MergeKind
	Commit    *Commit
	Conflicts []string
}

// MergeBranch merges the named branch into the current one. Refuses on a
// dirty tree. A conflicting merge is the one operation that deliberately
// leaves partial state: MergeState set and marker buffers in the working
// tree.
func (r *Repo) MergeBranch(name string) (*MergeOutcome, error) {
	theirsHead, ok := r.Branches[name]
	if !ok {
		return nil, fmt.Errorf("merge: %s - not something we can merge", name)
	}
	if r.IsDirty() {
		return nil, ErrDirtyWorktree
	}
	oursHead := r.HeadHash()

	switch {
	case theirsHead == "":
		return &MergeOutcome{Kind: MergeUpToDate}, nil
	case oursHead == "":
		r.fastForward(theirsHead)
		r.Record(MergeEvent{Branch: name, FastForward: true})
		return &MergeOutcome{Kind: MergeFastForward}, nil
	case r.IsAncestor(theirsHead, oursHead):
		return &MergeOutcome{Kind: MergeUpToDate}, nil
	case r.IsAncestor(oursHead, theirsHead):
		r.fastForward(theirsHead)
		r.Record(MergeEvent{Branch: name, FastForward: true})
		return &MergeOutcome{Kind: MergeFastForward}, nil
	}

	base := r.MergeBase(oursHead, theirsHead)
	merged := Merge3(r.SnapshotOf(base), r.SnapshotOf(oursHead), r.SnapshotOf(theirsHead), name)

	r.SetWorkingFiles(merged.Files)
	r.Merge = &MergeState{
		Branch:       name,
		TheirsHash:   theirsHead,
		Conflicts:    append([]string(nil), merged.Conflicts...),
		HadConflicts: len(merged.Conflicts) > 0,
	}
	r.stageMergeDelta(merged)

	if len(merged.Conflicts) > 0 {
		r.Record(MergeEvent{Branch: name, Conflicts: len(merged.Conflicts)})
		return &MergeOutcome{Kind: MergeConflicted, Conflicts: merged.Conflicts}, nil
	}

	c, err := r.CreateCommit(fmt.Sprintf("Merge branch '%s'", name))
	if err != nil {
		return nil, err
	}
	r.Record(MergeEvent{Branch: name})
	return &MergeOutcome{Kind: MergeCommitted, Commit: c}, nil
}

// stageMergeDelta stages the merged tree against ours, including
// deletions for paths that vanished in the merge, skipping conflicts.
func (r *Repo) stageMergeDelta(merged *MergeFiles) {
	conflicted := make(map[string]bool, len(merged.Conflicts))
	for _, p := range merged.Conflicts {
		conflicted[p] = true
	}
	head := r.HeadSnapshot()
	for p, content := range merged.Files {
		if conflicted[p] {
			continue
		}
		if prev, tracked := head[p]; !tracked || prev != content {
			r.Index[p] = IndexEntry{Content: content}
		}
	}
	for p := range head {
		if _, kept := merged.Files[p]; !kept {
			r.Index[p] = IndexEntry{Deleted: true}
		}
	}
}

// fastForward moves the current branch to hash and syncs the working
// tree and index.
func (r *Repo) fastForward(hash string) {
	r.Branches[r.CurrentBranch] = hash
	r.SetWorkingFiles(r.SnapshotOf(hash))
	r.Index = make(map[string]IndexEntry)
	r.Merge = nil
}
