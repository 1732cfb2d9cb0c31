package state

import "time"

// RepoState is the complete serializable state of a repo. Lesson
// checkpoints and persistence both go through it; Save/Restore form an
// exact round trip.
type RepoState struct {
	Initialized   bool                   `json:"initialized"`
	CurrentBranch string                 `json:"currentBranch"`
	Cwd           string                 `json:"cwd"`
	WorkingFiles  map[string]string      `json:"workingFiles"`
	Dirs          []string               `json:"dirs"`
	Index         map[string]IndexEntry  `json:"index"`
	Commits       map[string]*Commit     `json:"commits"`
	CommitOrder   []string               `json:"commitOrder"`
	Branches      map[string]string      `json:"branches"`
	BranchMeta    map[string]*BranchMeta `json:"branchMeta"`
	NextLane      int                    `json:"nextLane"`
	MergeState    *MergeState            `json:"mergeState"`
	Stash         []StashEntry           `json:"stash"`
	Remotes       map[string]string      `json:"remotes"`
	Upstreams     map[string]Upstream    `json:"upstreams"`
}

// Save captures a deep copy of the full repo state.
func (r *Repo) Save() *RepoState {
	s := &RepoState{
		Initialized:   r.Initialized,
		CurrentBranch: r.CurrentBranch,
		Cwd:           r.cwd,
		WorkingFiles:  r.WorkingFiles(),
		Dirs:          r.Dirs(),
		Index:         copyIndex(r.Index),
		Commits:       make(map[string]*Commit, len(r.Commits)),
		CommitOrder:   append([]string(nil), r.CommitOrder...),
		Branches:      make(map[string]string, len(r.Branches)),
		BranchMeta:    make(map[string]*BranchMeta, len(r.BranchMeta)),
		NextLane:      r.nextLane,
		Remotes:       make(map[string]string, len(r.Remotes)),
		Upstreams:     make(map[string]Upstream, len(r.Upstreams)),
	}
	for h, c := range r.Commits {
		s.Commits[h] = c.Clone()
	}
	for n, h := range r.Branches {
		s.Branches[n] = h
	}
	for n, m := range r.BranchMeta {
		meta := *m
		s.BranchMeta[n] = &meta
	}
	for n, u := range r.Remotes {
		s.Remotes[n] = u
	}
	for n, u := range r.Upstreams {
		s.Upstreams[n] = u
	}
	if r.Merge != nil {
		m := *r.Merge
		m.Conflicts = append([]string(nil), r.Merge.Conflicts...)
		s.MergeState = &m
	}
	for _, e := range r.Stash {
		s.Stash = append(s.Stash, StashEntry{
			WorkingFiles: copyFiles(e.WorkingFiles),
			StagedFiles:  copyIndex(e.StagedFiles),
			Message:      e.Message,
			Timestamp:    e.Timestamp,
		})
	}
	return s
}

// Restore replaces the repo's state with a deep copy of s.
func (r *Repo) Restore(s *RepoState) {
	fresh := NewRepo()
	r.fs = fresh.fs
	r.dirs = fresh.dirs
	r.Initialized = s.Initialized
	r.CurrentBranch = s.CurrentBranch
	r.cwd = s.Cwd
	if r.cwd == "" {
		r.cwd = "/"
	}
	for _, d := range s.Dirs {
		r.AddDir(d)
	}
	for p, content := range s.WorkingFiles {
		_ = r.WriteWorkingFile(p, content)
	}
	r.Index = copyIndex(s.Index)
	r.Commits = make(map[string]*Commit, len(s.Commits))
	for h, c := range s.Commits {
		r.Commits[h] = c.Clone()
	}
	r.CommitOrder = append([]string(nil), s.CommitOrder...)
	r.Branches = make(map[string]string, len(s.Branches))
	for n, h := range s.Branches {
		r.Branches[n] = h
	}
	r.BranchMeta = make(map[string]*BranchMeta, len(s.BranchMeta))
	for n, m := range s.BranchMeta {
		meta := *m
		r.BranchMeta[n] = &meta
	}
	r.nextLane = s.NextLane
	r.Merge = nil
	if s.MergeState != nil {
		m := *s.MergeState
		m.Conflicts = append([]string(nil), s.MergeState.Conflicts...)
		r.Merge = &m
	}
	r.Stash = nil
	for _, e := range s.Stash {
		r.Stash = append(r.Stash, StashEntry{
			WorkingFiles: copyFiles(e.WorkingFiles),
			StagedFiles:  copyIndex(e.StagedFiles),
			Message:      e.Message,
			Timestamp:    e.Timestamp,
		})
	}
	r.Remotes = make(map[string]string, len(s.Remotes))
	for n, u := range s.Remotes {
		r.Remotes[n] = u
	}
	r.Upstreams = make(map[string]Upstream, len(s.Upstreams))
	for n, u := range s.Upstreams {
		r.Upstreams[n] = u
	}
	r.lastEvent = nil
	r.now = time.Now
}

// Snapshot is the rendering view pulled by the UI after each command.
type Snapshot struct {
	Initialized   bool                   `json:"initialized"`
	CurrentBranch string                 `json:"currentBranch"`
	Cwd           string                 `json:"cwd"`
	StagedFiles   map[string]IndexEntry  `json:"stagedFiles"`
	WorkingFiles  map[string]string      `json:"workingFiles"`
	Commits       map[string]*Commit     `json:"commits"`
	CommitOrder   []string               `json:"commitOrder"`
	Branches      map[string]string      `json:"branches"`
	BranchMeta    map[string]*BranchMeta `json:"branchMeta"`
	MergeState    *MergeState            `json:"mergeState"`
	Remotes       map[string]string      `json:"remotes"`
	LastEvent     string                 `json:"lastEvent,omitempty"`
}

// Render builds the UI snapshot.
func (r *Repo) Render() *Snapshot {
	s := r.Save()
	snap := &Snapshot{
		Initialized:   s.Initialized,
		CurrentBranch: s.CurrentBranch,
		Cwd:           s.Cwd,
		StagedFiles:   s.Index,
		WorkingFiles:  s.WorkingFiles,
		Commits:       s.Commits,
		CommitOrder:   s.CommitOrder,
		Branches:      s.Branches,
		BranchMeta:    s.BranchMeta,
		MergeState:    s.MergeState,
		Remotes:       s.Remotes,
	}
	if r.lastEvent != nil {
		snap.LastEvent = r.lastEvent.Kind()
	}
	return snap
}
