package state

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/google/uuid"
)

// DefaultBranch always exists once the repo is initialized.
const DefaultBranch = "main"

// branchPalette colors branches in the order their lanes are allocated.
var branchPalette = []string{
	"#4f8ef7", "#f7774f", "#45c26b", "#b06af7", "#f7c948", "#4fd0e0", "#e85d9a",
}

// Repo is the simulated repository: working tree, index, commit DAG,
// branches and merge/stash state. It is owned by a single app controller;
// no internal locking.
type Repo struct {
	fs   billy.Filesystem
	dirs map[string]bool
	cwd  string

	Initialized   bool
	CurrentBranch string
	Branches      map[string]string
	BranchMeta    map[string]*BranchMeta
	Commits       map[string]*Commit
	CommitOrder   []string
	Index         map[string]IndexEntry
	Merge         *MergeState
	Stash         []StashEntry
	Remotes       map[string]string
	Upstreams     map[string]Upstream

	nextLane  int
	lastEvent Event

	// now is swappable so tests get deterministic timestamps.
	now func() time.Time
}

// NewRepo returns an empty, uninitialized repo rooted at "/".
func NewRepo() *Repo {
	return &Repo{
		fs:         memfs.New(),
		dirs:       map[string]bool{"/": true},
		cwd:        "/",
		Branches:   make(map[string]string),
		BranchMeta: make(map[string]*BranchMeta),
		Commits:    make(map[string]*Commit),
		Index:      make(map[string]IndexEntry),
		Remotes:    make(map[string]string),
		Upstreams:  make(map[string]Upstream),
		now:        time.Now,
	}
}

// Init makes the repo a git repository. Idempotent.
func (r *Repo) Init() (reinit bool) {
	if r.Initialized {
		return true
	}
	r.Initialized = true
	if _, ok := r.Branches[DefaultBranch]; !ok {
		r.Branches[DefaultBranch] = ""
		r.ensureBranchMeta(DefaultBranch)
	}
	r.CurrentBranch = DefaultBranch
	r.Record(InitEvent{})
	return false
}

// Record stores the last successful event descriptor.
func (r *Repo) Record(e Event) {
	r.lastEvent = e
}

// LastEvent returns the most recent event, or nil.
func (r *Repo) LastEvent() Event {
	return r.lastEvent
}

// ClearLastEvent resets the event slot. The dispatcher calls this before
// each command so observers only ever see the current command's event.
func (r *Repo) ClearLastEvent() {
	r.lastEvent = nil
}

// Cwd returns the current directory.
func (r *Repo) Cwd() string {
	return r.cwd
}

// HeadHash returns the current branch's head hash, "" when unborn.
func (r *Repo) HeadHash() string {
	if r.CurrentBranch == "" {
		return ""
	}
	return r.Branches[r.CurrentBranch]
}

// HeadSnapshot returns a copy of HEAD's file snapshot; empty map when
// HEAD is unborn.
func (r *Repo) HeadSnapshot() map[string]string {
	return r.SnapshotOf(r.HeadHash())
}

// SnapshotOf returns a copy of the snapshot stored in the given commit.
// An empty hash yields an empty map.
func (r *Repo) SnapshotOf(hash string) map[string]string {
	if hash == "" {
		return map[string]string{}
	}
	c, ok := r.Commits[hash]
	if !ok {
		return map[string]string{}
	}
	return copyFiles(c.Files)
}

// ResolveHash resolves a full hash or unambiguous prefix to a commit
// hash. Ambiguous prefixes and misses are errors.
func (r *Repo) ResolveHash(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("empty revision")
	}
	if _, ok := r.Commits[prefix]; ok {
		return prefix, nil
	}
	var matches []string
	for h := range r.Commits {
		if strings.HasPrefix(h, prefix) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown revision '%s'", prefix)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("ambiguous revision '%s' (matches %d commits)", prefix, len(matches))
	}
}

// newHash mints a short random hex hash that is unique within the repo.
func (r *Repo) newHash() string {
	for {
		id := uuid.New()
		h := fmt.Sprintf("%x", id[:])[:7]
		if _, taken := r.Commits[h]; !taken {
			return h
		}
	}
}

// ensureBranchMeta allocates a draw lane and color on first appearance.
func (r *Repo) ensureBranchMeta(name string) *BranchMeta {
	if m, ok := r.BranchMeta[name]; ok {
		return m
	}
	m := &BranchMeta{
		Lane:  r.nextLane,
		Color: branchPalette[r.nextLane%len(branchPalette)],
	}
	r.nextLane++
	r.BranchMeta[name] = m
	return m
}

// BranchNames returns all branch names sorted.
func (r *Repo) BranchNames() []string {
	names := make([]string, 0, len(r.Branches))
	for n := range r.Branches {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// addCommit stores a commit and appends it to the creation-order list.
func (r *Repo) addCommit(c *Commit) {
	r.Commits[c.Hash] = c
	r.CommitOrder = append(r.CommitOrder, c.Hash)
}

// ShortHash trims a hash for display.
func ShortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
