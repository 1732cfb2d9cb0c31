package state

import (
	"fmt"
	"sort"
	"time"

	"github.com/kurobon/gittutor/internal/pathutil"
)

// SeedRemoteURL is pre-populated in every remote store so clone-based
// lessons have something to pull from.
const SeedRemoteURL = "https://tutor.example/acme/widget.git"

// RemoteRepo is the bare shape held in the remote store: the commit DAG
// and branches, no working tree or index.
type RemoteRepo struct {
	Commits     map[string]*Commit `json:"commits"`
	CommitOrder []string           `json:"commitOrder"`
	Branches    map[string]string  `json:"branches"`
}

// NewRemoteRepo returns an empty remote with an unborn main.
func NewRemoteRepo() *RemoteRepo {
	return &RemoteRepo{
		Commits:  make(map[string]*Commit),
		Branches: map[string]string{DefaultBranch: ""},
	}
}

// Clone deep-copies the remote repo.
func (rr *RemoteRepo) Clone() *RemoteRepo {
	out := NewRemoteRepo()
	for h, c := range rr.Commits {
		out.Commits[h] = c.Clone()
	}
	out.CommitOrder = append([]string(nil), rr.CommitOrder...)
	out.Branches = make(map[string]string, len(rr.Branches))
	for n, h := range rr.Branches {
		out.Branches[n] = h
	}
	return out
}

// AddCommit appends a commit to the remote DAG and advances the branch.
// Used to simulate teammate activity between pushes and pulls.
func (rr *RemoteRepo) AddCommit(branch, message string, files map[string]string) *Commit {
	parentHash := rr.Branches[branch]
	snapshot := make(map[string]string)
	if parent, ok := rr.Commits[parentHash]; ok {
		snapshot = copyFiles(parent.Files)
	}
	for p, content := range files {
		snapshot[pathutil.Normalize(p)] = content
	}
	c := &Commit{
		Hash:      remoteHash(rr),
		Message:   message,
		Timestamp: time.Now(),
		Files:     snapshot,
		Branch:    branch,
	}
	if parentHash != "" {
		c.Parents = []string{parentHash}
	}
	rr.Commits[c.Hash] = c
	rr.CommitOrder = append(rr.CommitOrder, c.Hash)
	rr.Branches[branch] = c.Hash
	return c
}

func remoteHash(rr *RemoteRepo) string {
	scratch := NewRepo()
	for {
		h := scratch.newHash()
		if _, taken := rr.Commits[h]; !taken {
			return h
		}
	}
}

// RemoteStore is the process-wide mapping of URL → remote repo. It is
// plain data accessed from the single app thread; no locking.
type RemoteStore struct {
	Repos map[string]*RemoteRepo `json:"repos"`
}

// NewRemoteStore returns an empty store.
func NewRemoteStore() *RemoteStore {
	return &RemoteStore{Repos: make(map[string]*RemoteRepo)}
}

// NewSeededRemoteStore returns a store holding the seed remote with its
// two fixture commits.
func NewSeededRemoteStore() *RemoteStore {
	rs := NewRemoteStore()
	seed := rs.EnsureRepo(SeedRemoteURL)
	seed.AddCommit(DefaultBranch, "Initial commit", map[string]string{
		"/README.md": "# Widget\n\nA small example project for practicing Git.\n",
	})
	seed.AddCommit(DefaultBranch, "Add contributing guide", map[string]string{
		"/CONTRIBUTING.md": "# Contributing\n\nBranch from main and open a pull request.\n",
	})
	return rs
}

// EnsureRepo returns the remote at url, creating an empty one on first use.
func (rs *RemoteStore) EnsureRepo(url string) *RemoteRepo {
	if rr, ok := rs.Repos[url]; ok {
		return rr
	}
	rr := NewRemoteRepo()
	rs.Repos[url] = rr
	return rr
}

// GetRepo is a pure read.
func (rs *RemoteStore) GetRepo(url string) (*RemoteRepo, bool) {
	rr, ok := rs.Repos[url]
	return rr, ok
}

// URLs returns the stored remote URLs, sorted.
func (rs *RemoteStore) URLs() []string {
	out := make([]string, 0, len(rs.Repos))
	for u := range rs.Repos {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// AddRemote records a named remote and makes sure its repo exists in the
// store.
func (r *Repo) AddRemote(name, url string, store *RemoteStore) error {
	if _, exists := r.Remotes[name]; exists {
		return fmt.Errorf("remote %s already exists", name)
	}
	r.Remotes[name] = url
	store.EnsureRepo(url)
	return nil
}

// resolveRemote picks the remote and branch for push/pull defaults:
// explicit arguments first, then the current branch's upstream, then
// "origin" with the current branch.
func (r *Repo) resolveRemote(remoteArg, branchArg string) (remote, branch string, err error) {
	remote = remoteArg
	branch = branchArg
	if branch == "" {
		branch = r.CurrentBranch
	}
	if remote == "" {
		if up, ok := r.Upstreams[r.CurrentBranch]; ok {
			remote = up.Remote
			if branchArg == "" {
				branch = up.Branch
			}
		} else {
			remote = "origin"
		}
	}
	if _, ok := r.Remotes[remote]; !ok {
		return "", "", fmt.Errorf("'%s' does not appear to be a git repository", remote)
	}
	return remote, branch, nil
}

// PushResult reports the ref update for display.
type PushResult struct {
	Remote   string
	Branch   string
	OldHash  string
	NewHash  string
	NewCount int
	UpToDate bool
}

// Push transfers missing commits to the remote and advances its branch
// ref. With setUpstream the local branch records the target.
func (r *Repo) Push(remoteArg, branchArg string, setUpstream bool, store *RemoteStore) (*PushResult, error) {
	remote, branch, err := r.resolveRemote(remoteArg, branchArg)
	if err != nil {
		return nil, err
	}
	localHead, ok := r.Branches[branch]
	if !ok {
		return nil, fmt.Errorf("src refspec %s does not match any", branch)
	}

	rr := store.EnsureRepo(r.Remotes[remote])
	old := rr.Branches[branch]

	copied := 0
	for _, h := range r.CommitOrder {
		if _, have := rr.Commits[h]; have {
			continue
		}
		rr.Commits[h] = r.Commits[h].Clone()
		rr.CommitOrder = append(rr.CommitOrder, h)
		copied++
	}
	rr.Branches[branch] = localHead

	if setUpstream {
		r.Upstreams[branch] = Upstream{Remote: remote, Branch: branch}
	}
	r.Record(PushEvent{Remote: remote, Branch: branch})
	return &PushResult{
		Remote:   remote,
		Branch:   branch,
		OldHash:  old,
		NewHash:  localHead,
		NewCount: copied,
		UpToDate: old == localHead,
	}, nil
}

// PullKind classifies what Pull did.
type PullKind int

const (
	PullUpToDate PullKind = iota
	PullFastForward
	PullMerged
	PullConflicted
)

// PullResult reports the outcome for display.
type PullResult struct {
	Kind      PullKind
	Remote    string
	Branch    string
	Fetched   int
	Commit    *Commit
	Conflicts []string
}

// Pull imports missing commits from the remote, then fast-forwards or
// merges the remote branch head. Refuses on a dirty tree. A diverged
// history merges through a temporary "<remote>/<branch>" name which is
// removed again afterwards; conflicts propagate to the caller.
func (r *Repo) Pull(remoteArg, branchArg string, store *RemoteStore) (*PullResult, error) {
	remote, branch, err := r.resolveRemote(remoteArg, branchArg)
	if err != nil {
		return nil, err
	}
	if r.IsDirty() {
		return nil, ErrDirtyWorktree
	}
	rr, ok := store.GetRepo(r.Remotes[remote])
	if !ok {
		return nil, fmt.Errorf("'%s' does not appear to be a git repository", remote)
	}
	remoteHead, ok := rr.Branches[branch]
	if !ok {
		return nil, fmt.Errorf("couldn't find remote ref %s", branch)
	}

	fetched := 0
	for _, h := range rr.CommitOrder {
		if _, have := r.Commits[h]; have {
			continue
		}
		r.addCommit(rr.Commits[h].Clone())
		fetched++
	}

	res := &PullResult{Remote: remote, Branch: branch, Fetched: fetched}
	localHead := r.HeadHash()
	switch {
	case remoteHead == "" || remoteHead == localHead || (localHead != "" && r.IsAncestor(remoteHead, localHead)):
		res.Kind = PullUpToDate
		return res, nil
	case localHead == "" || r.IsAncestor(localHead, remoteHead):
		r.fastForward(remoteHead)
		res.Kind = PullFastForward
		r.Record(PullEvent{Remote: remote, Branch: branch, FastForward: true})
		return res, nil
	}

	// Diverged: merge through a temporary tracking name.
	tmp := remote + "/" + branch
	r.Branches[tmp] = remoteHead
	r.ensureBranchMeta(tmp)
	outcome, err := r.MergeBranch(tmp)
	r.DeleteBranch(tmp)
	if err != nil {
		return nil, err
	}
	if outcome.Kind == MergeConflicted {
		res.Kind = PullConflicted
		res.Conflicts = outcome.Conflicts
		r.Record(PullEvent{Remote: remote, Branch: branch})
		return res, nil
	}
	res.Kind = PullMerged
	res.Commit = outcome.Commit
	r.Record(PullEvent{Remote: remote, Branch: branch})
	return res, nil
}

// CloneFrom resets this repo to a copy of the remote at url: commits,
// order and branches verbatim, origin and main's upstream configured,
// working tree set to the head snapshot, known directories seeded from
// the file paths.
func (r *Repo) CloneFrom(url string, store *RemoteStore) error {
	rr, ok := store.GetRepo(url)
	if !ok {
		return fmt.Errorf("repository '%s' not found", url)
	}

	fresh := NewRepo()
	r.fs = fresh.fs
	r.dirs = fresh.dirs
	r.cwd = "/"
	r.Initialized = true
	r.Commits = make(map[string]*Commit)
	r.CommitOrder = nil
	r.Branches = make(map[string]string)
	r.BranchMeta = make(map[string]*BranchMeta)
	r.nextLane = 0
	r.Index = make(map[string]IndexEntry)
	r.Merge = nil
	r.Stash = nil
	r.Remotes = map[string]string{"origin": url}
	r.Upstreams = map[string]Upstream{DefaultBranch: {Remote: "origin", Branch: DefaultBranch}}

	for _, h := range rr.CommitOrder {
		r.addCommit(rr.Commits[h].Clone())
	}
	names := make([]string, 0, len(rr.Branches))
	for n := range rr.Branches {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		r.Branches[n] = rr.Branches[n]
		r.ensureBranchMeta(n)
	}
	if _, ok := r.Branches[DefaultBranch]; !ok {
		r.Branches[DefaultBranch] = ""
		r.ensureBranchMeta(DefaultBranch)
	}
	r.CurrentBranch = DefaultBranch

	head := r.SnapshotOf(r.Branches[DefaultBranch])
	r.SetWorkingFiles(head)
	for p := range head {
		r.recordParents(p)
	}

	r.Record(CloneEvent{URL: url})
	return nil
}
