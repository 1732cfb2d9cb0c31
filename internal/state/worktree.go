package state

import (
	"io"
	"sort"
	"strings"

	"github.com/kurobon/gittutor/internal/pathutil"
)

// The working tree lives on a billy in-memory filesystem. Because memfs
// does not persist empty directories, the repo carries an explicit set of
// known directory paths alongside it; a directory also exists implicitly
// while any file lives under it.

// WriteWorkingFile writes content to an absolute normalized path,
// recording parent directories.
func (r *Repo) WriteWorkingFile(path, content string) error {
	path = pathutil.Normalize(path)
	r.recordParents(path)
	if dir := pathutil.Dir(path); dir != "/" {
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := r.fs.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write([]byte(content)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadWorkingFile returns the content at path and whether it exists.
func (r *Repo) ReadWorkingFile(path string) (string, bool) {
	path = pathutil.Normalize(path)
	f, err := r.fs.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// HasWorkingFile reports whether a regular file exists at path.
func (r *Repo) HasWorkingFile(path string) bool {
	path = pathutil.Normalize(path)
	fi, err := r.fs.Stat(path)
	return err == nil && !fi.IsDir()
}

// RemoveWorkingFile deletes the file at path if present.
func (r *Repo) RemoveWorkingFile(path string) bool {
	path = pathutil.Normalize(path)
	if !r.HasWorkingFile(path) {
		return false
	}
	return r.fs.Remove(path) == nil
}

// WorkingFiles walks the filesystem and returns path → content.
func (r *Repo) WorkingFiles() map[string]string {
	out := make(map[string]string)
	r.walk("/", func(path string) {
		if content, ok := r.ReadWorkingFile(path); ok {
			out[path] = content
		}
	})
	return out
}

// SetWorkingFiles replaces the entire working tree with the given
// snapshot. Known directories are kept and extended with the snapshot's
// parents.
func (r *Repo) SetWorkingFiles(files map[string]string) {
	r.clearWorktree("/")
	for path, content := range files {
		// Snapshot writes are internal; memfs errors cannot occur on
		// fresh paths.
		_ = r.WriteWorkingFile(path, content)
	}
}

// AddDir records a directory.
func (r *Repo) AddDir(path string) {
	path = pathutil.Normalize(path)
	r.recordParents(path)
	r.dirs[path] = true
}

// HasDir reports whether path is a known directory or has files under it.
func (r *Repo) HasDir(path string) bool {
	path = pathutil.Normalize(path)
	if path == "/" || r.dirs[path] {
		return true
	}
	for _, p := range r.workingPaths() {
		if pathutil.IsUnder(p, path) {
			return true
		}
	}
	return false
}

// Dirs returns the recorded directory set (copy), excluding the root.
func (r *Repo) Dirs() []string {
	var out []string
	for d := range r.dirs {
		if d != "/" {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// SetCwd changes the current directory; the caller validates existence.
func (r *Repo) SetCwd(path string) {
	r.cwd = pathutil.Normalize(path)
}

// ListDir returns immediate child directories and files of path, each
// sorted alphabetically.
func (r *Repo) ListDir(path string) (dirs []string, files []string) {
	path = pathutil.Normalize(path)
	dirSet := make(map[string]bool)
	for d := range r.dirs {
		if d != "/" && pathutil.Dir(d) == path {
			dirSet[pathutil.Base(d)] = true
		}
	}
	for _, p := range r.workingPaths() {
		switch {
		case pathutil.Dir(p) == path:
			files = append(files, pathutil.Base(p))
		case pathutil.IsUnder(p, path):
			// An intermediate directory between path and p.
			rest := p[len(path):]
			if path == "/" {
				rest = p
			}
			for len(rest) > 0 && rest[0] == '/' {
				rest = rest[1:]
			}
			if i := strings.IndexByte(rest, '/'); i > 0 {
				dirSet[rest[:i]] = true
			}
		}
	}
	for d := range dirSet {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files
}

func (r *Repo) workingPaths() []string {
	var out []string
	r.walk("/", func(path string) {
		out = append(out, path)
	})
	sort.Strings(out)
	return out
}

// walk visits every regular file below dir.
func (r *Repo) walk(dir string, visit func(path string)) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		child := pathutil.Join(dir, e.Name())
		if e.IsDir() {
			r.walk(child, visit)
			continue
		}
		visit(child)
	}
}

// clearWorktree removes every file below dir, leaving known-dir records
// in place.
func (r *Repo) clearWorktree(dir string) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		child := pathutil.Join(dir, e.Name())
		if e.IsDir() {
			r.clearWorktree(child)
			_ = r.fs.Remove(child)
			continue
		}
		_ = r.fs.Remove(child)
	}
}

// recordParents marks every ancestor directory of path as known.
func (r *Repo) recordParents(path string) {
	for d := pathutil.Dir(path); d != "/"; d = pathutil.Dir(d) {
		r.dirs[d] = true
	}
}
