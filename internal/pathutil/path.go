// Package pathutil implements path handling for the simulated POSIX
// filesystem. All stored keys are absolute, normalized paths; display
// helpers strip the leading slash for user-facing output.
package pathutil

import "strings"

// Normalize collapses "." and ".." segments, drops empty segments and
// roots the result at "/". Climbing above the root stops at "/".
func Normalize(p string) string {
	segs := strings.Split(p, "/")
	stack := make([]string, 0, len(segs))
	for _, s := range segs {
		switch s {
		case "", ".":
			// skip
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, s)
		}
	}
	return "/" + strings.Join(stack, "/")
}

// Join resolves target relative to cwd. An absolute target ignores cwd.
func Join(cwd, target string) string {
	if strings.HasPrefix(target, "/") {
		return Normalize(target)
	}
	if cwd == "" {
		cwd = "/"
	}
	return Normalize(cwd + "/" + target)
}

// Dir returns the parent directory of a normalized path. The parent of
// "/" is "/".
func Dir(p string) string {
	p = Normalize(p)
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "/"
	}
	return p[:idx]
}

// Base returns the final segment of a normalized path, or "/" for the
// root itself.
func Base(p string) string {
	p = Normalize(p)
	if p == "/" {
		return "/"
	}
	return p[strings.LastIndex(p, "/")+1:]
}

// Display strips the leading slash for user-facing output. The root
// renders as ".".
func Display(p string) string {
	if p == "/" {
		return "."
	}
	return strings.TrimPrefix(p, "/")
}

// IsUnder reports whether path sits strictly below dir.
func IsUnder(path, dir string) bool {
	if dir == "/" {
		return path != "/"
	}
	return strings.HasPrefix(path, dir+"/")
}
