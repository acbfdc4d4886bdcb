package vfs

import "strings"

// Clean normalizes a path to canonical absolute POSIX form without touching
// the tree: backslashes become forward slashes, "." and empty segments are
// dropped, ".." collapses one level but never climbs above root.
func Clean(p string) string {
	if p == "" {
		return "/"
	}

	p = strings.ReplaceAll(p, "\\", "/")
	if p[0] != '/' {
		p = "/" + p
	}

	var result []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(result) > 0 {
				result = result[:len(result)-1]
			}
		default:
			result = append(result, seg)
		}
	}

	if len(result) == 0 {
		return "/"
	}
	return "/" + strings.Join(result, "/")
}

// Resolve normalizes p against the working directory cwd. An empty p
// resolves to cwd itself; a relative p is joined under cwd. The result is
// always absolute. No existence check is performed.
func Resolve(p, cwd string) string {
	if p == "" {
		return Clean(cwd)
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if p[0] != '/' {
		p = strings.TrimRight(cwd, "/") + "/" + p
	}
	return Clean(p)
}

// Split splits an absolute path into its parent directory and basename.
// Split("/") returns ("/", "").
func Split(abs string) (dir, base string) {
	abs = Clean(abs)
	if abs == "/" {
		return "/", ""
	}
	i := strings.LastIndex(abs, "/")
	if i == 0 {
		return "/", abs[1:]
	}
	return abs[:i], abs[i+1:]
}

// segments returns the path components of an absolute path, none for root.
func segments(abs string) []string {
	abs = strings.Trim(abs, "/")
	if abs == "" {
		return nil
	}
	return strings.Split(abs, "/")
}
