package tree

import "strings"

// Separator joins ancestor names into a path.
const Separator = "/"

// PathOf derives the path of a node named name under parentPath.
// The root has an empty parentPath, so its path is its own name.
func PathOf(name, parentPath string) string {
	if len(parentPath) == 0 {
		return name
	}
	return parentPath + Separator + name
}

// IsDescendant reports whether path lies strictly below ancestor.
func IsDescendant(path, ancestor string) bool {
	return strings.HasPrefix(path, ancestor+Separator)
}

// Parent returns the path of the parent, or "" for a root path.
func Parent(path string) string {
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[:i]
	}
	return ""
}

// Base returns the last name in path.
func Base(path string) string {
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Rebase moves path from under the from prefix to under the to prefix.
// Paths outside from are returned unchanged.
func Rebase(path, from, to string) (string, bool) {
	switch {
	case path == from:
		return to, true
	case IsDescendant(path, from):
		return to + path[len(from):], true
	}
	return path, false
}

func split(path string) []string {
	return strings.Split(path, Separator)
}
