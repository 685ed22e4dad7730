package tree

import (
	"encoding/json"
	"fmt"
)

// Kind tags a Node as a file or a directory.
type Kind uint8

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Directory:
		return "directory"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case File, Directory:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("invalid kind %d", uint8(k))
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "file":
		*k = File
	case "directory", "dir":
		*k = Directory
	default:
		return fmt.Errorf("invalid kind %q", string(b))
	}
	return nil
}

// Node is a file or directory in the logical tree. Directories always
// carry a non-nil Children slice, files never do.
type Node struct {
	Name     string
	Kind     Kind
	Children []*Node
}

func NewFile(name string) *Node {
	return &Node{Name: name, Kind: File}
}

func NewDir(name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Name: name, Kind: Directory, Children: children}
}

func (n *Node) IsDir() bool {
	return n.Kind == Directory
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n.Kind != Directory {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Clone returns a deep copy sharing no nodes or slices with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Name: n.Name, Kind: n.Kind}
	if n.Kind == Directory {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Find resolves a path produced by PathOf, starting at root.
func Find(root *Node, path string) *Node {
	if root == nil || path == "" {
		return nil
	}
	parts := split(path)
	if parts[0] != root.Name {
		return nil
	}
	n := root
	for _, name := range parts[1:] {
		if n = n.Child(name); n == nil {
			return nil
		}
	}
	return n
}

func (n *Node) MarshalJSON() ([]byte, error) {
	s := struct {
		Name     string   `json:"name"`
		Kind     Kind     `json:"kind"`
		Children *[]*Node `json:"children,omitempty"`
	}{Name: n.Name, Kind: n.Kind}
	if n.Kind == Directory {
		children := n.Children
		if children == nil {
			children = []*Node{}
		}
		s.Children = &children
	}
	return json.Marshal(&s)
}
