package tree

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrBadName       = errors.New("name contains path separator")
	ErrFileChildren  = errors.New("file must not have children")
	ErrDuplicateName = errors.New("duplicate sibling name")
	ErrBadKind       = errors.New("unknown kind")
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf picks a payload format from a file name, defaulting to JSON.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// payload is the host-supplied tree shape. "type" is accepted as an alias
// for "kind". A pointer distinguishes a missing children list from an
// empty one.
type payload struct {
	Name     string     `json:"name" yaml:"name"`
	Kind     string     `json:"kind,omitempty" yaml:"kind,omitempty"`
	Type     string     `json:"type,omitempty" yaml:"type,omitempty"`
	Children *[]payload `json:"children,omitempty" yaml:"children,omitempty"`
}

// Decode parses and validates a tree payload.
func Decode(data []byte, f Format) (*Node, error) {
	var p payload
	var err error
	switch f {
	case YAML:
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s tree: %w", f, err)
	}
	return p.node("")
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	node, err := p.node("")
	if err != nil {
		return err
	}
	*n = *node
	return nil
}

func (p *payload) node(parent string) (*Node, error) {
	path := PathOf(p.Name, parent)
	if p.Name == "" {
		return nil, fmt.Errorf("%s: %w", PathOf("?", parent), ErrEmptyName)
	}
	if strings.Contains(p.Name, Separator) {
		return nil, fmt.Errorf("%q: %w", path, ErrBadName)
	}
	kind := p.Kind
	if kind == "" {
		kind = p.Type
	}
	n := &Node{Name: p.Name}
	switch {
	case kind == "":
		//no tag, infer from the children field
		if p.Children != nil {
			n.Kind = Directory
		}
	default:
		if err := n.Kind.UnmarshalText([]byte(kind)); err != nil {
			return nil, fmt.Errorf("%s: %w: %q", path, ErrBadKind, kind)
		}
	}
	if n.Kind == File {
		// files never carry a children field, not even an empty one
		if p.Children != nil {
			return nil, fmt.Errorf("%s: %w", path, ErrFileChildren)
		}
		return n, nil
	}
	n.Children = []*Node{}
	if p.Children == nil {
		return n, nil
	}
	seen := map[string]bool{}
	for i := range *p.Children {
		c, err := (*p.Children)[i].node(path)
		if err != nil {
			return nil, err
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("%s: %w", PathOf(c.Name, path), ErrDuplicateName)
		}
		seen[c.Name] = true
		n.Children = append(n.Children, c)
	}
	return n, nil
}
