package course

import (
	"errors"
	"fmt"
)

// Node types the analyzers treat specially.
const (
	// TypeStructure is a composite node whose score may be calculated from
	// other nodes.
	TypeStructure = "st"
	// TypeManualScoring is an assessment node scored by a coach; it may
	// reference another node's results.
	TypeManualScoring = "ms"
)

// Node is one element of a course tree.
type Node struct {
	ID                  string
	Type                string
	Title               string
	AccessCondition     string
	VisibilityCondition string
	Config              Config
	Children            []*Node
}

// NewNode returns a node with an initialized configuration map.
func NewNode(id, nodeType, title string) *Node {
	return &Node{
		ID:     id,
		Type:   nodeType,
		Title:  title,
		Config: make(Config),
	}
}

// AddChild appends children to n and returns n for chaining.
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Course is a titled tree of nodes.
type Course struct {
	Title string
	Root  *Node
	// Source is the file the course was loaded from, if any.
	Source string
}

// FindNode returns the node with the given id, or nil.
func (c *Course) FindNode(id string) *Node {
	if c == nil {
		return nil
	}
	for _, n := range Flatten(c.Root) {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Validate checks the structural invariants loaders must guarantee: a root
// exists and every node has a non-empty id that is unique in the course.
func (c *Course) Validate() error {
	if c.Root == nil {
		return fmt.Errorf("course %q has no root node", c.Title)
	}
	seen := make(map[string]struct{})
	var errs []error
	for _, n := range Flatten(c.Root) {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("node %q has an empty id", n.Title))
			continue
		}
		if _, dup := seen[n.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate node id %q", n.ID))
			continue
		}
		seen[n.ID] = struct{}{}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid course %q: %w", c.Title, errors.Join(errs...))
	}
	return nil
}
