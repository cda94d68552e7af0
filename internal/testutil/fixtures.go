package testutil

import (
	"fmt"
	"strings"

	"github.com/vk/coursegraph/internal/course"
)

// NodeOption customizes a fixture node.
type NodeOption func(*course.Node)

// Node builds a course node for tests. The type defaults to "sp" and the
// title to "Node <id>".
func Node(id string, opts ...NodeOption) *course.Node {
	n := course.NewNode(id, "sp", "Node "+id)
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Type sets the node type.
func Type(t string) NodeOption {
	return func(n *course.Node) { n.Type = t }
}

// Title sets the node title.
func Title(title string) NodeOption {
	return func(n *course.Node) { n.Title = title }
}

// Access sets the access condition.
func Access(expr string) NodeOption {
	return func(n *course.Node) { n.AccessCondition = expr }
}

// Visibility sets the visibility condition.
func Visibility(expr string) NodeOption {
	return func(n *course.Node) { n.VisibilityCondition = expr }
}

// Config sets one configuration value.
func Config(key, value string) NodeOption {
	return func(n *course.Node) { n.Config.Set(key, value) }
}

// Children appends child nodes.
func Children(children ...*course.Node) NodeOption {
	return func(n *course.Node) { n.AddChild(children...) }
}

// Passed renders an OpenOLAT-style condition requiring every id to be
// passed, e.g. getPassed("1") & getPassed("2").
func Passed(ids ...string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("getPassed(%q)", id))
	}
	return strings.Join(parts, " & ")
}

// Course wraps children under a structure root with id "1".
func Course(children ...*course.Node) *course.Course {
	root := Node("1", Type(course.TypeStructure), Title("Course root"), Children(children...))
	return &course.Course{Title: "Test course", Root: root}
}
