package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL course loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load parses the file at path and translates every course block.
func (l *Loader) Load(ctx context.Context, path string) ([]*course.Course, error) {
	hclFile, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return l.decode(ctx, path, hclFile.Body)
}

// Parse is Load for in-memory source; filename is used in diagnostics only.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) ([]*course.Course, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, filename, hclFile.Body)
}

func (l *Loader) decode(ctx context.Context, filename string, body hcl.Body) ([]*course.Course, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	courses := make([]*course.Course, 0, len(root.Courses))
	for _, cb := range root.Courses {
		if len(cb.Nodes) != 1 {
			return nil, fmt.Errorf("%s: course %q must have exactly one root node block, found %d", filename, cb.Title, len(cb.Nodes))
		}
		c := &course.Course{
			Title:  cb.Title,
			Root:   translateTree(cb.Nodes[0]),
			Source: filename,
		}
		courses = append(courses, c)
	}

	ctxlog.FromContext(ctx).Debug("HCL course file decoded.", "path", filename, "courses", len(courses))
	return courses, nil
}

// translateTree converts a node block and all its descendants. The walk keeps
// an explicit stack, so nesting depth is not limited by the goroutine stack.
func translateTree(top *nodeBlock) *course.Node {
	type frame struct {
		block  *nodeBlock
		parent *course.Node
	}
	var root *course.Node
	stack := []frame{{block: top}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := translateNode(f.block)
		if f.parent == nil {
			root = n
		} else {
			f.parent.AddChild(n)
		}
		for i := len(f.block.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{block: f.block.Children[i], parent: n})
		}
	}
	return root
}

func translateNode(b *nodeBlock) *course.Node {
	n := course.NewNode(b.ID, b.Type, b.Title)
	n.AccessCondition = b.AccessCondition
	n.VisibilityCondition = b.VisibilityCondition
	for k, v := range b.Config {
		n.Config.Set(k, v)
	}
	return n
}
