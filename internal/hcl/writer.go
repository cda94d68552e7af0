package hcl

import (
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/coursegraph/internal/course"
	"github.com/zclconf/go-cty/cty"
)

// Encode renders courses in the format Loader reads.
func Encode(courses ...*course.Course) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, c := range courses {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("course", []string{c.Title})
		if c.Root != nil {
			appendTree(block.Body(), c.Root)
		}
	}
	return f.Bytes()
}

// Write encodes courses to w.
func Write(w io.Writer, courses ...*course.Course) error {
	_, err := w.Write(Encode(courses...))
	return err
}

func appendTree(parent *hclwrite.Body, top *course.Node) {
	type frame struct {
		node *course.Node
		body *hclwrite.Body
	}
	stack := []frame{{node: top, body: parent}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		body := appendNode(f.body, f.node)
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			if child := f.node.Children[i]; child != nil {
				stack = append(stack, frame{node: child, body: body})
			}
		}
	}
}

func appendNode(parent *hclwrite.Body, n *course.Node) *hclwrite.Body {
	body := parent.AppendNewBlock("node", []string{n.ID}).Body()
	body.SetAttributeValue("type", cty.StringVal(n.Type))
	if n.Title != "" {
		body.SetAttributeValue("title", cty.StringVal(n.Title))
	}
	if n.AccessCondition != "" {
		body.SetAttributeValue("access_condition", cty.StringVal(n.AccessCondition))
	}
	if n.VisibilityCondition != "" {
		body.SetAttributeValue("visibility_condition", cty.StringVal(n.VisibilityCondition))
	}
	if len(n.Config) > 0 {
		values := make(map[string]cty.Value, len(n.Config))
		for k, v := range n.Config {
			values[k] = cty.StringVal(v)
		}
		body.SetAttributeValue("config", cty.ObjectVal(values))
	}
	return body
}
