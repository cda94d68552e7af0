package yamlcourse

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vk/coursegraph/internal/course"
)

// Encode renders courses in the format Loader reads.
func Encode(courses ...*course.Course) ([]byte, error) {
	f := file{Courses: make([]courseDoc, 0, len(courses))}
	for _, c := range courses {
		f.Courses = append(f.Courses, courseDoc{Title: c.Title, Root: toDoc(c.Root)})
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode courses as YAML: %w", err)
	}
	return data, nil
}

// Write encodes courses to w.
func Write(w io.Writer, courses ...*course.Course) error {
	data, err := Encode(courses...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func toDoc(top *course.Node) *nodeDoc {
	if top == nil {
		return nil
	}
	type frame struct {
		node   *course.Node
		parent *nodeDoc
	}
	var root *nodeDoc
	stack := []frame{{node: top}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		doc := &nodeDoc{
			ID:                  f.node.ID,
			Type:                f.node.Type,
			Title:               f.node.Title,
			AccessCondition:     f.node.AccessCondition,
			VisibilityCondition: f.node.VisibilityCondition,
		}
		if len(f.node.Config) > 0 {
			doc.Config = make(map[string]string, len(f.node.Config))
			for k, v := range f.node.Config {
				doc.Config[k] = v
			}
		}
		if f.parent == nil {
			root = doc
		} else {
			f.parent.Children = append(f.parent.Children, doc)
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			if child := f.node.Children[i]; child != nil {
				stack = append(stack, frame{node: child, parent: doc})
			}
		}
	}
	return root
}
