// Package yamlcourse implements config.Loader for courses written in YAML:
//
//	courses:
//	  - title: Introduction to Go
//	    root:
//	      id: "1"
//	      type: st
//	      title: Overview
//	      children:
//	        - id: "100"
//	          type: sp
//	          access_condition: getPassed("90")
//	          config:
//	            softkey: welcome-video
package yamlcourse

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/ctxlog"
)

type file struct {
	Courses []courseDoc `yaml:"courses"`
}

type courseDoc struct {
	Title string   `yaml:"title"`
	Root  *nodeDoc `yaml:"root"`
}

type nodeDoc struct {
	ID                  string            `yaml:"id"`
	Type                string            `yaml:"type"`
	Title               string            `yaml:"title,omitempty"`
	AccessCondition     string            `yaml:"access_condition,omitempty"`
	VisibilityCondition string            `yaml:"visibility_condition,omitempty"`
	Config              map[string]string `yaml:"config,omitempty"`
	Children            []*nodeDoc        `yaml:"children,omitempty"`
}

// Loader reads YAML course files.
type Loader struct{}

// NewLoader creates a new YAML course loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) ([]*course.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read course file %s: %w", path, err)
	}
	return l.Parse(ctx, data, path)
}

// Parse decodes YAML source; filename is used in errors only.
func (l *Loader) Parse(ctx context.Context, data []byte, filename string) ([]*course.Course, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}

	courses := make([]*course.Course, 0, len(f.Courses))
	for i, doc := range f.Courses {
		if doc.Root == nil {
			return nil, fmt.Errorf("%s: course %d (%q) has no root node", filename, i, doc.Title)
		}
		root, err := translateTree(doc.Root)
		if err != nil {
			return nil, fmt.Errorf("%s: course %q: %w", filename, doc.Title, err)
		}
		courses = append(courses, &course.Course{Title: doc.Title, Root: root, Source: filename})
	}

	ctxlog.FromContext(ctx).Debug("YAML course file decoded.", "path", filename, "courses", len(courses))
	return courses, nil
}

func translateTree(top *nodeDoc) (*course.Node, error) {
	type frame struct {
		doc    *nodeDoc
		parent *course.Node
	}
	var root *course.Node
	stack := []frame{{doc: top}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.doc == nil {
			continue
		}
		if f.doc.Type == "" {
			return nil, errors.New("node " + f.doc.ID + " has no type")
		}

		n := course.NewNode(f.doc.ID, f.doc.Type, f.doc.Title)
		n.AccessCondition = f.doc.AccessCondition
		n.VisibilityCondition = f.doc.VisibilityCondition
		for k, v := range f.doc.Config {
			n.Config.Set(k, v)
		}
		if f.parent == nil {
			root = n
		} else {
			f.parent.AddChild(n)
		}
		for i := len(f.doc.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{doc: f.doc.Children[i], parent: n})
		}
	}
	return root, nil
}
