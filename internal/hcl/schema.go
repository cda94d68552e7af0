package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all top-level blocks of a course file.
type fileRoot struct {
	Courses []*courseBlock `hcl:"course,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

type courseBlock struct {
	Title string       `hcl:"title,label"`
	Nodes []*nodeBlock `hcl:"node,block"`
}

type nodeBlock struct {
	ID                  string            `hcl:"id,label"`
	Type                string            `hcl:"type"`
	Title               string            `hcl:"title,optional"`
	AccessCondition     string            `hcl:"access_condition,optional"`
	VisibilityCondition string            `hcl:"visibility_condition,optional"`
	Config              map[string]string `hcl:"config,optional"`
	Children            []*nodeBlock      `hcl:"node,block"`
}
