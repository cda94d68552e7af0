package mapper

import (
	"context"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/depgraph"
)

// Report is a serializable snapshot of a course's dependency map.
type Report struct {
	Course      string          `json:"course"`
	NodeCount   int             `json:"node_count"`
	EdgeCount   int             `json:"edge_count"`
	CyclicNodes []string        `json:"cyclic_nodes"`
	Nodes       []NodeRow       `json:"nodes"`
	Edges       []depgraph.Edge `json:"edges"`
}

// NodeRow is one node of a Report.
type NodeRow struct {
	ID         string                    `json:"id"`
	Type       string                    `json:"type"`
	Title      string                    `json:"title"`
	DependsOn  []string                  `json:"depends_on"`
	DependedBy []string                  `json:"depended_by"`
	Types      []depgraph.DependencyType `json:"types"`
	Cyclic     bool                      `json:"cyclic"`
}

// Report analyzes c and flattens the result for output.
func (s *Service) Report(ctx context.Context, c *course.Course) (*Report, error) {
	m, err := s.Analyze(ctx, c)
	if err != nil {
		return nil, err
	}
	return NewReport(c.Title, m), nil
}

// NewReport flattens an analyzed map.
func NewReport(title string, m *depgraph.Map) *Report {
	r := &Report{
		Course:      title,
		NodeCount:   m.Len(),
		EdgeCount:   m.EdgeCount(),
		CyclicNodes: m.CyclicNodes(),
		Nodes:       make([]NodeRow, 0, m.Len()),
		Edges:       m.Edges(),
	}
	if r.CyclicNodes == nil {
		r.CyclicNodes = []string{}
	}
	for _, info := range m.Infos() {
		r.Nodes = append(r.Nodes, NodeRow{
			ID:         info.NodeID(),
			Type:       info.NodeType(),
			Title:      info.NodeTitle(),
			DependsOn:  info.DependsOn(),
			DependedBy: info.DependedBy(),
			Types:      info.DependencyTypes(),
			Cyclic:     info.HasCyclicDependency(),
		})
	}
	return r
}
