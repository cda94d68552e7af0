package depgraph

import (
	"fmt"
	"strings"
)

// DependencyType classifies why an edge exists. Several types may describe
// the same (from, to) pair.
type DependencyType int

const (
	// VisibilityCondition: the node's access or visibility rule reads another node.
	VisibilityCondition DependencyType = iota
	// Prerequisite: the node requires another node to be completed first.
	Prerequisite
	// SharedResource: both nodes use the same learning resource.
	SharedResource
	// DataReference: the node reads data produced by another node.
	DataReference
	// AssessmentDependency: the node's assessment includes another node's results.
	AssessmentDependency
	// StructureParent: the node sits below another node in the course tree.
	StructureParent
	// ScoreCalculation: the node's score or passed state is computed from other nodes.
	ScoreCalculation
)

var dependencyTypeNames = [...]string{
	VisibilityCondition:  "VISIBILITY_CONDITION",
	Prerequisite:         "PREREQUISITE",
	SharedResource:       "SHARED_RESOURCE",
	DataReference:        "DATA_REFERENCE",
	AssessmentDependency: "ASSESSMENT_DEPENDENCY",
	StructureParent:      "STRUCTURE_PARENT",
	ScoreCalculation:     "SCORE_CALCULATION",
}

// AllDependencyTypes lists every type in declaration order.
func AllDependencyTypes() []DependencyType {
	out := make([]DependencyType, len(dependencyTypeNames))
	for i := range dependencyTypeNames {
		out[i] = DependencyType(i)
	}
	return out
}

func (t DependencyType) String() string {
	if t < 0 || int(t) >= len(dependencyTypeNames) {
		return fmt.Sprintf("DependencyType(%d)", int(t))
	}
	return dependencyTypeNames[t]
}

// MarshalText renders the type by name, so JSON output reads
// "SCORE_CALCULATION" rather than a number.
func (t DependencyType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(dependencyTypeNames) {
		return nil, fmt.Errorf("invalid dependency type %d", int(t))
	}
	return []byte(t.String()), nil
}

// ParseDependencyType is the inverse of String. Matching ignores case.
func ParseDependencyType(s string) (DependencyType, error) {
	for i, name := range dependencyTypeNames {
		if strings.EqualFold(name, s) {
			return DependencyType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown dependency type %q", s)
}

// idSet is a set of node ids that remembers insertion order.
type idSet struct {
	order []string
	index map[string]struct{}
}

func (s *idSet) add(id string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *idSet) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *idSet) len() int { return len(s.order) }

func (s *idSet) list() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Info is the dependency record of one course node.
type Info struct {
	nodeID    string
	nodeType  string
	nodeTitle string

	dependsOn  idSet
	dependedBy idSet
	types      []DependencyType
	cyclic     bool
}

// NewInfo returns an Info with no edges.
func NewInfo(nodeID, nodeType, nodeTitle string) *Info {
	return &Info{nodeID: nodeID, nodeType: nodeType, nodeTitle: nodeTitle}
}

func (i *Info) NodeID() string    { return i.nodeID }
func (i *Info) NodeType() string  { return i.nodeType }
func (i *Info) NodeTitle() string { return i.nodeTitle }

// DependsOn returns the ids this node requires, in discovery order.
func (i *Info) DependsOn() []string { return i.dependsOn.list() }

// DependedBy returns the ids that require this node, in discovery order.
func (i *Info) DependedBy() []string { return i.dependedBy.list() }

// DependsOnNode reports whether id is a direct requirement of this node.
func (i *Info) DependsOnNode(id string) bool { return i.dependsOn.has(id) }

// IsRequiredBy reports whether id directly depends on this node.
func (i *Info) IsRequiredBy(id string) bool { return i.dependedBy.has(id) }

// DependencyTypes returns the types of all outgoing edges of this node, in
// the order they were first seen.
func (i *Info) DependencyTypes() []DependencyType {
	out := make([]DependencyType, len(i.types))
	copy(out, i.types)
	return out
}

// AddDependencyType records t unless it is already present.
func (i *Info) AddDependencyType(t DependencyType) {
	for _, have := range i.types {
		if have == t {
			return
		}
	}
	i.types = append(i.types, t)
}

// HasCyclicDependency reports whether DetectCycles found a cycle reachable
// from this node.
func (i *Info) HasCyclicDependency() bool { return i.cyclic }

// HasDependencies reports whether the node has any edge in either direction.
func (i *Info) HasDependencies() bool {
	return i.dependsOn.len() > 0 || i.dependedBy.len() > 0
}

// IsIndependent is the negation of HasDependencies.
func (i *Info) IsIndependent() bool { return !i.HasDependencies() }

func (i *Info) String() string {
	return fmt.Sprintf("Info{id=%q type=%q dependsOn=%d dependedBy=%d cyclic=%t}",
		i.nodeID, i.nodeType, i.dependsOn.len(), i.dependedBy.len(), i.cyclic)
}
