package depgraph

import (
	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/refscan"
)

// Analyzer contributes edges for one node. Analyzers must tolerate missing
// or malformed configuration by contributing nothing.
type Analyzer interface {
	Analyze(a *Analysis, n *course.Node)
}

// Analysis is the state shared by the analyzers during one Build.
type Analysis struct {
	Map     *Map
	Nodes   []*course.Node
	Scanner refscan.Scanner

	// seeded maps each id to the node that produced its record, so a
	// duplicate id does not contribute edges twice.
	seeded    map[string]*course.Node
	resources map[string][]string
	parents   map[string]string
}

func newAnalysis(m *Map, nodes []*course.Node, scanner refscan.Scanner) *Analysis {
	seeded := make(map[string]*course.Node, len(nodes))
	for _, n := range nodes {
		if _, ok := seeded[n.ID]; !ok {
			seeded[n.ID] = n
		}
	}
	return &Analysis{Map: m, Nodes: nodes, Scanner: scanner, seeded: seeded}
}

func (a *Analysis) owns(n *course.Node) bool {
	return a.seeded[n.ID] == n
}

// LinkExpression links from to every known node id found in expr and returns
// how many edges were linked.
func (a *Analysis) LinkExpression(from, expr string, t DependencyType) int {
	linked := 0
	for _, id := range refscan.Resolve(a.Scanner, expr, a.Map.Has) {
		if a.Map.Link(from, id, t) {
			linked++
		}
	}
	return linked
}

// ResourceGroup returns the ids of every node whose softkey equals key, in
// tree order. The index is built on first use, one pass over all nodes.
func (a *Analysis) ResourceGroup(key string) []string {
	if a.resources == nil {
		a.resources = make(map[string][]string)
		for _, n := range a.Nodes {
			if !a.owns(n) {
				continue
			}
			if k := n.Config.StringValue(course.KeySoftkey); k != "" {
				a.resources[k] = append(a.resources[k], n.ID)
			}
		}
	}
	return a.resources[key]
}

// Parent returns the id of n's parent in the tree.
func (a *Analysis) Parent(id string) (string, bool) {
	if a.parents == nil {
		a.parents = make(map[string]string)
		for _, n := range a.Nodes {
			for _, child := range n.Children {
				if child != nil {
					a.parents[child.ID] = n.ID
				}
			}
		}
	}
	p, ok := a.parents[id]
	return p, ok
}

// ConditionAnalyzer links a node to the nodes named in its access and
// visibility conditions.
type ConditionAnalyzer struct{}

func (ConditionAnalyzer) Analyze(a *Analysis, n *course.Node) {
	a.LinkExpression(n.ID, n.AccessCondition, VisibilityCondition)
	a.LinkExpression(n.ID, n.VisibilityCondition, VisibilityCondition)
}

// ScoreAnalyzer links a structure node to the nodes its score and passed
// calculators read.
type ScoreAnalyzer struct{}

func (ScoreAnalyzer) Analyze(a *Analysis, n *course.Node) {
	if n.Type != course.TypeStructure {
		return
	}
	a.LinkExpression(n.ID, n.Config.StringValue(course.KeyScoreCalculator), ScoreCalculation)
	a.LinkExpression(n.ID, n.Config.StringValue(course.KeyPassedCalculator), ScoreCalculation)
}

// AssessmentAnalyzer links a manual-scoring node to the node named by its
// referencedNode setting.
type AssessmentAnalyzer struct{}

func (AssessmentAnalyzer) Analyze(a *Analysis, n *course.Node) {
	if n.Type != course.TypeManualScoring {
		return
	}
	if ref := n.Config.StringValue(course.KeyReferencedNode); ref != "" {
		a.Map.Link(n.ID, ref, AssessmentDependency)
	}
}

// SharedResourceAnalyzer links a node to every other node configured with
// the same softkey. The edges are symmetric by construction: each member of a
// group links to all the others when its own turn comes.
type SharedResourceAnalyzer struct{}

func (SharedResourceAnalyzer) Analyze(a *Analysis, n *course.Node) {
	key := n.Config.StringValue(course.KeySoftkey)
	if key == "" {
		return
	}
	for _, other := range a.ResourceGroup(key) {
		if other != n.ID {
			a.Map.Link(n.ID, other, SharedResource)
		}
	}
}

// StructureAnalyzer links every node to its parent.
type StructureAnalyzer struct{}

func (StructureAnalyzer) Analyze(a *Analysis, n *course.Node) {
	if parent, ok := a.Parent(n.ID); ok {
		a.Map.Link(n.ID, parent, StructureParent)
	}
}
