package depgraph

import (
	"context"
	"errors"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/ctxlog"
	"github.com/vk/coursegraph/internal/refscan"
)

// ErrNilRoot is returned when Build is asked to analyze a missing tree.
var ErrNilRoot = errors.New("depgraph: course has no root node")

// Builder turns a course tree into a Map. A Builder holds no per-course
// state and may be shared between goroutines.
type Builder struct {
	scanner   refscan.Scanner
	analyzers []Analyzer
}

// Option configures a Builder.
type Option func(*Builder)

// WithScanner replaces the expression scanner (QuoteScanner by default).
func WithScanner(s refscan.Scanner) Option {
	return func(b *Builder) {
		if s != nil {
			b.scanner = s
		}
	}
}

// WithStructureEdges additionally links every node to its parent with
// StructureParent. Off by default: tree edges make every node depend on the
// root and swamp the cross-references.
func WithStructureEdges() Option {
	return func(b *Builder) {
		b.analyzers = append(b.analyzers, StructureAnalyzer{})
	}
}

// WithAnalyzers replaces the analyzer chain.
func WithAnalyzers(analyzers ...Analyzer) Option {
	return func(b *Builder) {
		b.analyzers = analyzers
	}
}

// DefaultAnalyzers returns the standard chain in the order it runs.
func DefaultAnalyzers() []Analyzer {
	return []Analyzer{
		ConditionAnalyzer{},
		ScoreAnalyzer{},
		AssessmentAnalyzer{},
		SharedResourceAnalyzer{},
	}
}

// NewBuilder returns a Builder with the default scanner and analyzers.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		scanner:   refscan.QuoteScanner{},
		analyzers: DefaultAnalyzers(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build constructs the dependency map of the tree rooted at root.
//
// The first pass flattens the tree and seeds one Info per node, so every
// record is complete before any analyzer runs. The second pass hands each
// node to every analyzer in order. Cycle flags are not computed here; see
// DetectCycles and Analyze.
func (b *Builder) Build(ctx context.Context, root *course.Node) (*Map, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "root", root.ID)

	nodes := course.Flatten(root)
	m := seed(ctx, nodes)
	logger.Debug("Build: Node seeding complete.", "node_count", m.Len())

	a := newAnalysis(m, nodes, b.scanner)
	for _, n := range nodes {
		if !a.owns(n) {
			continue
		}
		for _, analyzer := range b.analyzers {
			analyzer.Analyze(a, n)
		}
	}
	logger.Debug("Build: Node linking complete.", "edge_count", m.EdgeCount())
	return m, nil
}

// Analyze builds the map and flags cyclic nodes.
func (b *Builder) Analyze(ctx context.Context, root *course.Node) (*Map, error) {
	m, err := b.Build(ctx, root)
	if err != nil {
		return nil, err
	}
	DetectCycles(ctx, m)
	return m, nil
}

// seed reduces the flattened node list into a fresh map. Duplicate ids keep
// the first node seen.
func seed(ctx context.Context, nodes []*course.Node) *Map {
	m := NewMap()
	for _, n := range nodes {
		if !m.Add(NewInfo(n.ID, n.Type, n.Title)) {
			ctxlog.FromContext(ctx).Warn("Duplicate node id ignored.", "node_id", n.ID, "title", n.Title)
		}
	}
	return m
}
