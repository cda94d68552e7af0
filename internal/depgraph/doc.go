// Package depgraph builds and queries the dependency graph between the nodes
// of one course.
//
// # Model
//
// A Map holds one Info per course node. Edges are directed: "a depends on b"
// means a's visibility, access or scoring reads b. Every edge is inserted
// through Map.Link, which updates the forward set on the source, the reverse
// set on the target and the per-edge type index in one step, so
//
//	b ∈ a.DependsOn()  ⇔  a ∈ b.DependedBy()
//
// holds for every map this package produces. Dependency types are recorded per
// edge (Map.EdgeTypes) and aggregated per source node (Info.DependencyTypes).
//
// # Lifecycle
//
// Maps are cheap, single-use values. Builder.Build seeds one Info per node,
// runs the analyzers, and DetectCycles flags cyclic nodes. Nothing is cached
// between calls: a caller that edits the course builds a new map.
//
// # Cost
//
// The shared-resource analyzer links every pair of nodes that share a resource
// key, so a key used by k nodes contributes k·(k-1) edges. DetectCycles walks
// the graph once per node without memoization, O(V·(V+E)). Both are fine for
// course-sized graphs (dozens to low hundreds of nodes) and are the places to
// put a node-count ceiling if much larger trees must be analyzed.
//
// # Errors
//
// Inconsistent course data never produces an error. Unknown ids read as
// empty, cycles are flagged, and deletion or selection problems come back as
// a ValidationResult. Only misuse (a nil root) is reported as an error.
package depgraph
