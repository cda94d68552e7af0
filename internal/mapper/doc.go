// Package mapper is the entry point for callers that hold a course and want
// answers about it: the dependency map, which nodes may be deleted, the order
// in which a selection can be duplicated, and how references must be
// rewritten once copies exist.
//
// A Service keeps no state between calls. Each call builds a fresh
// depgraph.Map from the course snapshot it is given, so callers may edit the
// course between calls without invalidating anything.
package mapper
