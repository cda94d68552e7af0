// Package course defines the in-memory course snapshot that the dependency
// engine reads: a tree of nodes, each carrying an identifier, a type tag, a
// title, two condition expressions and a free-form string configuration.
//
// The engine never loads or persists courses itself. Loaders in the config,
// hcl and yamlcourse packages produce a *Course; callers own it for the
// duration of a call and are responsible for persisting any mutation.
package course
