// Package config defines the format-agnostic boundary for loading courses:
// the Loader interface implemented by each file format, and a Registry that
// picks the right loader for every file found under the given paths.
//
// Concrete implementations, such as for HCL or YAML, are provided in separate
// packages.
package config
