package config

import (
	"context"

	"github.com/vk/coursegraph/internal/course"
)

// Loader is the interface for a format-specific course loader.
type Loader interface {
	// Extensions lists the file extensions the loader understands,
	// including the leading dot.
	Extensions() []string

	// Load reads every course defined in the file at path.
	Load(ctx context.Context, path string) ([]*course.Course, error)
}
