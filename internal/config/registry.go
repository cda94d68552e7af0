package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/ctxlog"
	"github.com/vk/coursegraph/internal/fsutil"
)

// ErrNoCourses is returned when the given paths contain no course files.
var ErrNoCourses = errors.New("no course files found")

// Registry dispatches course files to loaders by extension.
type Registry struct {
	loaders    map[string]Loader
	extensions []string
}

// NewRegistry returns a registry with the given loaders registered.
func NewRegistry(loaders ...Loader) *Registry {
	r := &Registry{loaders: make(map[string]Loader)}
	for _, l := range loaders {
		r.Register(l)
	}
	return r
}

// Register adds l for each of its extensions. A later loader replaces an
// earlier one for the same extension.
func (r *Registry) Register(l Loader) {
	for _, ext := range l.Extensions() {
		ext = strings.ToLower(ext)
		if _, exists := r.loaders[ext]; !exists {
			r.extensions = append(r.extensions, ext)
		}
		r.loaders[ext] = l
	}
}

// Extensions returns the registered extensions in registration order.
func (r *Registry) Extensions() []string {
	out := make([]string, len(r.extensions))
	copy(out, r.extensions)
	return out
}

// LoaderFor returns the loader responsible for path.
func (r *Registry) LoaderFor(path string) (Loader, bool) {
	l, ok := r.loaders[strings.ToLower(filepath.Ext(path))]
	return l, ok
}

// Load reads every course found under paths. Directories are walked for files
// with a registered extension; explicitly named files must have one. Each
// course is validated before it is returned, and loading stops at the first
// file that fails.
func (r *Registry) Load(ctx context.Context, paths ...string) ([]*course.Course, error) {
	logger := ctxlog.FromContext(ctx)
	if len(r.extensions) == 0 {
		return nil, errors.New("no course loaders registered")
	}

	files, err := r.findFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCourses, strings.Join(paths, ", "))
	}
	logger.Debug("Discovered course files.", "count", len(files))

	var courses []*course.Course
	for _, file := range files {
		loader, _ := r.LoaderFor(file)
		loaded, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		for _, c := range loaded {
			if c.Source == "" {
				c.Source = file
			}
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}
		logger.Debug("Course file loaded.", "path", file, "courses", len(loaded))
		courses = append(courses, loaded...)
	}
	return courses, nil
}

func (r *Registry) findFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	for _, path := range paths {
		if _, ok := r.LoaderFor(path); !ok && !isDir(path) {
			return nil, fmt.Errorf("unsupported course file %s: expected one of %s", path, strings.Join(r.extensions, ", "))
		}
		files, err := fsutil.FindFilesByExtension(path, r.extensions...)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, dup := seen[f]; !dup {
				seen[f] = struct{}{}
				all = append(all, f)
			}
		}
	}
	return all, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
