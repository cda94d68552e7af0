package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/depgraph"
	"github.com/vk/coursegraph/internal/mapper"
	"github.com/vk/coursegraph/internal/refscan"
)

// CourseLoader reads courses from files or directories.
type CourseLoader interface {
	Load(ctx context.Context, paths ...string) ([]*course.Course, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  CourseLoader
	service *mapper.Service
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW, each App with its own isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config, loader CourseLoader) (*App, error) {
	logger, err := newLogger(cfg, logW)
	if err != nil {
		return nil, err
	}
	logger.Debug("Logger configured successfully.")

	scanner, err := refscan.ByName(cfg.Parser)
	if err != nil {
		return nil, err
	}
	opts := []depgraph.Option{depgraph.WithScanner(scanner)}
	if cfg.StructureEdges {
		opts = append(opts, depgraph.WithStructureEdges())
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loader:  loader,
		service: mapper.New(opts...),
	}, nil
}
