package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/ctxlog"
	"github.com/vk/coursegraph/internal/depgraph"
	"github.com/vk/coursegraph/internal/fsutil"
	"github.com/vk/coursegraph/internal/hcl"
	"github.com/vk/coursegraph/internal/mapper"
	"github.com/vk/coursegraph/internal/yamlcourse"
)

// ErrChecksFailed is returned by Run when a deletion check or selection
// validation reported an invalid result. The report itself has already been
// written.
var ErrChecksFailed = errors.New("dependency checks failed")

// CourseResult is the outcome of the configured command for one course.
type CourseResult struct {
	Course  string `json:"course"`
	Source  string `json:"source,omitempty"`
	Command string `json:"command"`
	Result  any    `json:"result"`

	failed bool
}

// DeleteCheck is the check-delete result for one node.
type DeleteCheck struct {
	NodeID string                    `json:"node_id"`
	Result depgraph.ValidationResult `json:"result"`
}

// RewriteResult is the rewrite result for one course. Document holds the
// rewritten course in the format it was loaded from.
type RewriteResult struct {
	ChangedValues int    `json:"changed_values"`
	Format        string `json:"format"`
	Document      string `json:"document"`
}

// Run loads the configured courses, executes the command on each of them
// concurrently, and writes the results in course order.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	courses, err := a.loader.Load(ctx, a.config.CoursePaths...)
	if err != nil {
		return fmt.Errorf("failed to load courses: %w", err)
	}
	a.logger.Info("Courses loaded.", "count", len(courses))

	results := make([]*CourseResult, len(courses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)
	for i, c := range courses {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := a.execute(gctx, c)
			if err != nil {
				return fmt.Errorf("course %q: %w", c.Title, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := a.render(results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	for _, res := range results {
		if res.failed {
			return ErrChecksFailed
		}
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// execute runs the configured command against one course. The course is
// owned by the calling goroutine; rewrite mutates it in place.
func (a *App) execute(ctx context.Context, c *course.Course) (*CourseResult, error) {
	ctx = ctxlog.WithLogger(ctx, ctxlog.FromContext(ctx).With("course", c.Title))
	res := &CourseResult{Course: c.Title, Source: c.Source, Command: a.config.Command}

	switch a.config.Command {
	case CommandAnalyze:
		report, err := a.service.Report(ctx, c)
		if err != nil {
			return nil, err
		}
		res.Result = report

	case CommandOrder:
		ids := a.config.NodeIDs
		if len(ids) == 0 {
			ids = nil
			for _, n := range course.Flatten(c.Root) {
				ids = append(ids, n.ID)
			}
		}
		ordering, err := a.service.DuplicationOrder(ctx, c, ids)
		if err != nil {
			return nil, err
		}
		res.Result = ordering

	case CommandCheckDelete:
		checks := make([]DeleteCheck, 0, len(a.config.NodeIDs))
		for _, id := range a.config.NodeIDs {
			result, err := a.service.CanDelete(ctx, c, id)
			if err != nil {
				return nil, err
			}
			res.failed = res.failed || !result.Valid
			checks = append(checks, DeleteCheck{NodeID: id, Result: result})
		}
		res.Result = checks

	case CommandValidate:
		result, err := a.service.ValidateSelection(ctx, c, a.config.NodeIDs)
		if err != nil {
			return nil, err
		}
		res.failed = !result.Valid
		res.Result = result

	case CommandPlan:
		plans := make([]*mapper.Plan, 0, len(a.config.NodeIDs))
		for _, id := range a.config.NodeIDs {
			plan, err := a.service.PlanDuplication(ctx, c, id, a.config.IncludeDependencies)
			if errors.Is(err, mapper.ErrNodeNotFound) {
				ctxlog.FromContext(ctx).Warn("Node not in course, skipping plan.", "node_id", id)
				continue
			}
			if err != nil {
				return nil, err
			}
			res.failed = res.failed || !plan.Validation.Valid
			plans = append(plans, plan)
		}
		res.Result = plans

	case CommandRewrite:
		changed, err := mapper.UpdateReferencesAfterDuplication(ctx, c, a.config.Mapping)
		if err != nil {
			return nil, err
		}
		format, doc, err := encodeCourse(c)
		if err != nil {
			return nil, err
		}
		res.Result = &RewriteResult{ChangedValues: changed, Format: format, Document: string(doc)}

	default:
		return nil, fmt.Errorf("unknown command %q", a.config.Command)
	}
	return res, nil
}

// encodeCourse renders c in the format of its source file. Courses without a
// YAML source are written as HCL.
func encodeCourse(c *course.Course) (string, []byte, error) {
	if fsutil.HasExtension(c.Source, yamlcourse.NewLoader().Extensions()...) {
		doc, err := yamlcourse.Encode(c)
		return "yaml", doc, err
	}
	return "hcl", hcl.Encode(c), nil
}
