package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vk/coursegraph/internal/depgraph"
	"github.com/vk/coursegraph/internal/mapper"
)

func (a *App) render(results []*CourseResult) error {
	if a.config.Output == "json" {
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(a.outW)
		}
		if err := renderText(a.outW, res); err != nil {
			return err
		}
	}
	return nil
}

func renderText(w io.Writer, res *CourseResult) error {
	header := fmt.Sprintf("== %s: %s", res.Command, res.Course)
	if res.Source != "" {
		header += " (" + res.Source + ")"
	}
	fmt.Fprintln(w, header)

	switch r := res.Result.(type) {
	case *mapper.Report:
		return renderReport(w, r)
	case *depgraph.Ordering:
		renderOrdering(w, r)
	case []DeleteCheck:
		for _, check := range r {
			fmt.Fprintf(w, "node %s:\n", check.NodeID)
			renderValidation(w, check.Result, "  ")
		}
	case depgraph.ValidationResult:
		renderValidation(w, r, "")
	case []*mapper.Plan:
		for _, plan := range r {
			renderPlan(w, plan)
		}
	case *RewriteResult:
		fmt.Fprintf(w, "changed values: %d\n", r.ChangedValues)
		fmt.Fprint(w, r.Document)
	default:
		return fmt.Errorf("no text rendering for %T", res.Result)
	}
	return nil
}

func renderReport(w io.Writer, r *mapper.Report) error {
	fmt.Fprintf(w, "nodes: %d  edges: %d  cyclic: %d\n", r.NodeCount, r.EdgeCount, len(r.CyclicNodes))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tTITLE\tDEPENDS ON\tDEPENDED BY\tTYPES\tCYCLIC")
	for _, row := range r.Nodes {
		types := make([]string, 0, len(row.Types))
		for _, t := range row.Types {
			types = append(types, t.String())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			row.ID, row.Type, row.Title, list(row.DependsOn), list(row.DependedBy), list(types), row.Cyclic)
	}
	return tw.Flush()
}

func renderOrdering(w io.Writer, o *depgraph.Ordering) {
	fmt.Fprintf(w, "order: %s\n", list(o.Order))
	if !o.Complete() {
		fmt.Fprintf(w, "unresolved (cyclic): %s\n", list(o.Unresolved))
	}
}

func renderValidation(w io.Writer, r depgraph.ValidationResult, indent string) {
	status := "OK"
	if !r.Valid {
		status = "FAILED"
	}
	fmt.Fprintf(w, "%s%s: %s\n", indent, status, r.Summary)
	for _, e := range r.Errors {
		fmt.Fprintf(w, "%s  error: %s\n", indent, e)
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "%s  warning: %s\n", indent, warning)
	}
	if len(r.SuggestedInclusions) > 0 {
		fmt.Fprintf(w, "%s  suggested inclusions: %s\n", indent, list(r.SuggestedInclusions))
	}
}

func renderPlan(w io.Writer, p *mapper.Plan) {
	fmt.Fprintf(w, "plan for %s (include dependencies: %t)\n", p.NodeID, p.IncludeDependencies)
	fmt.Fprintf(w, "  selection: %s\n", list(p.Selection))
	fmt.Fprintf(w, "  order: %s\n", list(p.Order))
	if len(p.Unresolved) > 0 {
		fmt.Fprintf(w, "  unresolved (cyclic): %s\n", list(p.Unresolved))
	}
	renderValidation(w, p.Validation, "  ")
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ",")
}
