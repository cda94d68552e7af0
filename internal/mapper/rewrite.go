package mapper

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/ctxlog"
)

// idKeys hold a bare node id rather than an expression.
var idKeys = map[string]bool{
	course.KeyReferencedNode:      true,
	course.KeyAssessedNodeIdent:   true,
	course.KeyReferencedNodeIdent: true,
	course.KeyNodeIdent:           true,
}

// UpdateReferencesAfterDuplication rewrites references to old node ids after
// the nodes have been copied under new ids. In every node of c, quoted
// occurrences "old" in the access and visibility conditions and in every
// configuration value become "new"; an id-valued setting that is exactly an
// old id is replaced outright.
//
// All mappings are applied in a single pass, so the outcome does not depend
// on map iteration order and a freshly written id is never rewritten again.
// It returns how many values changed.
func UpdateReferencesAfterDuplication(ctx context.Context, c *course.Course, oldToNew map[string]string) (int, error) {
	if c == nil || c.Root == nil {
		return 0, errors.New("cannot rewrite references: course has no root node")
	}
	if err := validateMapping(oldToNew); err != nil {
		return 0, err
	}
	if len(oldToNew) == 0 {
		return 0, nil
	}

	olds := make([]string, 0, len(oldToNew))
	for old := range oldToNew {
		olds = append(olds, old)
	}
	sort.Strings(olds)
	pairs := make([]string, 0, 2*len(olds))
	for _, old := range olds {
		pairs = append(pairs, strconv.Quote(old), strconv.Quote(oldToNew[old]))
	}
	replacer := strings.NewReplacer(pairs...)

	changed := 0
	rewrite := func(s *string) {
		if *s == "" {
			return
		}
		if out := replacer.Replace(*s); out != *s {
			*s = out
			changed++
		}
	}

	course.Walk(c.Root, func(n *course.Node) bool {
		rewrite(&n.AccessCondition)
		rewrite(&n.VisibilityCondition)
		if n.Config == nil {
			return true
		}
		for _, key := range n.Config.Keys() {
			value := n.Config[key]
			if idKeys[key] {
				if repl, found := oldToNew[value]; found {
					n.Config.Set(key, repl)
					changed++
					continue
				}
			}
			rewrite(&value)
			n.Config[key] = value
		}
		return true
	})

	ctxlog.FromContext(ctx).Debug("References rewritten.", "mappings", len(oldToNew), "changed_values", changed)
	return changed, nil
}

func validateMapping(oldToNew map[string]string) error {
	var errs []error
	for old, repl := range oldToNew {
		if strings.TrimSpace(old) == "" {
			errs = append(errs, errors.New("empty source id"))
		}
		if strings.TrimSpace(repl) == "" {
			errs = append(errs, fmt.Errorf("empty target id for %q", old))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid id mapping: %w", errors.Join(errs...))
	}
	return nil
}
