package depgraph

import (
	"context"

	"github.com/vk/coursegraph/internal/ctxlog"
)

const (
	unvisited uint8 = iota
	onPath
	finished
)

// DetectCycles flags every node from which a cycle is reachable along
// DependsOn edges, and returns how many nodes it flagged. A self-loop counts
// as a cycle of length one.
//
// Each node gets its own depth-first walk with fresh bookkeeping; nothing is
// shared between walks, so the cost is O(V·(V+E)). The walk keeps an explicit
// stack instead of recursing.
func DetectCycles(ctx context.Context, m *Map) int {
	logger := ctxlog.FromContext(ctx)
	flagged := 0
	for _, info := range m.Infos() {
		info.cyclic = reachesCycle(m, info.nodeID)
		if info.cyclic {
			flagged++
			logger.Warn("Cyclic dependency detected.", "node_id", info.nodeID, "title", info.nodeTitle)
		}
	}
	logger.Debug("Cycle detection complete.", "cyclic_nodes", flagged)
	return flagged
}

type walkFrame struct {
	deps []string
	next int
	id   string
}

// reachesCycle walks from start and reports whether it ever steps onto a
// node that is still on the current path.
func reachesCycle(m *Map, start string) bool {
	info, ok := m.Get(start)
	if !ok {
		return false
	}
	state := map[string]uint8{start: onPath}
	stack := []walkFrame{{id: start, deps: info.dependsOn.order}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.deps) {
			state[top.id] = finished
			stack = stack[:len(stack)-1]
			continue
		}
		dep := top.deps[top.next]
		top.next++

		switch state[dep] {
		case onPath:
			return true
		case finished:
			continue
		}
		depInfo, ok := m.Get(dep)
		if !ok {
			state[dep] = finished
			continue
		}
		state[dep] = onPath
		stack = append(stack, walkFrame{id: dep, deps: depInfo.dependsOn.order})
	}
	return false
}
