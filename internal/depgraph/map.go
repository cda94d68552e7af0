package depgraph

type edgeKey struct {
	from, to string
}

// Edge is one directed (from depends on to) pair with every type that
// produced it.
type Edge struct {
	From  string           `json:"from"`
	To    string           `json:"to"`
	Types []DependencyType `json:"types"`
}

// Map is the dependency graph of one course: NodeID -> Info, plus the
// per-edge type index. The zero value is not usable; call NewMap. Read
// methods accept a nil *Map and treat it as empty.
type Map struct {
	infos map[string]*Info
	order []string
	edges map[edgeKey][]DependencyType
	// edgeOrder keeps Edges() deterministic.
	edgeOrder []edgeKey
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{
		infos: make(map[string]*Info),
		edges: make(map[edgeKey][]DependencyType),
	}
}

// Add seeds info into the map. It returns false and leaves the map unchanged
// if a record with the same id already exists.
func (m *Map) Add(info *Info) bool {
	if _, exists := m.infos[info.nodeID]; exists {
		return false
	}
	m.infos[info.nodeID] = info
	m.order = append(m.order, info.nodeID)
	return true
}

// Get returns the record for id.
func (m *Map) Get(id string) (*Info, bool) {
	if m == nil {
		return nil, false
	}
	info, ok := m.infos[id]
	return info, ok
}

// Has reports whether id is a node of this map.
func (m *Map) Has(id string) bool {
	_, ok := m.Get(id)
	return ok
}

// Len returns the number of nodes.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// IDs returns all node ids in seeding order (course pre-order for built maps).
func (m *Map) IDs() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Infos returns all records in seeding order.
func (m *Map) Infos() []*Info {
	if m == nil {
		return nil
	}
	out := make([]*Info, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.infos[id])
	}
	return out
}

// Link records that from depends on to because of t. It is the only way
// edges enter a map: the forward set of from, the reverse set of to, the
// aggregated types of from and the per-edge index all change together.
// Link returns false, and changes nothing, when either endpoint is unknown.
// Repeating an edge only adds t to its type list if it is new.
func (m *Map) Link(from, to string, t DependencyType) bool {
	src, ok := m.infos[from]
	if !ok {
		return false
	}
	dst, ok := m.infos[to]
	if !ok {
		return false
	}

	src.dependsOn.add(to)
	dst.dependedBy.add(from)
	src.AddDependencyType(t)

	key := edgeKey{from: from, to: to}
	types, seen := m.edges[key]
	if !seen {
		m.edgeOrder = append(m.edgeOrder, key)
	}
	for _, have := range types {
		if have == t {
			return true
		}
	}
	m.edges[key] = append(types, t)
	return true
}

// EdgeTypes returns the types recorded for the edge from -> to, or nil if
// there is no such edge.
func (m *Map) EdgeTypes(from, to string) []DependencyType {
	if m == nil {
		return nil
	}
	types := m.edges[edgeKey{from: from, to: to}]
	if types == nil {
		return nil
	}
	out := make([]DependencyType, len(types))
	copy(out, types)
	return out
}

// Edges returns every edge in insertion order.
func (m *Map) Edges() []Edge {
	if m == nil {
		return nil
	}
	out := make([]Edge, 0, len(m.edgeOrder))
	for _, key := range m.edgeOrder {
		out = append(out, Edge{From: key.from, To: key.to, Types: m.EdgeTypes(key.from, key.to)})
	}
	return out
}

// EdgeCount returns the number of distinct (from, to) pairs.
func (m *Map) EdgeCount() int {
	if m == nil {
		return 0
	}
	return len(m.edgeOrder)
}

// CyclicNodes returns the ids flagged by DetectCycles, in seeding order.
func (m *Map) CyclicNodes() []string {
	var out []string
	for _, info := range m.Infos() {
		if info.cyclic {
			out = append(out, info.nodeID)
		}
	}
	return out
}
