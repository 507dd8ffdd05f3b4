package view

// BuildForest constructs the general (multi-level) forest from a flat entity
// list. Containers come first as roots, each carrying its full subtree, then
// standalone entities as level-0 leaves. Within each bucket the input order
// is preserved; ordering is the sorter's job.
//
// An entity nests only when its ParentID resolves to an existing container.
// A dangling reference, or a reference to a non-container, is treated as "no
// parent". A reference that would make an entity its own ancestor is dropped
// and counted in DroppedEdges; every member of such a cycle surfaces as a
// root so no data is lost.
func BuildForest(entities []Entity) *Forest {
	byID := make(map[int64]Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}

	f := &Forest{}

	// Effective parent per entity after resolving dangling references,
	// non-container parents and cycles.
	parentOf := make(map[int64]int64, len(entities))
	for _, e := range entities {
		pid, ok := resolveParent(e, byID)
		if !ok {
			continue
		}
		if onCycle(e.ID, pid, byID) {
			f.DroppedEdges++
			continue
		}
		parentOf[e.ID] = pid
	}

	childrenOf := make(map[int64][]Entity)
	for _, e := range entities {
		if pid, ok := parentOf[e.ID]; ok {
			childrenOf[pid] = append(childrenOf[pid], e)
		}
	}

	// Containers first, then everything else, both in input order.
	for _, e := range entities {
		if _, nested := parentOf[e.ID]; nested || !e.IsContainer {
			continue
		}
		f.Roots = append(f.Roots, buildSubtree(e, 0, childrenOf))
	}
	for _, e := range entities {
		if _, nested := parentOf[e.ID]; nested || e.IsContainer {
			continue
		}
		f.Roots = append(f.Roots, buildSubtree(e, 0, childrenOf))
	}
	return f
}

// BuildGatewayForest constructs the constrained, one-level forest used by the
// gateway table: containers and their direct children only. Children are
// never nested further regardless of their own parent references, and an
// entity whose parent does not resolve to a container is excluded entirely.
func BuildGatewayForest(entities []Entity) *Forest {
	byID := make(map[int64]Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}

	childrenOf := make(map[int64][]Entity)
	for _, e := range entities {
		if e.IsContainer {
			continue
		}
		if pid, ok := resolveParent(e, byID); ok {
			childrenOf[pid] = append(childrenOf[pid], e)
		}
	}

	f := &Forest{}
	for _, e := range entities {
		if !e.IsContainer {
			continue
		}
		root := &Node{Entity: e, Level: 0}
		for _, c := range childrenOf[e.ID] {
			root.Children = append(root.Children, &Node{Entity: c, Level: 1})
		}
		f.Roots = append(f.Roots, root)
	}
	return f
}

// resolveParent returns the entity's parent id when the reference points at
// an existing container, which is the only kind of entity that may hold
// children.
func resolveParent(e Entity, byID map[int64]Entity) (int64, bool) {
	if e.ParentID == nil {
		return 0, false
	}
	parent, ok := byID[*e.ParentID]
	if !ok || !parent.IsContainer || parent.ID == e.ID {
		return 0, false
	}
	return parent.ID, true
}

// onCycle walks the ancestor chain starting at pid and reports whether it
// loops back through id (or through any repeated ancestor). The walk is
// bounded by the seen set, so malformed data cannot loop forever.
func onCycle(id, pid int64, byID map[int64]Entity) bool {
	seen := map[int64]bool{id: true}
	cur := pid
	for {
		if seen[cur] {
			return true
		}
		seen[cur] = true
		next, ok := resolveParent(byID[cur], byID)
		if !ok {
			return false
		}
		cur = next
	}
}

func buildSubtree(e Entity, level int, childrenOf map[int64][]Entity) *Node {
	n := &Node{Entity: e, Level: level}
	for _, c := range childrenOf[e.ID] {
		n.Children = append(n.Children, buildSubtree(c, level+1, childrenOf))
	}
	return n
}
