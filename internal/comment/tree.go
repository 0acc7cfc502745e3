package comment

import "github.com/google/uuid"

// Edge is the (id, parent) pair of one comment
type Edge struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
}

func childIndex(edges []Edge) map[uuid.UUID][]uuid.UUID {
	children := make(map[uuid.UUID][]uuid.UUID, len(edges))
	for _, e := range edges {
		if e.ParentID != nil {
			children[*e.ParentID] = append(children[*e.ParentID], e.ID)
		}
	}
	return children
}

// walk visits root and every node below it in pre-order, each id at most once
func walk(children map[uuid.UUID][]uuid.UUID, root uuid.UUID, visit func(uuid.UUID)) {
	visited := map[uuid.UUID]bool{}
	stack := []uuid.UUID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		visit(id)

		kids := children[id]
		for i := len(kids) - 1; i >= 0; i-- {
			if !visited[kids[i]] {
				stack = append(stack, kids[i])
			}
		}
	}
}

// CollectSubtree returns root followed by all of its descendants
func CollectSubtree(edges []Edge, root uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	walk(childIndex(edges), root, func(id uuid.UUID) {
		ids = append(ids, id)
	})
	return ids
}

// CountDescendants returns the number of descendants of each requested id
func CountDescendants(edges []Edge, ids []uuid.UUID) map[uuid.UUID]int64 {
	children := childIndex(edges)
	counts := make(map[uuid.UUID]int64, len(ids))
	for _, id := range ids {
		var n int64
		walk(children, id, func(uuid.UUID) { n++ })
		counts[id] = n - 1
	}
	return counts
}

// BuildForest groups a flat list into trees rooted at the comments without a parent.
// Sibling order follows input order. Comments not reachable from a root are dropped.
func BuildForest(items []View) []*Node {
	nodes := make(map[uuid.UUID]*Node, len(items))
	ordered := make([]*Node, 0, len(items))
	for _, item := range items {
		if _, dup := nodes[item.ID]; dup {
			continue
		}
		n := &Node{View: item, Children: []*Node{}}
		nodes[item.ID] = n
		ordered = append(ordered, n)
	}

	roots := []*Node{}
	children := make(map[uuid.UUID][]*Node)
	for _, n := range ordered {
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		children[*n.ParentID] = append(children[*n.ParentID], n)
	}

	visited := make(map[uuid.UUID]bool, len(ordered))
	var visitOrder []*Node
	stack := make([]*Node, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n.ID] {
			continue
		}
		visited[n.ID] = true
		visitOrder = append(visitOrder, n)

		kids := children[n.ID]
		for _, kid := range kids {
			if !visited[kid.ID] {
				n.Children = append(n.Children, kid)
			}
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}

	// children always follow their parent in visitOrder
	for i := len(visitOrder) - 1; i >= 0; i-- {
		n := visitOrder[i]
		var total int64
		for _, kid := range n.Children {
			total += kid.ReplyCount + 1
		}
		n.ReplyCount = total
	}
	return roots
}
