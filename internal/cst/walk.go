package cst

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(nodes *Nodes, id NodeID, fn func(id NodeID, depth int) bool) {
	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{id: id}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !top.id.IsValid() || !fn(top.id, top.depth) {
			continue
		}
		kids := nodes.Children(top.id)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: kids[i], depth: top.depth + 1})
		}
	}
}

// Inspect walks every top-level datum of the program.
func (p *Program) Inspect(fn func(id NodeID, depth int) bool) {
	for _, id := range p.Top {
		Walk(p.Nodes, id, fn)
	}
}
