package course

// Flatten returns every node of the tree rooted at root in depth-first
// pre-order. The walk uses an explicit stack, so tree depth is bounded only by
// memory. A nil root yields nil; nil children are skipped.
func Flatten(root *Node) []*Node {
	if root == nil {
		return nil
	}
	var out []*Node
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		// Push in reverse so the first child is visited first.
		for i := len(n.Children) - 1; i >= 0; i-- {
			if n.Children[i] != nil {
				stack = append(stack, n.Children[i])
			}
		}
	}
	return out
}

// Walk calls fn for every node in pre-order until fn returns false.
func Walk(root *Node, fn func(*Node) bool) {
	for _, n := range Flatten(root) {
		if !fn(n) {
			return
		}
	}
}
