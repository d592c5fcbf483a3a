package cssast

// WalkFunc is called for every node visited by Walk. Returning false skips
// the node's children.
type WalkFunc func(n Node) bool

// Walk visits the descendants of c in document order, parents before
// children. Each child list is copied before it is iterated, so fn may
// detach or insert nodes without derailing the walk.
func Walk(c Container, fn WalkFunc) {
	nodes := append([]Node(nil), c.Nodes()...)
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		if child, ok := n.(Container); ok {
			Walk(child, fn)
		}
	}
}

// WalkDecls visits every declaration below c
func WalkDecls(c Container, fn func(d *Declaration)) {
	Walk(c, func(n Node) bool {
		if d, ok := n.(*Declaration); ok {
			fn(d)
		}
		return true
	})
}

// Declarations returns the declarations that are direct children of c
func Declarations(c Container) []*Declaration {
	var decls []*Declaration
	for _, n := range c.Nodes() {
		if d, ok := n.(*Declaration); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// ParentAtRule returns n's parent when it is an at-rule
func ParentAtRule(n Node) (*AtRule, bool) {
	a, ok := n.Parent().(*AtRule)
	return a, ok
}
