package domain

// Resequence renumbers parent's children to contiguous 0..n-1 sibling
// positions, writing each index through to the child's payload, and keeps
// HasChildren consistent. Called after every structural mutation; only the
// moved node's order is ever re-persisted, the shifted siblings keep their
// new numbers in memory until the next full reload.
func Resequence(parent *Node) {
	for i, child := range parent.Children {
		child.setOrder(i)
	}
	parent.HasChildren = len(parent.Children) > 0
}
