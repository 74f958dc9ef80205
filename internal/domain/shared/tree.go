package shared

import "sort"

// TreeNode is a record that lives in a parent-linked hierarchy
type TreeNode interface {
	GetID() int64
	GetParentID() int64
}

// BuildForest links flat parent-linked records into a forest. Records whose
// parent is 0 or absent from items become roots. attach appends a child to
// its parent; less orders siblings and may be nil.
func BuildForest[T TreeNode](items []T, attach func(parent *T, child T), less func(a, b T) bool) []T {
	byID := make(map[int64]int, len(items))
	for i, it := range items {
		byID[it.GetID()] = i
	}

	children := make(map[int64][]T)
	var roots []T
	for _, it := range items {
		pid := it.GetParentID()
		if _, ok := byID[pid]; pid == 0 || !ok || pid == it.GetID() {
			roots = append(roots, it)
			continue
		}
		children[pid] = append(children[pid], it)
	}

	var link func(n T) T
	link = func(n T) T {
		kids := children[n.GetID()]
		if less != nil {
			sort.SliceStable(kids, func(i, j int) bool { return less(kids[i], kids[j]) })
		}
		for _, k := range kids {
			attach(&n, link(k))
		}
		return n
	}

	if less != nil {
		sort.SliceStable(roots, func(i, j int) bool { return less(roots[i], roots[j]) })
	}
	out := make([]T, 0, len(roots))
	for _, r := range roots {
		out = append(out, link(r))
	}
	return out
}

// DescendantIDs returns the ids of every record below rootID, breadth first
func DescendantIDs[T TreeNode](items []T, rootID int64) []int64 {
	children := make(map[int64][]int64)
	for _, it := range items {
		children[it.GetParentID()] = append(children[it.GetParentID()], it.GetID())
	}
	var out []int64
	queue := append([]int64(nil), children[rootID]...)
	seen := map[int64]bool{rootID: true}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		queue = append(queue, children[id]...)
	}
	return out
}
