package parser

import "sort"

// Forest is the set of header nodes of one outline and their parent links.
// Parentage is a strict row -> parent map, so every node has at most one
// parent.
type Forest struct {
	labels map[int]string
	parent map[int]int
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{
		labels: make(map[int]string),
		parent: make(map[int]int),
	}
}

// AddNode registers row as a node carrying label.
func (f *Forest) AddNode(row int, label string) {
	f.labels[row] = label
}

// HasNode reports whether row is a node.
func (f *Forest) HasNode(row int) bool {
	_, ok := f.labels[row]
	return ok
}

// Label returns the label of a node.
func (f *Forest) Label(row int) (string, bool) {
	l, ok := f.labels[row]
	return l, ok
}

// Link makes parent the parent of child. It refuses self links, backward
// links and children that already have a parent, and reports whether the
// link was made.
func (f *Forest) Link(parent, child int) bool {
	if parent >= child {
		return false
	}
	if _, ok := f.parent[child]; ok {
		return false
	}
	f.parent[child] = parent
	return true
}

// Parent returns the parent of row.
func (f *Forest) Parent(row int) (int, bool) {
	p, ok := f.parent[row]
	return p, ok
}

// Children returns the children of row in row order.
func (f *Forest) Children(row int) []int {
	var out []int
	for child, p := range f.parent {
		if p == row {
			out = append(out, child)
		}
	}
	sort.Ints(out)
	return out
}

// Roots returns the parentless nodes in row order.
func (f *Forest) Roots() []int {
	var out []int
	for row := range f.labels {
		if _, ok := f.parent[row]; !ok {
			out = append(out, row)
		}
	}
	sort.Ints(out)
	return out
}

// Len returns the number of nodes.
func (f *Forest) Len() int {
	return len(f.labels)
}

// Ancestors walks up from row and returns the labels of its ancestors,
// root first. The row itself is not included.
func (f *Forest) Ancestors(row int) []string {
	var chain []string
	cur := row
	for {
		p, ok := f.parent[cur]
		if !ok {
			break
		}
		chain = append(chain, f.labels[p])
		cur = p
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
