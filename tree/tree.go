package tree

import (
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

/*
Path addresses an internal node of a tree by the branch values followed from
the root to reach it. The empty path addresses the root.
*/
type Path []interface{}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "/" + strings.Join(parts, "/")
}

// Traverse takes a bottomup boolean and an error-returning
// function that takes a path and a node as parameters, and
// goes through the internal nodes of the tree running the
// function with every traversed node and its path.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true. Children
// are traversed in branch order. If the call to the function
// returns an error, the traversing is aborted and the error
// is returned.
func (n *Node) Traverse(bottomup bool, f func(Path, *Node) error) error {
	return n.traverse(nil, bottomup, f)
}

func (n *Node) traverse(p Path, bottomup bool, f func(Path, *Node) error) error {
	if !bottomup {
		if err := f(p, n); err != nil {
			return err
		}
	}
	for _, v := range n.values {
		st := n.children[v]
		if st.IsLeaf() {
			continue
		}
		sp := make(Path, len(p), len(p)+1)
		copy(sp, p)
		if err := st.node.traverse(append(sp, v), bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(p, n)
	}
	return nil
}

/*
UniquifyNames renames every internal node of the tree in post-order as Node0,
Node1 and so on, and returns the assigned names in that order. The root is
always named last.
*/
func (n *Node) UniquifyNames() []string {
	var names []string
	n.Traverse(true, func(_ Path, sn *Node) error {
		sn.Name = fmt.Sprintf("Node%d", len(names))
		names = append(names, sn.Name)
		return nil
	})
	return names
}

/*
Paths returns the paths of every internal node of the tree in post-order,
so the empty path of the root comes last.
*/
func (n *Node) Paths() []Path {
	var paths []Path
	n.Traverse(true, func(p Path, _ *Node) error {
		paths = append(paths, p)
		return nil
	})
	return paths
}

/*
At returns the internal node addressed by the given path and whether there
is one.
*/
func (n *Node) At(p Path) (*Node, bool) {
	cur := n
	for _, v := range p {
		st, ok := cur.children[v]
		if !ok || st.IsLeaf() {
			return nil, false
		}
		cur = st.node
	}
	return cur, true
}

/*
Find returns the path of the first internal node, in pre-order, with the
given name and whether there is one.
*/
func (n *Node) Find(name string) (Path, bool) {
	var found Path
	errFound := fmt.Errorf("found")
	err := n.Traverse(false, func(p Path, sn *Node) error {
		if sn.Name == name {
			found = p
			return errFound
		}
		return nil
	})
	return found, err == errFound
}

/*
CopyExcluding takes the name of an internal node, a slice of examples and the
index of their target attribute. It returns a deep copy of the tree in which
the named node is replaced by a leaf, and true. The label of the leaf is the
most frequent target value among the given examples that reach the node,
first encountered winning ties. When none reaches it, the most frequent label
among the leaves of the replaced subtree is used instead.

If no node has the given name, a copy of the unmodified tree and false are
returned. The tree itself is never modified.
*/
func (n *Node) CopyExcluding(name string, examples []dataset.Example, target int) (Subtree, bool) {
	p, ok := n.Find(name)
	if !ok {
		return Internal(n.Copy()), false
	}
	return n.CopyExcludingPath(p, examples, target)
}

/*
CopyExcludingPath works like CopyExcluding, addressing the node to replace by
its path instead of its name. Excluding the empty path replaces the whole tree
by a leaf.
*/
func (n *Node) CopyExcludingPath(p Path, examples []dataset.Example, target int) (Subtree, bool) {
	if len(p) == 0 {
		return Leaf(n.excisedLabel(examples, target)), true
	}
	cp := n.Copy()
	parent := cp
	reaching := examples
	for i, v := range p {
		st, ok := parent.children[v]
		if !ok || st.IsLeaf() {
			return Internal(n.Copy()), false
		}
		reaching = subsetWith(reaching, feature.NewDiscreteCriterion(parent.Feature, nil, v))
		if i == len(p)-1 {
			parent.children[v] = Leaf(st.node.excisedLabel(reaching, target))
			return Internal(cp), true
		}
		parent = st.node
	}
	return Internal(cp), false
}

func subsetWith(examples []dataset.Example, c feature.Criterion) []dataset.Example {
	var result []dataset.Example
	for _, e := range examples {
		if c.SatisfiedBy(e) {
			result = append(result, e)
		}
	}
	return result
}

func (n *Node) excisedLabel(reaching []dataset.Example, target int) interface{} {
	var labels []interface{}
	if len(reaching) > 0 {
		for _, e := range reaching {
			if target >= 0 && target < len(e) {
				labels = append(labels, e[target])
			}
		}
	}
	if len(labels) == 0 {
		labels = n.leafLabels()
	}
	return mostFrequent(labels)
}

func (n *Node) leafLabels() []interface{} {
	var labels []interface{}
	for _, v := range n.values {
		st := n.children[v]
		if st.IsLeaf() {
			labels = append(labels, st.label)
		} else {
			labels = append(labels, st.node.leafLabels()...)
		}
	}
	return labels
}

func mostFrequent(values []interface{}) interface{} {
	var best interface{}
	var bestCount int
	counts := make(map[interface{}]int)
	for _, v := range values {
		counts[v]++
	}
	for _, v := range values {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

/*
Copy returns a deep copy of the tree rooted at the node, names included.
*/
func (n *Node) Copy() *Node {
	cp := &Node{
		Feature:  n.Feature,
		Name:     n.Name,
		values:   append([]interface{}(nil), n.values...),
		children: make(map[interface{}]Subtree, len(n.children)),
	}
	for v, st := range n.children {
		if st.IsLeaf() {
			cp.children[v] = st
		} else {
			cp.children[v] = Internal(st.node.Copy())
		}
	}
	return cp
}

/*
Copy returns a deep copy of the subtree.
*/
func (st Subtree) Copy() Subtree {
	if st.IsLeaf() {
		return st
	}
	return Internal(st.node.Copy())
}

/*
Equal returns whether both trees test the same attributes, have the same
branches in the same order and predict the same labels. Node names are
ignored.
*/
func (n *Node) Equal(other *Node) bool {
	return n.equal(other, false)
}

/*
EqualNamed works like Equal but also requires nodes to have the same names.
*/
func (n *Node) EqualNamed(other *Node) bool {
	return n.equal(other, true)
}

func (n *Node) equal(other *Node, named bool) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Feature != other.Feature || len(n.values) != len(other.values) {
		return false
	}
	if named && n.Name != other.Name {
		return false
	}
	for i, v := range n.values {
		if other.values[i] != v {
			return false
		}
		if !n.children[v].equal(other.children[v], named) {
			return false
		}
	}
	return true
}

/*
Equal returns whether both subtrees are leaves with the same label or
internal subtrees whose roots are Equal.
*/
func (st Subtree) Equal(other Subtree) bool {
	return st.equal(other, false)
}

func (st Subtree) equal(other Subtree, named bool) bool {
	if st.IsLeaf() || other.IsLeaf() {
		return st.IsLeaf() && other.IsLeaf() && st.label == other.label
	}
	return st.node.equal(other.node, named)
}

// Size returns the number of internal nodes of the tree
func (n *Node) Size() int {
	var size int
	n.Traverse(false, func(Path, *Node) error {
		size++
		return nil
	})
	return size
}

/*
Depth returns the number of branches in the longest path from the node to a
leaf.
*/
func (n *Node) Depth() int {
	var depth int
	for _, st := range n.children {
		d := 1
		if !st.IsLeaf() {
			d += st.node.Depth()
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}

// Size returns the number of internal nodes of the subtree
func (st Subtree) Size() int {
	if st.IsLeaf() {
		return 0
	}
	return st.node.Size()
}

// Depth returns the depth of the subtree, 0 for leaves
func (st Subtree) Depth() int {
	if st.IsLeaf() {
		return 0
	}
	return st.node.Depth()
}

func (n *Node) String() string {
	return Internal(n).Render(nil)
}

func (st Subtree) String() string {
	return st.Render(nil)
}

/*
Render returns an indented representation of the subtree using the names of
the given features to describe the tested attributes. Attributes without a
feature are described by their index.
*/
func (st Subtree) Render(features []*feature.DiscreteFeature) string {
	if st.IsLeaf() {
		return fmt.Sprintf("{ %v }\n", st.label)
	}
	n := st.node
	result := fmt.Sprintf("[%s]\n", n.Name)
	if len(n.values) > 0 {
		result = fmt.Sprintf("%s|\n", result)
	}
	name := fmt.Sprintf("#%d", n.Feature)
	if n.Feature >= 0 && n.Feature < len(features) {
		name = features[n.Feature].Name()
	}
	for i, v := range n.values {
		branch := fmt.Sprintf("%s is %v\n%s", name, v, n.children[v].Render(features))
		for j, line := range strings.Split(branch, "\n") {
			if len(line) == 0 {
				continue
			}
			switch {
			case j == 0:
				result = fmt.Sprintf("%s|__%s\n", result, line)
			case i == len(n.values)-1:
				result = fmt.Sprintf("%s   %s\n", result, line)
			default:
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
