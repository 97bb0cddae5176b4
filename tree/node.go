package tree

/*
Subtree is what a branch of a Node leads to: either a leaf holding a
predicted label or another internal Node. The zero Subtree is a leaf with a
nil label.
*/
type Subtree struct {
	label interface{}
	node  *Node
}

/*
Leaf returns a Subtree that predicts the given label.
*/
func Leaf(label interface{}) Subtree {
	return Subtree{label: label}
}

/*
Internal returns a Subtree rooted at the given node.
*/
func Internal(n *Node) Subtree {
	return Subtree{node: n}
}

// IsLeaf returns whether the subtree is a leaf
func (st Subtree) IsLeaf() bool {
	return st.node == nil
}

// Label returns the label of a leaf subtree, nil for internal ones
func (st Subtree) Label() interface{} {
	if st.node != nil {
		return nil
	}
	return st.label
}

// Node returns the root node of an internal subtree, nil for leaves
func (st Subtree) Node() *Node {
	return st.node
}

/*
Node is an internal node of a decision tree. It tests the value of the
attribute at index Feature of an example and follows the branch for that
value.

Branches are kept in insertion order, which is the order in which they are
traversed. Name identifies the node for pruning purposes and is only
meaningful after calling UniquifyNames.
*/
type Node struct {
	Feature  int
	Name     string
	values   []interface{}
	children map[interface{}]Subtree
}

/*
NewNode returns a node without branches that tests the attribute at the
given index.
*/
func NewNode(feature int) *Node {
	return &Node{Feature: feature, children: make(map[interface{}]Subtree)}
}

/*
AddBranch takes a value and a subtree and makes the subtree the one followed
by examples holding the value for the node's attribute. Adding a branch for a
value that already has one replaces its subtree but keeps its position.
It returns the node to allow chaining calls.
*/
func (n *Node) AddBranch(value interface{}, st Subtree) *Node {
	if n.children == nil {
		n.children = make(map[interface{}]Subtree)
	}
	if _, ok := n.children[value]; !ok {
		n.values = append(n.values, value)
	}
	n.children[value] = st
	return n
}

/*
Branch returns the subtree followed for the given value and whether there
is one.
*/
func (n *Node) Branch(value interface{}) (Subtree, bool) {
	st, ok := n.children[value]
	return st, ok
}

/*
Values returns the values the node has branches for, in insertion order.
*/
func (n *Node) Values() []interface{} {
	return append([]interface{}(nil), n.values...)
}

// Len returns the number of branches of the node
func (n *Node) Len() int {
	return len(n.values)
}
