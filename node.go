package mbst

import "bytes"

// node is the tagged variant at the heart of the tree: every node is either
// a leaf or an inner node, sharing the {key_hash, search_key, height}
// header described in spec.md §3. Representing the two shapes as distinct
// types (rather than one struct with optional fields) is the "preferred"
// choice noted there, and makes I6 ("no one-child inner node") a type-level
// invariant instead of a runtime check.
type node interface {
	// keyHash is the node's Merkle digest: H(key) for a leaf, H(left.keyHash
	// ‖ right.keyHash) for an inner node.
	keyHash() string
	// height is 0 for a leaf, 1+max(child heights) for an inner node.
	height() uint8
}

type leafNode struct {
	key   []byte
	value interface{}
	hash  string
}

func (l *leafNode) keyHash() string { return l.hash }
func (l *leafNode) height() uint8   { return 0 }

type innerNode struct {
	left, right node
	search      []byte
	hash        string
	h           uint8
}

func (n *innerNode) keyHash() string { return n.hash }
func (n *innerNode) height() uint8   { return n.h }

// delta is left height minus right height; the AVL invariant (I4) is
// |delta| <= 1 for every inner node.
func (n *innerNode) delta() int {
	return int(n.left.height()) - int(n.right.height())
}

// routesLeft reports whether key should be routed to the left subtree of an
// inner node with the given search key: "k <= s goes left" (spec.md §4.2).
func routesLeft(key, search []byte) bool {
	return bytes.Compare(key, search) <= 0
}

func newLeaf(h *hasher, key []byte, value interface{}) (*leafNode, error) {
	digest, err := h.hashKey(key)
	if err != nil {
		return nil, err
	}
	return &leafNode{key: key, value: value, hash: digest}, nil
}

// maxKey returns the largest key present in the subtree rooted at n: a
// leaf's own key, or the rightmost leaf's key for an inner node. Rotations
// use this to re-derive a moved subtree's contribution to an ancestor's
// search_key (spec.md §4.4).
func maxKey(n node) []byte {
	for {
		inner, ok := n.(*innerNode)
		if !ok {
			return n.(*leafNode).key
		}
		n = inner.right
	}
}
