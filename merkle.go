package mbst

// rehash returns a new inner node with the same children, search key and
// keyHash/height freshly recomputed from those children. It is the single
// finalizer used by insert, delete, and both nodes touched by a rotation
// (spec.md §4.6) — the fusion of the balance pass and the hash pass that
// keeps insert/delete to one bottom-up traversal instead of two.
func rehash(h *hasher, left, right node, search []byte) (*innerNode, error) {
	digest, err := h.concat(left.keyHash(), right.keyHash())
	if err != nil {
		return nil, err
	}
	height := left.height()
	if right.height() > height {
		height = right.height()
	}
	return &innerNode{
		left:   left,
		right:  right,
		search: search,
		hash:   digest,
		h:      height + 1,
	}, nil
}
