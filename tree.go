package mbst

import (
	"bytes"
	"fmt"

	"github.com/jrhy/mbst/internal/telemetry"
)

// debugLogger is the logging surface the tree needs: just enough of
// *slog.Logger to log a structured Debug line, so internal code doesn't
// have to import log/slog just to take a logger as a parameter.
type debugLogger interface {
	Debug(msg string, args ...any)
}

// Tree is an immutable Merkle AVL binary search tree. The zero value is not
// usable; construct one with New or NewFromPairs. Every mutating method
// returns a new *Tree and leaves the receiver untouched, so an old *Tree
// remains a valid snapshot after Insert or Delete (spec.md §5).
type Tree struct {
	root   node
	size   uint64
	hasher *hasher
	logger debugLogger
}

// New returns an empty tree configured by opts. With no options, it hashes
// with SHA256 and logs nothing.
func New(opts ...Option) (*Tree, error) {
	c := buildConfig(opts)
	fn, err := c.resolveHashFunc()
	if err != nil {
		return nil, err
	}
	h, err := newHasher(fn, c.cacheSize)
	if err != nil {
		return nil, err
	}
	return &Tree{hasher: h, logger: c.logger}, nil
}

// Size returns the number of leaves (key/value pairs) in the tree.
func (t *Tree) Size() uint64 {
	return t.size
}

// Height returns the AVL height of the root: 0 for an empty or
// single-entry tree, otherwise 1+max(child heights) recursively.
func (t *Tree) Height() uint8 {
	if t.root == nil {
		return 0
	}
	return t.root.height()
}

// RootHash returns the Merkle root hash and true, or ("", false) if the
// tree is empty (spec.md §4.2: an empty tree reports root_hash as "none").
func (t *Tree) RootHash() (string, bool) {
	if t.root == nil {
		return "", false
	}
	return t.root.keyHash(), true
}

// Clone returns a shallow copy of t that shares every node with it: nodes
// are already immutable and shared-by-reference, so only the small Tree
// header is copied. Clone exists as a named
// operation for callers porting code from a Merkle Search Tree API where
// Clone matters because nodes there can be mutated in place.
func (t *Tree) Clone() *Tree {
	clone := *t
	return &clone
}

// Lookup returns the value stored for key, or ErrKeyNotFound (wrapped in a
// *KeyError) if key isn't present.
func (t *Tree) Lookup(key []byte) (interface{}, error) {
	n := t.root
	for n != nil {
		switch cur := n.(type) {
		case *leafNode:
			if bytes.Equal(cur.key, key) {
				return cur.value, nil
			}
			return nil, newKeyNotFoundError(key)
		case *innerNode:
			if routesLeft(key, cur.search) {
				n = cur.left
			} else {
				n = cur.right
			}
		}
	}
	return nil, newKeyNotFoundError(key)
}

// Insert returns a new tree with key mapped to value. If key is already
// present, its value is replaced in place — no structural change, and the
// root hash is unchanged, since leaf hashes depend only on the key
// (spec.md §4.2). Otherwise a new leaf is added and the ancestor path is
// rebalanced and rehashed on the way back up.
func (t *Tree) Insert(key []byte, value interface{}) (*Tree, error) {
	newRoot, grew, err := insertInto(t.hasher, t.logger, t.root, key, value)
	if err != nil {
		t.logger.Debug("insert failed", telemetry.Component("tree"), telemetry.Key(key), telemetry.Error(err))
		return nil, fmt.Errorf("mbst: insert: %w", err)
	}
	size := t.size
	if grew {
		size++
	}
	next := &Tree{root: newRoot, size: size, hasher: t.hasher, logger: t.logger}
	next.logger.Debug("insert complete", telemetry.Component("tree"), telemetry.Key(key), telemetry.Size(size), telemetry.Height(next.Height()))
	return next, nil
}

// insertInto returns the new subtree and whether a leaf was added (as
// opposed to an existing leaf's value being replaced in place).
func insertInto(h *hasher, logger debugLogger, n node, key []byte, value interface{}) (node, bool, error) {
	switch cur := n.(type) {
	case nil:
		l, err := newLeaf(h, key, value)
		return l, true, err
	case *leafNode:
		switch bytes.Compare(key, cur.key) {
		case 0:
			return &leafNode{key: cur.key, value: value, hash: cur.hash}, false, nil
		case -1:
			newL, err := newLeaf(h, key, value)
			if err != nil {
				return nil, false, err
			}
			combined, err := rehash(h, newL, cur, newL.key)
			return combined, true, err
		default:
			newL, err := newLeaf(h, key, value)
			if err != nil {
				return nil, false, err
			}
			combined, err := rehash(h, cur, newL, cur.key)
			return combined, true, err
		}
	case *innerNode:
		if routesLeft(key, cur.search) {
			newLeft, grew, err := insertInto(h, logger, cur.left, key, value)
			if err != nil {
				return nil, false, err
			}
			combined, err := rehash(h, newLeft, cur.right, cur.search)
			if err != nil {
				return nil, false, err
			}
			balanced, err := rebalance(h, logger, combined)
			return balanced, grew, err
		}
		newRight, grew, err := insertInto(h, logger, cur.right, key, value)
		if err != nil {
			return nil, false, err
		}
		combined, err := rehash(h, cur.left, newRight, cur.search)
		if err != nil {
			return nil, false, err
		}
		balanced, err := rebalance(h, logger, combined)
		return balanced, grew, err
	default:
		return nil, false, fmt.Errorf("mbst: unknown node type %T", cur)
	}
}

// Delete returns a new tree with key removed. It returns ErrKeyNotFound
// (wrapped in a *KeyError) if key is absent, including on an empty tree,
// and leaves the receiver unchanged either way. No rotation is performed —
// spec.md §4.3 deliberately omits rebalancing on delete.
func (t *Tree) Delete(key []byte) (*Tree, error) {
	newRoot, found, err := deleteFrom(t.hasher, t.root, key)
	if err != nil {
		t.logger.Debug("delete failed", telemetry.Component("tree"), telemetry.Key(key), telemetry.Error(err))
		return nil, fmt.Errorf("mbst: delete: %w", err)
	}
	if !found {
		return nil, newKeyNotFoundError(key)
	}
	next := &Tree{root: newRoot, size: t.size - 1, hasher: t.hasher, logger: t.logger}
	next.logger.Debug("delete complete", telemetry.Component("tree"), telemetry.Key(key), telemetry.Size(next.size))
	return next, nil
}

func deleteFrom(h *hasher, n node, key []byte) (node, bool, error) {
	switch cur := n.(type) {
	case nil:
		return nil, false, nil
	case *leafNode:
		if bytes.Equal(cur.key, key) {
			return nil, true, nil
		}
		return cur, false, nil
	case *innerNode:
		if routesLeft(key, cur.search) {
			newLeft, found, err := deleteFrom(h, cur.left, key)
			if err != nil || !found {
				return cur, found, err
			}
			if newLeft == nil {
				// cur.left was a single leaf; its sibling takes cur's place.
				return cur.right, true, nil
			}
			search := cur.search
			if bytes.Equal(cur.search, key) {
				// cur.search was exactly the deleted key: it was the max of
				// cur's left subtree, so the replacement is the new max of
				// that subtree post-deletion (spec.md §4.3).
				search = maxKey(newLeft)
			}
			combined, err := rehash(h, newLeft, cur.right, search)
			return combined, true, err
		}
		newRight, found, err := deleteFrom(h, cur.right, key)
		if err != nil || !found {
			return cur, found, err
		}
		if newRight == nil {
			return cur.left, true, nil
		}
		combined, err := rehash(h, cur.left, newRight, cur.search)
		return combined, true, err
	default:
		return nil, false, fmt.Errorf("mbst: unknown node type %T", cur)
	}
}

// Keys returns every key in the tree. For this two-child binary
// representation (unlike a Merkle Search Tree's N-ary nodes, whose own keys
// interleave with child links and so can surface out of order under
// restructuring), in-order traversal of leaves is always sorted ascending,
// since rotations only ever rearrange parent/child relationships without
// altering relative leaf order. Keys is equivalent to Iter collecting keys.
func (t *Tree) Keys() [][]byte {
	keys := make([][]byte, 0, t.size)
	_ = t.Iter(func(key []byte, _ interface{}) (bool, error) {
		keys = append(keys, key)
		return true, nil
	})
	return keys
}

// Iter calls f for every (key, value) pair in ascending key order, stopping
// early if f returns false or a non-nil error.
func (t *Tree) Iter(f func(key []byte, value interface{}) (bool, error)) error {
	_, err := iterNode(t.root, f)
	return err
}

func iterNode(n node, f func([]byte, interface{}) (bool, error)) (bool, error) {
	switch cur := n.(type) {
	case nil:
		return true, nil
	case *leafNode:
		return f(cur.key, cur.value)
	case *innerNode:
		keepGoing, err := iterNode(cur.left, f)
		if err != nil || !keepGoing {
			return keepGoing, err
		}
		return iterNode(cur.right, f)
	default:
		return false, fmt.Errorf("mbst: unknown node type %T", cur)
	}
}
