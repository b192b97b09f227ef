package mbst

import (
	"fmt"

	"github.com/jrhy/mbst/internal/telemetry"
)

// rotateRight performs a right rotation at z, whose left child is y
// (spec.md §4.4): y becomes the new subtree root, y's old right child
// becomes z's new left child, and z becomes y's new right child.
//
// y's search_key is unchanged — it already equals the max of its own left
// subtree, which hasn't moved. z's search_key becomes the max key of the
// subtree that used to be y's right child, since that subtree is now z's
// left subtree.
func rotateRight(h *hasher, z *innerNode) (*innerNode, error) {
	y, ok := z.left.(*innerNode)
	if !ok {
		return nil, fmt.Errorf("mbst: rotateRight needs an inner left child")
	}
	newZ, err := rehash(h, y.right, z.right, maxKey(y.right))
	if err != nil {
		return nil, err
	}
	newY, err := rehash(h, y.left, newZ, y.search)
	if err != nil {
		return nil, err
	}
	return newY, nil
}

// rotateLeft is the mirror of rotateRight: z's right child y becomes the
// new root, y's old left child becomes z's new right child, z becomes y's
// new left child.
func rotateLeft(h *hasher, z *innerNode) (*innerNode, error) {
	y, ok := z.right.(*innerNode)
	if !ok {
		return nil, fmt.Errorf("mbst: rotateLeft needs an inner right child")
	}
	newZ, err := rehash(h, z.left, y.left, z.search)
	if err != nil {
		return nil, err
	}
	newY, err := rehash(h, newZ, y.right, maxKey(newZ))
	if err != nil {
		return nil, err
	}
	return newY, nil
}

// rebalance restores the AVL invariant at n, which has just had one child
// replaced (and is therefore already rehashed for its current children).
// It returns n unchanged if no rotation is needed. Whenever a rotation does
// fire, it logs the case, the balance factor that triggered it, and the
// resulting node's hash at Debug level — the structural tracing SPEC_FULL.md
// promises, following mast's m.debug instrumentation but through logger
// instead of fmt.Printf.
//
// Which of the four cases applies is decided from the heavy child's own
// balance factor rather than by comparing the newly inserted key against a
// search_key (spec.md §4.4 describes the single-level case in terms of the
// inserted key; the height-delta test is the standard AVL formulation and
// agrees with it, while also remaining correct further up the tree where
// "the new key" is no longer adjacent to the node being examined).
func rebalance(h *hasher, logger debugLogger, n *innerNode) (*innerNode, error) {
	d := n.delta()
	switch {
	case d > 1:
		left := n.left.(*innerNode)
		if left.delta() >= 0 {
			newRoot, err := rotateRight(h, n)
			if err != nil {
				return nil, err
			}
			logRotation(logger, "LL", d, newRoot)
			return newRoot, nil
		}
		// Left-Right: rotate left at the left child first.
		newLeft, err := rotateLeft(h, left)
		if err != nil {
			return nil, err
		}
		pivoted, err := rehash(h, newLeft, n.right, n.search)
		if err != nil {
			return nil, err
		}
		newRoot, err := rotateRight(h, pivoted)
		if err != nil {
			return nil, err
		}
		logRotation(logger, "LR", d, newRoot)
		return newRoot, nil
	case d < -1:
		right := n.right.(*innerNode)
		if right.delta() <= 0 {
			newRoot, err := rotateLeft(h, n)
			if err != nil {
				return nil, err
			}
			logRotation(logger, "RR", d, newRoot)
			return newRoot, nil
		}
		// Right-Left: rotate right at the right child first.
		newRight, err := rotateRight(h, right)
		if err != nil {
			return nil, err
		}
		pivoted, err := rehash(h, n.left, newRight, n.search)
		if err != nil {
			return nil, err
		}
		newRoot, err := rotateLeft(h, pivoted)
		if err != nil {
			return nil, err
		}
		logRotation(logger, "RL", d, newRoot)
		return newRoot, nil
	default:
		return n, nil
	}
}

func logRotation(logger debugLogger, kind string, delta int, newRoot *innerNode) {
	logger.Debug("rebalanced", telemetry.Component("avl"), telemetry.Rotation(kind), telemetry.Delta(delta), telemetry.KeyHash(newRoot.keyHash()))
}
