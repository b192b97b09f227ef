package mbst

import (
	"bytes"
	"fmt"

	"github.com/jrhy/mbst/internal/telemetry"
)

// Side records which side of an inner node an audit-proof step's sibling
// hash came from.
type Side int

const (
	// SiblingOnLeft means the sibling hash folds in on the left: acc = H(sibling ‖ acc).
	SiblingOnLeft Side = iota
	// SiblingOnRight means the sibling hash folds in on the right: acc = H(acc ‖ sibling).
	SiblingOnRight
)

func (s Side) String() string {
	if s == SiblingOnLeft {
		return "sibling_on_left"
	}
	return "sibling_on_right"
}

// ProofStep is one entry of an audit proof's path: a sibling's hash and
// which side it sat on.
type ProofStep struct {
	SiblingHash string
	Side        Side
}

// AuditProof is the output of Tree.Audit: everything needed to verify that
// Key is a member of the tree that produced a given root hash, without
// holding the tree itself.
//
// Path is nil for the distinguished "unverifiable" case (the tree was
// empty when the proof was generated — Verify always returns false for
// this). A non-nil, zero-length Path means the tree held exactly this one
// key; Verify succeeds iff the root hash equals H(Key).
type AuditProof struct {
	Key  []byte
	Path []ProofStep
}

// Audit generates a membership proof for key. The path is collected during
// descent (root to leaf) and stored leaf-first, the order Verify expects to
// fold in (spec.md §4.7). On an empty tree it returns a proof with a nil
// Path and no error. Otherwise it returns ErrKeyNotFound if key isn't in
// the tree — an audit proof for an absent key could never verify true, so
// there is nothing useful to hand back.
func (t *Tree) Audit(key []byte) (*AuditProof, error) {
	if t.root == nil {
		return &AuditProof{Key: append([]byte{}, key...)}, nil
	}
	var descentOrder []ProofStep
	n := t.root
	for {
		switch cur := n.(type) {
		case *leafNode:
			if !bytes.Equal(cur.key, key) {
				t.logger.Debug("audit failed", telemetry.Component("audit"), telemetry.Key(key), telemetry.Error(ErrKeyNotFound))
				return nil, newKeyNotFoundError(key)
			}
			path := make([]ProofStep, len(descentOrder))
			for i, step := range descentOrder {
				path[len(descentOrder)-1-i] = step
			}
			t.logger.Debug("audit proof generated", telemetry.Component("audit"), telemetry.Key(key), telemetry.PathLen(len(path)))
			return &AuditProof{Key: append([]byte{}, key...), Path: path}, nil
		case *innerNode:
			if routesLeft(key, cur.search) {
				descentOrder = append(descentOrder, ProofStep{SiblingHash: cur.right.keyHash(), Side: SiblingOnRight})
				n = cur.left
			} else {
				descentOrder = append(descentOrder, ProofStep{SiblingHash: cur.left.keyHash(), Side: SiblingOnLeft})
				n = cur.right
			}
		default:
			return nil, fmt.Errorf("mbst: unknown node type %T", cur)
		}
	}
}

// VerifyProof verifies proof against this tree's current root hash, using
// this tree's configured hash function. It's a convenience over the
// standalone Verify/VerifyWithHashFunc for the common case of checking a
// proof against the tree that (might have) produced it.
func (t *Tree) VerifyProof(proof *AuditProof) (bool, error) {
	rootHash, ok := t.RootHash()
	if !ok {
		return false, nil
	}
	return verifyProof(t.hasher, proof, rootHash)
}

// Verify checks proof against rootHash using one of the built-in hash
// algorithms, with no tree required — the point of an audit proof is that
// a verifier only needs the key, the proof, the root hash, and the hash
// algorithm (spec.md §4.7).
func Verify(algo HashAlgorithm, proof *AuditProof, rootHash string) (bool, error) {
	fn, err := builtinHashFunc(algo)
	if err != nil {
		return false, err
	}
	return VerifyWithHashFunc(fn, proof, rootHash)
}

// VerifyWithHashFunc is Verify for a user-supplied HashFunc instead of a
// built-in algorithm.
func VerifyWithHashFunc(fn HashFunc, proof *AuditProof, rootHash string) (bool, error) {
	h, err := newHasher(fn, 1)
	if err != nil {
		return false, err
	}
	return verifyProof(h, proof, rootHash)
}

// verifyProof folds proof.Path leaf-first starting from H(proof.Key),
// exactly mirroring spec.md §4.7's fold direction per side.
func verifyProof(h *hasher, proof *AuditProof, rootHash string) (bool, error) {
	if proof.Path == nil {
		return false, nil
	}
	acc, err := h.hashKey(proof.Key)
	if err != nil {
		return false, err
	}
	for _, step := range proof.Path {
		switch step.Side {
		case SiblingOnRight:
			acc, err = h.concat(acc, step.SiblingHash)
		case SiblingOnLeft:
			acc, err = h.concat(step.SiblingHash, acc)
		default:
			return false, fmt.Errorf("mbst: unknown proof side %v", step.Side)
		}
		if err != nil {
			return false, err
		}
	}
	return acc == rootHash, nil
}
