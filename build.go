package mbst

import (
	"bytes"
	"sort"

	"github.com/jrhy/mbst/internal/telemetry"
)

// Pair is one key/value entry for NewFromPairs.
type Pair struct {
	Key   []byte
	Value interface{}
}

// NewFromPairs builds a balanced tree from pairs in O(n log n) (dominated
// by the initial sort) with a single post-order hashing pass, rather than n
// sequential inserts. Unlike Insert, a repeated key is a structural error —
// bulk build assumes it's seeding a fresh dataset, not merging with
// whatever happened to already be there (spec.md §4.5, §9).
func NewFromPairs(pairs []Pair, opts ...Option) (*Tree, error) {
	t, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return t, nil
	}

	sorted := make([]Pair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key, sorted[j].Key) < 0
	})
	for i := 1; i < len(sorted); i++ {
		if bytes.Equal(sorted[i-1].Key, sorted[i].Key) {
			return nil, newDuplicateKeyError(sorted[i].Key)
		}
	}

	root, err := buildBalanced(t.hasher, sorted)
	if err != nil {
		return nil, err
	}
	t.root = root
	t.size = uint64(len(sorted))
	t.logger.Debug("bulk build complete", telemetry.Component("build"), telemetry.Size(t.size), telemetry.Height(root.height()))
	return t, nil
}

// buildBalanced recursively splits [0, len(pairs)) at its midpoint,
// building a perfectly balanced BST and hashing it bottom-up in the same
// post-order pass (spec.md §4.5).
func buildBalanced(h *hasher, pairs []Pair) (node, error) {
	if len(pairs) == 1 {
		return newLeaf(h, pairs[0].Key, pairs[0].Value)
	}
	mid := len(pairs) / 2
	left, err := buildBalanced(h, pairs[:mid])
	if err != nil {
		return nil, err
	}
	right, err := buildBalanced(h, pairs[mid:])
	if err != nil {
		return nil, err
	}
	return rehash(h, left, right, maxKey(left))
}
