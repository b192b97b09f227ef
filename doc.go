/*
Package mbst provides an immutable, self-balancing map implementation of a
Merkle binary search tree (a "Merkle AVL tree"). Every node carries a
cryptographic hash over its subtree, so the hash of the root is a succinct
commitment to the entire key/value set: two trees with equal root hashes are
guaranteed, up to hash collision, to hold the same keys.

Uses

- Succinct commitments to a versioned key/value set, for light clients that
can't hold the whole set

- Logarithmic audit proofs: a caller holding only a root hash can verify
that a key is a member of the committed set by replaying a short list of
sibling hashes (values are not hashed, so a proof says nothing about them)

- Copy-on-write alternative to a builtin map, where old versions remain
valid, consistent snapshots after every mutation

What is a Merkle AVL tree

An ordinary AVL tree keeps itself balanced by tracking subtree heights and
rotating on insert. This one adds a cryptographic hash to every node: a
leaf's hash commits to its key, an inner node's hash is the hash of its two
children's hashes concatenated. Because rotations move subtrees, the
balancing step and the hash-recomputation step are fused: every rotation
helper rehashes the nodes it touches before returning, so a single pass up
the tree both restores the AVL invariant and restores Merkle coherence.

Unlike a Merkle Search Tree, node placement here isn't derived from a
deterministic layer function — it's the ordinary AVL discipline, so two
trees built by inserting the same keys in a different order aren't
guaranteed to end up the same shape, or have the same root hash. What they
are guaranteed to have is the same set of keys, and a valid audit proof for
each of those keys against their own root hash.

Concurrency

A *Tree is a value: every mutating operation returns a new *Tree with the
mutated spine rebuilt and every unrelated subtree shared by reference with
the original. Callers may keep an old *Tree around after calling Insert or
Delete on it; it remains a consistent, valid snapshot. Concurrent operations
against two different *Tree values never interfere; concurrent operations
against the *same* *Tree value need the caller's own synchronization, same
as a builtin map.

Inspiration

The immutable, persistent-spine style here, and the LRU hash cache and
property-based test suite, follow github.com/jrhy/mast's lead for a
different underlying structure (an AVL tree instead of a
layer-deterministic search tree).
*/
package mbst
