package mbst

import "bytes"

// DiffIter calls f for every key whose presence or value differs between
// old and the receiver, in ascending key order. added and removed are
// never both false; they're both true for a key whose value changed.
// DiffIter stops early if f returns false or an error.
//
// Unlike a Merkle Search Tree, where identical content always produces an
// identical shape (and therefore an identical hash), this tree's shape
// depends on insertion history, so two trees holding the same keys can have
// different root hashes (spec.md §8, P8). DiffIter only gets to skip the
// comparison altogether when the two root hashes already match — at that
// point the sets are provably identical (up to hash collision) without
// looking at a single leaf — otherwise it falls back to a full ascending
// merge of both trees' leaves, which is grounded on mast.DiffIter's
// early-exit callback shape rather than its subtree-skipping algorithm.
func (t *Tree) DiffIter(
	old *Tree,
	f func(added, removed bool, key []byte, newValue, oldValue interface{}) (bool, error),
) error {
	newHash, newOK := t.RootHash()
	oldHash, oldOK := old.RootHash()
	if newOK && oldOK && newHash == oldHash {
		return nil
	}

	var oldEntries, newEntries []leafEntry
	if err := old.Iter(func(k []byte, v interface{}) (bool, error) {
		oldEntries = append(oldEntries, leafEntry{k, v})
		return true, nil
	}); err != nil {
		return err
	}
	if err := t.Iter(func(k []byte, v interface{}) (bool, error) {
		newEntries = append(newEntries, leafEntry{k, v})
		return true, nil
	}); err != nil {
		return err
	}

	i, j := 0, 0
	for i < len(oldEntries) || j < len(newEntries) {
		switch {
		case j >= len(newEntries):
			keepGoing, err := f(false, true, oldEntries[i].key, nil, oldEntries[i].value)
			if err != nil || !keepGoing {
				return err
			}
			i++
		case i >= len(oldEntries):
			keepGoing, err := f(true, false, newEntries[j].key, newEntries[j].value, nil)
			if err != nil || !keepGoing {
				return err
			}
			j++
		default:
			cmp := bytes.Compare(oldEntries[i].key, newEntries[j].key)
			switch {
			case cmp < 0:
				keepGoing, err := f(false, true, oldEntries[i].key, nil, oldEntries[i].value)
				if err != nil || !keepGoing {
					return err
				}
				i++
			case cmp > 0:
				keepGoing, err := f(true, false, newEntries[j].key, newEntries[j].value, nil)
				if err != nil || !keepGoing {
					return err
				}
				j++
			default:
				if oldEntries[i].value != newEntries[j].value {
					keepGoing, err := f(true, true, oldEntries[i].key, newEntries[j].value, oldEntries[i].value)
					if err != nil || !keepGoing {
						return err
					}
				}
				i++
				j++
			}
		}
	}
	return nil
}

type leafEntry struct {
	key   []byte
	value interface{}
}
