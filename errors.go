package mbst

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the tree's public operations. Callers should
// match these with errors.Is, not string comparison, since a *KeyError wraps
// ErrKeyNotFound or ErrDuplicateKey while adding the offending key.
var (
	// ErrKeyNotFound is returned by Lookup and Delete when the key isn't present.
	ErrKeyNotFound = errors.New("mbst: key not found")

	// ErrDuplicateKey is returned by NewFromPairs when the input contains the
	// same key twice; unlike Insert, bulk build never replaces a value in place.
	ErrDuplicateKey = errors.New("mbst: duplicate key")

	// ErrInvalidHashFunction is returned when a user-supplied hash function
	// doesn't behave like a digest function: it errors on ordinary input, or
	// returns an empty digest.
	ErrInvalidHashFunction = errors.New("mbst: invalid hash function")
)

// KeyError carries the key involved in an ErrKeyNotFound or ErrDuplicateKey
// failure.
type KeyError struct {
	Key []byte
	err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s: %x", e.err, e.Key)
}

func (e *KeyError) Unwrap() error {
	return e.err
}

func newKeyNotFoundError(key []byte) error {
	return &KeyError{Key: append([]byte{}, key...), err: ErrKeyNotFound}
}

func newDuplicateKeyError(key []byte) error {
	return &KeyError{Key: append([]byte{}, key...), err: ErrDuplicateKey}
}
