package mbst

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/ripemd160"
)

// HashAlgorithm names one of the built-in digest functions a Hasher can use.
// See HashFunc for supplying a custom one instead.
type HashAlgorithm string

// Built-in hash algorithms. SHA256 is the default.
const (
	MD5          HashAlgorithm = "md5"
	RIPEMD160    HashAlgorithm = "ripemd160"
	SHA1         HashAlgorithm = "sha"
	SHA224       HashAlgorithm = "sha224"
	SHA256       HashAlgorithm = "sha256"
	SHA384       HashAlgorithm = "sha384"
	SHA512       HashAlgorithm = "sha512"
	DoubleSHA256 HashAlgorithm = "sha256_of_sha256"
)

// HashFunc is a deterministic, pure digest function: given a byte string it
// returns a lowercase hex digest. Supplying one via WithHashFunc overrides
// WithHashAlgorithm. HashFunc must be safe to call concurrently if the Tree
// built from it is shared (read-only) across goroutines.
type HashFunc func([]byte) (string, error)

func builtinHashFunc(algo HashAlgorithm) (HashFunc, error) {
	switch algo {
	case "", SHA256:
		return stdlibHashFunc(sha256.New), nil
	case MD5:
		return stdlibHashFunc(md5.New), nil
	case SHA1:
		return stdlibHashFunc(sha1.New), nil
	case SHA224:
		return stdlibHashFunc(sha256.New224), nil
	case SHA384:
		return stdlibHashFunc(sha512.New384), nil
	case SHA512:
		return stdlibHashFunc(sha512.New), nil
	case RIPEMD160:
		return stdlibHashFunc(ripemd160.New), nil
	case DoubleSHA256:
		once := stdlibHashFunc(sha256.New)
		return func(b []byte) (string, error) {
			first, err := once(b)
			if err != nil {
				return "", err
			}
			firstRaw, err := hex.DecodeString(first)
			if err != nil {
				return "", err
			}
			return once(firstRaw)
		}, nil
	default:
		return nil, fmt.Errorf("mbst: unknown hash algorithm %q", algo)
	}
}

func stdlibHashFunc(newHash func() hash.Hash) HashFunc {
	return func(b []byte) (string, error) {
		h := newHash()
		// hash.Hash.Write never returns an error per its documented contract.
		_, _ = h.Write(b)
		return hex.EncodeToString(h.Sum(nil)), nil
	}
}

// Blake2b256 is a ready-made HashFunc over blake2b-simd, provided as a
// worked example of the user-supplied hash_function override: it isn't one
// of the named built-in algorithms, but WithHashFunc accepts any HashFunc.
func Blake2b256() HashFunc {
	return func(b []byte) (string, error) {
		sum := blake2b256Sum(b)
		return hex.EncodeToString(sum[:]), nil
	}
}

// hasher wraps the configured HashFunc with validation and an LRU cache of
// recent digests, so a slow or blocking user hash function (spec: "if the
// hasher is user-supplied and blocks, the tree blocks") isn't re-invoked for
// a key whose digest is still in the cache (e.g. delete followed by
// reinsert, or generating several audit proofs for the same key).
type hasher struct {
	fn    HashFunc
	cache *lru.Cache
}

func newHasher(fn HashFunc, cacheSize int) (*hasher, error) {
	if fn == nil {
		fn = stdlibHashFunc(sha256.New)
	}
	if _, err := fn([]byte("mbst-hash-function-self-check")); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHashFunction, err)
	}
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("mbst: building hash cache: %w", err)
	}
	return &hasher{fn: fn, cache: cache}, nil
}

// hashKey computes H(key), the leaf's key_hash.
func (h *hasher) hashKey(key []byte) (string, error) {
	cacheKey := string(key)
	if v, ok := h.cache.Get(cacheKey); ok {
		return v.(string), nil
	}
	digest, err := h.fn(key)
	if err != nil {
		return "", fmt.Errorf("mbst: hashing key: %w", err)
	}
	if digest == "" {
		return "", fmt.Errorf("%w: returned empty digest", ErrInvalidHashFunction)
	}
	h.cache.Add(cacheKey, digest)
	return digest, nil
}

// concat computes H(a ‖ b) where ‖ is concatenation of the two digest
// strings' hex encodings, per the chosen interoperability invariant: this
// must be string concatenation, not raw-byte concatenation, or every root
// hash becomes non-conforming.
func (h *hasher) concat(a, b string) (string, error) {
	digest, err := h.fn([]byte(a + b))
	if err != nil {
		return "", fmt.Errorf("mbst: hashing concatenation: %w", err)
	}
	return digest, nil
}
