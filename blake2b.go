package mbst

import "github.com/minio/blake2b-simd"

// blake2b256Sum is split into its own tiny file so hash.go's import list
// stays readable; it exists purely to give Blake2b256 something to call.
func blake2b256Sum(b []byte) [32]byte {
	return blake2b.Sum256(b)
}
