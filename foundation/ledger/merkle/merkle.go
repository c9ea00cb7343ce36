// Package merkle computes the merkle root committing a block to its ordered
// set of transaction hashes.
package merkle

import (
	"github.com/chainlab/classroom/foundation/ledger/hashing"
)

// Root reduces an ordered set of transaction hashes to a single root hash.
// Adjacent hashes are paired left to right and each pair is hashed together.
// When a level holds an odd number of hashes, the final hash is paired with
// itself. The pairing order is part of the commitment, so the input order
// matters.
func Root(hashes []string) string {
	switch len(hashes) {
	case 0:
		return hashing.ZeroHash
	case 1:
		return hashes[0]
	}

	level := make([]string, len(hashes))
	copy(level, hashes)

	for len(level) > 1 {
		var next []string

		for i := 0; i < len(level); i += 2 {
			left, right := i, i+1
			if right == len(level) {
				right = i
			}

			next = append(next, hashing.Hash(level[left]+level[right]))
		}

		level = next
	}

	return level[0]
}
