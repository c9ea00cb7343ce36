// Package hashing provides the digest functions used to identify
// transactions and blocks in the chain.
package hashing

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ZeroHash represents a hash code of zeros. It is used as the previous hash
// for the genesis block and as the merkle root of an empty transaction set.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Hash returns the hex encoded sha256 digest of the specified string.
func Hash(data string) string {
	hash := sha256.Sum256([]byte(data))
	return hexutil.Encode(hash[:])
}

// TxHash returns the content hash for a transaction. The encoding uses a
// fixed field order and fixed numeric formatting so the digest is stable
// across platforms.
func TxHash(from string, to string, amount float64, fee float64, timeStamp int64) string {
	fields := []string{
		from,
		to,
		formatAmount(amount),
		formatAmount(fee),
		strconv.FormatInt(timeStamp, 10),
	}

	return Hash(strings.Join(fields, "|"))
}

// BlockHash returns the hash for a block header. Only the header fields are
// part of the digest; the transactions are committed through the merkle root.
func BlockHash(prevBlockHash string, transRoot string, timeStamp int64, number uint64) string {
	fields := []string{
		prevBlockHash,
		transRoot,
		strconv.FormatInt(timeStamp, 10),
		strconv.FormatUint(number, 10),
	}

	return Hash(strings.Join(fields, "|"))
}

// formatAmount pins the textual representation of an amount so hashing the
// same value always produces the same digest.
func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
