package database

import (
	"time"

	"github.com/chainlab/classroom/foundation/ledger/hashing"
	"github.com/chainlab/classroom/foundation/ledger/merkle"
)

// BlockHeader represents the information committed by the block hash.
type BlockHeader struct {
	Number        uint64 `json:"number"`
	PrevBlockHash string `json:"prev_block_hash"`
	TransRoot     string `json:"trans_root"`
	TimeStamp     int64  `json:"timestamp"`
	Miner         string `json:"miner"`
}

// Block represents a group of transactions mined together. The chain is
// append only: block N's PrevBlockHash always equals block N-1's hash.
type Block struct {
	Header BlockHeader `json:"header"`
	Trans  []Tx        `json:"trans"`
	Hash   string      `json:"hash"`
}

// NewBlock constructs the next block in the chain from the specified
// transactions. The merkle root commits the transaction hashes in the order
// they were taken from the pool.
func NewBlock(prevBlock Block, miner string, trans []Tx) Block {
	hashes := make([]string, len(trans))
	for i, tx := range trans {
		hashes[i] = tx.Hash
	}

	header := BlockHeader{
		Number:        prevBlock.Header.Number + 1,
		PrevBlockHash: prevBlock.Hash,
		TransRoot:     merkle.Root(hashes),
		TimeStamp:     time.Now().UTC().UnixMilli(),
		Miner:         miner,
	}

	return Block{
		Header: header,
		Trans:  trans,
		Hash:   hashing.BlockHash(header.PrevBlockHash, header.TransRoot, header.TimeStamp, header.Number),
	}
}

// newGenesisBlock constructs block zero. It has no transactions and no miner
// and hangs off the zero hash.
func newGenesisBlock() Block {
	header := BlockHeader{
		Number:        0,
		PrevBlockHash: hashing.ZeroHash,
		TransRoot:     hashing.ZeroHash,
		TimeStamp:     time.Now().UTC().UnixMilli(),
	}

	return Block{
		Header: header,
		Hash:   hashing.BlockHash(header.PrevBlockHash, header.TransRoot, header.TimeStamp, header.Number),
	}
}
