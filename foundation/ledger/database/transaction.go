package database

import (
	"time"

	"github.com/chainlab/classroom/foundation/ledger/hashing"
	"github.com/google/uuid"
)

// Tx represents a token transfer between two participants. The from and to
// nicknames are resolved to sessions when the transaction is submitted, so a
// nickname that is reused later never retargets an existing transaction.
// A transaction is never mutated once its hash is assigned.
type Tx struct {
	ID        string  `json:"id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Fee       float64 `json:"fee"`
	TimeStamp int64   `json:"timestamp"`
	Hash      string  `json:"hash"`

	// Session bindings captured at submission time. These are the accounts
	// the escrow settles against, regardless of later nickname reuse.
	FromSession string `json:"-"`
	ToSession   string `json:"-"`
}

// NewTx constructs a transaction and assigns its content hash.
func NewTx(from Participant, to Participant, amount float64, fee float64) Tx {
	timeStamp := time.Now().UTC().UnixMilli()

	return Tx{
		ID:          uuid.NewString(),
		From:        from.Nickname,
		To:          to.Nickname,
		Amount:      amount,
		Fee:         fee,
		TimeStamp:   timeStamp,
		Hash:        hashing.TxHash(from.Nickname, to.Nickname, amount, fee, timeStamp),
		FromSession: from.SessionID,
		ToSession:   to.SessionID,
	}
}
