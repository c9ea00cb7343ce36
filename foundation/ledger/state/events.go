package state

import (
	"time"

	"github.com/chainlab/classroom/foundation/ledger/database"
)

// Snapshot carries the full current state of the simulation. Clients are
// assumed stateless and re-sync from the snapshot on every broadcast.
type Snapshot struct {
	Participants []database.Participant `json:"participants"`
	Pool         []database.Tx          `json:"pool"`
	LatestBlock  database.Block         `json:"latest_block"`
	Stats        database.Stats         `json:"stats"`
}

// ParticipantJoined is broadcast when a session joins the simulation.
type ParticipantJoined struct {
	Participant database.Participant `json:"participant"`
	Snapshot    Snapshot             `json:"snapshot"`
}

// ParticipantLeft is broadcast when a joined session disconnects.
type ParticipantLeft struct {
	Participant database.Participant `json:"participant"`
	Snapshot    Snapshot             `json:"snapshot"`
}

// NewTransaction is broadcast when a transaction is admitted to the pool.
type NewTransaction struct {
	Tx       database.Tx `json:"tx"`
	Snapshot Snapshot    `json:"snapshot"`
}

// BlockMined is broadcast when a block is committed to the chain.
type BlockMined struct {
	Block    database.Block `json:"block"`
	Snapshot Snapshot       `json:"snapshot"`
}

// MinerSelected is broadcast when a mining round is assigned.
type MinerSelected struct {
	Miner        string    `json:"miner"`
	RoundID      string    `json:"round_id"`
	BlockNumber  uint64    `json:"block_number"`
	PendingTrans int       `json:"pending_trans"`
	Deadline     time.Time `json:"deadline"`
	Snapshot     Snapshot  `json:"snapshot"`
}
