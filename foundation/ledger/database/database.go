// Package database maintains the in memory tables for the simulation: the
// participant registry, the pending transaction pool, and the block chain.
// There is no persistence, a restart begins a fresh simulation.
package database

import (
	"fmt"
	"sync"

	"github.com/chainlab/classroom/foundation/ledger/genesis"
)

// Stats represents the aggregate counters kept for the simulation. The
// values are derivable from the tables and maintained as a cache.
type Stats struct {
	OnlineUsers       int    `json:"online_users"`
	OnlineMiners      int    `json:"online_miners"`
	PendingTrans      int    `json:"pending_trans"`
	TotalTrans        uint64 `json:"total_trans"`
	TotalBlocksMined  uint64 `json:"total_blocks_mined"`
	TotalParticipants int    `json:"total_participants"`
}

// Database manages the tables for participants, pending transactions, and
// blocks. The state layer serializes all mutations; the internal mutex only
// protects the read accessors used by snapshots.
type Database struct {
	mu sync.RWMutex

	genesis      genesis.Genesis
	participants map[string]Participant
	pool         []Tx
	chain        []Block
	totalTrans   uint64
	totalBlocks  uint64
}

// New constructs the database and seeds the chain with the genesis block.
func New(genesis genesis.Genesis) *Database {
	db := Database{
		genesis:      genesis,
		participants: make(map[string]Participant),
		chain:        []Block{newGenesisBlock()},
	}

	return &db
}

// =============================================================================
// Participant registry

// AddParticipant creates a participant for the session and returns it.
func (db *Database) AddParticipant(sessionID string, nickname string, role Role) Participant {
	db.mu.Lock()
	defer db.mu.Unlock()

	participant := newParticipant(sessionID, nickname, role, db.genesis.StartingBalance)
	db.participants[sessionID] = participant

	return copyParticipant(participant)
}

// Participant returns the participant for the specified session.
func (db *Database) Participant(sessionID string) (Participant, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	participant, exists := db.participants[sessionID]
	if !exists {
		return Participant{}, false
	}

	return copyParticipant(participant), true
}

// OnlineParticipantByNickname resolves a nickname against the online
// participants only. Offline participants keep their nickname in history but
// can't receive transactions.
func (db *Database) OnlineParticipantByNickname(nickname string) (Participant, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, participant := range db.participants {
		if participant.Online && participant.Nickname == nickname {
			return copyParticipant(participant), true
		}
	}

	return Participant{}, false
}

// SetOffline flips the online flag for the session. The participant record
// is kept so nicknames and stats stay visible.
func (db *Database) SetOffline(sessionID string) (Participant, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()

	participant, exists := db.participants[sessionID]
	if !exists {
		return Participant{}, false
	}

	participant.Online = false
	db.participants[sessionID] = participant

	return copyParticipant(participant), true
}

// OnlineMiners returns a snapshot of the miners currently online.
func (db *Database) OnlineMiners() []Participant {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var miners []Participant
	for _, participant := range db.participants {
		if participant.Online && participant.Role == RoleMiner {
			miners = append(miners, copyParticipant(participant))
		}
	}

	return miners
}

// CopyParticipants returns a copy of the full participant registry,
// including offline participants.
func (db *Database) CopyParticipants() []Participant {
	db.mu.RLock()
	defer db.mu.RUnlock()

	participants := make([]Participant, 0, len(db.participants))
	for _, participant := range db.participants {
		participants = append(participants, copyParticipant(participant))
	}

	return participants
}

// =============================================================================
// Balances and rewards

// DebitUser removes amount from the user's balance.
func (db *Database) DebitUser(sessionID string, amount float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	participant, exists := db.participants[sessionID]
	if !exists || participant.User == nil {
		return fmt.Errorf("session %q is not a user", sessionID)
	}
	if participant.User.Balance < amount {
		return fmt.Errorf("balance %v can't cover %v", participant.User.Balance, amount)
	}

	participant.User.Balance -= amount

	return nil
}

// CreditUser adds amount to the user's balance. The credit applies even when
// the user is offline, balances survive disconnects.
func (db *Database) CreditUser(sessionID string, amount float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	participant, exists := db.participants[sessionID]
	if !exists || participant.User == nil {
		return fmt.Errorf("session %q is not a user", sessionID)
	}

	participant.User.Balance += amount

	return nil
}

// ApplyMiningReward credits the miner with the fees of a mined block and
// bumps the mined block counters.
func (db *Database) ApplyMiningReward(sessionID string, fees float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	participant, exists := db.participants[sessionID]
	if !exists || participant.Miner == nil {
		return fmt.Errorf("session %q is not a miner", sessionID)
	}

	participant.Miner.MiningRewards += fees
	participant.Miner.BlocksMined++
	db.totalBlocks++

	return nil
}

// =============================================================================
// Pending pool

// AppendTx adds a transaction to the back of the pending pool and bumps the
// transaction counter.
func (db *Database) AppendTx(tx Tx) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.pool = append(db.pool, tx)
	db.totalTrans++
}

// TakeTxs removes and returns up to howMany transactions from the front of
// the pool in arrival order.
func (db *Database) TakeTxs(howMany int) []Tx {
	db.mu.Lock()
	defer db.mu.Unlock()

	if howMany > len(db.pool) {
		howMany = len(db.pool)
	}

	taken := make([]Tx, howMany)
	copy(taken, db.pool[:howMany])
	db.pool = append([]Tx{}, db.pool[howMany:]...)

	return taken
}

// PoolCount returns the current number of pending transactions.
func (db *Database) PoolCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.pool)
}

// CopyPool returns a copy of the pending pool in arrival order.
func (db *Database) CopyPool() []Tx {
	db.mu.RLock()
	defer db.mu.RUnlock()

	pool := make([]Tx, len(db.pool))
	copy(pool, db.pool)

	return pool
}

// =============================================================================
// Chain

// AppendBlock adds a block to the end of the chain.
func (db *Database) AppendBlock(block Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.chain = append(db.chain, block)
}

// LatestBlock returns the block at the tail of the chain.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.chain[len(db.chain)-1]
}

// CopyChain returns a copy of the chain from the genesis block forward.
func (db *Database) CopyChain() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	chain := make([]Block, len(db.chain))
	copy(chain, db.chain)

	return chain
}

// =============================================================================
// Stats

// Stats recomputes the derived counters from the tables.
func (db *Database) Stats() Stats {
	db.mu.RLock()
	defer db.mu.RUnlock()

	stats := Stats{
		PendingTrans:      len(db.pool),
		TotalTrans:        db.totalTrans,
		TotalBlocksMined:  db.totalBlocks,
		TotalParticipants: len(db.participants),
	}

	for _, participant := range db.participants {
		if !participant.Online {
			continue
		}
		switch participant.Role {
		case RoleUser:
			stats.OnlineUsers++
		case RoleMiner:
			stats.OnlineMiners++
		}
	}

	return stats
}

// =============================================================================

// copyParticipant clones a participant so callers can't reach into the
// role state owned by the table.
func copyParticipant(participant Participant) Participant {
	if participant.User != nil {
		user := *participant.User
		participant.User = &user
	}
	if participant.Miner != nil {
		miner := *participant.Miner
		participant.Miner = &miner
	}

	return participant
}
