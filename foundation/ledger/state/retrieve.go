package state

import (
	"github.com/chainlab/classroom/foundation/ledger/database"
	"github.com/chainlab/classroom/foundation/ledger/genesis"
)

// RetrieveGenesis returns a copy of the simulation parameters.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveParticipants returns a copy of the participant registry.
func (s *State) RetrieveParticipants() []database.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.CopyParticipants()
}

// RetrievePool returns a copy of the pending pool in arrival order.
func (s *State) RetrievePool() []database.Tx {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.CopyPool()
}

// RetrieveChain returns a copy of the chain from the genesis block forward.
func (s *State) RetrieveChain() []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.CopyChain()
}

// RetrieveLatestBlock returns a copy of the current chain tail.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.LatestBlock()
}

// RetrieveStats returns the aggregate counters.
func (s *State) RetrieveStats() database.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Stats()
}

// RetrieveRound returns the active mining round if one exists.
func (s *State) RetrieveRound() (Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.round == nil {
		return Round{}, false
	}

	return *s.round, true
}

// RetrieveSnapshot returns the full snapshot broadcast with every event.
func (s *State) RetrieveSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}
