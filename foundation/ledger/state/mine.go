package state

import "github.com/chainlab/classroom/foundation/ledger/database"

// MineBlock commits the next block on behalf of the session's miner. The
// caller must hold the active mining turn. Up to TransPerBlock transactions
// are taken from the front of the pool in arrival order, committed through
// a merkle root, and linked to the chain tail. Each recipient is credited
// its amount, completing the escrow started at submission, and the miner
// collects the included fees as its reward.
func (s *State) MineBlock(sessionID string) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	miner, exists := s.db.Participant(sessionID)
	if !exists || miner.Role != database.RoleMiner {
		return database.Block{}, ErrNotMiner
	}

	if s.round == nil || s.round.Miner != miner.Nickname {
		return database.Block{}, ErrNotYourTurn
	}

	if s.db.PoolCount() == 0 {
		return database.Block{}, ErrEmptyPool
	}

	trans := s.db.TakeTxs(s.genesis.TransPerBlock)
	block := database.NewBlock(s.db.LatestBlock(), miner.Nickname, trans)
	s.db.AppendBlock(block)

	// Complete the escrow: the recipients were resolved at submission time,
	// so the credit lands on the bound session even if the nickname has
	// been reused since. An apply failure is logged and never rolls back
	// the block.
	var fees float64
	for _, tx := range trans {
		if err := s.db.CreditUser(tx.ToSession, tx.Amount); err != nil {
			s.evHandler("state: mine: tx[%s]: WARNING: credit recipient: %s", tx.ID, err)
		}
		fees += tx.Fee
	}

	if err := s.db.ApplyMiningReward(sessionID, fees); err != nil {
		s.evHandler("state: mine: WARNING: apply reward: %s", err)
	}

	s.round = nil

	s.evHandler("state: mine: block[%d] miner[%s] trans[%d] fees[%v]", block.Header.Number, miner.Nickname, len(trans), fees)
	s.broadcast("block-mined", BlockMined{
		Block:    block,
		Snapshot: s.snapshot(),
	})

	// When transactions remain pending, ask for a new round after a short
	// delay so another miner gets a turn.
	if s.db.PoolCount() > 0 && s.Worker != nil {
		s.Worker.SignalRetryRound()
	}

	return block, nil
}
