package state

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// StartMiningRound assigns the next mining turn. It is safe to call from
// any trigger path: the call is a no-op while a round is active, when the
// pool is empty, or when no miner is online. Selection is a uniform random
// pick over a fresh snapshot of the online miners, so online changes
// between rounds are always observed.
func (s *State) StartMiningRound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.round != nil {
		return false
	}

	if s.db.PoolCount() == 0 {
		return false
	}

	miners := s.db.OnlineMiners()
	if len(miners) == 0 {
		s.evHandler("state: round: no miners available")
		return false
	}

	miner := miners[rand.IntN(len(miners))]

	round := Round{
		ID:          uuid.NewString(),
		Miner:       miner.Nickname,
		BlockNumber: s.db.LatestBlock().Header.Number + 1,
		Deadline:    time.Now().UTC().Add(s.genesis.MineDeadline),
	}
	s.round = &round

	s.evHandler("state: round: assigned: miner[%s] block[%d] deadline[%s]", round.Miner, round.BlockNumber, round.Deadline.Format(time.RFC3339))
	s.broadcast("miner-selected", MinerSelected{
		Miner:        round.Miner,
		RoundID:      round.ID,
		BlockNumber:  round.BlockNumber,
		PendingTrans: s.db.PoolCount(),
		Deadline:     round.Deadline,
		Snapshot:     s.snapshot(),
	})

	if s.Worker != nil {
		s.Worker.SignalRoundTimeout(round.ID, round.Deadline)
	}

	return true
}

// ExpireMiningRound clears the assignment when the round's deadline elapsed
// without a commit. The round id guards against stale timers: a timer that
// fires after its round already ended, or after a new round began, must not
// apply its effect. The report value tells the caller whether a new round
// should be attempted. The expiring miner is not excluded from reselection.
func (s *State) ExpireMiningRound(roundID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.round == nil || s.round.ID != roundID {
		return false
	}

	s.evHandler("state: round: expired: miner[%s] block[%d]", s.round.Miner, s.round.BlockNumber)
	s.round = nil

	return s.db.PoolCount() > 0
}

// signalStartRound asks the worker for a round. Callers must hold the
// state mutex.
func (s *State) signalStartRound() {
	if s.Worker != nil {
		s.Worker.SignalStartRound()
	}
}
