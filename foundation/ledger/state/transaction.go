package state

import "github.com/chainlab/classroom/foundation/ledger/database"

// SubmitTransaction validates a transfer from the session's user and admits
// it to the pending pool. The sender is debited amount plus fee immediately:
// the funds are escrowed from submission until the transaction is mined.
// The recipient is credited only at mining time.
func (s *State) SubmitTransaction(sessionID string, to string, amount float64, fee float64) (database.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, exists := s.db.Participant(sessionID)
	if !exists || !sender.Online || sender.Role != database.RoleUser {
		return database.Tx{}, ErrNotUser
	}

	if amount < 0 || fee < 0 {
		return database.Tx{}, ErrInvalidAmount
	}

	if amount+fee > sender.User.Balance {
		return database.Tx{}, ErrInsufficientFunds
	}

	// Only users hold a balance, so a transfer can never name a miner as
	// its recipient: the escrowed amount would have nowhere to land at
	// mining time.
	recipient, exists := s.db.OnlineParticipantByNickname(to)
	if !exists || recipient.Role != database.RoleUser {
		return database.Tx{}, ErrUnknownRecipient
	}

	if s.db.PoolCount() >= s.genesis.PoolMaxSize {
		return database.Tx{}, ErrPoolFull
	}

	tx := database.NewTx(sender, recipient, amount, fee)

	if err := s.db.DebitUser(sessionID, amount+fee); err != nil {
		return database.Tx{}, err
	}
	s.db.AppendTx(tx)

	s.evHandler("state: submit: tx[%s] from[%s] to[%s] amount[%v] fee[%v]", tx.ID, tx.From, tx.To, amount, fee)
	s.broadcast("new-transaction", NewTransaction{
		Tx:       tx,
		Snapshot: s.snapshot(),
	})

	// Once the pool holds enough transactions, ask for a mining round to be
	// started. Starting is idempotent, the signal is a no-op while a round
	// is active.
	if s.db.PoolCount() >= s.genesis.MineTrigger {
		s.signalStartRound()
	}

	return tx, nil
}
