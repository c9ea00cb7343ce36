package state

import "errors"

// Set of errors for failed command validation. None of these mutate ledger
// state and all of them are reported only to the originating session.
var (
	ErrNicknameTaken     = errors.New("nickname already in use by an online participant")
	ErrInvalidRole       = errors.New("role must be user or miner")
	ErrNotUser           = errors.New("only an online user can submit transactions")
	ErrInvalidAmount     = errors.New("amount and fee must not be negative")
	ErrInsufficientFunds = errors.New("amount plus fee exceeds the available balance")
	ErrUnknownRecipient  = errors.New("no online participant has that nickname")
	ErrPoolFull          = errors.New("the pending transaction pool is full")
	ErrNotMiner          = errors.New("only a miner can mine blocks")
	ErrNotYourTurn       = errors.New("another miner holds the current mining turn")
	ErrEmptyPool         = errors.New("no pending transactions to mine")
)
