package database

import "time"

// Role determines how a participant takes part in the simulation.
type Role string

// Set of roles a participant can join with.
const (
	RoleUser  Role = "user"
	RoleMiner Role = "miner"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleMiner
}

// =============================================================================

// UserState holds the state that only exists for user participants.
type UserState struct {
	Balance float64 `json:"balance"`
}

// MinerState holds the state that only exists for miner participants.
type MinerState struct {
	MiningRewards float64 `json:"mining_rewards"`
	BlocksMined   int     `json:"blocks_mined"`
}

// Participant represents a session that has joined the simulation. A
// participant is never deleted, a disconnect only flips the online flag so
// nicknames and stats stay visible in the history. Exactly one of User or
// Miner is set, depending on the role.
type Participant struct {
	SessionID string      `json:"session_id"`
	Nickname  string      `json:"nickname"`
	Role      Role        `json:"role"`
	Online    bool        `json:"online"`
	JoinedAt  time.Time   `json:"joined_at"`
	User      *UserState  `json:"user,omitempty"`
	Miner     *MinerState `json:"miner,omitempty"`
}

// newParticipant constructs a participant for the specified role.
func newParticipant(sessionID string, nickname string, role Role, startingBalance float64) Participant {
	participant := Participant{
		SessionID: sessionID,
		Nickname:  nickname,
		Role:      role,
		Online:    true,
		JoinedAt:  time.Now().UTC(),
	}

	switch role {
	case RoleUser:
		participant.User = &UserState{Balance: startingBalance}
	case RoleMiner:
		participant.Miner = &MinerState{}
	}

	return participant
}
