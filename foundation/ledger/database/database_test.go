package database_test

import (
	"testing"

	"github.com/chainlab/classroom/foundation/ledger/database"
	"github.com/chainlab/classroom/foundation/ledger/genesis"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_ParticipantAccounting(t *testing.T) {
	db := database.New(genesis.Default())

	t.Log("Given the need to validate participant accounting.")
	{
		t.Logf("\tTest 0:\tWhen adding a user and a miner.")
		{
			alice := db.AddParticipant("sid-alice", "alice", database.RoleUser)
			if alice.User == nil || alice.User.Balance != 100 {
				t.Fatalf("\t%s\tTest 0:\tShould seed the user's balance: got %+v", failed, alice.User)
			}
			t.Logf("\t%s\tTest 0:\tShould seed the user's balance.", success)

			digger := db.AddParticipant("sid-miner", "digger", database.RoleMiner)
			if digger.Miner == nil || digger.Miner.MiningRewards != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould seed the miner's rewards: got %+v", failed, digger.Miner)
			}
			t.Logf("\t%s\tTest 0:\tShould seed the miner's rewards.", success)
		}

		t.Logf("\tTest 1:\tWhen debiting and crediting a user.")
		{
			if err := db.DebitUser("sid-alice", 40); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould debit the user: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould debit the user.", success)

			if err := db.CreditUser("sid-alice", 15); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould credit the user: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould credit the user.", success)

			alice, _ := db.Participant("sid-alice")
			if alice.User.Balance != 75 {
				t.Fatalf("\t%s\tTest 1:\tShould carry the running balance: got %v exp 75", failed, alice.User.Balance)
			}
			t.Logf("\t%s\tTest 1:\tShould carry the running balance.", success)
		}

		t.Logf("\tTest 2:\tWhen crediting an offline user.")
		{
			db.SetOffline("sid-alice")

			if err := db.CreditUser("sid-alice", 5); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould still apply the credit: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould still apply the credit.", success)

			alice, _ := db.Participant("sid-alice")
			if alice.User.Balance != 80 {
				t.Fatalf("\t%s\tTest 2:\tShould keep offline balances current: got %v", failed, alice.User.Balance)
			}
			t.Logf("\t%s\tTest 2:\tShould keep offline balances current.", success)
		}

		t.Logf("\tTest 3:\tWhen applying a mining reward.")
		{
			if err := db.ApplyMiningReward("sid-miner", 3); err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould apply the reward: %v", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould apply the reward.", success)

			digger, _ := db.Participant("sid-miner")
			if digger.Miner.MiningRewards != 3 || digger.Miner.BlocksMined != 1 {
				t.Fatalf("\t%s\tTest 3:\tShould track rewards and blocks mined: got %+v", failed, digger.Miner)
			}
			t.Logf("\t%s\tTest 3:\tShould track rewards and blocks mined.", success)
		}

		t.Logf("\tTest 4:\tWhen crediting the wrong role.")
		{
			if err := db.CreditUser("sid-miner", 5); err == nil {
				t.Fatalf("\t%s\tTest 4:\tShould refuse to credit a miner as a user.", failed)
			}
			t.Logf("\t%s\tTest 4:\tShould refuse to credit a miner as a user.", success)

			if err := db.ApplyMiningReward("sid-alice", 5); err == nil {
				t.Fatalf("\t%s\tTest 4:\tShould refuse to reward a user as a miner.", failed)
			}
			t.Logf("\t%s\tTest 4:\tShould refuse to reward a user as a miner.", success)
		}
	}
}

func Test_NicknameLookup(t *testing.T) {
	db := database.New(genesis.Default())

	db.AddParticipant("sid-1", "alice", database.RoleUser)
	db.SetOffline("sid-1")
	db.AddParticipant("sid-2", "alice", database.RoleUser)

	t.Log("Given the need to resolve nicknames among online participants.")
	{
		t.Logf("\tTest 0:\tWhen a nickname is shared with an offline session.")
		{
			found, exists := db.OnlineParticipantByNickname("alice")
			if !exists {
				t.Fatalf("\t%s\tTest 0:\tShould find the online holder.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould find the online holder.", success)

			if found.SessionID != "sid-2" {
				t.Fatalf("\t%s\tTest 0:\tShould resolve to the online session: got %s", failed, found.SessionID)
			}
			t.Logf("\t%s\tTest 0:\tShould resolve to the online session.", success)
		}

		t.Logf("\tTest 1:\tWhen every holder is offline.")
		{
			db.SetOffline("sid-2")

			if _, exists := db.OnlineParticipantByNickname("alice"); exists {
				t.Fatalf("\t%s\tTest 1:\tShould not resolve an offline nickname.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not resolve an offline nickname.", success)
		}
	}
}

func Test_PoolOrdering(t *testing.T) {
	gen := genesis.Default()
	db := database.New(gen)

	alice := db.AddParticipant("sid-alice", "alice", database.RoleUser)
	bob := db.AddParticipant("sid-bob", "bob", database.RoleUser)

	t.Log("Given the need to take transactions from the pool in arrival order.")
	{
		t.Logf("\tTest 0:\tWhen three transactions are queued and two are taken.")
		{
			db.AppendTx(database.NewTx(alice, bob, 1, 0))
			db.AppendTx(database.NewTx(alice, bob, 2, 0))
			db.AppendTx(database.NewTx(alice, bob, 3, 0))

			taken := db.TakeTxs(2)
			if len(taken) != 2 || taken[0].Amount != 1 || taken[1].Amount != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould take the two oldest: got %+v", failed, taken)
			}
			t.Logf("\t%s\tTest 0:\tShould take the two oldest.", success)

			if db.PoolCount() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould leave one pending: got %d", failed, db.PoolCount())
			}
			t.Logf("\t%s\tTest 0:\tShould leave one pending.", success)
		}

		t.Logf("\tTest 1:\tWhen taking more than remains.")
		{
			taken := db.TakeTxs(10)
			if len(taken) != 1 || taken[0].Amount != 3 {
				t.Fatalf("\t%s\tTest 1:\tShould drain the pool: got %+v", failed, taken)
			}
			t.Logf("\t%s\tTest 1:\tShould drain the pool.", success)

			if db.PoolCount() != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould leave nothing pending.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould leave nothing pending.", success)
		}
	}
}

func Test_CopyIsolation(t *testing.T) {
	db := database.New(genesis.Default())
	db.AddParticipant("sid-alice", "alice", database.RoleUser)

	t.Log("Given the need to keep snapshots isolated from the live records.")
	{
		t.Logf("\tTest 0:\tWhen mutating a participant snapshot.")
		{
			participants := db.CopyParticipants()
			participants[0].User.Balance = 0

			alice, _ := db.Participant("sid-alice")
			if alice.User.Balance != 100 {
				t.Fatalf("\t%s\tTest 0:\tShould not leak through the copy: got %v", failed, alice.User.Balance)
			}
			t.Logf("\t%s\tTest 0:\tShould not leak through the copy.", success)
		}
	}
}

func Test_Stats(t *testing.T) {
	db := database.New(genesis.Default())

	alice := db.AddParticipant("sid-alice", "alice", database.RoleUser)
	bob := db.AddParticipant("sid-bob", "bob", database.RoleUser)
	db.AddParticipant("sid-miner", "digger", database.RoleMiner)
	db.SetOffline("sid-bob")

	db.AppendTx(database.NewTx(alice, bob, 1, 0))

	t.Log("Given the need to report simulation statistics.")
	{
		t.Logf("\tTest 0:\tWhen reading the stats snapshot.")
		{
			stats := db.Stats()

			if stats.OnlineUsers != 1 || stats.OnlineMiners != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould count online roles: got %+v", failed, stats)
			}
			t.Logf("\t%s\tTest 0:\tShould count online roles.", success)

			if stats.TotalParticipants != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould count every participant: got %d", failed, stats.TotalParticipants)
			}
			t.Logf("\t%s\tTest 0:\tShould count every participant.", success)

			if stats.PendingTrans != 1 || stats.TotalTrans != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould count transactions: got %+v", failed, stats)
			}
			t.Logf("\t%s\tTest 0:\tShould count transactions.", success)
		}
	}
}
