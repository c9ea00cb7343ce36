package worker_test

import (
	"testing"
	"time"

	"github.com/chainlab/classroom/foundation/ledger/database"
	"github.com/chainlab/classroom/foundation/ledger/genesis"
	"github.com/chainlab/classroom/foundation/ledger/state"
	"github.com/chainlab/classroom/foundation/ledger/worker"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

// fastGenesis shrinks the timing rules so the background workflows can be
// observed inside a test run.
func fastGenesis() genesis.Genesis {
	return genesis.Genesis{
		StartingBalance: 100,
		TransPerBlock:   5,
		PoolMaxSize:     10,
		MineTrigger:     3,
		MineDeadline:    50 * time.Millisecond,
		RetryDelay:      10 * time.Millisecond,
		SweepInterval:   30 * time.Millisecond,
	}
}

// waitFor polls the check until it reports true or the timeout elapses.
func waitFor(t *testing.T, timeout time.Duration, check func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if check() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return check()
}

func Test_WorkerRounds(t *testing.T) {
	st := state.New(state.Config{Genesis: fastGenesis()})

	w := worker.Run(st, func(v string, args ...any) {})
	defer w.Shutdown()

	st.Join("sid-alice", "alice", database.RoleUser)
	st.Join("sid-bob", "bob", database.RoleUser)
	st.Join("sid-miner", "digger", database.RoleMiner)

	t.Log("Given the need to validate the time driven mining workflows.")
	{
		t.Logf("\tTest 0:\tWhen the pool reaches the mining trigger.")
		{
			st.SubmitTransaction("sid-alice", "bob", 1, 0)
			st.SubmitTransaction("sid-alice", "bob", 1, 0)
			st.SubmitTransaction("sid-alice", "bob", 1, 0)

			ok := waitFor(t, 2*time.Second, func() bool {
				_, exists := st.RetrieveRound()
				return exists
			})
			if !ok {
				t.Fatalf("\t%s\tTest 0:\tShould start a round.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould start a round.", success)

			round, _ := st.RetrieveRound()
			if round.Miner != "digger" {
				t.Fatalf("\t%s\tTest 0:\tShould assign the online miner: got %q", failed, round.Miner)
			}
			t.Logf("\t%s\tTest 0:\tShould assign the online miner.", success)
		}

		t.Logf("\tTest 1:\tWhen the miner misses the deadline.")
		{
			round, _ := st.RetrieveRound()

			ok := waitFor(t, 2*time.Second, func() bool {
				next, exists := st.RetrieveRound()
				return exists && next.ID != round.ID
			})
			if !ok {
				t.Fatalf("\t%s\tTest 1:\tShould reassign the round after the deadline.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reassign the round after the deadline.", success)
		}

		t.Logf("\tTest 2:\tWhen the assigned miner commits a block.")
		{
			// The short deadline used here can expire a round between the
			// assignment check and the mine call, so keep trying until a
			// commit lands inside an active round.
			var block database.Block
			ok := waitFor(t, 2*time.Second, func() bool {
				b, err := st.MineBlock("sid-miner")
				if err != nil {
					return false
				}
				block = b
				return true
			})
			if !ok {
				t.Fatalf("\t%s\tTest 2:\tShould mine the block.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould mine the block.", success)

			if block.Header.Number != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould mine block 1: got %d", failed, block.Header.Number)
			}
			t.Logf("\t%s\tTest 2:\tShould mine block 1.", success)

			if got := len(st.RetrievePool()); got != 0 {
				t.Fatalf("\t%s\tTest 2:\tShould leave the pool empty: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 2:\tShould leave the pool empty.", success)
		}
	}
}

func Test_WorkerSweep(t *testing.T) {
	st := state.New(state.Config{Genesis: fastGenesis()})

	w := worker.Run(st, func(v string, args ...any) {})
	defer w.Shutdown()

	st.Join("sid-alice", "alice", database.RoleUser)
	st.Join("sid-bob", "bob", database.RoleUser)

	t.Log("Given the need to validate the sweep safety net.")
	{
		t.Logf("\tTest 0:\tWhen a transaction is pending below the trigger and a miner joins late.")
		{
			st.SubmitTransaction("sid-alice", "bob", 1, 0)
			st.Join("sid-miner", "digger", database.RoleMiner)

			ok := waitFor(t, 2*time.Second, func() bool {
				_, exists := st.RetrieveRound()
				return exists
			})
			if !ok {
				t.Fatalf("\t%s\tTest 0:\tShould start a round from the sweep.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould start a round from the sweep.", success)
		}
	}
}

func Test_WorkerShutdown(t *testing.T) {
	st := state.New(state.Config{Genesis: fastGenesis()})

	w := worker.Run(st, func(v string, args ...any) {})

	st.Join("sid-alice", "alice", database.RoleUser)
	st.Join("sid-bob", "bob", database.RoleUser)
	st.Join("sid-miner", "digger", database.RoleMiner)

	st.SubmitTransaction("sid-alice", "bob", 1, 0)
	st.SubmitTransaction("sid-alice", "bob", 1, 0)
	st.SubmitTransaction("sid-alice", "bob", 1, 0)

	t.Log("Given the need to validate worker shutdown.")
	{
		t.Logf("\tTest 0:\tWhen shutting down with a round in flight.")
		{
			waitFor(t, 2*time.Second, func() bool {
				_, exists := st.RetrieveRound()
				return exists
			})

			done := make(chan struct{})
			go func() {
				w.Shutdown()
				close(done)
			}()

			select {
			case <-done:
				t.Logf("\t%s\tTest 0:\tShould drain every goroutine.", success)
			case <-time.After(5 * time.Second):
				t.Fatalf("\t%s\tTest 0:\tShould drain every goroutine.", failed)
			}
		}
	}
}

func Test_WorkerTimeoutAfterShutdown(t *testing.T) {
	st := state.New(state.Config{Genesis: fastGenesis()})

	w := worker.Run(st, func(v string, args ...any) {})
	w.Shutdown()

	st.Join("sid-alice", "alice", database.RoleUser)
	st.Join("sid-bob", "bob", database.RoleUser)
	st.Join("sid-miner", "digger", database.RoleMiner)
	st.SubmitTransaction("sid-alice", "bob", 1, 0)

	t.Log("Given the need to validate deadline scheduling after shutdown.")
	{
		t.Logf("\tTest 0:\tWhen a round is assigned after the worker shut down.")
		{
			if !st.StartMiningRound() {
				t.Fatalf("\t%s\tTest 0:\tShould assign the round.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould assign the round.", success)

			round, _ := st.RetrieveRound()

			// The deadline schedule request must be dropped: no timer
			// goroutine may be added to a worker that is already draining.
			w.SignalRoundTimeout(round.ID, time.Now().Add(10*time.Millisecond))
			time.Sleep(100 * time.Millisecond)

			if _, exists := st.RetrieveRound(); !exists {
				t.Fatalf("\t%s\tTest 0:\tShould never expire a round through a shut worker.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould never expire a round through a shut worker.", success)
		}
	}
}
