// Package worker implements the time driven parts of mining: the periodic
// sweep, the round deadline, and the post mine retry.
package worker

import (
	"sync"
	"time"

	"github.com/chainlab/classroom/foundation/ledger/state"
)

// Worker manages the mining round workflows for the simulation.
type Worker struct {
	state      *state.State
	wg         sync.WaitGroup
	shutMu     sync.Mutex
	ticker     *time.Ticker
	shut       chan struct{}
	startRound chan bool
	retryRound chan bool
	evHandler  state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up all the background processes.
func Run(st *state.State, evHandler state.EventHandler) *Worker {
	w := Worker{
		state:      st,
		ticker:     time.NewTicker(st.RetrieveGenesis().SweepInterval),
		shut:       make(chan struct{}),
		startRound: make(chan bool, 1),
		retryRound: make(chan bool, 1),
		evHandler:  evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// Load the set of operations we need to run.
	operations := []func(){
		w.roundOperations,
		w.sweepOperations,
		w.retryOperations,
	}

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	for i := 0; i < g; i++ {
		<-hasStarted
	}

	return &w
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutines performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.ticker.Stop()

	// The shut signal is raised under the mutex SignalRoundTimeout checks
	// before adding to the waitgroup. This keeps a round that starts during
	// shutdown from racing an Add against the Wait below.
	w.shutMu.Lock()
	close(w.shut)
	w.shutMu.Unlock()

	w.wg.Wait()
}

// SignalStartRound asks for a mining round to be started. If there is
// already a signal pending in the channel, just return since a round will
// be attempted.
func (w *Worker) SignalStartRound() {
	select {
	case w.startRound <- true:
	default:
	}
}

// SignalRetryRound asks for a mining round to be started after the retry
// delay. Used when transactions remain pending after a block commit.
func (w *Worker) SignalRetryRound() {
	select {
	case w.retryRound <- true:
	default:
	}
}

// SignalRoundTimeout schedules the deadline check for the specified round.
// The state re-validates the round id when the timer fires, so a timer that
// outlives its round is discarded there.
func (w *Worker) SignalRoundTimeout(roundID string, deadline time.Time) {
	w.shutMu.Lock()
	if w.isShutdown() {
		w.shutMu.Unlock()
		return
	}
	w.wg.Add(1)
	w.shutMu.Unlock()

	go func() {
		defer w.wg.Done()

		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()

		select {
		case <-timer.C:
			if w.isShutdown() {
				return
			}
			w.evHandler("worker: roundTimeout: deadline elapsed: round[%s]", roundID)
			if w.state.ExpireMiningRound(roundID) {
				w.SignalStartRound()
			}

		case <-w.shut:
		}
	}()
}

// =============================================================================

// roundOperations starts mining rounds on demand.
func (w *Worker) roundOperations() {
	w.evHandler("worker: roundOperations: G started")
	defer w.evHandler("worker: roundOperations: G completed")

	for {
		select {
		case <-w.startRound:
			if !w.isShutdown() {
				w.state.StartMiningRound()
			}
		case <-w.shut:
			w.evHandler("worker: roundOperations: received shut signal")
			return
		}
	}
}

// sweepOperations attempts a round on a fixed interval whenever the pool is
// non-empty and no round is active. This is a safety net independent of the
// pool trigger.
func (w *Worker) sweepOperations() {
	w.evHandler("worker: sweepOperations: G started")
	defer w.evHandler("worker: sweepOperations: G completed")

	for {
		select {
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.SignalStartRound()
			}
		case <-w.shut:
			w.evHandler("worker: sweepOperations: received shut signal")
			return
		}
	}
}

// retryOperations waits out the retry delay before asking for a new round.
func (w *Worker) retryOperations() {
	w.evHandler("worker: retryOperations: G started")
	defer w.evHandler("worker: retryOperations: G completed")

	delay := w.state.RetrieveGenesis().RetryDelay

	for {
		select {
		case <-w.retryRound:
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
				w.SignalStartRound()
			case <-w.shut:
				timer.Stop()
				w.evHandler("worker: retryOperations: received shut signal")
				return
			}
		case <-w.shut:
			w.evHandler("worker: retryOperations: received shut signal")
			return
		}
	}
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
