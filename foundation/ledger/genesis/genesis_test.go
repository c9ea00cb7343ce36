package genesis_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chainlab/classroom/foundation/ledger/genesis"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_Load(t *testing.T) {
	t.Log("Given the need to load the simulation rules from disk.")
	{
		t.Logf("\tTest 0:\tWhen the genesis file exists.")
		{
			doc := `{
				"date": "2026-08-30T00:00:00Z",
				"starting_balance": 250,
				"trans_per_block": 4,
				"pool_max_size": 8,
				"mine_trigger": 2,
				"mine_deadline": "45s",
				"retry_delay": "2s",
				"sweep_interval": "1m"
			}`

			path := filepath.Join(t.TempDir(), "genesis.json")
			if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould write the genesis file: %v", failed, err)
			}

			gen, err := genesis.Load(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould load the genesis file: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould load the genesis file.", success)

			if gen.StartingBalance != 250 || gen.TransPerBlock != 4 || gen.PoolMaxSize != 8 || gen.MineTrigger != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould carry the configured values: got %+v", failed, gen)
			}
			t.Logf("\t%s\tTest 0:\tShould carry the configured values.", success)

			if gen.MineDeadline != 45*time.Second || gen.RetryDelay != 2*time.Second || gen.SweepInterval != time.Minute {
				t.Fatalf("\t%s\tTest 0:\tShould parse the duration strings: got %+v", failed, gen)
			}
			t.Logf("\t%s\tTest 0:\tShould parse the duration strings.", success)
		}

		t.Logf("\tTest 1:\tWhen the genesis file does not exist.")
		{
			gen, err := genesis.Load(filepath.Join(t.TempDir(), "missing.json"))
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould fall back without error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould fall back without error.", success)

			def := genesis.Default()
			if gen.StartingBalance != def.StartingBalance || gen.MineDeadline != def.MineDeadline {
				t.Fatalf("\t%s\tTest 1:\tShould use the default rules: got %+v", failed, gen)
			}
			t.Logf("\t%s\tTest 1:\tShould use the default rules.", success)
		}

		t.Logf("\tTest 2:\tWhen a duration is malformed.")
		{
			doc := `{"mine_deadline": "soon", "retry_delay": "2s", "sweep_interval": "1m"}`

			path := filepath.Join(t.TempDir(), "genesis.json")
			if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould write the genesis file: %v", failed, err)
			}

			if _, err := genesis.Load(path); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject the malformed duration.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject the malformed duration.", success)
		}
	}
}
