// Package genesis maintains access to the simulation parameters.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Genesis represents the rules the simulation runs under.
type Genesis struct {
	Date            time.Time     // When the simulation instance was configured.
	StartingBalance float64       // Balance every joining user starts with.
	TransPerBlock   int           // Maximum number of transactions mined into a block.
	PoolMaxSize     int           // Maximum number of transactions held in the pending pool.
	MineTrigger     int           // Pool size at which a mining round is started.
	MineDeadline    time.Duration // How long an assigned miner has to mine a block.
	RetryDelay      time.Duration // Delay before a new round when transactions remain after a mine.
	SweepInterval   time.Duration // Interval of the safety net that starts rounds for a non-empty pool.
}

// Default returns the genesis the simulation runs with when no genesis file
// is provided.
func Default() Genesis {
	return Genesis{
		Date:            time.Now().UTC(),
		StartingBalance: 100,
		TransPerBlock:   5,
		PoolMaxSize:     5,
		MineTrigger:     3,
		MineDeadline:    30 * time.Second,
		RetryDelay:      5 * time.Second,
		SweepInterval:   45 * time.Second,
	}
}

// Load opens and consumes the genesis file. A missing file is not an error,
// the simulation falls back to the default rules.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Genesis{}, fmt.Errorf("reading genesis file: %w", err)
	}

	var file struct {
		Date            time.Time `json:"date"`
		StartingBalance float64   `json:"starting_balance"`
		TransPerBlock   int       `json:"trans_per_block"`
		PoolMaxSize     int       `json:"pool_max_size"`
		MineTrigger     int       `json:"mine_trigger"`
		MineDeadline    string    `json:"mine_deadline"`
		RetryDelay      string    `json:"retry_delay"`
		SweepInterval   string    `json:"sweep_interval"`
	}
	if err := json.Unmarshal(content, &file); err != nil {
		return Genesis{}, fmt.Errorf("parsing genesis file: %w", err)
	}

	mineDeadline, err := time.ParseDuration(file.MineDeadline)
	if err != nil {
		return Genesis{}, fmt.Errorf("parsing mine deadline: %w", err)
	}

	retryDelay, err := time.ParseDuration(file.RetryDelay)
	if err != nil {
		return Genesis{}, fmt.Errorf("parsing retry delay: %w", err)
	}

	sweepInterval, err := time.ParseDuration(file.SweepInterval)
	if err != nil {
		return Genesis{}, fmt.Errorf("parsing sweep interval: %w", err)
	}

	genesis := Genesis{
		Date:            file.Date,
		StartingBalance: file.StartingBalance,
		TransPerBlock:   file.TransPerBlock,
		PoolMaxSize:     file.PoolMaxSize,
		MineTrigger:     file.MineTrigger,
		MineDeadline:    mineDeadline,
		RetryDelay:      retryDelay,
		SweepInterval:   sweepInterval,
	}

	return genesis, nil
}
