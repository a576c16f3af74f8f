// Package benchmark replays a workload of pairs against each union-find
// strategy and reports how long each took.
package benchmark

import (
	"errors"
	"time"

	unionfind "github.com/FrenchMajesty/dynamic-connectivity"
)

// ErrPartitionMismatch is returned when two strategies end a workload with
// different partitions
var ErrPartitionMismatch = errors.New("strategies disagree on the final partition")

// Pair is one connection request
type Pair struct {
	P int `json:"p"`
	Q int `json:"q"`
}

// Metrics holds the outcome of one strategy on a workload
type Metrics struct {
	Strategy         unionfind.Strategy `json:"strategy"`
	Merged           int                `json:"merged"`
	AlreadyConnected int                `json:"already_connected"`
	Components       int                `json:"components"`
	LargestComponent int                `json:"largest_component"`

	// TotalDuration covers every Connected and Union call
	TotalDuration time.Duration `json:"total_duration"`

	// PerPair is TotalDuration divided by the number of pairs
	PerPair time.Duration `json:"per_pair"`
}

// Report collects Metrics for every strategy run on the same workload
type Report struct {
	Size      int       `json:"size"`
	Pairs     int       `json:"pairs"`
	CreatedAt time.Time `json:"created_at"`
	Results   []Metrics `json:"results"`
}
