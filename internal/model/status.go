package model

import "time"

// RunnerState is a state of the per-network indexing state machine.
type RunnerState string

const (
	StateIdle                RunnerState = "idle"
	StateAcquiringLeadership RunnerState = "acquiring_leadership"
	StateIndexing            RunnerState = "indexing"
	StateBackoff             RunnerState = "backoff"
	StateRelinquished        RunnerState = "relinquished"
	StateStopped             RunnerState = "stopped"
)

// NetworkStatus is what a runner reports about its own progress.
type NetworkStatus struct {
	Network     string
	InstanceID  string
	State       RunnerState
	TipHeight   uint64
	LastError   string
	LastErrorAt time.Time
	UpdatedAt   time.Time
}

// Status is the operational view of a network.
type Status struct {
	Network   string
	Leader    string
	Height    uint64
	TipHeight uint64
	Lag       uint64
	State     RunnerState
	LastError string
}
