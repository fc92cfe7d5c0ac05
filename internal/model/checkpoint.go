package model

import "time"

// Checkpoint is the durable per-network cursor.
type Checkpoint struct {
	Network    string
	Height     uint64
	Generation uint64
	// RollbackFrom is the first height of a rollback that has not finished yet; zero means none.
	RollbackFrom uint64
	UpdatedAt    time.Time
}

// Next returns the next height to extract.
func (c Checkpoint) Next(genesis uint64) uint64 {
	if c.Generation == 0 {
		return genesis
	}
	if c.Height < genesis {
		return genesis
	}
	return c.Height + 1
}

// Lease records the instance currently indexing a network.
type Lease struct {
	Network    string
	InstanceID string
	ExpiresAt  time.Time
	AcquiredAt time.Time
}

// Live reports whether the lease is still held at now.
func (l Lease) Live(now time.Time) bool {
	return l.InstanceID != "" && now.Before(l.ExpiresAt)
}
