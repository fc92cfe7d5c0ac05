package indexer

import "time"

const (
	defaultBatchSize       = 50
	defaultFetchWorkers    = 8
	defaultLeaseDuration   = 20 * time.Second
	defaultRenewInterval   = 2 * time.Second
	defaultAcquireInterval = 5 * time.Second
	defaultMaxReorgDepth   = 100
	defaultMaxBackoff      = 10 * time.Minute
	maxBackoffExponent     = 5

	statusFlushSize     = 100
	statusFlushInterval = time.Second
	statusFlushRPS      = 10
	statusFlushTimeout  = 5 * time.Second

	leadershipAcquired = "acquired"
	leadershipLost     = "lost"
	leadershipReleased = "released"
)
