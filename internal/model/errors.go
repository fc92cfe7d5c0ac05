package model

import (
	"errors"
	"fmt"
)

var (
	// ErrBeyondTip means the requested height is not produced yet; callers should wait.
	ErrBeyondTip = errors.New("height beyond chain tip")
	// ErrBlockNotFound means the node does not know the requested block.
	ErrBlockNotFound = errors.New("block not found")
	// ErrLeadershipLost is the cancellation cause when a lease renewal fails.
	ErrLeadershipLost = errors.New("leadership lost")
	// ErrNetworkNotFound is returned for unknown network ids.
	ErrNetworkNotFound = errors.New("network not found")
	// ErrNotFound is returned for unknown configuration records.
	ErrNotFound = errors.New("not found")
	// ErrArchitectureImmutable rejects changing a network's architecture.
	ErrArchitectureImmutable = errors.New("network architecture is immutable")
	// ErrInvalidRequest marks query arguments the caller must fix.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrStaleCheckpoint means an advance did not move the checkpoint forward.
	ErrStaleCheckpoint = errors.New("checkpoint not advanced")
)

// TransientFetchError is returned after retries against a node are exhausted.
type TransientFetchError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *TransientFetchError) Error() string {
	return fmt.Sprintf("transient fetch error: %s after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *TransientFetchError) Unwrap() error { return e.Err }

// ProtocolError is a malformed or unexpected response. Retrying does not help.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// NewProtocolError wraps err as a ProtocolError for op.
func NewProtocolError(op string, err error) error {
	return &ProtocolError{Op: op, Err: err}
}

// ReorgError reports a parent hash mismatch at Height with the last matching ancestor at ForkHeight.
type ReorgError struct {
	Height     uint64
	ForkHeight uint64
}

func (e *ReorgError) Error() string {
	return fmt.Sprintf("reorg detected at height %d, fork point %d", e.Height, e.ForkHeight)
}

// StorageWriteError is a failed write to one storage tier.
type StorageWriteError struct {
	Tier string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("storage write error: %s: %v", e.Tier, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// IsTransient reports whether err is worth retrying later without operator action.
func IsTransient(err error) bool {
	var fetchErr *TransientFetchError
	var storageErr *StorageWriteError
	return errors.As(err, &fetchErr) || errors.As(err, &storageErr)
}
