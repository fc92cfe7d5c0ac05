package evm

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Caller performs JSON-RPC calls against an EVM node.
	Caller interface {
		Call(ctx context.Context, method string, params ...any) (json.RawMessage, error)
	}
)
