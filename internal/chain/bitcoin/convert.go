// Package bitcoin implements the adapter for Bitcoin-family (UTXO) networks.
package bitcoin

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-tracer/pkg/safe"
)

// BtcToSatoshis converts BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// BuildBlockFromVerbose maps a verbose getblock result into a model.Block.
func BuildBlockFromVerbose(src *btcjson.GetBlockVerboseTxResult, network string) (model.Block, error) {
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %s height %d: %w", src.Hash, src.Height, err)
	}
	txCount, err := safe.Uint32(len(src.Tx))
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d tx count overflow: %w", src.Height, err)
	}

	return model.Block{
		Network:    network,
		Height:     height,
		Hash:       src.Hash,
		ParentHash: src.PreviousHash,
		Timestamp:  time.Unix(src.Time, 0).UTC(),
		TxCount:    txCount,
	}, nil
}
