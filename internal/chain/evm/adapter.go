// Package evm implements the adapter for EVM-compatible (account) networks.
package evm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/rpc"
	"github.com/goodnatureofminers/blockinsight7000-tracer/pkg/safe"
	"go.uber.org/zap"
)

var callTracer = map[string]any{"tracer": "callTracer"}

// Adapter reads and extracts blocks of one EVM network.
type Adapter struct {
	network  string
	rpc      Caller
	internal bool
	logger   *zap.Logger
}

// NewAdapter builds an adapter. Internal transfers are traced when network.InternalTransfers is set.
func NewAdapter(network model.Network, caller Caller, logger *zap.Logger) (*Adapter, error) {
	if caller == nil {
		return nil, errors.New("evm adapter rpc is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		network:  network.ID,
		rpc:      caller,
		internal: network.InternalTransfers,
		logger:   logger.Named("evm").With(zap.String("network", network.ID)),
	}, nil
}

// LatestHeight returns the node's latest block number.
func (a *Adapter) LatestHeight(ctx context.Context) (uint64, error) {
	res, err := a.rpc.Call(ctx, "eth_blockNumber")
	if err != nil {
		return 0, fmt.Errorf("get block number: %w", err)
	}
	var number hexutil.Uint64
	if err := json.Unmarshal(res, &number); err != nil {
		return 0, model.NewProtocolError("eth_blockNumber", err)
	}
	return uint64(number), nil
}

// FetchBlockByHeight retrieves block height with its receipts.
func (a *Adapter) FetchBlockByHeight(ctx context.Context, height uint64) (*model.RawBlock, error) {
	res, err := a.rpc.Call(ctx, "eth_getBlockByNumber", hexutil.EncodeUint64(height), true)
	if err != nil {
		return nil, fmt.Errorf("get block %d: %w", height, err)
	}
	if rpc.IsNull(res) {
		tip, err := a.LatestHeight(ctx)
		if err != nil {
			return nil, err
		}
		if height > tip {
			return nil, fmt.Errorf("get block %d: %w", height, model.ErrBeyondTip)
		}
		return nil, fmt.Errorf("get block %d: %w", height, model.ErrBlockNotFound)
	}

	block, err := a.decodeBlock("eth_getBlockByNumber", res)
	if err != nil {
		return nil, err
	}
	if uint64(block.Number) != height {
		return nil, model.NewProtocolError("eth_getBlockByNumber", fmt.Errorf("requested block %d, got %d", height, block.Number))
	}
	return a.complete(ctx, block)
}

// FetchBlockByHash retrieves a block by hash with its receipts.
func (a *Adapter) FetchBlockByHash(ctx context.Context, hash string) (*model.RawBlock, error) {
	want := common.HexToHash(hash)
	res, err := a.rpc.Call(ctx, "eth_getBlockByHash", want.Hex(), true)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	if rpc.IsNull(res) {
		return nil, fmt.Errorf("get block %s: %w", hash, model.ErrBlockNotFound)
	}

	block, err := a.decodeBlock("eth_getBlockByHash", res)
	if err != nil {
		return nil, err
	}
	if block.Hash != want {
		return nil, model.NewProtocolError("eth_getBlockByHash", fmt.Errorf("requested block %s, got %s", want.Hex(), block.Hash.Hex()))
	}
	return a.complete(ctx, block)
}

func (a *Adapter) decodeBlock(op string, res json.RawMessage) (rpcBlock, error) {
	var block rpcBlock
	if err := json.Unmarshal(res, &block); err != nil {
		return rpcBlock{}, model.NewProtocolError(op, fmt.Errorf("decode block: %w", err))
	}
	return block, nil
}

// complete loads receipts and, when enabled, call traces pinned to the block hash.
func (a *Adapter) complete(ctx context.Context, block rpcBlock) (*model.RawBlock, error) {
	payload := &blockPayload{block: block}
	hash := block.Hash.Hex()

	if len(block.Transactions) > 0 {
		res, err := a.rpc.Call(ctx, "eth_getBlockReceipts", hash)
		if err != nil {
			return nil, fmt.Errorf("get receipts for block %d: %w", block.Number, err)
		}
		if err := json.Unmarshal(res, &payload.receipts); err != nil {
			return nil, model.NewProtocolError("eth_getBlockReceipts", fmt.Errorf("decode receipts: %w", err))
		}
		if len(payload.receipts) != len(block.Transactions) {
			return nil, model.NewProtocolError("eth_getBlockReceipts",
				fmt.Errorf("block %d has %d transactions but %d receipts", block.Number, len(block.Transactions), len(payload.receipts)))
		}

		if a.internal {
			res, err := a.rpc.Call(ctx, "debug_traceBlockByHash", hash, callTracer)
			if err != nil {
				return nil, fmt.Errorf("trace block %d: %w", block.Number, err)
			}
			if err := json.Unmarshal(res, &payload.traces); err != nil {
				return nil, model.NewProtocolError("debug_traceBlockByHash", fmt.Errorf("decode traces: %w", err))
			}
			if len(payload.traces) != len(block.Transactions) {
				return nil, model.NewProtocolError("debug_traceBlockByHash",
					fmt.Errorf("block %d has %d transactions but %d traces", block.Number, len(block.Transactions), len(payload.traces)))
			}
		}
	}

	txCount, err := safe.Uint32(len(block.Transactions))
	if err != nil {
		return nil, model.NewProtocolError("eth_getBlock", err)
	}
	return &model.RawBlock{
		Block: model.Block{
			Network:    a.network,
			Height:     uint64(block.Number),
			Hash:       hash,
			ParentHash: block.ParentHash.Hex(),
			Timestamp:  time.Unix(int64(block.Timestamp), 0).UTC(),
			TxCount:    txCount,
		},
		Payload: payload,
	}, nil
}

// Extract converts fetched blocks into transactions and transfers.
func (a *Adapter) Extract(ctx context.Context, blocks []*model.RawBlock) ([]model.BlockRecords, error) {
	records := make([]model.BlockRecords, 0, len(blocks))
	for i, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 && b.Block.Height <= blocks[i-1].Block.Height {
			return nil, fmt.Errorf("blocks out of order: %d after %d", b.Block.Height, blocks[i-1].Block.Height)
		}
		payload, ok := b.Payload.(*blockPayload)
		if !ok {
			return nil, fmt.Errorf("block %d: unexpected payload %T", b.Block.Height, b.Payload)
		}
		rec, err := a.extractBlock(b.Block, payload)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (a *Adapter) extractBlock(block model.Block, payload *blockPayload) (model.BlockRecords, error) {
	rec := model.BlockRecords{
		Block:        block,
		Transactions: make([]model.Transaction, 0, len(payload.block.Transactions)),
	}

	var transferIndex uint32
	for i, tx := range payload.block.Transactions {
		receipt := payload.receipts[i]
		if receipt.TransactionHash != tx.Hash {
			return model.BlockRecords{}, model.NewProtocolError("eth_getBlockReceipts",
				fmt.Errorf("receipt %d is for %s, want %s", i, receipt.TransactionHash.Hex(), tx.Hash.Hex()))
		}
		index, err := safe.Uint32(uint64(tx.TransactionIndex))
		if err != nil {
			return model.BlockRecords{}, model.NewProtocolError("eth_getBlock", err)
		}

		failed := !receiptSucceeded(receipt)
		txHash := tx.Hash.Hex()
		rec.Transactions = append(rec.Transactions, model.Transaction{
			Network:     a.network,
			BlockHeight: block.Height,
			Timestamp:   block.Timestamp,
			Hash:        txHash,
			Index:       index,
			Failed:      failed,
		})
		if failed {
			continue
		}

		var trace *callFrame
		if len(payload.traces) > 0 {
			trace = &payload.traces[i].Result
		}
		for _, m := range txMovements(tx, receipt, trace) {
			rec.Transfers = append(rec.Transfers, model.Transfer{
				Network:     a.network,
				BlockHeight: block.Height,
				Timestamp:   block.Timestamp,
				TxHash:      txHash,
				Index:       transferIndex,
				From:        m.from,
				To:          m.to,
				Asset:       m.asset,
				Amount:      m.amount,
			})
			transferIndex++
		}
	}
	return rec, nil
}
