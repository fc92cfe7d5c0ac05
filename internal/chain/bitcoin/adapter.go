package bitcoin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/rpc"
	"github.com/goodnatureofminers/blockinsight7000-tracer/pkg/safe"
	"go.uber.org/zap"
)

// bitcoind error codes.
const (
	rpcInvalidAddressOrKey = -5
	rpcInvalidParameter    = -8
)

// Adapter reads and extracts blocks of one Bitcoin-family network.
type Adapter struct {
	network string
	rpc     Caller
	outputs OutputLookup
	decoder *scriptDecoder
	logger  *zap.Logger
}

// NewAdapter builds an adapter using the address encoding of network.Chain.
func NewAdapter(network model.Network, caller Caller, outputs OutputLookup, logger *zap.Logger) (*Adapter, error) {
	if caller == nil {
		return nil, errors.New("bitcoin adapter rpc is required")
	}
	if outputs == nil {
		return nil, errors.New("bitcoin adapter output lookup is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	decoder, err := newScriptDecoder(network.Chain)
	if err != nil {
		return nil, fmt.Errorf("network %s: %w", network.ID, err)
	}
	return &Adapter{
		network: network.ID,
		rpc:     caller,
		outputs: outputs,
		decoder: decoder,
		logger:  logger.Named("bitcoin").With(zap.String("network", network.ID)),
	}, nil
}

// LatestHeight returns the latest block height available from the node.
func (a *Adapter) LatestHeight(ctx context.Context) (uint64, error) {
	res, err := a.rpc.Call(ctx, "getblockcount")
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	var count int64
	if err := json.Unmarshal(res, &count); err != nil {
		return 0, model.NewProtocolError("getblockcount", err)
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, model.NewProtocolError("getblockcount", fmt.Errorf("block count overflow: %w", err))
	}
	return height, nil
}

// FetchBlockByHeight retrieves a block with full transaction details at height.
func (a *Adapter) FetchBlockByHeight(ctx context.Context, height uint64) (*model.RawBlock, error) {
	res, err := a.rpc.Call(ctx, "getblockhash", height)
	if err != nil {
		if code, ok := rpc.CodeOf(err); ok && code == rpcInvalidParameter {
			return nil, fmt.Errorf("get block hash at height %d: %w", height, model.ErrBeyondTip)
		}
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	var hash string
	if err := json.Unmarshal(res, &hash); err != nil {
		return nil, model.NewProtocolError("getblockhash", err)
	}

	block, err := a.FetchBlockByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if block.Block.Height != height {
		return nil, model.NewProtocolError("getblock", fmt.Errorf("block %s has height %d, want %d", hash, block.Block.Height, height))
	}
	return block, nil
}

// FetchBlockByHash retrieves a block with full transaction details by hash.
func (a *Adapter) FetchBlockByHash(ctx context.Context, hash string) (*model.RawBlock, error) {
	if _, err := chainhash.NewHashFromStr(hash); err != nil {
		return nil, fmt.Errorf("invalid block hash %q: %w", hash, err)
	}

	res, err := a.rpc.Call(ctx, "getblock", hash, 2)
	if err != nil {
		if code, ok := rpc.CodeOf(err); ok && code == rpcInvalidAddressOrKey {
			return nil, fmt.Errorf("get block %s: %w", hash, model.ErrBlockNotFound)
		}
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	if rpc.IsNull(res) {
		return nil, fmt.Errorf("get block %s: %w", hash, model.ErrBlockNotFound)
	}

	var src btcjson.GetBlockVerboseTxResult
	if err := json.Unmarshal(res, &src); err != nil {
		return nil, model.NewProtocolError("getblock", fmt.Errorf("decode block %s: %w", hash, err))
	}
	if src.Hash != hash {
		return nil, model.NewProtocolError("getblock", fmt.Errorf("requested block %s, got %s", hash, src.Hash))
	}

	block, err := BuildBlockFromVerbose(&src, a.network)
	if err != nil {
		return nil, model.NewProtocolError("getblock", err)
	}
	return &model.RawBlock{Block: block, Payload: &src}, nil
}

// Extract converts fetched blocks into transactions, outputs and transfers.
// Inputs spending outputs created earlier in the same batch resolve without a lookup.
func (a *Adapter) Extract(ctx context.Context, blocks []*model.RawBlock) ([]model.BlockRecords, error) {
	srcs := make([]*btcjson.GetBlockVerboseTxResult, len(blocks))
	produced := make(map[string]struct{})
	for i, b := range blocks {
		src, ok := b.Payload.(*btcjson.GetBlockVerboseTxResult)
		if !ok {
			return nil, fmt.Errorf("block %d: unexpected payload %T", b.Block.Height, b.Payload)
		}
		if i > 0 && b.Block.Height <= blocks[i-1].Block.Height {
			return nil, fmt.Errorf("blocks out of order: %d after %d", b.Block.Height, blocks[i-1].Block.Height)
		}
		srcs[i] = src
		for _, tx := range src.Tx {
			produced[tx.Txid] = struct{}{}
		}
	}

	external := make([]string, 0)
	for _, src := range srcs {
		for _, tx := range src.Tx {
			for _, vin := range tx.Vin {
				if vin.IsCoinBase() {
					continue
				}
				if _, inBatch := produced[vin.Txid]; inBatch {
					continue
				}
				external = append(external, vin.Txid)
			}
		}
	}

	resolver := newOutputResolver(a.outputs, a.rpc, a.decoder, a.network)
	if err := resolver.prefetch(ctx, external); err != nil {
		return nil, fmt.Errorf("resolve prev outputs for blocks %d-%d: %w",
			blocks[0].Block.Height, blocks[len(blocks)-1].Block.Height, err)
	}

	records := make([]model.BlockRecords, 0, len(blocks))
	for i, src := range srcs {
		rec, err := a.extractBlock(ctx, blocks[i].Block, src, resolver)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (a *Adapter) extractBlock(ctx context.Context, block model.Block, src *btcjson.GetBlockVerboseTxResult, resolver *outputResolver) (model.BlockRecords, error) {
	rec := model.BlockRecords{
		Block:        block,
		Transactions: make([]model.Transaction, 0, len(src.Tx)),
	}

	var transferIndex uint32
	for txIdx, tx := range src.Tx {
		if err := ctx.Err(); err != nil {
			return model.BlockRecords{}, err
		}
		index, err := safe.Uint32(txIdx)
		if err != nil {
			return model.BlockRecords{}, fmt.Errorf("block %d tx index overflow: %w", block.Height, err)
		}

		outputs, err := convertOutputs(a.decoder, a.network, tx, block.Height)
		if err != nil {
			return model.BlockRecords{}, model.NewProtocolError("getblock", err)
		}
		resolver.seed(tx.Txid, outputs)

		coinbase := len(tx.Vin) > 0 && tx.Vin[0].IsCoinBase()
		spent := make([]model.TransactionOutput, 0, len(tx.Vin))
		if !coinbase {
			for _, vin := range tx.Vin {
				prev, err := resolver.resolve(ctx, vin.Txid, vin.Vout)
				if err != nil {
					return model.BlockRecords{}, fmt.Errorf("block %d tx %s: %w", block.Height, tx.Txid, err)
				}
				spent = append(spent, prev)
			}
		}

		transfers := transfersForTx(txContext{
			network:   a.network,
			height:    block.Height,
			timestamp: block.Timestamp,
			txid:      tx.Txid,
		}, coinbase, spent, outputs)
		for i := range transfers {
			transfers[i].Index = transferIndex
			transferIndex++
		}

		rec.Transactions = append(rec.Transactions, model.Transaction{
			Network:     a.network,
			BlockHeight: block.Height,
			Timestamp:   block.Timestamp,
			Hash:        tx.Txid,
			Index:       index,
		})
		rec.Outputs = append(rec.Outputs, outputs...)
		rec.Transfers = append(rec.Transfers, transfers...)
	}
	return rec, nil
}
