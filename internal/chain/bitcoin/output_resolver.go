package bitcoin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/rpc"
)

// outputResolverBatchSize controls how many txids are fetched in one warehouse call.
// It is a var to allow overriding in tests.
var outputResolverBatchSize = 1000

type outputSet map[uint32]model.TransactionOutput

// outputResolver finds the outputs spent by inputs of one extraction batch.
// Lookup order: outputs seeded from the batch itself, the warehouse, then getrawtransaction.
type outputResolver struct {
	lookup  OutputLookup
	rpc     Caller
	decoder *scriptDecoder
	network string
	cache   map[string]outputSet
}

func newOutputResolver(lookup OutputLookup, caller Caller, decoder *scriptDecoder, network string) *outputResolver {
	return &outputResolver{
		lookup:  lookup,
		rpc:     caller,
		decoder: decoder,
		network: network,
		cache:   make(map[string]outputSet),
	}
}

func (r *outputResolver) seed(txid string, outputs []model.TransactionOutput) {
	set := make(outputSet, len(outputs))
	for _, out := range outputs {
		set[out.Index] = out
	}
	r.cache[txid] = set
}

// prefetch loads outputs of txids that are not cached yet from the warehouse in chunks.
func (r *outputResolver) prefetch(ctx context.Context, txids []string) error {
	seen := make(map[string]struct{}, len(txids))
	missing := make([]string, 0, len(txids))
	for _, txid := range txids {
		if _, ok := r.cache[txid]; ok {
			continue
		}
		if _, dup := seen[txid]; dup {
			continue
		}
		seen[txid] = struct{}{}
		missing = append(missing, txid)
	}

	size := outputResolverBatchSize
	if size <= 0 {
		size = 1000
	}
	for start := 0; start < len(missing); start += size {
		end := min(start+size, len(missing))
		found, err := r.lookup.TransactionOutputsLookupByTxIDs(ctx, r.network, missing[start:end])
		if err != nil {
			return fmt.Errorf("query outputs for txids: %w", err)
		}
		for txid, outputs := range found {
			if len(outputs) > 0 {
				r.seed(txid, outputs)
			}
		}
	}
	return nil
}

func (r *outputResolver) resolve(ctx context.Context, txid string, vout uint32) (model.TransactionOutput, error) {
	set, ok := r.cache[txid]
	if !ok {
		outputs, err := r.fetchRaw(ctx, txid)
		if err != nil {
			return model.TransactionOutput{}, err
		}
		r.seed(txid, outputs)
		set = r.cache[txid]
	}
	out, ok := set[vout]
	if !ok {
		return model.TransactionOutput{}, model.NewProtocolError("resolve_input",
			fmt.Errorf("input references missing vout %d in tx %s", vout, txid))
	}
	return out, nil
}

func (r *outputResolver) fetchRaw(ctx context.Context, txid string) ([]model.TransactionOutput, error) {
	res, err := r.rpc.Call(ctx, "getrawtransaction", txid, true)
	if err != nil {
		if code, ok := rpc.CodeOf(err); ok && code == rpcInvalidAddressOrKey {
			return nil, model.NewProtocolError("getrawtransaction", fmt.Errorf("tx %s unknown to node: %w", txid, err))
		}
		return nil, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}
	if rpc.IsNull(res) {
		return nil, model.NewProtocolError("getrawtransaction", fmt.Errorf("tx %s not found", txid))
	}
	var tx btcjson.TxRawResult
	if err := json.Unmarshal(res, &tx); err != nil {
		return nil, model.NewProtocolError("getrawtransaction", fmt.Errorf("decode tx %s: %w", txid, err))
	}
	return convertOutputs(r.decoder, r.network, tx, 0)
}
