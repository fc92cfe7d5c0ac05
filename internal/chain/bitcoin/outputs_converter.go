package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-tracer/pkg/safe"
)

// convertOutputs turns raw RPC outputs into domain outputs, including unaddressed ones.
func convertOutputs(decoder *scriptDecoder, network string, tx btcjson.TxRawResult, blockHeight uint64) ([]model.TransactionOutput, error) {
	outputs := make([]model.TransactionOutput, 0, len(tx.Vout))
	for idx, vout := range tx.Vout {
		if vout.Value < 0 {
			return nil, fmt.Errorf("tx %s output %d negative value: %f", tx.Txid, idx, vout.Value)
		}

		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s output index overflow: %w", tx.Txid, err)
		}

		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d safe value: %w", tx.Txid, idx, err)
		}
		addresses, err := decoder.decodeAddresses(vout)
		if err != nil {
			return nil, fmt.Errorf("decode addresses for tx %s output %d: %w", tx.Txid, idx, err)
		}

		outputs = append(outputs, model.TransactionOutput{
			Network:     network,
			BlockHeight: blockHeight,
			TxID:        tx.Txid,
			Index:       index,
			Value:       value,
			Addresses:   addresses,
		})
	}
	return outputs, nil
}
