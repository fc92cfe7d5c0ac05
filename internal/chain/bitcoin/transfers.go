package bitcoin

import (
	"math/big"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

type flow struct {
	address string
	value   uint64
}

// aggregateByAddress sums values per first address, keeping first-seen order.
// Outputs without an address carry no transfer.
func aggregateByAddress(outputs []model.TransactionOutput) []flow {
	index := make(map[string]int, len(outputs))
	flows := make([]flow, 0, len(outputs))
	for _, out := range outputs {
		if len(out.Addresses) == 0 || out.Addresses[0] == "" {
			continue
		}
		addr := out.Addresses[0]
		if i, ok := index[addr]; ok {
			flows[i].value += out.Value
			continue
		}
		index[addr] = len(flows)
		flows = append(flows, flow{address: addr, value: out.Value})
	}
	return flows
}

// proportionalShare returns round(in * out / total) rounded half-up.
func proportionalShare(in, out, total uint64) *big.Int {
	if total == 0 {
		return new(big.Int)
	}
	num := new(big.Int).Mul(new(big.Int).SetUint64(in), new(big.Int).SetUint64(out))
	num.Lsh(num, 1)
	num.Add(num, new(big.Int).SetUint64(total))
	den := new(big.Int).Lsh(new(big.Int).SetUint64(total), 1)
	return num.Quo(num, den)
}

type txContext struct {
	network   string
	height    uint64
	timestamp time.Time
	txid      string
}

// transfersForTx splits a transaction into address-to-address transfers.
// Coinbase outputs have no source; otherwise every input address pays every
// other output address in proportion to its share of the inputs.
func transfersForTx(tc txContext, coinbase bool, spent, outputs []model.TransactionOutput) []model.Transfer {
	outFlows := aggregateByAddress(outputs)
	transfers := make([]model.Transfer, 0, len(outFlows))
	newTransfer := func(from, to string, amount *big.Int) model.Transfer {
		return model.Transfer{
			Network:     tc.network,
			BlockHeight: tc.height,
			Timestamp:   tc.timestamp,
			TxHash:      tc.txid,
			From:        from,
			To:          to,
			Asset:       model.NativeAsset,
			Amount:      amount,
		}
	}

	if coinbase {
		for _, out := range outFlows {
			if out.value == 0 {
				continue
			}
			transfers = append(transfers, newTransfer("", out.address, new(big.Int).SetUint64(out.value)))
		}
		return transfers
	}

	inFlows := aggregateByAddress(spent)
	var total uint64
	for _, in := range inFlows {
		total += in.value
	}
	for _, in := range inFlows {
		for _, out := range outFlows {
			if in.address == out.address {
				continue
			}
			amount := proportionalShare(in.value, out.value, total)
			if amount.Sign() == 0 {
				continue
			}
			transfers = append(transfers, newTransfer(in.address, out.address, amount))
		}
	}
	return transfers
}
