package evm

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

// transferTopic is the ERC-20 Transfer(address,address,uint256) event signature.
var transferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

func addressString(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// sourceString maps the zero address to no source (mint).
func sourceString(addr common.Address) string {
	if addr == (common.Address{}) {
		return ""
	}
	return addressString(addr)
}

func receiptSucceeded(r rpcReceipt) bool {
	return r.Status == nil || uint64(*r.Status) == 1
}

type movement struct {
	from, to, asset string
	amount          *big.Int
}

// txMovements lists value moved by one successful transaction in order:
// the native value, internal call values, then ERC-20 Transfer logs.
func txMovements(tx rpcTransaction, receipt rpcReceipt, trace *callFrame) []movement {
	var moves []movement

	if tx.Value != nil && tx.Value.ToInt().Sign() > 0 {
		var to string
		switch {
		case tx.To != nil:
			to = addressString(*tx.To)
		case receipt.ContractAddress != nil:
			to = addressString(*receipt.ContractAddress)
		}
		if to != "" {
			moves = append(moves, movement{
				from:   addressString(tx.From),
				to:     to,
				asset:  model.NativeAsset,
				amount: new(big.Int).Set(tx.Value.ToInt()),
			})
		}
	}

	if trace != nil {
		for _, child := range trace.Calls {
			moves = appendInternal(moves, child)
		}
	}

	for _, lg := range receipt.Logs {
		if m, ok := erc20Transfer(lg); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

// appendInternal walks call frames depth-first. A reverted frame and its children move nothing.
func appendInternal(moves []movement, frame callFrame) []movement {
	if frame.Error != "" {
		return moves
	}
	switch strings.ToUpper(frame.Type) {
	case "DELEGATECALL", "STATICCALL":
	default:
		if frame.Value != nil && frame.Value.ToInt().Sign() > 0 && frame.To != nil {
			moves = append(moves, movement{
				from:   addressString(frame.From),
				to:     addressString(*frame.To),
				asset:  model.NativeAsset,
				amount: new(big.Int).Set(frame.Value.ToInt()),
			})
		}
	}
	for _, child := range frame.Calls {
		moves = appendInternal(moves, child)
	}
	return moves
}

// erc20Transfer decodes a Transfer log. ERC-721 uses four topics and is skipped.
func erc20Transfer(lg rpcLog) (movement, bool) {
	if lg.Removed || len(lg.Topics) != 3 || lg.Topics[0] != transferTopic || len(lg.Data) != 32 {
		return movement{}, false
	}
	amount := new(big.Int).SetBytes(lg.Data)
	if amount.Sign() == 0 {
		return movement{}, false
	}
	return movement{
		from:   sourceString(common.BytesToAddress(lg.Topics[1].Bytes())),
		to:     addressString(common.BytesToAddress(lg.Topics[2].Bytes())),
		asset:  addressString(lg.Address),
		amount: amount,
	}, true
}
