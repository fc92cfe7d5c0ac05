package evm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Wire shapes of the fields the adapter reads. Unknown transaction types are tolerated.
type (
	rpcBlock struct {
		Number       hexutil.Uint64   `json:"number"`
		Hash         common.Hash      `json:"hash"`
		ParentHash   common.Hash      `json:"parentHash"`
		Timestamp    hexutil.Uint64   `json:"timestamp"`
		Transactions []rpcTransaction `json:"transactions"`
	}

	rpcTransaction struct {
		Hash             common.Hash     `json:"hash"`
		From             common.Address  `json:"from"`
		To               *common.Address `json:"to"`
		Value            *hexutil.Big    `json:"value"`
		TransactionIndex hexutil.Uint64  `json:"transactionIndex"`
	}

	rpcReceipt struct {
		TransactionHash common.Hash     `json:"transactionHash"`
		Status          *hexutil.Uint64 `json:"status"`
		ContractAddress *common.Address `json:"contractAddress"`
		Logs            []rpcLog        `json:"logs"`
	}

	rpcLog struct {
		Address common.Address `json:"address"`
		Topics  []common.Hash  `json:"topics"`
		Data    hexutil.Bytes  `json:"data"`
		Removed bool           `json:"removed"`
	}

	callFrame struct {
		Type  string          `json:"type"`
		From  common.Address  `json:"from"`
		To    *common.Address `json:"to"`
		Value *hexutil.Big    `json:"value"`
		Error string          `json:"error"`
		Calls []callFrame     `json:"calls"`
	}

	txTrace struct {
		TxHash common.Hash `json:"txHash"`
		Result callFrame   `json:"result"`
	}

	// blockPayload is what FetchBlock* hands to Extract.
	blockPayload struct {
		block    rpcBlock
		receipts []rpcReceipt
		traces   []txTrace
	}
)
