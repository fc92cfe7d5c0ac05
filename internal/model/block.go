package model

import (
	"math/big"
	"time"
)

// Block is the normalized header of a block.
type Block struct {
	Network    string
	Height     uint64
	Hash       string
	ParentHash string
	Timestamp  time.Time
	TxCount    uint32
}

// Transaction belongs to exactly one block.
type Transaction struct {
	Network     string
	BlockHeight uint64
	Timestamp   time.Time
	Hash        string
	Index       uint32
	Failed      bool
}

// Transfer is the normalized unit of value movement.
// An empty From means the value has no source (coinbase or mint).
type Transfer struct {
	Network     string
	BlockHeight uint64
	Timestamp   time.Time
	TxHash      string
	Index       uint32
	From        string
	To          string
	Asset       string
	Amount      *big.Int
}

// TransactionOutput is a UTXO output kept for resolving later inputs.
type TransactionOutput struct {
	Network     string
	BlockHeight uint64
	TxID        string
	Index       uint32
	Value       uint64
	Addresses   []string
}

// RawBlock is a fetched block before extraction. Payload is owned by the adapter that produced it.
type RawBlock struct {
	Block   Block
	Payload any
}

// BlockRecords groups everything extracted from a single block.
type BlockRecords struct {
	Block        Block
	Transactions []Transaction
	Transfers    []Transfer
	Outputs      []TransactionOutput
}

// Batch is a contiguous range of extracted blocks written as one unit.
type Batch struct {
	Network      string
	StartHeight  uint64
	EndHeight    uint64
	Blocks       []Block
	Transactions []Transaction
	Transfers    []Transfer
	Outputs      []TransactionOutput
}

// NewBatch flattens extracted blocks, which must be contiguous and ordered by height.
func NewBatch(network string, records []BlockRecords) Batch {
	batch := Batch{Network: network}
	if len(records) == 0 {
		return batch
	}
	batch.StartHeight = records[0].Block.Height
	batch.EndHeight = records[len(records)-1].Block.Height
	batch.Blocks = make([]Block, 0, len(records))
	for _, r := range records {
		batch.Blocks = append(batch.Blocks, r.Block)
		batch.Transactions = append(batch.Transactions, r.Transactions...)
		batch.Transfers = append(batch.Transfers, r.Transfers...)
		batch.Outputs = append(batch.Outputs, r.Outputs...)
	}
	return batch
}
