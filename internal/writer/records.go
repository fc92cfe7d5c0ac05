package writer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/parquet-go/parquet-go"
)

const (
	kindBlock       = "block"
	kindTransaction = "transaction"
	kindTransfer    = "transfer"
	kindOutput      = "output"
)

// record is the union row stored in a batch object. Kind selects which columns are meaningful.
type record struct {
	Kind        string   `parquet:"kind,dict"`
	Network     string   `parquet:"network,dict"`
	Height      uint64   `parquet:"height"`
	Index       uint32   `parquet:"index"`
	Hash        string   `parquet:"hash"`
	ParentHash  string   `parquet:"parent_hash"`
	TimestampMS int64    `parquet:"timestamp_ms"`
	TxCount     uint32   `parquet:"tx_count"`
	Failed      bool     `parquet:"failed"`
	From        string   `parquet:"from"`
	To          string   `parquet:"to"`
	Asset       string   `parquet:"asset,dict"`
	Amount      string   `parquet:"amount"`
	Value       uint64   `parquet:"value"`
	Addresses   []string `parquet:"addresses,list"`
}

// objectKey names the object of a batch. Heights are zero padded so keys sort numerically.
func objectKey(network string, start uint64) string {
	return fmt.Sprintf("%s/%020d", network, start)
}

func objectPrefix(network string) string {
	return network + "/"
}

func startOfKey(network, key string) (uint64, bool) {
	rest, ok := strings.CutPrefix(key, objectPrefix(network))
	if !ok {
		return 0, false
	}
	start, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return start, true
}

func toRecords(batch model.Batch) []record {
	rows := make([]record, 0, len(batch.Blocks)+len(batch.Transactions)+len(batch.Transfers)+len(batch.Outputs))
	for _, b := range batch.Blocks {
		rows = append(rows, record{
			Kind:        kindBlock,
			Network:     b.Network,
			Height:      b.Height,
			Hash:        b.Hash,
			ParentHash:  b.ParentHash,
			TimestampMS: b.Timestamp.UnixMilli(),
			TxCount:     b.TxCount,
		})
	}
	for _, tx := range batch.Transactions {
		rows = append(rows, record{
			Kind:        kindTransaction,
			Network:     tx.Network,
			Height:      tx.BlockHeight,
			Index:       tx.Index,
			Hash:        tx.Hash,
			TimestampMS: tx.Timestamp.UnixMilli(),
			Failed:      tx.Failed,
		})
	}
	for _, t := range batch.Transfers {
		amount := "0"
		if t.Amount != nil {
			amount = t.Amount.String()
		}
		rows = append(rows, record{
			Kind:        kindTransfer,
			Network:     t.Network,
			Height:      t.BlockHeight,
			Index:       t.Index,
			Hash:        t.TxHash,
			TimestampMS: t.Timestamp.UnixMilli(),
			From:        t.From,
			To:          t.To,
			Asset:       t.Asset,
			Amount:      amount,
		})
	}
	for _, o := range batch.Outputs {
		rows = append(rows, record{
			Kind:      kindOutput,
			Network:   o.Network,
			Height:    o.BlockHeight,
			Index:     o.Index,
			Hash:      o.TxID,
			Value:     o.Value,
			Addresses: o.Addresses,
		})
	}
	return rows
}

func encode(rows []record) ([]byte, error) {
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[record](&buf, parquet.Compression(&parquet.Zstd))
	if _, err := w.Write(rows); err != nil {
		return nil, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte) ([]record, error) {
	rows, err := parquet.Read[record](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read parquet rows: %w", err)
	}
	return rows, nil
}

// truncate keeps the rows below height.
func truncate(rows []record, height uint64) []record {
	kept := rows[:0]
	for _, r := range rows {
		if r.Height < height {
			kept = append(kept, r)
		}
	}
	return kept
}
