package domain

import "github.com/ethereum/go-ethereum/common"

// WalletCapabilities describes what a connected account supports on its chain
type WalletCapabilities struct {
	AtomicBatch bool `json:"atomic_batch"`
}

// BatchState is the terminal classification of a batch status code
type BatchState string

const (
	BatchPending   BatchState = "pending"
	BatchConfirmed BatchState = "confirmed"
	BatchFailed    BatchState = "failed"
)

// CallsStatus is the status of an atomic batch of calls
type CallsStatus struct {
	Code     int           `json:"code"`
	State    BatchState    `json:"state"`
	TxHashes []common.Hash `json:"tx_hashes,omitempty"`
}
