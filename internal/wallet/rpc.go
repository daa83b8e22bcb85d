package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
)

// sendCallsVersion is the EIP-5792 request version sent with wallet_sendCalls
const sendCallsVersion = "2.0.0"

// RPCWallet talks to a remote EIP-1193 wallet over JSON-RPC
type RPCWallet struct {
	client  adapter.RPCClient
	address common.Address
	chainID domain.Chain
}

type rpcCall struct {
	To    common.Address `json:"to"`
	Data  hexutil.Bytes  `json:"data"`
	Value *hexutil.Big   `json:"value,omitempty"`
}

type sendTransactionArgs struct {
	From  common.Address `json:"from"`
	To    common.Address `json:"to"`
	Data  hexutil.Bytes  `json:"data"`
	Value *hexutil.Big   `json:"value,omitempty"`
}

type sendCallsArgs struct {
	Version        string         `json:"version"`
	ChainID        hexutil.Uint64 `json:"chainId"`
	From           common.Address `json:"from"`
	AtomicRequired bool           `json:"atomicRequired"`
	Calls          []rpcCall      `json:"calls"`
}

type callsStatusResponse struct {
	Status   json.RawMessage `json:"status"`
	Receipts []struct {
		TransactionHash common.Hash    `json:"transactionHash"`
		Status          hexutil.Uint64 `json:"status"`
	} `json:"receipts"`
}

type capabilityEntry struct {
	Atomic *struct {
		Status string `json:"status"`
	} `json:"atomic,omitempty"`
	AtomicBatch *struct {
		Supported bool `json:"supported"`
	} `json:"atomicBatch,omitempty"`
}

// ConnectRPCWallet requests the wallet's account and makes sure it is on chainID
func ConnectRPCWallet(ctx context.Context, client adapter.RPCClient, chainID domain.Chain) (*RPCWallet, error) {
	var accounts []common.Address
	if err := client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, fmt.Errorf("failed to request accounts: %w", mapRPCError(err))
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("wallet returned no accounts")
	}

	var remoteChain hexutil.Uint64
	if err := client.CallContext(ctx, &remoteChain, "eth_chainId"); err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", mapRPCError(err))
	}

	if domain.Chain(remoteChain) != chainID {
		logger.InfoCtx(ctx, "Switching wallet chain",
			zap.Uint64("from", uint64(remoteChain)),
			zap.Uint64("to", uint64(chainID)))
		params := map[string]string{"chainId": hexutil.EncodeUint64(uint64(chainID))}
		if err := client.CallContext(ctx, nil, "wallet_switchEthereumChain", params); err != nil {
			return nil, fmt.Errorf("failed to switch wallet to %s: %w", chainID.Name(), mapRPCError(err))
		}
	}

	return &RPCWallet{client: client, address: accounts[0], chainID: chainID}, nil
}

func (w *RPCWallet) Address() common.Address {
	return w.address
}

func (w *RPCWallet) ChainID() domain.Chain {
	return w.chainID
}

// Capabilities queries wallet_getCapabilities; wallets that do not implement it report no batching
func (w *RPCWallet) Capabilities(ctx context.Context) (domain.WalletCapabilities, error) {
	chainHex := hexutil.EncodeUint64(uint64(w.chainID))

	var result map[string]capabilityEntry
	err := w.client.CallContext(ctx, &result, "wallet_getCapabilities", w.address, []string{chainHex})
	if err != nil {
		logger.DebugCtx(ctx, "wallet_getCapabilities unavailable, assuming no batching", zap.Error(err))
		return domain.WalletCapabilities{}, nil
	}

	entry, ok := result[chainHex]
	if !ok {
		// some wallets key by the unpadded lower-case id, some by the decimal string
		for key, value := range result {
			if strings.EqualFold(key, chainHex) || key == w.chainID.String() {
				entry, ok = value, true
				break
			}
		}
	}
	if !ok {
		return domain.WalletCapabilities{}, nil
	}

	switch {
	case entry.Atomic != nil:
		return domain.WalletCapabilities{AtomicBatch: entry.Atomic.Status == "supported" || entry.Atomic.Status == "ready"}, nil
	case entry.AtomicBatch != nil:
		return domain.WalletCapabilities{AtomicBatch: entry.AtomicBatch.Supported}, nil
	default:
		return domain.WalletCapabilities{}, nil
	}
}

func (w *RPCWallet) SendTransaction(ctx context.Context, call domain.Call) (common.Hash, error) {
	args := sendTransactionArgs{
		From: w.address,
		To:   call.To,
		Data: call.Data,
	}
	if call.Value != nil {
		args.Value = (*hexutil.Big)(call.Value)
	}

	var hash common.Hash
	if err := w.client.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, mapRPCError(err)
	}
	return hash, nil
}

func (w *RPCWallet) SendCalls(ctx context.Context, calls []domain.Call) (string, error) {
	args := sendCallsArgs{
		Version:        sendCallsVersion,
		ChainID:        hexutil.Uint64(w.chainID),
		From:           w.address,
		AtomicRequired: true,
		Calls:          make([]rpcCall, 0, len(calls)),
	}
	for _, call := range calls {
		c := rpcCall{To: call.To, Data: call.Data}
		if call.Value != nil {
			c.Value = (*hexutil.Big)(call.Value)
		}
		args.Calls = append(args.Calls, c)
	}

	var raw json.RawMessage
	if err := w.client.CallContext(ctx, &raw, "wallet_sendCalls", args); err != nil {
		return "", mapRPCError(err)
	}

	return parseBatchID(raw)
}

// parseBatchID accepts both the bare string id and the {id} object
func parseBatchID(raw json.RawMessage) (string, error) {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil && id != "" {
		return id, nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.ID != "" {
		return obj.ID, nil
	}
	return "", fmt.Errorf("unexpected wallet_sendCalls result: %s", string(raw))
}

func (w *RPCWallet) GetCallsStatus(ctx context.Context, id string) (*domain.CallsStatus, error) {
	var resp callsStatusResponse
	if err := w.client.CallContext(ctx, &resp, "wallet_getCallsStatus", id); err != nil {
		return nil, mapRPCError(err)
	}

	code, err := parseStatusCode(resp.Status)
	if err != nil {
		return nil, err
	}

	status := &domain.CallsStatus{Code: code, State: StateFromCode(code)}
	for _, receipt := range resp.Receipts {
		status.TxHashes = append(status.TxHashes, receipt.TransactionHash)
		if status.State == domain.BatchConfirmed && receipt.Status == 0 {
			status.State = domain.BatchFailed
		}
	}
	return status, nil
}

// parseStatusCode accepts numeric codes and the older PENDING/CONFIRMED strings
func parseStatusCode(raw json.RawMessage) (int, error) {
	var code int
	if err := json.Unmarshal(raw, &code); err == nil {
		return code, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0, fmt.Errorf("unexpected calls status: %s", string(raw))
	}
	switch strings.ToUpper(text) {
	case "PENDING":
		return 100, nil
	case "CONFIRMED":
		return 200, nil
	default:
		return 400, nil
	}
}
