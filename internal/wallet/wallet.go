package wallet

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/noah-protocol/noah-client/internal/domain"
)

//go:generate mockgen -source=wallet.go -destination=../mocks/wallet.go -package=mocks -mock_names=Wallet=MockWallet

// Wallet is the connected account that signs and submits calls
type Wallet interface {
	// Address returns the connected account
	Address() common.Address

	// ChainID returns the chain the account is connected to
	ChainID() domain.Chain

	// Capabilities reports what the account supports on its chain
	Capabilities(ctx context.Context) (domain.WalletCapabilities, error)

	// SendTransaction asks the account to sign and submit a single call
	SendTransaction(ctx context.Context, call domain.Call) (common.Hash, error)

	// SendCalls submits calls as one atomic unit and returns the batch id
	SendCalls(ctx context.Context, calls []domain.Call) (string, error)

	// GetCallsStatus returns the status of a batch submitted with SendCalls
	GetCallsStatus(ctx context.Context, id string) (*domain.CallsStatus, error)
}

// StateFromCode classifies an EIP-5792 status code
func StateFromCode(code int) domain.BatchState {
	switch {
	case code >= 100 && code < 200:
		return domain.BatchPending
	case code >= 200 && code < 300:
		return domain.BatchConfirmed
	default:
		return domain.BatchFailed
	}
}

// userRejectedCode is the EIP-1193 "user rejected request" error code
const userRejectedCode = 4001

// mapRPCError converts an EIP-1193 rejection into domain.ErrUserRejected
func mapRPCError(err error) error {
	if err == nil {
		return nil
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
		return errors.Join(domain.ErrUserRejected, err)
	}
	return err
}
