package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
)

// gasHeadroom is added on top of the node's gas estimate, in percent
const gasHeadroom = 20

// Confirmer is asked before each signature
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// KeyWallet signs locally with a secp256k1 key and submits through an Ethereum node.
// It never supports atomic batches.
type KeyWallet struct {
	key       *ecdsa.PrivateKey
	address   common.Address
	chainID   domain.Chain
	client    adapter.EthClient
	confirmer Confirmer
}

// NewKeyWallet creates a wallet from a parsed key; confirmer may be nil
func NewKeyWallet(key *ecdsa.PrivateKey, chainID domain.Chain, client adapter.EthClient, confirmer Confirmer) *KeyWallet {
	return &KeyWallet{
		key:       key,
		address:   crypto.PubkeyToAddress(key.PublicKey),
		chainID:   chainID,
		client:    client,
		confirmer: confirmer,
	}
}

// ParseHexKey parses a hex private key with or without 0x prefix
func ParseHexKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// DecryptKeystore decrypts a go-ethereum keystore JSON file
func DecryptKeystore(fs adapter.FileSystem, path string, passphrase string) (*ecdsa.PrivateKey, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}
	key, err := keystore.DecryptKey(data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt keystore: %w", err)
	}
	return key.PrivateKey, nil
}

func (w *KeyWallet) Address() common.Address {
	return w.address
}

func (w *KeyWallet) ChainID() domain.Chain {
	return w.chainID
}

func (w *KeyWallet) Capabilities(ctx context.Context) (domain.WalletCapabilities, error) {
	return domain.WalletCapabilities{AtomicBatch: false}, nil
}

func (w *KeyWallet) SendCalls(ctx context.Context, calls []domain.Call) (string, error) {
	return "", domain.ErrBatchUnsupported
}

func (w *KeyWallet) GetCallsStatus(ctx context.Context, id string) (*domain.CallsStatus, error) {
	return nil, domain.ErrBatchUnsupported
}

// SendTransaction signs call as an EIP-1559 transaction, or legacy when the chain has no base fee
func (w *KeyWallet) SendTransaction(ctx context.Context, call domain.Call) (common.Hash, error) {
	if w.confirmer != nil {
		ok, err := w.confirmer.Confirm(fmt.Sprintf("Sign %q to %s on %s?", call.Label, call.To.Hex(), w.chainID.Name()))
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			return common.Hash{}, domain.ErrUserRejected
		}
	}

	value := call.Value
	if value == nil {
		value = new(big.Int)
	}

	nonce, err := w.client.PendingNonceAt(ctx, w.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	to := call.To
	gas, err := w.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  w.address,
		To:    &to,
		Data:  call.Data,
		Value: value,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gas += gas * gasHeadroom / 100

	head, err := w.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get latest header: %w", err)
	}

	var txData types.TxData
	if head.BaseFee != nil {
		tip, err := w.client.SuggestGasTipCap(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to suggest gas tip: %w", err)
		}
		feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
		txData = &types.DynamicFeeTx{
			ChainID:   new(big.Int).SetUint64(uint64(w.chainID)),
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       gas,
			To:        &to,
			Value:     value,
			Data:      call.Data,
		}
	} else {
		gasPrice, err := w.client.SuggestGasPrice(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to suggest gas price: %w", err)
		}
		txData = &types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gas,
			To:       &to,
			Value:    value,
			Data:     call.Data,
		}
	}

	signer := types.LatestSignerForChainID(new(big.Int).SetUint64(uint64(w.chainID)))
	tx, err := types.SignNewTx(w.key, signer, txData)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := w.client.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.InfoCtx(ctx, "Transaction submitted",
		zap.String("label", call.Label),
		zap.String("txHash", tx.Hash().Hex()),
		zap.Uint64("nonce", nonce))

	return tx.Hash(), nil
}
