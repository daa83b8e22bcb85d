package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/config"
	"github.com/noah-protocol/noah-client/internal/domain"
)

// ErrNoSigner is returned when a signing command runs without a configured key or remote wallet
var ErrNoSigner = errors.New("no signing key or remote wallet configured")

// Deps are the adapters Open needs
type Deps struct {
	FileSystem adapter.FileSystem
	Terminal   adapter.Terminal
	RPCDialer  adapter.RPCDialer
}

// Open builds the wallet selected by cfg. The returned close function releases remote connections.
func Open(ctx context.Context, cfg config.WalletConfig, chain domain.Chain, eth adapter.EthClient, deps Deps) (Wallet, func(), error) {
	switch cfg.Mode {
	case "rpc":
		client, err := deps.RPCDialer.Dial(ctx, cfg.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to dial wallet: %w", err)
		}
		w, err := ConnectRPCWallet(ctx, client, chain)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		return w, client.Close, nil

	case "key", "":
		key, err := loadKey(cfg, deps)
		if err != nil {
			return nil, nil, err
		}
		var confirmer Confirmer
		if cfg.Confirm && deps.Terminal != nil {
			confirmer = deps.Terminal
		}
		return NewKeyWallet(key, chain, eth, confirmer), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown wallet mode %q", cfg.Mode)
	}
}

func loadKey(cfg config.WalletConfig, deps Deps) (*ecdsa.PrivateKey, error) {
	switch {
	case cfg.PrivateKey != "":
		return ParseHexKey(cfg.PrivateKey)
	case cfg.KeystorePath != "":
		passphrase := cfg.Passphrase
		if passphrase == "" {
			if deps.Terminal == nil {
				return nil, fmt.Errorf("keystore passphrase required")
			}
			secret, err := deps.Terminal.ReadSecret("Keystore passphrase: ")
			if err != nil {
				return nil, fmt.Errorf("failed to read passphrase: %w", err)
			}
			passphrase = secret
		}
		return DecryptKeystore(deps.FileSystem, cfg.KeystorePath, passphrase)
	default:
		return nil, ErrNoSigner
	}
}
