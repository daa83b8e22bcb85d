package adapter

import (
	"context"

	"github.com/ethereum/go-ethereum/rpc"
)

// RPCClient is the raw JSON-RPC surface used to talk to a remote wallet
//
//go:generate mockgen -source=rpc.go -destination=../mocks/rpc.go -package=mocks -mock_names=RPCClient=MockRPCClient,RPCDialer=MockRPCDialer
type RPCClient interface {
	// CallContext performs a JSON-RPC call and decodes the result into result
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error

	// Close closes the connection
	Close()
}

// RPCDialer dials RPC clients
type RPCDialer interface {
	Dial(ctx context.Context, rawurl string) (RPCClient, error)
}

// RealRPCDialer implements RPCDialer with go-ethereum's rpc package
type RealRPCDialer struct{}

// NewRPCDialer creates a new real RPC dialer
func NewRPCDialer() RPCDialer {
	return &RealRPCDialer{}
}

func (d *RealRPCDialer) Dial(ctx context.Context, rawurl string) (RPCClient, error) {
	return rpc.DialContext(ctx, rawurl)
}
