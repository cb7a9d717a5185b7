// Package pumpswap builds unsigned swap transactions for the PumpSwap
// constant-product AMM.
//
// The SDK discovers the pool for a token mint, reads its reserve balances,
// computes the deterministic swap output under a slippage bound, and
// assembles the full instruction sequence (WSOL wrap, compute budget,
// account creation, swap, cleanup) in the exact binary format the on-chain
// program expects. It never signs or submits anything; the returned
// instruction list is handed to an external signer such as txbuilder.
//
// Example:
//
//	sdk, err := pumpswap.New(rpcClient)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	instrs, quote, err := sdk.BuildBuy(ctx, mint, user, 1_000_000, pumpswap.DefaultSlippageBps)
package pumpswap

import (
	"github.com/rs/zerolog"

	"github.com/solkit/pumpswap-go-sdk/pkg/config"
	sdkrpc "github.com/solkit/pumpswap-go-sdk/pkg/rpc"
	"github.com/solkit/pumpswap-go-sdk/pkg/types"
)

// DefaultSlippageBps is the default slippage tolerance (3%).
const DefaultSlippageBps = 300

// Compute-budget hints attached ahead of every swap instruction. These are
// scheduler fee hints, not protocol semantics.
const (
	computeUnitLimit     = 300_000
	buyComputeUnitPrice  = 300_000
	sellComputeUnitPrice = 100_000
)

// SDK orchestrates pool discovery, reserve reads, quoting, and instruction
// assembly against one PumpSwap deployment.
type SDK struct {
	rpc        *sdkrpc.Client
	addrs      config.Addresses
	log        zerolog.Logger
	strictPool bool
}

// Option configures an SDK.
type Option func(*SDK)

// WithAddresses substitutes the address registry, e.g. for a non-mainnet
// deployment of the AMM program.
func WithAddresses(addrs config.Addresses) Option {
	return func(s *SDK) { s.addrs = addrs }
}

// WithLogger attaches a logger for scan warnings and flow debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(s *SDK) { s.log = log }
}

// WithStrictPool makes pool discovery fail with ErrAmbiguousPool when more
// than one account matches the scan filters, instead of taking the first.
func WithStrictPool() Option {
	return func(s *SDK) { s.strictPool = true }
}

// New constructs an SDK over the given RPC client, defaulting to the
// mainnet address registry.
func New(client *sdkrpc.Client, opts ...Option) (*SDK, error) {
	if client == nil {
		return nil, types.ErrNilRPC
	}
	s := &SDK{
		rpc:   client,
		addrs: config.MainnetAddresses(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.addrs.Validate() {
		return nil, types.NewValidationError("addresses", "registry has zero entries")
	}
	return s, nil
}

// Addresses returns the registry the SDK was constructed with.
func (s *SDK) Addresses() config.Addresses {
	return s.addrs
}
