package config

import (
	"io"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/solkit/pumpswap-go-sdk/pkg/constants"
)

// Network defines the target Solana cluster.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
	NetworkDevnet  Network = "devnet"
	NetworkCustom  Network = "custom"
)

// DefaultRPCURL returns the standard RPC endpoint for a known network.
func DefaultRPCURL(network Network) string {
	switch network {
	case NetworkMainnet:
		return "https://api.mainnet-beta.solana.com"
	case NetworkTestnet:
		return "https://api.testnet.solana.com"
	case NetworkDevnet:
		return "https://api.devnet.solana.com"
	default:
		return ""
	}
}

// RetryConfig controls RPC retry behavior. Disabled by default: the swap
// build path propagates the first RPC failure instead of retrying.
type RetryConfig struct {
	Enabled        bool
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Jitter         bool
}

// RateLimitConfig throttles outbound RPC calls.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// RPCConfig aggregates runtime settings for RPC usage.
type RPCConfig struct {
	Network    Network
	RPCURL     string
	Commitment string
	Timeout    time.Duration
	Retry      RetryConfig
	RateLimit  RateLimitConfig
	Logger     zerolog.Logger
}

// DefaultRPCConfig yields production-safe defaults (mainnet, confirmed commitment).
func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		Network:    NetworkMainnet,
		RPCURL:     DefaultRPCURL(NetworkMainnet),
		Commitment: "confirmed",
		Timeout:    20 * time.Second,
		Retry: RetryConfig{
			Enabled:        false,
			MaxAttempts:    3,
			InitialBackoff: 150 * time.Millisecond,
			MaxBackoff:     2 * time.Second,
			Jitter:         true,
		},
		RateLimit: RateLimitConfig{
			RPS:   8,
			Burst: 16,
		},
		Logger: zerolog.New(io.Discard),
	}
}

// ResolveRPCURL returns RPCURL if set, otherwise falls back to network defaults.
func (c RPCConfig) ResolveRPCURL() string {
	if c.RPCURL != "" {
		return c.RPCURL
	}
	return DefaultRPCURL(c.Network)
}

// Addresses is the immutable registry of program and authority addresses
// for one PumpSwap deployment. Alternate deployments substitute their own
// values at SDK construction instead of editing code.
type Addresses struct {
	Program         solana.PublicKey
	GlobalAuthority solana.PublicKey
	FeeReceiver     solana.PublicKey
	EventAuthority  solana.PublicKey
	QuoteMint       solana.PublicKey
}

// MainnetAddresses returns the registry for the mainnet PumpSwap deployment.
func MainnetAddresses() Addresses {
	return Addresses{
		Program:         constants.PumpSwapProgramID,
		GlobalAuthority: constants.GlobalAuthority,
		FeeReceiver:     constants.FeeReceiver,
		EventAuthority:  constants.EventAuthority,
		QuoteMint:       constants.WSOLMint,
	}
}

// Validate reports whether every registry entry is set.
func (a Addresses) Validate() bool {
	return !a.Program.IsZero() &&
		!a.GlobalAuthority.IsZero() &&
		!a.FeeReceiver.IsZero() &&
		!a.EventAuthority.IsZero() &&
		!a.QuoteMint.IsZero()
}
