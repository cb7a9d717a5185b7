package config

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func TestResolveRPCURL(t *testing.T) {
	cfg := DefaultRPCConfig()
	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.ResolveRPCURL())

	cfg.RPCURL = "https://example.com"
	assert.Equal(t, "https://example.com", cfg.ResolveRPCURL())

	cfg = RPCConfig{Network: NetworkDevnet}
	assert.Equal(t, "https://api.devnet.solana.com", cfg.ResolveRPCURL())
}

func TestDefaultRetryDisabled(t *testing.T) {
	cfg := DefaultRPCConfig()
	assert.False(t, cfg.Retry.Enabled, "swap builds must fail on the first RPC error by default")
}

func TestMainnetAddresses(t *testing.T) {
	addrs := MainnetAddresses()
	assert.True(t, addrs.Validate())
	assert.Equal(t, "pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA", addrs.Program.String())
	assert.Equal(t, "So11111111111111111111111111111111111111112", addrs.QuoteMint.String())
}

func TestAddressesValidate(t *testing.T) {
	addrs := MainnetAddresses()
	addrs.FeeReceiver = solana.PublicKey{}
	assert.False(t, addrs.Validate())
}
