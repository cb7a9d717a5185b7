package pumpswap

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkconfig "github.com/solkit/pumpswap-go-sdk/pkg/config"
	sdkrpc "github.com/solkit/pumpswap-go-sdk/pkg/rpc"
	"github.com/solkit/pumpswap-go-sdk/pkg/types"
)

// Validation happens before any RPC call, so these run offline.
func TestBuildFailsFastOnBadInput(t *testing.T) {
	sdk, err := New(sdkrpc.NewClient(sdkconfig.DefaultRPCConfig()))
	require.NoError(t, err)

	ctx := context.Background()
	mint := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()
	var verr types.ValidationError

	instrs, _, err := sdk.BuildBuy(ctx, mint, user, 0, DefaultSlippageBps)
	assert.ErrorAs(t, err, &verr)
	assert.Nil(t, instrs)

	instrs, _, err = sdk.BuildBuy(ctx, mint, user, 1_000_000, 10_001)
	assert.ErrorAs(t, err, &verr)
	assert.Nil(t, instrs)

	instrs, _, err = sdk.BuildBuy(ctx, mint, solana.PublicKey{}, 1_000_000, DefaultSlippageBps)
	assert.ErrorAs(t, err, &verr)
	assert.Nil(t, instrs)

	instrs, _, err = sdk.BuildSellAmount(ctx, mint, user, 0, DefaultSlippageBps)
	assert.ErrorAs(t, err, &verr)
	assert.Nil(t, instrs)

	instrs, _, err = sdk.BuildSell(ctx, solana.PublicKey{}, user, DefaultSlippageBps)
	assert.ErrorAs(t, err, &verr)
	assert.Nil(t, instrs)
}

func TestNewRequiresClient(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, types.ErrNilRPC)
}

func TestNewRejectsEmptyRegistry(t *testing.T) {
	client := sdkrpc.NewClient(sdkconfig.DefaultRPCConfig())
	_, err := New(client, WithAddresses(sdkconfig.Addresses{}))
	var verr types.ValidationError
	assert.ErrorAs(t, err, &verr)
}
