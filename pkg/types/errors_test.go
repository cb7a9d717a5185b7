package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorUnwrapping(t *testing.T) {
	inner := errors.New("boom")

	assert.ErrorIs(t, RPCError{Op: "getBalance", Err: inner}, inner)
	assert.ErrorIs(t, ReserveReadError{Account: "abc", Err: inner}, inner)
	assert.ErrorIs(t, BuildError{Step: "derive accounts", Err: inner}, inner)

	wrapped := fmt.Errorf("context: %w", ErrPoolNotFound)
	assert.ErrorIs(t, wrapped, ErrPoolNotFound)
}

func TestValidation(t *testing.T) {
	require.NoError(t, ValidateSlippage(0))
	require.NoError(t, ValidateSlippage(10_000))
	assert.Error(t, ValidateSlippage(10_001))

	assert.Error(t, ValidateAmount("x", 0))
	require.NoError(t, ValidateAmount("x", 1))

	assert.Error(t, ValidatePublicKey("user", solana.PublicKey{}))
	require.NoError(t, ValidatePublicKey("user", solana.NewWallet().PublicKey()))

	var verr ValidationError
	assert.ErrorAs(t, ValidateAmount("amount", 0), &verr)
	assert.Equal(t, "amount", verr.Field)
}
