package types

import (
	"github.com/gagliardetto/solana-go"
)

// ValidateSlippage validates slippage basis points.
func ValidateSlippage(slippageBps uint64) error {
	if slippageBps > 10000 {
		return NewValidationError("slippageBps", "must be <= 10000 (100%)")
	}
	return nil
}

// ValidateAmount validates a trade input amount.
func ValidateAmount(name string, amount uint64) error {
	if amount == 0 {
		return NewValidationError(name, "must be greater than 0")
	}
	return nil
}

// ValidatePublicKey validates a public key is not zero.
func ValidatePublicKey(name string, key solana.PublicKey) error {
	if key.IsZero() {
		return NewValidationError(name, "cannot be zero")
	}
	return nil
}
