package pumpswap

import (
	"math/big"

	"github.com/solkit/pumpswap-go-sdk/pkg/types"
)

// SwapQuote is the computed result of a constant-product quote. All
// quantities are integers in the asset's smallest unit; nothing here is
// ever derived through floating point.
type SwapQuote struct {
	// InputAmount is the exact amount spent: lamports for buys, tokens
	// for sells.
	InputAmount uint64

	// OutputAmount is the deterministic AMM output before slippage:
	// tokens for buys, lamports for sells.
	OutputAmount uint64

	// BoundAmount is the slippage-adjusted bound written into the swap
	// instruction: the maximum lamports spent for buys, the minimum
	// lamports received for sells.
	BoundAmount uint64
}

var bpsDenominator = big.NewInt(10_000)

// BuyQuote computes the token output for spending exactly solLamports
// against the snapshot, and the maximum spend bound after slippage.
//
// The integer division truncates toward zero, matching the on-chain
// program's rounding; the product is taken in big.Int so the reserve
// multiplication cannot wrap.
func BuyQuote(r ReserveSnapshot, solLamports, slippageBps uint64) (SwapQuote, error) {
	if err := types.ValidateAmount("solLamports", solLamports); err != nil {
		return SwapQuote{}, err
	}
	if err := types.ValidateSlippage(slippageBps); err != nil {
		return SwapQuote{}, err
	}
	if r.TokenReserve == 0 || r.SolReserve == 0 {
		return SwapQuote{}, types.ErrEmptyReserves
	}

	tokenReserve := new(big.Int).SetUint64(r.TokenReserve)
	solReserve := new(big.Int).SetUint64(r.SolReserve)
	solIn := new(big.Int).SetUint64(solLamports)

	product := new(big.Int).Mul(tokenReserve, solReserve)
	newSolReserve := new(big.Int).Add(solReserve, solIn)
	newTokenReserve := new(big.Int).Div(product, newSolReserve)
	tokenOut := new(big.Int).Sub(tokenReserve, newTokenReserve)

	if tokenOut.Sign() <= 0 {
		return SwapQuote{}, types.ErrInvalidQuote
	}

	maxSolSpend := applyBpsUp(solIn, slippageBps)
	if !maxSolSpend.IsUint64() || !tokenOut.IsUint64() {
		return SwapQuote{}, types.ErrAmountTooBig
	}

	return SwapQuote{
		InputAmount:  solLamports,
		OutputAmount: tokenOut.Uint64(),
		BoundAmount:  maxSolSpend.Uint64(),
	}, nil
}

// SellQuote computes the lamport output for selling exactly tokenIn
// against the snapshot, and the minimum receive bound after slippage.
func SellQuote(r ReserveSnapshot, tokenIn, slippageBps uint64) (SwapQuote, error) {
	if err := types.ValidateAmount("tokenIn", tokenIn); err != nil {
		return SwapQuote{}, err
	}
	if err := types.ValidateSlippage(slippageBps); err != nil {
		return SwapQuote{}, err
	}
	if r.TokenReserve == 0 || r.SolReserve == 0 {
		return SwapQuote{}, types.ErrEmptyReserves
	}

	tokenReserve := new(big.Int).SetUint64(r.TokenReserve)
	solReserve := new(big.Int).SetUint64(r.SolReserve)
	amountIn := new(big.Int).SetUint64(tokenIn)

	product := new(big.Int).Mul(tokenReserve, solReserve)
	newTokenReserve := new(big.Int).Add(tokenReserve, amountIn)
	newSolReserve := new(big.Int).Div(product, newTokenReserve)
	solOut := new(big.Int).Sub(solReserve, newSolReserve)

	if solOut.Sign() <= 0 {
		return SwapQuote{}, types.ErrInvalidQuote
	}

	minSolOut := applyBpsDown(solOut, slippageBps)
	if !solOut.IsUint64() || !minSolOut.IsUint64() {
		return SwapQuote{}, types.ErrAmountTooBig
	}

	return SwapQuote{
		InputAmount:  tokenIn,
		OutputAmount: solOut.Uint64(),
		BoundAmount:  minSolOut.Uint64(),
	}, nil
}

// applyBpsUp returns amount * (10000 + bps) / 10000, truncating.
func applyBpsUp(amount *big.Int, bps uint64) *big.Int {
	out := new(big.Int).Mul(amount, new(big.Int).SetUint64(10_000+bps))
	return out.Div(out, bpsDenominator)
}

// applyBpsDown returns amount * (10000 - bps) / 10000, truncating.
func applyBpsDown(amount *big.Int, bps uint64) *big.Int {
	out := new(big.Int).Mul(amount, new(big.Int).SetUint64(10_000-bps))
	return out.Div(out, bpsDenominator)
}
