package pumpswap

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solkit/pumpswap-go-sdk/pkg/types"
)

func TestBuyQuote(t *testing.T) {
	// 1e9 tokens against 10 SOL of reserves.
	r := ReserveSnapshot{TokenReserve: 1_000_000_000, SolReserve: 10_000_000_000}

	q, err := BuyQuote(r, 1_000_000, 300)
	require.NoError(t, err)

	// k = 1e19, newSol = 10_001_000_000, newToken = floor(k/newSol) =
	// 999_900_009, tokenOut = 99_991.
	assert.Equal(t, uint64(1_000_000), q.InputAmount)
	assert.Equal(t, uint64(99_991), q.OutputAmount)
	assert.Equal(t, uint64(1_030_000), q.BoundAmount)
}

func TestSellQuote(t *testing.T) {
	r := ReserveSnapshot{TokenReserve: 500, SolReserve: 1000}

	q, err := SellQuote(r, 100, 300)
	require.NoError(t, err)

	// newToken = 600, newSol = floor(500_000/600) = 833, solOut = 167,
	// minOut = floor(167*9700/10000) = 161.
	assert.Equal(t, uint64(100), q.InputAmount)
	assert.Equal(t, uint64(167), q.OutputAmount)
	assert.Equal(t, uint64(161), q.BoundAmount)
}

func TestQuoteBounds(t *testing.T) {
	r := ReserveSnapshot{TokenReserve: 1_000_000_000, SolReserve: 10_000_000_000}

	buy, err := BuyQuote(r, 123_456_789, 500)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, buy.BoundAmount, buy.InputAmount, "max spend never below input")
	assert.Less(t, buy.OutputAmount, r.TokenReserve, "cannot drain the token reserve")

	sell, err := SellQuote(r, 123_456_789, 500)
	require.NoError(t, err)
	assert.LessOrEqual(t, sell.BoundAmount, sell.OutputAmount, "min receive never above output")
	assert.Less(t, sell.OutputAmount, r.SolReserve, "cannot drain the SOL reserve")
}

func TestQuoteProductNeverIncreases(t *testing.T) {
	cases := []struct {
		name     string
		reserves ReserveSnapshot
		in       uint64
	}{
		{"small pool", ReserveSnapshot{TokenReserve: 500, SolReserve: 1000}, 100},
		{"large pool", ReserveSnapshot{TokenReserve: 800_000_000_000_000, SolReserve: 30_000_000_000}, 1_000_000_000},
		{"tiny trade", ReserveSnapshot{TokenReserve: 1_000_000, SolReserve: 1_000_000}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := BuyQuote(tc.reserves, tc.in, 0)
			if err != nil {
				require.ErrorIs(t, err, types.ErrInvalidQuote)
				return
			}
			newSol := new(big.Int).SetUint64(tc.reserves.SolReserve + tc.in)
			newToken := new(big.Int).SetUint64(tc.reserves.TokenReserve - q.OutputAmount)
			oldProduct := new(big.Int).Mul(
				new(big.Int).SetUint64(tc.reserves.TokenReserve),
				new(big.Int).SetUint64(tc.reserves.SolReserve),
			)
			newProduct := new(big.Int).Mul(newToken, newSol)
			assert.True(t, newProduct.Cmp(oldProduct) <= 0, "reserve product must never increase after a trade")
		})
	}
}

func TestQuoteRoundTripNeverProfits(t *testing.T) {
	r := ReserveSnapshot{TokenReserve: 1_000_000_000, SolReserve: 10_000_000_000}

	buy, err := BuyQuote(r, 5_000_000, 0)
	require.NoError(t, err)

	sell, err := SellQuote(r, buy.OutputAmount, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, sell.OutputAmount, buy.InputAmount, "round trip against frozen reserves must not profit")
}

func TestQuoteZeroInput(t *testing.T) {
	r := ReserveSnapshot{TokenReserve: 500, SolReserve: 1000}

	_, err := BuyQuote(r, 0, 300)
	var verr types.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = SellQuote(r, 0, 300)
	require.ErrorAs(t, err, &verr)
}

func TestQuoteEmptyReserves(t *testing.T) {
	_, err := BuyQuote(ReserveSnapshot{TokenReserve: 0, SolReserve: 1000}, 100, 300)
	assert.ErrorIs(t, err, types.ErrEmptyReserves)

	_, err = SellQuote(ReserveSnapshot{TokenReserve: 500, SolReserve: 0}, 100, 300)
	assert.ErrorIs(t, err, types.ErrEmptyReserves)
}

func TestQuoteInvalidSlippage(t *testing.T) {
	r := ReserveSnapshot{TokenReserve: 500, SolReserve: 1000}

	_, err := BuyQuote(r, 100, 10_001)
	assert.Error(t, err)

	// 100% slippage is degenerate but allowed on the sell side: the
	// bound collapses to zero.
	q, err := SellQuote(r, 100, 10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), q.BoundAmount)
}

func TestBuyQuoteBoundOverflow(t *testing.T) {
	r := ReserveSnapshot{TokenReserve: math.MaxUint64, SolReserve: math.MaxUint64}

	_, err := BuyQuote(r, math.MaxUint64, 10_000)
	assert.True(t, errors.Is(err, types.ErrAmountTooBig))
}

func TestQuoteDustTrade(t *testing.T) {
	// A one-lamport buy against a deep pool truncates down to the
	// single-token floor.
	r := ReserveSnapshot{TokenReserve: 1_000, SolReserve: 10_000_000_000}
	q, err := BuyQuote(r, 1, 300)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), q.OutputAmount)
}

func BenchmarkBuyQuote(b *testing.B) {
	r := ReserveSnapshot{TokenReserve: 800_000_000_000_000, SolReserve: 30_000_000_000}
	for i := 0; i < b.N; i++ {
		_, _ = BuyQuote(r, 1_000_000_000, 300)
	}
}
