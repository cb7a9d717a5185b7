package pumpswap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpotPrice(t *testing.T) {
	// 10 SOL against 1e9 tokens: 10 lamports per token unit, 1e9-scaled.
	r := ReserveSnapshot{TokenReserve: 1_000_000_000, SolReserve: 10_000_000_000}
	assert.Equal(t, uint64(10_000_000_000), r.SpotPrice())

	assert.Equal(t, uint64(0), ReserveSnapshot{}.SpotPrice())
	assert.Equal(t, uint64(0), ReserveSnapshot{TokenReserve: 0, SolReserve: 100}.SpotPrice())

	// Overflow of the scaled price collapses to zero rather than wrapping.
	huge := ReserveSnapshot{TokenReserve: 1, SolReserve: math.MaxUint64}
	assert.Equal(t, uint64(0), huge.SpotPrice())
}
