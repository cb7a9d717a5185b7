package pumpswap

import (
	"context"
	"math"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// DisplayPrice is a floating-point price for display only. Quote math
// never accepts this type; trade bounds stay in exact integers.
type DisplayPrice float64

const solDecimals = 9

// TokenPriceInSOL returns the pool's spot price of one whole token in
// SOL. The second return is false when the pool is missing or any read
// fails; this path is informational and never surfaces errors.
func (s *SDK) TokenPriceInSOL(ctx context.Context, mint solana.PublicKey) (DisplayPrice, bool) {
	pool, err := s.FindPool(ctx, mint)
	if err != nil {
		s.log.Debug().Err(err).Str("mint", mint.String()).Msg("price: pool lookup failed")
		return 0, false
	}
	reserves, err := s.GetReserves(ctx, pool, mint)
	if err != nil {
		s.log.Debug().Err(err).Str("pool", pool.String()).Msg("price: reserve read failed")
		return 0, false
	}
	if reserves.TokenReserve == 0 {
		return 0, false
	}

	decimals := s.mintDecimals(ctx, mint)

	sol := float64(reserves.SolReserve) / math.Pow10(solDecimals)
	tokens := float64(reserves.TokenReserve) / math.Pow10(int(decimals))
	return DisplayPrice(sol / tokens), true
}

// mintDecimals reads the mint's decimal precision, falling back to 9
// when the account cannot be read or decoded.
func (s *SDK) mintDecimals(ctx context.Context, mint solana.PublicKey) uint8 {
	info, err := s.rpc.GetAccountInfo(ctx, mint)
	if err != nil || info == nil || info.Value == nil || info.Value.Data == nil {
		return solDecimals
	}
	data := info.Value.Data.GetBinary()
	if len(data) == 0 {
		return solDecimals
	}
	var m token.Mint
	if err := bin.NewBinDecoder(data).Decode(&m); err != nil {
		s.log.Debug().Err(err).Str("mint", mint.String()).Msg("price: mint decode failed, assuming 9 decimals")
		return solDecimals
	}
	return m.Decimals
}
