package pumpswap

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"

	"github.com/solkit/pumpswap-go-sdk/pkg/types"
)

// ReserveSnapshot is a point-in-time read of a pool's two reserve
// balances, in the smallest unit of each asset. Snapshots are read fresh
// for every quote and never cached: a stale snapshot puts the slippage
// bound in the wrong place.
type ReserveSnapshot struct {
	TokenReserve uint64
	SolReserve   uint64
}

// SpotPrice returns the integer pool price as lamports per token, scaled
// by 1e9. Zero token reserves yield zero.
func (r ReserveSnapshot) SpotPrice() uint64 {
	if r.TokenReserve == 0 {
		return 0
	}
	price := new(big.Int).SetUint64(r.SolReserve)
	price.Mul(price, big.NewInt(1e9))
	price.Div(price, new(big.Int).SetUint64(r.TokenReserve))
	if !price.IsUint64() {
		return 0
	}
	return price.Uint64()
}

// GetReserves reads the pool's token and WSOL reserve balances. The two
// balance fetches are independent and issued concurrently. Any failure,
// including the reserve account not existing, surfaces as a
// ReserveReadError.
func (s *SDK) GetReserves(ctx context.Context, pool, tokenMint solana.PublicKey) (ReserveSnapshot, error) {
	tokenAcc, _, err := solana.FindAssociatedTokenAddress(pool, tokenMint)
	if err != nil {
		return ReserveSnapshot{}, types.ReserveReadError{Account: tokenMint.String(), Err: err}
	}
	wsolAcc, _, err := solana.FindAssociatedTokenAddress(pool, s.addrs.QuoteMint)
	if err != nil {
		return ReserveSnapshot{}, types.ReserveReadError{Account: s.addrs.QuoteMint.String(), Err: err}
	}

	var snap ReserveSnapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		amount, err := s.tokenBalance(gctx, tokenAcc)
		if err != nil {
			return types.ReserveReadError{Account: tokenAcc.String(), Err: err}
		}
		snap.TokenReserve = amount
		return nil
	})
	g.Go(func() error {
		amount, err := s.tokenBalance(gctx, wsolAcc)
		if err != nil {
			return types.ReserveReadError{Account: wsolAcc.String(), Err: err}
		}
		snap.SolReserve = amount
		return nil
	})
	if err := g.Wait(); err != nil {
		return ReserveSnapshot{}, err
	}
	return snap, nil
}

func (s *SDK) tokenBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	res, err := s.rpc.GetTokenAccountBalance(ctx, account)
	if err != nil {
		return 0, err
	}
	if res == nil || res.Value == nil {
		return 0, fmt.Errorf("empty balance result")
	}
	amount, err := strconv.ParseUint(res.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse balance %q: %w", res.Value.Amount, err)
	}
	return amount, nil
}
