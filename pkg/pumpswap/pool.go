package pumpswap

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	"github.com/solkit/pumpswap-go-sdk/pkg/constants"
	"github.com/solkit/pumpswap-go-sdk/pkg/types"
)

// FindPool locates the pool account pairing tokenMint with the registry's
// quote mint via a server-side filtered scan of the AMM program's account
// space. One round trip, no mutation.
//
// Zero matches fail with ErrPoolNotFound. More than one match takes the
// first result unless the SDK was built WithStrictPool, in which case it
// fails with ErrAmbiguousPool.
func (s *SDK) FindPool(ctx context.Context, tokenMint solana.PublicKey) (solana.PublicKey, error) {
	if err := types.ValidatePublicKey("tokenMint", tokenMint); err != nil {
		return solana.PublicKey{}, err
	}

	filters := []solanarpc.RPCFilter{
		{DataSize: constants.PoolAccountSize},
		{Memcmp: &solanarpc.RPCFilterMemcmp{
			Offset: constants.PoolBaseMintOffset,
			Bytes:  solana.Base58(tokenMint.Bytes()),
		}},
		{Memcmp: &solanarpc.RPCFilterMemcmp{
			Offset: constants.PoolQuoteMintOffset,
			Bytes:  solana.Base58(s.addrs.QuoteMint.Bytes()),
		}},
	}

	accounts, err := s.rpc.GetProgramAccounts(ctx, s.addrs.Program, &solanarpc.GetProgramAccountsOpts{
		Commitment: solanarpc.CommitmentConfirmed,
		Filters:    filters,
	})
	if err != nil {
		return solana.PublicKey{}, types.RPCError{Op: "getProgramAccounts", Err: err}
	}

	switch {
	case len(accounts) == 0:
		return solana.PublicKey{}, fmt.Errorf("%w: mint %s", types.ErrPoolNotFound, tokenMint)
	case len(accounts) > 1:
		if s.strictPool {
			return solana.PublicKey{}, fmt.Errorf("%w: %d matches for mint %s", types.ErrAmbiguousPool, len(accounts), tokenMint)
		}
		s.log.Warn().
			Int("matches", len(accounts)).
			Str("mint", tokenMint.String()).
			Str("pool", accounts[0].Pubkey.String()).
			Msg("multiple pools matched scan filters, taking first")
	}

	return accounts[0].Pubkey, nil
}
