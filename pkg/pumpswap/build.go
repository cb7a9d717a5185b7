package pumpswap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/token"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	"github.com/solkit/pumpswap-go-sdk/pkg/types"
)

// wsolAccountState records whether the user's WSOL account existed before
// the build. The buy flow closes the account afterwards only when it
// created it, so the decision is carried explicitly instead of re-derived.
type wsolAccountState int

const (
	wsolAccountExists wsolAccountState = iota
	wsolAccountAbsentWillCreate
)

// BuildBuy assembles the instruction sequence that spends solLamports of
// native SOL for tokens of mint, with slippage protection in basis points.
//
// The returned list is complete and ordered: optional WSOL account
// creation and wrap, compute-budget hints, idempotent token account
// creation, the swap, and (when the WSOL account was created here) its
// close. Nothing is signed or sent; a failure at any step returns no
// instructions at all.
func (s *SDK) BuildBuy(ctx context.Context, mint, user solana.PublicKey, solLamports, slippageBps uint64) ([]solana.Instruction, *SwapQuote, error) {
	if err := types.ValidatePublicKey("user", user); err != nil {
		return nil, nil, err
	}
	if err := types.ValidatePublicKey("mint", mint); err != nil {
		return nil, nil, err
	}
	if err := types.ValidateAmount("solLamports", solLamports); err != nil {
		return nil, nil, err
	}
	if err := types.ValidateSlippage(slippageBps); err != nil {
		return nil, nil, err
	}

	pool, err := s.FindPool(ctx, mint)
	if err != nil {
		return nil, nil, err
	}
	reserves, err := s.GetReserves(ctx, pool, mint)
	if err != nil {
		return nil, nil, err
	}
	quote, err := BuyQuote(reserves, solLamports, slippageBps)
	if err != nil {
		return nil, nil, err
	}

	balance, err := s.rpc.GetBalance(ctx, user)
	if err != nil {
		return nil, nil, types.RPCError{Op: "getBalance", Err: err}
	}
	if balance < quote.BoundAmount {
		return nil, nil, fmt.Errorf("%w: have %d lamports, need %d", types.ErrInsufficientFunds, balance, quote.BoundAmount)
	}

	accts, err := s.resolveSwapAccounts(pool, mint, user)
	if err != nil {
		return nil, nil, types.BuildError{Step: "derive accounts", Err: err}
	}

	wsolState, wsolBalance, err := s.wsolAccountStatus(ctx, accts.UserQuoteTokenAccount)
	if err != nil {
		return nil, nil, err
	}

	var instrs []solana.Instruction
	if wsolState == wsolAccountAbsentWillCreate {
		instrs = append(instrs, newCreateATAInstruction(user, accts.UserQuoteTokenAccount, user, s.addrs.QuoteMint, false))
	}
	if wsolBalance < quote.BoundAmount {
		shortfall := quote.BoundAmount - wsolBalance
		s.log.Debug().Uint64("lamports", shortfall).Msg("wrapping shortfall into WSOL")
		instrs = append(instrs, newWrapWSOLInstructions(user, accts.UserQuoteTokenAccount, shortfall)...)
	}

	instrs = append(instrs,
		computebudget.NewSetComputeUnitLimitInstruction(computeUnitLimit).Build(),
		computebudget.NewSetComputeUnitPriceInstruction(buyComputeUnitPrice).Build(),
		newCreateATAInstruction(user, accts.UserBaseTokenAccount, user, mint, true),
		NewBuyInstruction(s.addrs, accts, quote.OutputAmount, quote.BoundAmount),
	)

	if wsolState == wsolAccountAbsentWillCreate {
		instrs = append(instrs, newCloseAccountInstruction(accts.UserQuoteTokenAccount, user, user))
	}

	s.log.Debug().
		Str("pool", pool.String()).
		Uint64("token_out", quote.OutputAmount).
		Uint64("max_sol_spend", quote.BoundAmount).
		Int("instructions", len(instrs)).
		Msg("buy build complete")
	return instrs, &quote, nil
}

// BuildSell assembles the instruction sequence selling the user's entire
// token balance of mint back to native SOL.
func (s *SDK) BuildSell(ctx context.Context, mint, user solana.PublicKey, slippageBps uint64) ([]solana.Instruction, *SwapQuote, error) {
	return s.buildSell(ctx, mint, user, 0, slippageBps)
}

// BuildSellAmount is BuildSell for a partial position: it sells exactly
// tokenIn of the user's balance.
func (s *SDK) BuildSellAmount(ctx context.Context, mint, user solana.PublicKey, tokenIn, slippageBps uint64) ([]solana.Instruction, *SwapQuote, error) {
	if err := types.ValidateAmount("tokenIn", tokenIn); err != nil {
		return nil, nil, err
	}
	return s.buildSell(ctx, mint, user, tokenIn, slippageBps)
}

func (s *SDK) buildSell(ctx context.Context, mint, user solana.PublicKey, tokenIn, slippageBps uint64) ([]solana.Instruction, *SwapQuote, error) {
	if err := types.ValidatePublicKey("user", user); err != nil {
		return nil, nil, err
	}
	if err := types.ValidatePublicKey("mint", mint); err != nil {
		return nil, nil, err
	}
	if err := types.ValidateSlippage(slippageBps); err != nil {
		return nil, nil, err
	}

	userTokenATA, _, err := solana.FindAssociatedTokenAddress(user, mint)
	if err != nil {
		return nil, nil, types.BuildError{Step: "derive token account", Err: err}
	}

	balance, err := s.tokenAccountBalance(ctx, userTokenATA)
	if err != nil {
		return nil, nil, err
	}
	if balance == 0 {
		return nil, nil, fmt.Errorf("%w: %s", types.ErrEmptyPosition, userTokenATA)
	}
	if tokenIn == 0 {
		tokenIn = balance
	} else if tokenIn > balance {
		return nil, nil, types.NewValidationError("tokenIn", fmt.Sprintf("exceeds token balance %d", balance))
	}

	pool, err := s.FindPool(ctx, mint)
	if err != nil {
		return nil, nil, err
	}
	reserves, err := s.GetReserves(ctx, pool, mint)
	if err != nil {
		return nil, nil, err
	}
	quote, err := SellQuote(reserves, tokenIn, slippageBps)
	if err != nil {
		return nil, nil, err
	}

	accts, err := s.resolveSwapAccounts(pool, mint, user)
	if err != nil {
		return nil, nil, types.BuildError{Step: "derive accounts", Err: err}
	}

	// Sell always receives WSOL into the user's quote account and
	// unwraps it afterwards, whether or not the account pre-existed.
	instrs := []solana.Instruction{
		computebudget.NewSetComputeUnitLimitInstruction(computeUnitLimit).Build(),
		computebudget.NewSetComputeUnitPriceInstruction(sellComputeUnitPrice).Build(),
		newCreateATAInstruction(user, accts.UserQuoteTokenAccount, user, s.addrs.QuoteMint, true),
		NewSellInstruction(s.addrs, accts, quote.InputAmount, quote.BoundAmount),
		newCloseAccountInstruction(accts.UserQuoteTokenAccount, user, user),
	}

	s.log.Debug().
		Str("pool", pool.String()).
		Uint64("token_in", quote.InputAmount).
		Uint64("min_sol_out", quote.BoundAmount).
		Int("instructions", len(instrs)).
		Msg("sell build complete")
	return instrs, &quote, nil
}

// resolveSwapAccounts derives the five associated accounts a swap
// instruction references besides the fixed registry entries.
func (s *SDK) resolveSwapAccounts(pool, mint, user solana.PublicKey) (SwapAccounts, error) {
	userBase, _, err := solana.FindAssociatedTokenAddress(user, mint)
	if err != nil {
		return SwapAccounts{}, fmt.Errorf("user token account: %w", err)
	}
	userQuote, _, err := solana.FindAssociatedTokenAddress(user, s.addrs.QuoteMint)
	if err != nil {
		return SwapAccounts{}, fmt.Errorf("user WSOL account: %w", err)
	}
	poolBase, _, err := solana.FindAssociatedTokenAddress(pool, mint)
	if err != nil {
		return SwapAccounts{}, fmt.Errorf("pool token account: %w", err)
	}
	poolQuote, _, err := solana.FindAssociatedTokenAddress(pool, s.addrs.QuoteMint)
	if err != nil {
		return SwapAccounts{}, fmt.Errorf("pool WSOL account: %w", err)
	}
	feeQuote, _, err := solana.FindAssociatedTokenAddress(s.addrs.FeeReceiver, s.addrs.QuoteMint)
	if err != nil {
		return SwapAccounts{}, fmt.Errorf("fee receiver WSOL account: %w", err)
	}
	return SwapAccounts{
		Pool:                    pool,
		User:                    user,
		BaseMint:                mint,
		UserBaseTokenAccount:    userBase,
		UserQuoteTokenAccount:   userQuote,
		PoolBaseTokenAccount:    poolBase,
		PoolQuoteTokenAccount:   poolQuote,
		FeeReceiverTokenAccount: feeQuote,
	}, nil
}

// wsolAccountStatus checks whether the WSOL account exists and, if so,
// reads its current wrapped balance.
func (s *SDK) wsolAccountStatus(ctx context.Context, wsolATA solana.PublicKey) (wsolAccountState, uint64, error) {
	info, err := s.rpc.GetAccountInfo(ctx, wsolATA)
	if err != nil {
		if isNotFound(err) {
			return wsolAccountAbsentWillCreate, 0, nil
		}
		return 0, 0, types.RPCError{Op: "getAccountInfo", Err: err}
	}
	if info == nil || info.Value == nil || info.Value.Data == nil {
		return wsolAccountAbsentWillCreate, 0, nil
	}
	data := info.Value.Data.GetBinary()
	if len(data) == 0 {
		return wsolAccountAbsentWillCreate, 0, nil
	}
	var acc token.Account
	if err := bin.NewBinDecoder(data).Decode(&acc); err != nil {
		return 0, 0, types.BuildError{Step: "decode WSOL account", Err: err}
	}
	return wsolAccountExists, acc.Amount, nil
}

// isNotFound reports whether an RPC error means the account does not
// exist. Providers phrase this differently, so the check is loose.
func isNotFound(err error) bool {
	if errors.Is(err, solanarpc.ErrNotFound) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "not found") || strings.Contains(msg, "could not find")
}

// tokenAccountBalance reads the balance of an existing token account,
// failing with ErrTokenAccountNotFound when the account is absent.
func (s *SDK) tokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	info, err := s.rpc.GetAccountInfo(ctx, account)
	if err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("%w: %s", types.ErrTokenAccountNotFound, account)
		}
		return 0, types.RPCError{Op: "getAccountInfo", Err: err}
	}
	if info == nil || info.Value == nil || info.Value.Data == nil {
		return 0, fmt.Errorf("%w: %s", types.ErrTokenAccountNotFound, account)
	}
	data := info.Value.Data.GetBinary()
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: %s", types.ErrTokenAccountNotFound, account)
	}
	var acc token.Account
	if err := bin.NewBinDecoder(data).Decode(&acc); err != nil {
		return 0, types.BuildError{Step: "decode token account", Err: err}
	}
	return acc.Amount, nil
}
