package pumpswap

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/solkit/pumpswap-go-sdk/pkg/config"
	"github.com/solkit/pumpswap-go-sdk/pkg/constants"
)

// Anchor discriminators for the swap operations.
var (
	buyDiscriminator  = [8]byte{102, 6, 61, 18, 1, 218, 235, 234}
	sellDiscriminator = [8]byte{51, 230, 133, 164, 1, 127, 131, 173}
)

// SwapAccounts holds every per-trade account referenced by a swap
// instruction; the registry supplies the fixed ones.
type SwapAccounts struct {
	Pool                    solana.PublicKey
	User                    solana.PublicKey
	BaseMint                solana.PublicKey
	UserBaseTokenAccount    solana.PublicKey
	UserQuoteTokenAccount   solana.PublicKey
	PoolBaseTokenAccount    solana.PublicKey
	PoolQuoteTokenAccount   solana.PublicKey
	FeeReceiverTokenAccount solana.PublicKey
}

// NewBuyInstruction builds the swap instruction spending at most
// maxQuoteIn lamports for exactly tokenOut tokens.
func NewBuyInstruction(addrs config.Addresses, accts SwapAccounts, tokenOut, maxQuoteIn uint64) solana.Instruction {
	return solana.NewInstruction(
		addrs.Program,
		swapAccountMetas(addrs, accts),
		encodeSwapData(buyDiscriminator, tokenOut, maxQuoteIn),
	)
}

// NewSellInstruction builds the swap instruction selling exactly tokenIn
// tokens for at least minQuoteOut lamports.
func NewSellInstruction(addrs config.Addresses, accts SwapAccounts, tokenIn, minQuoteOut uint64) solana.Instruction {
	return solana.NewInstruction(
		addrs.Program,
		swapAccountMetas(addrs, accts),
		encodeSwapData(sellDiscriminator, tokenIn, minQuoteOut),
	)
}

// encodeSwapData lays out discriminator || amount || bound, both values
// little-endian u64, 24 bytes total.
func encodeSwapData(disc [8]byte, amount, bound uint64) []byte {
	data := make([]byte, 24)
	copy(data[:8], disc[:])
	binary.LittleEndian.PutUint64(data[8:16], amount)
	binary.LittleEndian.PutUint64(data[16:24], bound)
	return data
}

// swapAccountMetas returns the 17-entry account list shared by buy and
// sell. Order and flags are fixed by the on-chain program; any deviation
// is rejected.
func swapAccountMetas(addrs config.Addresses, a SwapAccounts) []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Pool, false, false),
		solana.NewAccountMeta(a.User, true, true),
		solana.NewAccountMeta(addrs.GlobalAuthority, false, false),
		solana.NewAccountMeta(a.BaseMint, false, false),
		solana.NewAccountMeta(addrs.QuoteMint, false, false),
		solana.NewAccountMeta(a.UserBaseTokenAccount, true, false),
		solana.NewAccountMeta(a.UserQuoteTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolBaseTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolQuoteTokenAccount, true, false),
		solana.NewAccountMeta(addrs.FeeReceiver, false, false),
		solana.NewAccountMeta(a.FeeReceiverTokenAccount, true, false),
		solana.NewAccountMeta(constants.TokenProgramID, false, false),
		solana.NewAccountMeta(constants.TokenProgramID, false, false),
		solana.NewAccountMeta(constants.SystemProgramID, false, false),
		solana.NewAccountMeta(constants.AssociatedTokenProgramID, false, false),
		solana.NewAccountMeta(addrs.EventAuthority, false, false),
		solana.NewAccountMeta(addrs.Program, false, false),
	}
}

// newCreateATAInstruction creates an associated token account. With
// idempotent set the instruction is a no-op when the account already
// exists (discriminator 1 vs 0).
func newCreateATAInstruction(payer, ata, wallet, mint solana.PublicKey, idempotent bool) solana.Instruction {
	var data []byte
	if idempotent {
		data = []byte{1}
	}
	metas := []*solana.AccountMeta{
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(ata, true, false),
		solana.NewAccountMeta(wallet, false, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(constants.SystemProgramID, false, false),
		solana.NewAccountMeta(constants.TokenProgramID, false, false),
	}
	return solana.NewInstruction(constants.AssociatedTokenProgramID, metas, data)
}

// newWrapWSOLInstructions transfers lamports into the WSOL account and
// syncs its token balance to match.
func newWrapWSOLInstructions(payer, wsolATA solana.PublicKey, lamports uint64) []solana.Instruction {
	if lamports == 0 {
		return nil
	}
	return []solana.Instruction{
		system.NewTransferInstruction(lamports, payer, wsolATA).Build(),
		token.NewSyncNativeInstruction(wsolATA).Build(),
	}
}

// newCloseAccountInstruction closes a token account and reclaims its
// lamports to destination (SPL token instruction 9).
func newCloseAccountInstruction(account, destination, owner solana.PublicKey) solana.Instruction {
	metas := []*solana.AccountMeta{
		solana.NewAccountMeta(account, true, false),
		solana.NewAccountMeta(destination, true, false),
		solana.NewAccountMeta(owner, false, true),
	}
	return solana.NewInstruction(constants.TokenProgramID, metas, []byte{9})
}
