package constants

import "github.com/gagliardetto/solana-go"

// Well-known program IDs
var (
	// SPL Programs
	SystemProgramID          = solana.SystemProgramID
	TokenProgramID           = solana.TokenProgramID
	AssociatedTokenProgramID = solana.SPLAssociatedTokenAccountProgramID
	ComputeBudgetProgramID   = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")

	// PumpSwap AMM Program
	PumpSwapProgramID = solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")
)

// Mainnet well-known accounts
var (
	// WSOL (Native Mint)
	WSOLMint = solana.WrappedSol

	// PumpSwap authority and fee accounts
	GlobalAuthority = solana.MustPublicKeyFromBase58("ADyA8hdefvWN2dbGGWFotbzWxrAvLW83WG6QCVXvJKqw")
	FeeReceiver     = solana.MustPublicKeyFromBase58("62qc2CNXwrYqQScmEdiZFFAnJR262PxWEuNQtxfafNgV")
	EventAuthority  = solana.MustPublicKeyFromBase58("GS4CU59F31iL7aR2Q8zVS8DRrcRnXX1yjQ66TqNVQnaR")
)

// Pool account layout (pump_amm Pool). The scan filters depend on these
// byte positions; an upstream layout change breaks discovery silently.
const (
	PoolAccountSize     = 211
	PoolBaseMintOffset  = 43
	PoolQuoteMintOffset = 75
)
