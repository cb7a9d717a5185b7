package pumpswap

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solkit/pumpswap-go-sdk/pkg/config"
	"github.com/solkit/pumpswap-go-sdk/pkg/constants"
)

func testSwapAccounts() SwapAccounts {
	return SwapAccounts{
		Pool:                    solana.MustPublicKeyFromBase58("7qbRF6YsyGuLUVs6Y1q64bdVrfe4ZcUUz1JRdoVNUJnm"),
		User:                    solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"),
		BaseMint:                solana.MustPublicKeyFromBase58("8GT663BCnPZ1nLFkFynZzquy3WGS9gMkugFtNKcrpump"),
		UserBaseTokenAccount:    solana.NewWallet().PublicKey(),
		UserQuoteTokenAccount:   solana.NewWallet().PublicKey(),
		PoolBaseTokenAccount:    solana.NewWallet().PublicKey(),
		PoolQuoteTokenAccount:   solana.NewWallet().PublicKey(),
		FeeReceiverTokenAccount: solana.NewWallet().PublicKey(),
	}
}

func TestBuyInstructionPayload(t *testing.T) {
	addrs := config.MainnetAddresses()
	ix := NewBuyInstruction(addrs, testSwapAccounts(), 0x1122334455667788, 0x99AABBCCDDEEFF00)

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 24)

	want := []byte{
		102, 6, 61, 18, 1, 218, 235, 234,
		0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11,
		0x00, 0xFF, 0xEE, 0xDD, 0xCC, 0xBB, 0xAA, 0x99,
	}
	assert.Equal(t, want, data)
	assert.Equal(t, addrs.Program, ix.ProgramID())
}

func TestSellInstructionPayload(t *testing.T) {
	addrs := config.MainnetAddresses()
	ix := NewSellInstruction(addrs, testSwapAccounts(), 1_000_000, 950_000)

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 24)

	want := []byte{
		51, 230, 133, 164, 1, 127, 131, 173,
		0x40, 0x42, 0x0F, 0x00, 0x00, 0x00, 0x00, 0x00, // 1_000_000 LE
		0xF0, 0x7E, 0x0E, 0x00, 0x00, 0x00, 0x00, 0x00, // 950_000 LE
	}
	assert.Equal(t, want, data)
}

func TestSwapAccountOrder(t *testing.T) {
	addrs := config.MainnetAddresses()
	accts := testSwapAccounts()

	for _, ix := range []solana.Instruction{
		NewBuyInstruction(addrs, accts, 1, 2),
		NewSellInstruction(addrs, accts, 1, 2),
	} {
		metas := ix.Accounts()
		require.Len(t, metas, 17)

		wantKeys := []solana.PublicKey{
			accts.Pool,
			accts.User,
			addrs.GlobalAuthority,
			accts.BaseMint,
			addrs.QuoteMint,
			accts.UserBaseTokenAccount,
			accts.UserQuoteTokenAccount,
			accts.PoolBaseTokenAccount,
			accts.PoolQuoteTokenAccount,
			addrs.FeeReceiver,
			accts.FeeReceiverTokenAccount,
			constants.TokenProgramID,
			constants.TokenProgramID,
			constants.SystemProgramID,
			constants.AssociatedTokenProgramID,
			addrs.EventAuthority,
			addrs.Program,
		}
		for i, meta := range metas {
			assert.Equal(t, wantKeys[i], meta.PublicKey, "account %d", i)
		}

		// Writable: the four token accounts plus the fee ATA and the user.
		wantWritable := []int{1, 5, 6, 7, 8, 10}
		writable := map[int]bool{}
		for _, i := range wantWritable {
			writable[i] = true
		}
		for i, meta := range metas {
			assert.Equal(t, writable[i], meta.IsWritable, "writable flag %d", i)
			assert.Equal(t, i == 1, meta.IsSigner, "signer flag %d", i)
		}
	}
}

func TestCreateATAInstruction(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	ata := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	plain := newCreateATAInstruction(payer, ata, owner, mint, false)
	data, err := plain.Data()
	require.NoError(t, err)
	assert.Empty(t, data)

	idem := newCreateATAInstruction(payer, ata, owner, mint, true)
	data, err = idem.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, data)

	assert.Equal(t, constants.AssociatedTokenProgramID, idem.ProgramID())
	require.Len(t, idem.Accounts(), 6)
	assert.True(t, idem.Accounts()[0].IsSigner)
}

func TestWrapWSOLInstructions(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	wsolATA := solana.NewWallet().PublicKey()

	instrs := newWrapWSOLInstructions(payer, wsolATA, 123_456)
	require.Len(t, instrs, 2)
	assert.Equal(t, constants.SystemProgramID, instrs[0].ProgramID())
	assert.Equal(t, constants.TokenProgramID, instrs[1].ProgramID())

	assert.Nil(t, newWrapWSOLInstructions(payer, wsolATA, 0))
}

func TestCloseAccountInstruction(t *testing.T) {
	account := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	ix := newCloseAccountInstruction(account, owner, owner)
	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, data)
	assert.Equal(t, constants.TokenProgramID, ix.ProgramID())

	metas := ix.Accounts()
	require.Len(t, metas, 3)
	assert.True(t, metas[2].IsSigner)
}
