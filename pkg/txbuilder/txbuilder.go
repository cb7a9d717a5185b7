// Package txbuilder turns assembled instruction lists into signed,
// submitted transactions. The swap assembler stops at unsigned
// instructions; everything past that point lives here.
package txbuilder

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	"github.com/solkit/pumpswap-go-sdk/pkg/jito"
	sdkrpc "github.com/solkit/pumpswap-go-sdk/pkg/rpc"
	"github.com/solkit/pumpswap-go-sdk/pkg/types"
	"github.com/solkit/pumpswap-go-sdk/pkg/wallet"
)

// ConfirmationLevel is the depth a caller waits for after submission.
type ConfirmationLevel string

const (
	ConfirmationProcessed ConfirmationLevel = "processed"
	ConfirmationConfirmed ConfirmationLevel = "confirmed"
	ConfirmationFinalized ConfirmationLevel = "finalized"
)

const confirmPollInterval = 100 * time.Millisecond

// Builder envelopes instructions into transactions and submits them via
// standard RPC or, when configured, the Jito block engine.
type Builder struct {
	client        *sdkrpc.Client
	commitment    solanarpc.CommitmentType
	skipPreflight bool
	jitoClient    *jito.Client
}

// NewBuilder constructs a Builder at the given commitment level.
func NewBuilder(client *sdkrpc.Client, commitment solanarpc.CommitmentType) *Builder {
	if commitment == "" {
		commitment = solanarpc.CommitmentConfirmed
	}
	return &Builder{client: client, commitment: commitment}
}

// WithSkipPreflight disables the preflight simulation on send.
func (b *Builder) WithSkipPreflight(skip bool) *Builder {
	b.skipPreflight = skip
	return b
}

// WithJito routes sends through the given Jito client. Pass nil to
// fall back to standard RPC.
func (b *Builder) WithJito(jitoClient *jito.Client) *Builder {
	b.jitoClient = jitoClient
	return b
}

// HasJito reports whether a Jito client is configured.
func (b *Builder) HasJito() bool {
	return b.jitoClient != nil
}

// BuildTransaction envelopes the instructions with a fresh blockhash
// and fee payer. The result is unsigned.
func (b *Builder) BuildTransaction(ctx context.Context, feePayer solana.PublicKey, instructions ...solana.Instruction) (*solana.Transaction, error) {
	if b.client == nil {
		return nil, types.ErrNilRPC
	}
	if len(instructions) == 0 {
		return nil, types.ErrNoInstructions
	}

	latest, err := b.client.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, types.RPCError{Op: "getLatestBlockhash", Err: err}
	}

	tb := solana.NewTransactionBuilder().
		SetRecentBlockHash(latest.Value.Blockhash).
		SetFeePayer(feePayer)
	for _, ix := range instructions {
		tb.AddInstruction(ix)
	}

	tx, err := tb.Build()
	if err != nil {
		return nil, types.BuildError{Step: "envelope transaction", Err: err}
	}
	return tx, nil
}

// SignTransaction fills tx.Signatures using the provided signers,
// matched to required signer keys in account-key order.
func SignTransaction(ctx context.Context, tx *solana.Transaction, signers ...wallet.Signer) error {
	if tx == nil {
		return types.NewValidationError("tx", "transaction is nil")
	}
	required := int(tx.Message.Header.NumRequiredSignatures)
	if required == 0 {
		return nil
	}
	if len(tx.Message.AccountKeys) < required {
		return types.NewValidationError("tx", "not enough account keys for required signatures")
	}

	byKey := make(map[solana.PublicKey]wallet.Signer, len(signers))
	for _, s := range signers {
		byKey[s.PublicKey()] = s
	}

	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	tx.Signatures = make([]solana.Signature, required)
	for i := 0; i < required; i++ {
		pk := tx.Message.AccountKeys[i]
		signer, ok := byKey[pk]
		if !ok {
			return fmt.Errorf("%w: no signer for %s", types.ErrNilSigner, pk)
		}
		sig, err := signer.SignMessage(ctx, msg)
		if err != nil {
			return fmt.Errorf("sign for %s: %w", pk, err)
		}
		tx.Signatures[i] = sig
	}
	return nil
}

// Send submits a signed transaction, preferring Jito when configured.
func (b *Builder) Send(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if b.jitoClient != nil {
		return b.SendViaJito(ctx, tx)
	}
	return b.SendViaRPC(ctx, tx)
}

// SendViaRPC submits a signed transaction through standard RPC.
func (b *Builder) SendViaRPC(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if b.client == nil {
		return solana.Signature{}, types.ErrNilRPC
	}
	sig, err := b.client.SendTransaction(ctx, tx, solanarpc.TransactionOpts{
		SkipPreflight:       b.skipPreflight,
		PreflightCommitment: b.commitment,
	})
	if err != nil {
		return solana.Signature{}, types.RPCError{Op: "sendTransaction", Err: err}
	}
	return sig, nil
}

// SendViaJito submits a signed transaction through Jito.
func (b *Builder) SendViaJito(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if b.jitoClient == nil {
		return solana.Signature{}, fmt.Errorf("jito client is not configured")
	}
	sig, err := b.jitoClient.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("jito send: %w", err)
	}
	return sig, nil
}

// SendBundleViaJito submits several transactions as one atomic bundle.
func (b *Builder) SendBundleViaJito(ctx context.Context, txs []*solana.Transaction) (string, error) {
	if b.jitoClient == nil {
		return "", fmt.Errorf("jito client is not configured")
	}
	bundleID, err := b.jitoClient.SendBundle(ctx, txs)
	if err != nil {
		return "", fmt.Errorf("jito send bundle: %w", err)
	}
	return bundleID, nil
}

// BuildSignSend builds, signs, and submits in one call.
func (b *Builder) BuildSignSend(ctx context.Context, feePayer wallet.Signer, signers []wallet.Signer, instructions ...solana.Instruction) (solana.Signature, error) {
	if feePayer == nil {
		return solana.Signature{}, types.ErrNilSigner
	}
	tx, err := b.BuildTransaction(ctx, feePayer.PublicKey(), instructions...)
	if err != nil {
		return solana.Signature{}, err
	}
	all := append([]wallet.Signer{feePayer}, signers...)
	if err := SignTransaction(ctx, tx, all...); err != nil {
		return solana.Signature{}, err
	}
	return b.Send(ctx, tx)
}

// SendAndConfirm submits and then polls until the requested level.
// Confirmation always goes through standard RPC even when the send
// went through Jito.
func (b *Builder) SendAndConfirm(ctx context.Context, tx *solana.Transaction, level ConfirmationLevel) (solana.Signature, error) {
	sig, err := b.Send(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	if err := b.WaitForConfirmation(ctx, sig, level); err != nil {
		return sig, fmt.Errorf("confirmation failed: %w, sig: %v", err, sig)
	}
	return sig, nil
}

// BuildSignSendAndConfirm is the full pipeline in one call.
func (b *Builder) BuildSignSendAndConfirm(ctx context.Context, feePayer wallet.Signer, signers []wallet.Signer, level ConfirmationLevel, instructions ...solana.Instruction) (solana.Signature, error) {
	if feePayer == nil {
		return solana.Signature{}, types.ErrNilSigner
	}
	tx, err := b.BuildTransaction(ctx, feePayer.PublicKey(), instructions...)
	if err != nil {
		return solana.Signature{}, err
	}
	all := append([]wallet.Signer{feePayer}, signers...)
	if err = SignTransaction(ctx, tx, all...); err != nil {
		return solana.Signature{}, err
	}
	return b.SendAndConfirm(ctx, tx, level)
}

// WaitForConfirmation polls signature status until the requested level
// is reached, the transaction fails on chain, or ctx expires.
func (b *Builder) WaitForConfirmation(ctx context.Context, sig solana.Signature, level ConfirmationLevel) error {
	if b.client == nil {
		return types.ErrNilRPC
	}

	ticker := time.NewTicker(confirmPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			resp, err := b.client.Raw().GetSignatureStatuses(ctx, true, sig)
			if err != nil {
				continue
			}
			if resp == nil || len(resp.Value) == 0 || resp.Value[0] == nil {
				continue
			}
			status := resp.Value[0]
			if status.Err != nil {
				return fmt.Errorf("transaction failed: %v", status.Err)
			}
			switch level {
			case ConfirmationProcessed:
				return nil
			case ConfirmationConfirmed:
				if status.ConfirmationStatus == solanarpc.ConfirmationStatusConfirmed ||
					status.ConfirmationStatus == solanarpc.ConfirmationStatusFinalized {
					return nil
				}
			case ConfirmationFinalized:
				if status.ConfirmationStatus == solanarpc.ConfirmationStatusFinalized {
					return nil
				}
			default:
				return nil
			}
		}
	}
}
